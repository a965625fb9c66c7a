package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"alcyxob/lifetrack/internal/domain"
	"alcyxob/lifetrack/internal/enrichment"
	"alcyxob/lifetrack/internal/repository"
	"alcyxob/lifetrack/internal/storage"
)

var (
	ErrReportNotUploaded = errors.New("report file has not been uploaded yet")
	ErrReportNotAnalyzed = errors.New("report has not been analyzed yet")
	ErrAnalysisFailed    = errors.New("report analysis failed")
)

// --- Nutrition lookup ---

// NutritionService resolves food descriptions to nutrition facts.
type NutritionService interface {
	Lookup(ctx context.Context, query string) ([]domain.NutritionFacts, error)
}

type nutritionService struct {
	provider enrichment.NutritionProvider
}

// NewNutritionService creates a new instance of nutritionService.
func NewNutritionService(provider enrichment.NutritionProvider) NutritionService {
	return &nutritionService{provider: provider}
}

func (s *nutritionService) Lookup(ctx context.Context, query string) ([]domain.NutritionFacts, error) {
	facts, err := s.provider.Search(ctx, query)
	if errors.Is(err, enrichment.ErrEmptyQuery) {
		return nil, validationError(err.Error())
	}
	return facts, err
}

// --- Medical reports ---

// ReportUpload is returned when a client asks to upload a report.
type ReportUpload struct {
	Report *domain.Report       `json:"report"`
	Upload *domain.UploadTicket `json:"upload"`
}

// PersonalizedPlan is the follow-up answers applied to a report's recommendations.
type PersonalizedPlan struct {
	Recommendations domain.Recommendations `json:"recommendations"`
	Applied         bool                   `json:"applied"`
	Profile         *ProfileView           `json:"profile,omitempty"`
}

// ReportService handles medical report uploads and their analysis.
type ReportService interface {
	RequestUpload(ctx context.Context, userID, contentType string) (*ReportUpload, error)
	Get(ctx context.Context, userID, reportID string) (*domain.Report, error)
	Analyze(ctx context.Context, userID, reportID string) (*domain.Report, error)
	PersonalizePlan(ctx context.Context, userID, reportID string, answers map[string]string, apply bool) (*PersonalizedPlan, error)
	Delete(ctx context.Context, userID, reportID string) error
}

type reportService struct {
	reports    repository.ReportRepository
	files      storage.FileStorage
	analyzer   enrichment.ReportAnalyzer
	profiles   ProfileService
	presignTTL time.Duration
	log        *zap.Logger
	now        func() time.Time
}

// NewReportService creates a new instance of reportService.
func NewReportService(reports repository.ReportRepository, files storage.FileStorage, analyzer enrichment.ReportAnalyzer,
	profiles ProfileService, presignTTL time.Duration, log *zap.Logger) ReportService {
	if presignTTL <= 0 {
		presignTTL = storage.DefaultPresignedURLExpiry
	}
	return &reportService{
		reports:    reports,
		files:      files,
		analyzer:   analyzer,
		profiles:   profiles,
		presignTTL: presignTTL,
		log:        log,
		now:        time.Now,
	}
}

// RequestUpload records a pending report and returns a presigned PUT for its file.
func (s *reportService) RequestUpload(ctx context.Context, userID, contentType string) (*ReportUpload, error) {
	contentType = strings.ToLower(strings.TrimSpace(contentType))
	id := uuid.NewString()
	key, err := storage.ReportKey(userID, id, contentType)
	if err != nil {
		return nil, validationError(err.Error())
	}

	url, err := s.files.GeneratePresignedUploadURL(ctx, key, contentType, s.presignTTL)
	if err != nil {
		return nil, err
	}

	report := &domain.Report{
		ID:          id,
		UserID:      userID,
		S3ObjectKey: key,
		ContentType: contentType,
		Status:      domain.ReportPending,
	}
	if err := s.reports.Create(ctx, report); err != nil {
		return nil, err
	}
	return &ReportUpload{
		Report: report,
		Upload: &domain.UploadTicket{UploadURL: url, ObjectKey: key, ExpiresAt: s.now().UTC().Add(s.presignTTL)},
	}, nil
}

func (s *reportService) Get(ctx context.Context, userID, reportID string) (*domain.Report, error) {
	r, err := s.reports.GetByID(ctx, userID, reportID)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return r, nil
}

// Analyze runs the configured analyzer over an uploaded report and stores
// the result. A failed analysis is recorded on the report as well.
func (s *reportService) Analyze(ctx context.Context, userID, reportID string) (*domain.Report, error) {
	report, err := s.Get(ctx, userID, reportID)
	if err != nil {
		return nil, err
	}

	exists, err := s.files.ObjectExists(ctx, report.S3ObjectKey)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrReportNotUploaded
	}

	url, err := s.files.GeneratePresignedDownloadURL(ctx, report.S3ObjectKey, s.presignTTL)
	if err != nil {
		return nil, err
	}

	analysis, err := s.analyzer.Analyze(ctx, enrichment.ReportInput{
		ReportID:    report.ID,
		ContentType: report.ContentType,
		DownloadURL: url,
	})
	if err != nil {
		s.log.Warn("report analysis failed", zap.String("report_id", report.ID), zap.String("user_id", userID), zap.Error(err))
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if setErr := s.reports.SetAnalysis(ctx, report.ID, domain.ReportFailed, nil); setErr != nil {
			s.log.Error("failed to record analysis failure", zap.String("report_id", report.ID), zap.Error(setErr))
		}
		return nil, fmt.Errorf("%w: %v", ErrAnalysisFailed, err)
	}

	if err := s.reports.SetAnalysis(ctx, report.ID, domain.ReportAnalyzed, analysis); err != nil {
		return nil, err
	}
	report.Status = domain.ReportAnalyzed
	report.Analysis = analysis
	report.UpdatedAt = s.now().UTC()
	return report, nil
}

// PersonalizePlan applies the follow-up answers to an analyzed report. With
// apply set, the resulting calorie limit becomes the profile's daily target.
func (s *reportService) PersonalizePlan(ctx context.Context, userID, reportID string, answers map[string]string, apply bool) (*PersonalizedPlan, error) {
	report, err := s.Get(ctx, userID, reportID)
	if err != nil {
		return nil, err
	}
	if report.Status != domain.ReportAnalyzed || report.Analysis == nil {
		return nil, ErrReportNotAnalyzed
	}

	plan := &PersonalizedPlan{Recommendations: enrichment.PersonalizePlan(report.Analysis.Recommendations, answers)}
	if !apply {
		return plan, nil
	}

	limit := plan.Recommendations.CalorieLimit
	profile, err := s.profiles.Update(ctx, userID, domain.ProfilePatch{
		Goals: domain.GoalSetPatch{DailyCalories: &limit},
	})
	if err != nil {
		return nil, err
	}
	plan.Applied = true
	plan.Profile = profile
	return plan, nil
}

// Delete removes the report file and its record. A file that cannot be
// removed is logged and left behind; the record is deleted regardless.
func (s *reportService) Delete(ctx context.Context, userID, reportID string) error {
	report, err := s.Get(ctx, userID, reportID)
	if err != nil {
		return err
	}
	if err := s.files.DeleteObject(ctx, report.S3ObjectKey); err != nil {
		s.log.Warn("report file not deleted", zap.String("report_id", report.ID), zap.String("key", report.S3ObjectKey), zap.Error(err))
	}
	return mapNotFound(s.reports.Delete(ctx, userID, reportID))
}
