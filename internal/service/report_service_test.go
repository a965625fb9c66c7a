package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"alcyxob/lifetrack/internal/domain"
	"alcyxob/lifetrack/internal/enrichment"
)

type failingAnalyzer struct{}

func (failingAnalyzer) Analyze(context.Context, enrichment.ReportInput) (*domain.HealthAnalysis, error) {
	return nil, enrichment.ErrAnalyzerUnavailable
}

func newTestReports(m *memStore, files *memFiles, analyzer enrichment.ReportAnalyzer) ReportService {
	return NewReportService(m.reports, files, analyzer, NewProfileService(m.profiles), time.Minute, zap.NewNop())
}

func TestReportFlow(t *testing.T) {
	m := newMemStore()
	files := &memFiles{}
	svc := newTestReports(m, files, enrichment.MockAnalyzer{})
	ctx := context.Background()

	up, err := svc.RequestUpload(ctx, "u1", "application/pdf")
	if err != nil {
		t.Fatalf("RequestUpload: %v", err)
	}
	if up.Report.Status != domain.ReportPending || up.Upload.ObjectKey != "reports/u1/"+up.Report.ID+".pdf" {
		t.Errorf("upload = %+v %+v", up.Report, up.Upload)
	}

	if _, err := svc.Analyze(ctx, "u1", up.Report.ID); !errors.Is(err, ErrReportNotUploaded) {
		t.Errorf("analyze before upload err = %v", err)
	}
	if _, err := svc.PersonalizePlan(ctx, "u1", up.Report.ID, nil, false); !errors.Is(err, ErrReportNotAnalyzed) {
		t.Errorf("plan before analysis err = %v", err)
	}

	files.markUploaded(up.Upload.ObjectKey)
	r, err := svc.Analyze(ctx, "u1", up.Report.ID)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if r.Status != domain.ReportAnalyzed || r.Analysis == nil || len(r.Analysis.Conditions) != 3 {
		t.Errorf("report = %+v", r)
	}

	plan, err := svc.PersonalizePlan(ctx, "u1", up.Report.ID, map[string]string{
		enrichment.QuestionActivityLevel: enrichment.AnswerSedentary,
	}, true)
	if err != nil {
		t.Fatalf("PersonalizePlan: %v", err)
	}
	if !plan.Applied || plan.Recommendations.CalorieLimit != 1600 {
		t.Errorf("plan = %+v", plan)
	}
	if got := m.profiles.byID["u1"].Goals.DailyCalories; got != 1600 {
		t.Errorf("profile dailyCalories = %v, want 1600", got)
	}

	if _, err := svc.Analyze(ctx, "u2", up.Report.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("foreign analyze err = %v", err)
	}
}

func TestReportAnalysisFailureIsRecorded(t *testing.T) {
	m := newMemStore()
	files := &memFiles{}
	svc := newTestReports(m, files, failingAnalyzer{})
	ctx := context.Background()

	up, err := svc.RequestUpload(ctx, "u1", "image/png")
	if err != nil {
		t.Fatalf("RequestUpload: %v", err)
	}
	files.markUploaded(up.Upload.ObjectKey)

	if _, err := svc.Analyze(ctx, "u1", up.Report.ID); !errors.Is(err, ErrAnalysisFailed) {
		t.Fatalf("err = %v, want ErrAnalysisFailed", err)
	}
	if got := m.reports.byID[up.Report.ID].Status; got != domain.ReportFailed {
		t.Errorf("status = %s, want failed", got)
	}

	if _, err := svc.RequestUpload(ctx, "u1", "text/html"); !errors.Is(err, ErrValidationFailed) {
		t.Errorf("bad content type err = %v", err)
	}
}

func TestNutritionLookup(t *testing.T) {
	svc := NewNutritionService(enrichment.MockNutritionProvider{})
	facts, err := svc.Lookup(context.Background(), "banana")
	if err != nil || len(facts) != 1 || facts[0].Calories != 105 {
		t.Errorf("Lookup = %+v, %v", facts, err)
	}
	if _, err := svc.Lookup(context.Background(), " "); !errors.Is(err, ErrValidationFailed) {
		t.Errorf("empty query err = %v", err)
	}
}

func TestReportDeleteRemovesFile(t *testing.T) {
	m := newMemStore()
	files := &memFiles{}
	svc := newTestReports(m, files, enrichment.MockAnalyzer{})
	ctx := context.Background()

	up, err := svc.RequestUpload(ctx, "u1", "application/pdf")
	if err != nil {
		t.Fatalf("RequestUpload: %v", err)
	}
	files.markUploaded(up.Upload.ObjectKey)

	if err := svc.Delete(ctx, "u2", up.Report.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("foreign delete err = %v", err)
	}
	if err := svc.Delete(ctx, "u1", up.Report.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if ok, _ := files.ObjectExists(ctx, up.Upload.ObjectKey); ok {
		t.Error("report file still stored")
	}
	if _, err := svc.Get(ctx, "u1", up.Report.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after delete err = %v", err)
	}
}
