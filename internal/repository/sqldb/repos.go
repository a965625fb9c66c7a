package sqldb

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"alcyxob/lifetrack/internal/domain"
	"alcyxob/lifetrack/internal/repository"
)

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a user repository backed by gorm.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	if user.ID == "" || user.Email == "" || user.PasswordHash == "" {
		return errors.New("user id, email and password hash are required")
	}
	return translate(r.db.WithContext(ctx).Create(user).Error)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	if err := r.db.WithContext(ctx).Where(map[string]any{"email": email}).First(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	var u domain.User
	if err := r.db.WithContext(ctx).Where(map[string]any{"id": id}).First(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a profile repository backed by gorm.
func NewProfileRepository(db *gorm.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Get(ctx context.Context, userID string) (*domain.Profile, error) {
	var p domain.Profile
	if err := r.db.WithContext(ctx).Where(map[string]any{"user_id": userID}).First(&p).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (r *profileRepository) Upsert(ctx context.Context, profile *domain.Profile) error {
	if profile.UserID == "" {
		return errors.New("profile user id is required")
	}
	now := time.Now().UTC()
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now
	return translate(r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns(profileUpdateColumns),
		}).
		Create(profile).Error)
}

// created_at is left alone on conflict.
var profileUpdateColumns = []string{
	"username", "full_name", "age", "weight", "height",
	"goal_daily_calories", "goal_protein_target", "goal_carb_target", "goal_fat_target",
	"goal_workout_frequency", "goal_weekly_study_hours", "goal_work_hours", "goal_weight_target",
	"updated_at",
}

type goalRepository struct {
	db *gorm.DB
}

// NewGoalRepository creates a goal repository backed by gorm.
func NewGoalRepository(db *gorm.DB) repository.GoalRepository {
	return &goalRepository{db: db}
}

func (r *goalRepository) Create(ctx context.Context, goal *domain.Goal) error {
	if goal.ID == "" || goal.UserID == "" {
		return errors.New("goal id and user id are required")
	}
	return translate(r.db.WithContext(ctx).Create(goal).Error)
}

func (r *goalRepository) GetByID(ctx context.Context, userID, id string) (*domain.Goal, error) {
	var g domain.Goal
	if err := r.db.WithContext(ctx).Where(map[string]any{"id": id, "user_id": userID}).First(&g).Error; err != nil {
		return nil, translate(err)
	}
	return &g, nil
}

func (r *goalRepository) ListByUser(ctx context.Context, userID string) ([]domain.Goal, error) {
	goals := []domain.Goal{}
	err := r.db.WithContext(ctx).
		Where(map[string]any{"user_id": userID}).
		Order(clause.OrderBy{Columns: []clause.OrderByColumn{
			{Column: clause.Column{Name: "deadline"}},
			{Column: clause.Column{Name: "created_at"}, Desc: true},
		}}).
		Find(&goals).Error
	return goals, translate(err)
}

// Update reads, patches and saves the goal inside one transaction.
func (r *goalRepository) Update(ctx context.Context, userID, id string, patch domain.GoalPatch) (*domain.Goal, error) {
	var out domain.Goal
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var g domain.Goal
		if err := tx.Where(map[string]any{"id": id, "user_id": userID}).First(&g).Error; err != nil {
			return err
		}
		out = g.Apply(patch)
		return tx.Save(&out).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	return &out, nil
}

func (r *goalRepository) Delete(ctx context.Context, userID, id string) error {
	res := r.db.WithContext(ctx).Where(map[string]any{"id": id, "user_id": userID}).Delete(&domain.Goal{})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a report repository backed by gorm.
func NewReportRepository(db *gorm.DB) repository.ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(ctx context.Context, report *domain.Report) error {
	if report.ID == "" || report.UserID == "" || report.S3ObjectKey == "" {
		return errors.New("report requires id, userId and s3ObjectKey")
	}
	now := time.Now().UTC()
	report.UploadedAt = now
	report.UpdatedAt = now
	return translate(r.db.WithContext(ctx).Create(report).Error)
}

func (r *reportRepository) GetByID(ctx context.Context, userID, id string) (*domain.Report, error) {
	var rep domain.Report
	if err := r.db.WithContext(ctx).Where(map[string]any{"id": id, "user_id": userID}).First(&rep).Error; err != nil {
		return nil, translate(err)
	}
	return &rep, nil
}

func (r *reportRepository) SetAnalysis(ctx context.Context, id string, status domain.ReportStatus, analysis *domain.HealthAnalysis) error {
	return translate(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rep domain.Report
		if err := tx.Where(map[string]any{"id": id}).First(&rep).Error; err != nil {
			return err
		}
		rep.Status = status
		rep.Analysis = analysis
		return tx.Save(&rep).Error
	}))
}

func (r *reportRepository) Delete(ctx context.Context, userID, id string) error {
	res := r.db.WithContext(ctx).Where(map[string]any{"id": id, "user_id": userID}).Delete(&domain.Report{})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
