package repository

import (
	"context"
	"time"

	"alcyxob/lifetrack/internal/domain"
)

// Error constants for the repository layer. Both backends map their
// driver-specific "no rows" errors onto ErrNotFound.
var (
	ErrNotFound     = RepositoryError("not found")
	ErrDuplicate    = RepositoryError("duplicate key")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user accounts.
// IDs are assigned by the caller before Create.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

// ProfileRepository stores one profile per user, keyed by user ID.
type ProfileRepository interface {
	Get(ctx context.Context, userID string) (*domain.Profile, error)
	Upsert(ctx context.Context, profile *domain.Profile) error
}

// EntryRepository is the record store for one kind of daily entry.
// Every query is scoped to a single owner; date bounds are inclusive
// and compared as YYYY-MM-DD strings.
type EntryRepository[T domain.Entry] interface {
	Create(ctx context.Context, entry *T) error
	ListByDate(ctx context.Context, userID, date string) ([]T, error)
	ListByRange(ctx context.Context, userID, from, to string) ([]T, error)
	Delete(ctx context.Context, userID, id string) error
}

// FoodRepository stores food entries.
type FoodRepository = EntryRepository[domain.FoodEntry]

// ExerciseRepository stores exercise entries.
type ExerciseRepository = EntryRepository[domain.Exercise]

// WorkSessionRepository stores work sessions and can stop a running timer.
type WorkSessionRepository interface {
	EntryRepository[domain.WorkSession]
	GetByID(ctx context.Context, userID, id string) (*domain.WorkSession, error)
	// Finish stamps the end time and duration on a running session.
	// It returns ErrNotFound if the session is unknown or already finished.
	Finish(ctx context.Context, userID, id string, end time.Time, minutes float64, completed bool) error
}

// GoalRepository defines the interface for interacting with goals.
type GoalRepository interface {
	Create(ctx context.Context, goal *domain.Goal) error
	GetByID(ctx context.Context, userID, id string) (*domain.Goal, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Goal, error)
	// Update applies patch and returns the stored goal after the change.
	Update(ctx context.Context, userID, id string, patch domain.GoalPatch) (*domain.Goal, error)
	Delete(ctx context.Context, userID, id string) error
}

// ReportRepository defines the interface for medical report metadata.
type ReportRepository interface {
	Create(ctx context.Context, report *domain.Report) error
	GetByID(ctx context.Context, userID, id string) (*domain.Report, error)
	SetAnalysis(ctx context.Context, id string, status domain.ReportStatus, analysis *domain.HealthAnalysis) error
	Delete(ctx context.Context, userID, id string) error
}

// Store bundles every repository a backend provides, so main can pick
// mongo or SQL at startup and hand the same set to the services.
type Store struct {
	Users     UserRepository
	Profiles  ProfileRepository
	Foods     FoodRepository
	Exercises ExerciseRepository
	Work      WorkSessionRepository
	Goals     GoalRepository
	Reports   ReportRepository
	Close     func(ctx context.Context) error
}
