package service

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"alcyxob/lifetrack/internal/analytics"
	"alcyxob/lifetrack/internal/domain"
	"alcyxob/lifetrack/internal/repository"
	"alcyxob/lifetrack/internal/storage"
)

// ErrSessionNotRunning is returned when finishing a session whose timer already stopped.
var ErrSessionNotRunning = errors.New("work session is not running")

// DateQuery selects entries by a single Date or an inclusive From..To range.
// An empty query means today.
type DateQuery struct {
	Date string
	From string
	To   string
}

// --- Service Interface ---

// EntryService records and lists food, exercise and work entries.
type EntryService interface {
	CreateFood(ctx context.Context, userID string, in domain.FoodEntry) (*domain.FoodEntry, error)
	ListFood(ctx context.Context, userID string, q DateQuery) ([]domain.FoodEntry, error)
	DeleteFood(ctx context.Context, userID, id string) error

	CreateExercise(ctx context.Context, userID string, in domain.Exercise) (*domain.Exercise, error)
	ListExercises(ctx context.Context, userID string, q DateQuery) ([]domain.Exercise, error)
	DeleteExercise(ctx context.Context, userID, id string) error

	CreateWorkSession(ctx context.Context, userID string, in domain.WorkSession) (*domain.WorkSession, error)
	StartWorkSession(ctx context.Context, userID, task, category string) (*domain.WorkSession, error)
	FinishWorkSession(ctx context.Context, userID, id string, completed bool) (*domain.WorkSession, error)
	ListWorkSessions(ctx context.Context, userID string, q DateQuery) ([]domain.WorkSession, error)
	DeleteWorkSession(ctx context.Context, userID, id string) error

	RequestPhotoUpload(ctx context.Context, userID string, entryType domain.EntryType, contentType string) (*domain.UploadTicket, error)
}

// --- Service Implementation ---
type entryService struct {
	foods       repository.FoodRepository
	exercises   repository.ExerciseRepository
	work        repository.WorkSessionRepository
	profileRepo repository.ProfileRepository
	files       storage.FileStorage
	presignTTL  time.Duration
	log         *zap.Logger
	now         func() time.Time
}

// NewEntryService creates a new instance of entryService.
func NewEntryService(store *repository.Store, files storage.FileStorage, presignTTL time.Duration, log *zap.Logger) EntryService {
	if presignTTL <= 0 {
		presignTTL = storage.DefaultPresignedURLExpiry
	}
	return &entryService{
		foods:       store.Foods,
		exercises:   store.Exercises,
		work:        store.Work,
		profileRepo: store.Profiles,
		files:       files,
		presignTTL:  presignTTL,
		log:         log,
		now:         time.Now,
	}
}

// --- Food ---

// CreateFood validates and stores a food entry for userID.
func (s *entryService) CreateFood(ctx context.Context, userID string, in domain.FoodEntry) (*domain.FoodEntry, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, validationError("name is required")
	}
	if in.Calories < 0 || in.Protein < 0 || in.Carbs < 0 || in.Fat < 0 || in.Quantity < 0 {
		return nil, validationError("nutrition values must not be negative")
	}
	if in.MealType == "" {
		in.MealType = domain.MealSnack
	}
	if !in.MealType.Valid() {
		return nil, validationErrorf("unknown meal type %q", in.MealType)
	}
	date, err := s.entryDate(in.Date)
	if err != nil {
		return nil, err
	}
	if err := checkPhotoKey(userID, in.PhotoURL); err != nil {
		return nil, err
	}

	in.ID = uuid.NewString()
	in.UserID = userID
	in.Date = date
	in.CreatedAt = s.now().UTC()
	if err := s.foods.Create(ctx, &in); err != nil {
		return nil, err
	}
	return &in, nil
}

func (s *entryService) ListFood(ctx context.Context, userID string, q DateQuery) ([]domain.FoodEntry, error) {
	return listEntries(ctx, s, s.foods, userID, q)
}

func (s *entryService) DeleteFood(ctx context.Context, userID, id string) error {
	return mapNotFound(s.foods.Delete(ctx, userID, id))
}

// --- Exercise ---

// CreateExercise validates and stores an exercise for userID.
func (s *entryService) CreateExercise(ctx context.Context, userID string, in domain.Exercise) (*domain.Exercise, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, validationError("name is required")
	}
	if in.Sets < 0 || in.Reps < 0 {
		return nil, validationError("sets and reps must not be negative")
	}
	if (in.Weight != nil && *in.Weight < 0) || (in.Duration != nil && *in.Duration < 0) {
		return nil, validationError("weight and duration must not be negative")
	}
	in.Category = strings.ToLower(strings.TrimSpace(in.Category))
	if in.Category == "" {
		in.Category = "other"
	}
	date, err := s.entryDate(in.Date)
	if err != nil {
		return nil, err
	}
	if err := checkPhotoKey(userID, in.PhotoURL); err != nil {
		return nil, err
	}

	in.ID = uuid.NewString()
	in.UserID = userID
	in.Date = date
	in.CreatedAt = s.now().UTC()
	in.CaloriesBurned = analytics.EstimateCaloriesBurned(in, s.bodyWeight(ctx, userID))
	if err := s.exercises.Create(ctx, &in); err != nil {
		return nil, err
	}
	return &in, nil
}

// bodyWeight reads the profile weight for the burn estimate. A missing or
// unreadable profile yields 0, which the estimator replaces with its default.
func (s *entryService) bodyWeight(ctx context.Context, userID string) float64 {
	p, err := s.profileRepo.Get(ctx, userID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.log.Warn("profile read failed, using default body weight",
				zap.String("user_id", userID), zap.Error(err))
		}
		return 0
	}
	return p.Weight
}

func (s *entryService) ListExercises(ctx context.Context, userID string, q DateQuery) ([]domain.Exercise, error) {
	return listEntries(ctx, s, s.exercises, userID, q)
}

func (s *entryService) DeleteExercise(ctx context.Context, userID, id string) error {
	return mapNotFound(s.exercises.Delete(ctx, userID, id))
}

// --- Work sessions ---

// CreateWorkSession logs a session after the fact. The end time is derived
// from the start and duration when not given.
func (s *entryService) CreateWorkSession(ctx context.Context, userID string, in domain.WorkSession) (*domain.WorkSession, error) {
	in.Task = strings.TrimSpace(in.Task)
	if in.Task == "" {
		return nil, validationError("task is required")
	}
	if in.Duration < 0 {
		return nil, validationError("duration must not be negative")
	}
	date, err := s.entryDate(in.Date)
	if err != nil {
		return nil, err
	}
	if err := checkPhotoKey(userID, in.PhotoURL); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	if in.StartTime.IsZero() {
		in.StartTime = now.Add(-time.Duration(in.Duration * float64(time.Minute)))
	}
	if in.EndTime == nil {
		end := in.StartTime.Add(time.Duration(in.Duration * float64(time.Minute)))
		in.EndTime = &end
	}
	in.ID = uuid.NewString()
	in.UserID = userID
	in.Date = date
	in.CreatedAt = now
	if err := s.work.Create(ctx, &in); err != nil {
		return nil, err
	}
	return &in, nil
}

// StartWorkSession opens a running timer stamped with today's date.
func (s *entryService) StartWorkSession(ctx context.Context, userID, task, category string) (*domain.WorkSession, error) {
	task = strings.TrimSpace(task)
	if task == "" {
		return nil, validationError("task is required")
	}
	now := s.now().UTC()
	ws := &domain.WorkSession{
		ID:        uuid.NewString(),
		UserID:    userID,
		Task:      task,
		Category:  strings.TrimSpace(category),
		Date:      analytics.DateKey(now),
		StartTime: now,
		CreatedAt: now,
	}
	if err := s.work.Create(ctx, ws); err != nil {
		return nil, err
	}
	return ws, nil
}

// FinishWorkSession stops a running timer. Duration is the whole minutes
// elapsed since the start, never negative.
func (s *entryService) FinishWorkSession(ctx context.Context, userID, id string, completed bool) (*domain.WorkSession, error) {
	ws, err := s.work.GetByID(ctx, userID, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	if !ws.Running() {
		return nil, ErrSessionNotRunning
	}

	end := s.now().UTC()
	minutes := math.Max(math.Floor(end.Sub(ws.StartTime).Minutes()), 0)
	if err := s.work.Finish(ctx, userID, id, end, minutes, completed); err != nil {
		// Another request stopped it between the read and the write.
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionNotRunning
		}
		return nil, err
	}
	ws.EndTime = &end
	ws.Duration = minutes
	ws.Completed = completed
	return ws, nil
}

func (s *entryService) ListWorkSessions(ctx context.Context, userID string, q DateQuery) ([]domain.WorkSession, error) {
	return listEntries[domain.WorkSession](ctx, s, s.work, userID, q)
}

func (s *entryService) DeleteWorkSession(ctx context.Context, userID, id string) error {
	return mapNotFound(s.work.Delete(ctx, userID, id))
}

// --- Photos ---

// RequestPhotoUpload issues a presigned PUT for an entry photo. The returned
// object key is what the client stores in the entry's photoUrl.
func (s *entryService) RequestPhotoUpload(ctx context.Context, userID string, entryType domain.EntryType, contentType string) (*domain.UploadTicket, error) {
	switch entryType {
	case domain.EntryFood, domain.EntryExercise, domain.EntryWork:
	default:
		return nil, validationErrorf("unknown entry type %q", entryType)
	}
	key, err := storage.PhotoKey(userID, string(entryType), uuid.NewString(), contentType)
	if err != nil {
		return nil, validationError(err.Error())
	}
	url, err := s.files.GeneratePresignedUploadURL(ctx, key, contentType, s.presignTTL)
	if err != nil {
		return nil, err
	}
	return &domain.UploadTicket{UploadURL: url, ObjectKey: key, ExpiresAt: s.now().UTC().Add(s.presignTTL)}, nil
}

// --- helpers ---

// entryDate defaults an empty date to today and validates the rest.
func (s *entryService) entryDate(date string) (string, error) {
	if date == "" {
		return analytics.DateKey(s.now()), nil
	}
	if _, err := analytics.ParseDate(date); err != nil {
		return "", validationError(err.Error())
	}
	return date, nil
}

func listEntries[T domain.Entry](ctx context.Context, s *entryService, repo repository.EntryRepository[T], userID string, q DateQuery) ([]T, error) {
	if q.From != "" || q.To != "" {
		if q.From == "" || q.To == "" {
			return nil, validationError("from and to must be given together")
		}
		if _, err := analytics.ParseDate(q.From); err != nil {
			return nil, validationError(err.Error())
		}
		if _, err := analytics.ParseDate(q.To); err != nil {
			return nil, validationError(err.Error())
		}
		if q.From > q.To {
			return nil, validationError("from must not be after to")
		}
		return repo.ListByRange(ctx, userID, q.From, q.To)
	}
	date, err := s.entryDate(q.Date)
	if err != nil {
		return nil, err
	}
	return repo.ListByDate(ctx, userID, date)
}

// checkPhotoKey only accepts keys issued to this user by RequestPhotoUpload.
func checkPhotoKey(userID, key string) error {
	if key == "" || strings.HasPrefix(key, "photos/"+userID+"/") {
		return nil
	}
	return validationError("photoUrl must be an object key issued for this user")
}

func mapNotFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
