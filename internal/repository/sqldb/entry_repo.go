package sqldb

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"alcyxob/lifetrack/internal/domain"
	"alcyxob/lifetrack/internal/repository"
)

// entryRepository backs the food_entries, exercises and work_sessions tables.
type entryRepository[T domain.Entry] struct {
	db *gorm.DB
}

// NewFoodRepository creates the food entry repository.
func NewFoodRepository(db *gorm.DB) repository.FoodRepository {
	return &entryRepository[domain.FoodEntry]{db: db}
}

// NewExerciseRepository creates the exercise repository.
func NewExerciseRepository(db *gorm.DB) repository.ExerciseRepository {
	return &entryRepository[domain.Exercise]{db: db}
}

func (r *entryRepository[T]) Create(ctx context.Context, entry *T) error {
	return translate(r.db.WithContext(ctx).Create(entry).Error)
}

func (r *entryRepository[T]) ListByDate(ctx context.Context, userID, date string) ([]T, error) {
	return r.find(r.db.WithContext(ctx).Where(map[string]any{"user_id": userID, "date": date}))
}

func (r *entryRepository[T]) ListByRange(ctx context.Context, userID, from, to string) ([]T, error) {
	q := r.db.WithContext(ctx).
		Where(map[string]any{"user_id": userID}).
		Where(clause.Gte{Column: clause.Column{Name: "date"}, Value: from}).
		Where(clause.Lte{Column: clause.Column{Name: "date"}, Value: to})
	return r.find(q)
}

func (r *entryRepository[T]) Delete(ctx context.Context, userID, id string) error {
	res := r.db.WithContext(ctx).
		Where(map[string]any{"id": id, "user_id": userID}).
		Delete(new(T))
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *entryRepository[T]) find(q *gorm.DB) ([]T, error) {
	entries := []T{}
	err := q.Order(clause.OrderBy{Columns: []clause.OrderByColumn{
		{Column: clause.Column{Name: "date"}, Desc: true},
		{Column: clause.Column{Name: "created_at"}, Desc: true},
	}}).Find(&entries).Error
	return entries, translate(err)
}

type workSessionRepository struct {
	*entryRepository[domain.WorkSession]
}

// NewWorkSessionRepository creates the work session repository.
func NewWorkSessionRepository(db *gorm.DB) repository.WorkSessionRepository {
	return &workSessionRepository{entryRepository: &entryRepository[domain.WorkSession]{db: db}}
}

func (r *workSessionRepository) GetByID(ctx context.Context, userID, id string) (*domain.WorkSession, error) {
	var ws domain.WorkSession
	err := r.db.WithContext(ctx).Where(map[string]any{"id": id, "user_id": userID}).First(&ws).Error
	if err != nil {
		return nil, translate(err)
	}
	return &ws, nil
}

func (r *workSessionRepository) Finish(ctx context.Context, userID, id string, end time.Time, minutes float64, completed bool) error {
	res := r.db.WithContext(ctx).
		Model(&domain.WorkSession{}).
		Where(map[string]any{"id": id, "user_id": userID}).
		Where("end_time IS NULL").
		Updates(map[string]any{
			"end_time":  end,
			"duration":  minutes,
			"completed": completed,
		})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
