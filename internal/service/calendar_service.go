package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"alcyxob/lifetrack/internal/analytics"
	"alcyxob/lifetrack/internal/domain"
	"alcyxob/lifetrack/internal/monitoring"
	"alcyxob/lifetrack/internal/repository"
)

const viewCalendar = "calendar"

// MonthCounts summarises a month of DayStatus values.
type MonthCounts struct {
	DietDays     int `json:"dietDays"`
	WorkoutDays  int `json:"workoutDays"`
	WorkDays     int `json:"workDays"`
	ActiveDays   int `json:"activeDays"` // at least one entry of any type
	TotalEntries int `json:"totalEntries"`
}

// CalendarMonth is the month view: one status per day plus the 42-cell grid.
type CalendarMonth struct {
	Year     int                         `json:"year"`
	Month    int                         `json:"month"`
	Days     map[string]domain.DayStatus `json:"days"`
	Grid     []analytics.GridCell        `json:"grid"`
	Counts   MonthCounts                 `json:"counts"`
	Degraded []string                    `json:"degraded"`
}

// --- Service Interface ---

// CalendarService builds the per-day status grid for one month.
type CalendarService interface {
	// Month returns ErrAllSourcesFailed with an all-empty month when no
	// entry store could be read.
	Month(ctx context.Context, userID string, year, month int) (*CalendarMonth, error)
}

// --- Service Implementation ---
type calendarService struct {
	store   *repository.Store
	timeout *FetchTimeout
	log     *zap.Logger
}

// NewCalendarService creates a new instance of calendarService.
func NewCalendarService(store *repository.Store, timeout *FetchTimeout, log *zap.Logger) CalendarService {
	return &calendarService{store: store, timeout: timeout, log: log}
}

// Month reads the month once per source and marks each day.
func (s *calendarService) Month(ctx context.Context, userID string, year, month int) (*CalendarMonth, error) {
	if month < 1 || month > 12 {
		return nil, validationErrorf("month must be between 1 and 12, got %d", month)
	}
	if year < 1 || year > 9999 {
		return nil, validationErrorf("year out of range: %d", year)
	}
	start := time.Now()
	defer func() {
		monitoring.AggregationDuration.WithLabelValues(viewCalendar).Observe(time.Since(start).Seconds())
	}()

	m := time.Month(month)
	from, to := analytics.MonthRange(year, m)

	var (
		foods     []domain.FoodEntry
		exercises []domain.Exercise
		sessions  []domain.WorkSession
	)
	f := newFanout(viewCalendar, userID, s.timeout.Get(), s.log)
	fetchInto(ctx, f, sourceFood, &foods, func(ctx context.Context) ([]domain.FoodEntry, error) {
		return s.store.Foods.ListByRange(ctx, userID, from, to)
	})
	fetchInto(ctx, f, sourceExercises, &exercises, func(ctx context.Context) ([]domain.Exercise, error) {
		return s.store.Exercises.ListByRange(ctx, userID, from, to)
	})
	fetchInto(ctx, f, sourceWork, &sessions, func(ctx context.Context) ([]domain.WorkSession, error) {
		return s.store.Work.ListByRange(ctx, userID, from, to)
	})
	f.wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	days := analytics.IndexMonth(year, m, analytics.Dates(foods), analytics.Dates(exercises), analytics.Dates(sessions))
	cal := &CalendarMonth{
		Year:     year,
		Month:    month,
		Days:     days,
		Grid:     analytics.MonthGrid(year, m),
		Counts:   countMonth(days),
		Degraded: f.degraded(),
	}
	if f.allFailed(sourceFood, sourceExercises, sourceWork) {
		s.log.Error("every entry source failed", zap.String("view", viewCalendar), zap.String("user_id", userID))
		return cal, ErrAllSourcesFailed
	}
	return cal, nil
}

// countMonth tallies logged days per activity.
func countMonth(days map[string]domain.DayStatus) MonthCounts {
	var c MonthCounts
	for _, d := range days {
		if d.DietLogged {
			c.DietDays++
		}
		if d.WorkoutLogged {
			c.WorkoutDays++
		}
		if d.WorkLogged {
			c.WorkDays++
		}
		if d.TotalEntries > 0 {
			c.ActiveDays++
		}
		c.TotalEntries += d.TotalEntries
	}
	return c
}
