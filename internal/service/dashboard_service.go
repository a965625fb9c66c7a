package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"alcyxob/lifetrack/internal/analytics"
	"alcyxob/lifetrack/internal/domain"
	"alcyxob/lifetrack/internal/monitoring"
	"alcyxob/lifetrack/internal/repository"
)

const viewDashboard = "dashboard"

// Dashboard is everything the home screen renders for one date.
type Dashboard struct {
	Date           string                      `json:"date"`
	Today          analytics.DailyTotals       `json:"today"`
	Calories       analytics.Progress          `json:"calories"`
	Macros         analytics.MacroReport       `json:"macros"`
	Workouts       analytics.Progress          `json:"workouts"` // workout days in the last 7 vs weekly frequency
	WorkHours      analytics.Progress          `json:"workHours"`
	Streaks        domain.Streak               `json:"streaks"`
	LongestStreaks domain.Streak               `json:"longestStreaks"` // within the fetched window
	StreakCapped   bool                        `json:"streakCapped"`   // some streak spans the whole window and may run longer
	Week           []analytics.DailyTotals     `json:"week"`
	ActiveGoals    int                         `json:"activeGoals"`
	GoalStats      analytics.GoalStats         `json:"goalStats"`
	WorkoutStats   analytics.WorkoutStats      `json:"workoutStats"`
	Productivity   analytics.ProductivityStats `json:"productivity"`
	Goals          domain.GoalSet              `json:"goals"`

	ProfileDefaulted bool     `json:"profileDefaulted"`
	Degraded         []string `json:"degraded"`
}

// DashboardSettings are the window sizes used by Load.
type DashboardSettings struct {
	StreakWindowDays int
	ChartDays        int
}

// --- Service Interface ---

// DashboardService aggregates one day of records for the home screen.
type DashboardService interface {
	// Load builds the dashboard for date (today when empty). It returns
	// ErrAllSourcesFailed together with a zeroed dashboard when none of
	// the entry stores could be read.
	Load(ctx context.Context, userID, date string) (*Dashboard, error)
}

// --- Service Implementation ---
type dashboardService struct {
	store    *repository.Store
	settings DashboardSettings
	timeout  *FetchTimeout
	log      *zap.Logger
	now      func() time.Time
}

// NewDashboardService creates a new instance of dashboardService.
func NewDashboardService(store *repository.Store, settings DashboardSettings, timeout *FetchTimeout, log *zap.Logger) DashboardService {
	if settings.StreakWindowDays <= 0 {
		settings.StreakWindowDays = 90
	}
	if settings.ChartDays <= 0 {
		settings.ChartDays = 7
	}
	// The chart and weekly workout count read from the same fetch.
	settings.StreakWindowDays = max(settings.StreakWindowDays, settings.ChartDays, weekDays)
	return &dashboardService{store: store, settings: settings, timeout: timeout, log: log, now: time.Now}
}

const weekDays = 7

// Load fetches every source concurrently and builds the dashboard for date,
// or today when date is empty.
func (s *dashboardService) Load(ctx context.Context, userID, date string) (*Dashboard, error) {
	start := time.Now()
	defer func() {
		monitoring.AggregationDuration.WithLabelValues(viewDashboard).Observe(time.Since(start).Seconds())
	}()

	if date == "" {
		date = analytics.DateKey(s.now())
	} else if _, err := analytics.ParseDate(date); err != nil {
		return nil, validationError(err.Error())
	}
	from := analytics.AddDays(date, -(s.settings.StreakWindowDays - 1))

	var (
		profile   *domain.Profile
		foods     []domain.FoodEntry
		exercises []domain.Exercise
		sessions  []domain.WorkSession
		goals     []domain.Goal
	)

	f := newFanout(viewDashboard, userID, s.timeout.Get(), s.log)
	fetchInto(ctx, f, sourceProfile, &profile, func(ctx context.Context) (*domain.Profile, error) {
		p, err := s.store.Profiles.Get(ctx, userID)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return p, err
	})
	fetchInto(ctx, f, sourceFood, &foods, func(ctx context.Context) ([]domain.FoodEntry, error) {
		return s.store.Foods.ListByRange(ctx, userID, from, date)
	})
	fetchInto(ctx, f, sourceExercises, &exercises, func(ctx context.Context) ([]domain.Exercise, error) {
		return s.store.Exercises.ListByRange(ctx, userID, from, date)
	})
	fetchInto(ctx, f, sourceWork, &sessions, func(ctx context.Context) ([]domain.WorkSession, error) {
		return s.store.Work.ListByRange(ctx, userID, from, date)
	})
	fetchInto(ctx, f, sourceGoals, &goals, func(ctx context.Context) ([]domain.Goal, error) {
		return s.store.Goals.ListByUser(ctx, userID)
	})
	f.wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	d := buildDashboard(date, s.settings, profile, foods, exercises, sessions, goals)
	d.Degraded = f.degraded()
	if profile != nil {
		s.logInvalidTargets(userID, profile.Goals)
	}

	if f.allFailed(sourceFood, sourceExercises, sourceWork) {
		s.log.Error("every entry source failed", zap.String("view", viewDashboard), zap.String("user_id", userID))
		return d, ErrAllSourcesFailed
	}
	return d, nil
}

func (s *dashboardService) logInvalidTargets(userID string, g domain.GoalSet) {
	for name, v := range map[string]float64{
		"dailyCalories":    g.DailyCalories,
		"proteinTarget":    g.ProteinTarget,
		"carbTarget":       g.CarbTarget,
		"fatTarget":        g.FatTarget,
		"workoutFrequency": g.WorkoutFrequency,
		"workHours":        g.WorkHours,
	} {
		if _, err := analytics.NormalizeTarget(v, 1); err != nil {
			s.log.Debug("default target substituted", zap.String("user_id", userID), zap.String("target", name), zap.Float64("value", v))
		}
	}
}

// buildDashboard is the pure part of Load. A nil profile means the
// signup defaults apply.
func buildDashboard(date string, settings DashboardSettings, profile *domain.Profile,
	foods []domain.FoodEntry, exercises []domain.Exercise, sessions []domain.WorkSession, goals []domain.Goal) *Dashboard {

	d := &Dashboard{Date: date, Goals: domain.DefaultGoalSet(), ProfileDefaulted: profile == nil}
	if profile != nil {
		d.Goals = profile.Goals
	}
	def := domain.DefaultGoalSet()
	target := func(v, fallback float64) float64 {
		t, _ := analytics.NormalizeTarget(v, fallback)
		return t
	}

	d.Today = analytics.AggregateDay(date, foods, exercises, sessions)
	d.Macros = analytics.EvaluateMacros(d.Today.NutritionTotals, d.Goals)
	d.Calories = d.Macros.Calories
	d.WorkHours = analytics.Evaluate(d.Today.WorkHours, target(d.Goals.WorkHours, def.WorkHours))

	window := analytics.IndexDays(
		analytics.LastNDays(date, settings.StreakWindowDays),
		analytics.Dates(foods), analytics.Dates(exercises), analytics.Dates(sessions),
	)
	history := analytics.History(window)
	d.Streaks = analytics.Streaks(history, date)
	d.LongestStreaks = analytics.LongestStreaks(history)
	l := d.LongestStreaks
	d.StreakCapped = max(l.Diet, l.Workout, l.Work) >= settings.StreakWindowDays

	workoutDays := 0
	for _, day := range analytics.LastNDays(date, weekDays) {
		if window[day].WorkoutLogged {
			workoutDays++
		}
	}
	d.Workouts = analytics.Evaluate(float64(workoutDays), target(d.Goals.WorkoutFrequency, def.WorkoutFrequency))

	d.Week = analytics.AggregateDays(analytics.LastNDays(date, settings.ChartDays), foods, exercises, sessions)

	d.GoalStats = analytics.SummarizeGoals(goals, date)
	d.ActiveGoals = d.GoalStats.Active
	d.WorkoutStats = analytics.SummarizeWorkouts(analytics.OnDate(exercises, date))
	d.Productivity = analytics.SummarizeWork(analytics.OnDate(sessions, date))
	return d
}
