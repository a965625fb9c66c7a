package analytics

import (
	"math"
	"sort"

	"alcyxob/lifetrack/internal/domain"
)

// WorkoutStats summarises a set of exercises.
type WorkoutStats struct {
	TotalWorkouts  int            `json:"totalWorkouts"`
	TotalSets      int            `json:"totalSets"`
	TotalVolume    float64        `json:"totalVolume"`   // Σ weight × sets
	TotalDuration  float64        `json:"totalDuration"` // minutes
	CaloriesBurned float64        `json:"caloriesBurned"`
	ByCategory     map[string]int `json:"byCategory"`
}

// SummarizeWorkouts totals the given exercises.
func SummarizeWorkouts(exercises []domain.Exercise) WorkoutStats {
	s := WorkoutStats{ByCategory: map[string]int{}}
	for _, e := range exercises {
		s.TotalWorkouts++
		s.TotalSets += e.Sets
		if e.Weight != nil {
			s.TotalVolume += *e.Weight * float64(e.Sets)
		}
		if e.Duration != nil {
			s.TotalDuration += *e.Duration
		}
		s.CaloriesBurned += e.CaloriesBurned
		s.ByCategory[e.Category]++
	}
	s.TotalVolume = math.Round(s.TotalVolume)
	s.TotalDuration = math.Round(s.TotalDuration)
	return s
}

// ProductivityStats summarises a set of work sessions.
type ProductivityStats struct {
	TotalSessions  int                `json:"totalSessions"`
	TotalMinutes   float64            `json:"totalMinutes"`
	TotalHours     float64            `json:"totalHours"`
	AverageSession float64            `json:"averageSession"` // whole minutes
	FocusRate      int                `json:"focusRate"`      // % of sessions completed
	ByCategory     map[string]float64 `json:"byCategory"`     // minutes
	TopCategory    string             `json:"topCategory,omitempty"`
}

// SummarizeWork totals the given sessions.
func SummarizeWork(sessions []domain.WorkSession) ProductivityStats {
	s := ProductivityStats{ByCategory: map[string]float64{}}
	completed := 0
	for _, w := range sessions {
		s.TotalSessions++
		s.TotalMinutes += w.Duration
		s.ByCategory[w.Category] += w.Duration
		if w.Completed {
			completed++
		}
	}
	s.TotalHours = MinutesToHours(s.TotalMinutes)
	if s.TotalSessions > 0 {
		s.AverageSession = math.Round(s.TotalMinutes / float64(s.TotalSessions))
		s.FocusRate = int(math.Round(float64(completed) / float64(s.TotalSessions) * 100))
	}

	cats := make([]string, 0, len(s.ByCategory))
	for c := range s.ByCategory {
		cats = append(cats, c)
	}
	// Highest minutes first, ties by name so the result is stable.
	sort.Slice(cats, func(i, j int) bool {
		if s.ByCategory[cats[i]] != s.ByCategory[cats[j]] {
			return s.ByCategory[cats[i]] > s.ByCategory[cats[j]]
		}
		return cats[i] < cats[j]
	})
	if len(cats) > 0 {
		s.TopCategory = cats[0]
	}
	return s
}

// GoalProgress is a goal plus its derived display figures.
type GoalProgress struct {
	domain.Goal
	Percentage        float64 `json:"percentage"`
	DaysUntilDeadline int     `json:"daysUntilDeadline"`
	Overdue           bool    `json:"overdue"`
}

// GoalStats is the goals overview panel.
type GoalStats struct {
	Total          int                     `json:"total"`
	Completed      int                     `json:"completed"`
	Active         int                     `json:"active"`
	CompletionRate int                     `json:"completionRate"`
	Overdue        int                     `json:"overdue"`
	ByType         map[domain.Activity]int `json:"byType"`
	Goals          []GoalProgress          `json:"goals"`
}

// EvaluateGoal derives percentage and deadline figures for one goal.
// Overdue only applies to goals not yet achieved.
func EvaluateGoal(g domain.Goal, today string) GoalProgress {
	gp := GoalProgress{Goal: g, Percentage: ClampedPercentage(g.Current, g.Target)}
	if days, err := DaysUntil(today, g.Deadline); err == nil {
		gp.DaysUntilDeadline = days
		gp.Overdue = !g.Achieved && days < 0
	}
	return gp
}

// SummarizeGoals builds the overview for a goal list as of today.
func SummarizeGoals(goals []domain.Goal, today string) GoalStats {
	s := GoalStats{ByType: map[domain.Activity]int{}, Goals: make([]GoalProgress, 0, len(goals))}
	for _, g := range goals {
		gp := EvaluateGoal(g, today)
		s.Goals = append(s.Goals, gp)
		s.Total++
		s.ByType[g.Type]++
		if g.Achieved {
			s.Completed++
		}
		if gp.Overdue {
			s.Overdue++
		}
	}
	s.Active = s.Total - s.Completed
	if s.Total > 0 {
		s.CompletionRate = int(math.Round(float64(s.Completed) / float64(s.Total) * 100))
	}
	return s
}
