package analytics

import (
	"testing"

	"alcyxob/lifetrack/internal/domain"
)

func ptr(v float64) *float64 { return &v }

func TestEstimateCaloriesBurned(t *testing.T) {
	tests := []struct {
		name string
		ex   domain.Exercise
		kg   float64
		want float64
	}{
		{"cardio 30 min", domain.Exercise{Category: "cardio", Duration: ptr(30)}, 70, 280},
		{"strength by sets", domain.Exercise{Category: "Strength", Sets: 3}, 80, 40},
		{"unknown category", domain.Exercise{Category: "parkour", Duration: ptr(60)}, 50, 200},
		{"default weight", domain.Exercise{Category: "flexibility", Duration: ptr(60)}, 0, 175},
		{"nothing logged", domain.Exercise{Category: "cardio"}, 70, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EstimateCaloriesBurned(tt.ex, tt.kg); got != tt.want {
				t.Errorf("EstimateCaloriesBurned = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSummarizeWorkouts(t *testing.T) {
	s := SummarizeWorkouts([]domain.Exercise{
		{Category: "strength", Sets: 3, Weight: ptr(60), CaloriesBurned: 40},
		{Category: "strength", Sets: 4, Weight: ptr(20.5), CaloriesBurned: 50},
		{Category: "cardio", Duration: ptr(25.4), CaloriesBurned: 237},
	})
	if s.TotalWorkouts != 3 || s.TotalSets != 7 {
		t.Errorf("counts = %+v", s)
	}
	if s.TotalVolume != 262 {
		t.Errorf("TotalVolume = %v, want 262", s.TotalVolume)
	}
	if s.TotalDuration != 25 {
		t.Errorf("TotalDuration = %v, want 25", s.TotalDuration)
	}
	if s.CaloriesBurned != 327 {
		t.Errorf("CaloriesBurned = %v, want 327", s.CaloriesBurned)
	}
	if s.ByCategory["strength"] != 2 || s.ByCategory["cardio"] != 1 {
		t.Errorf("ByCategory = %v", s.ByCategory)
	}
}

func TestSummarizeWork(t *testing.T) {
	s := SummarizeWork([]domain.WorkSession{
		{Category: "study", Duration: 50, Completed: true},
		{Category: "coding", Duration: 90, Completed: true},
		{Category: "study", Duration: 40},
	})
	if s.TotalSessions != 3 || s.TotalMinutes != 180 || s.TotalHours != 3 {
		t.Errorf("totals = %+v", s)
	}
	if s.AverageSession != 60 {
		t.Errorf("AverageSession = %v, want 60", s.AverageSession)
	}
	if s.FocusRate != 67 {
		t.Errorf("FocusRate = %d, want 67", s.FocusRate)
	}
	// study and coding tie at 90 minutes; name order breaks it.
	if s.TopCategory != "coding" {
		t.Errorf("TopCategory = %q, want coding", s.TopCategory)
	}

	empty := SummarizeWork(nil)
	if empty.TotalSessions != 0 || empty.FocusRate != 0 || empty.TopCategory != "" {
		t.Errorf("empty = %+v", empty)
	}
}

func TestSummarizeGoals(t *testing.T) {
	goals := []domain.Goal{
		{Type: domain.ActivityDiet, Target: 10, Current: 5, Deadline: "2024-01-20"},
		{Type: domain.ActivityWorkout, Target: 10, Current: 15, Deadline: "2024-01-01", Achieved: true},
		{Type: domain.ActivityWork, Target: 40, Current: 10, Deadline: "2024-01-05"},
	}
	s := SummarizeGoals(goals, "2024-01-10")

	if s.Total != 3 || s.Completed != 1 || s.Active != 2 {
		t.Errorf("counts = %+v", s)
	}
	if s.CompletionRate != 33 {
		t.Errorf("CompletionRate = %d, want 33", s.CompletionRate)
	}
	// The achieved goal is past its deadline but not overdue.
	if s.Overdue != 1 {
		t.Errorf("Overdue = %d, want 1", s.Overdue)
	}
	if s.Goals[0].Percentage != 50 || s.Goals[0].DaysUntilDeadline != 10 {
		t.Errorf("goal 0 = %+v", s.Goals[0])
	}
	if s.Goals[1].Percentage != 100 {
		t.Errorf("goal 1 percentage = %v, want clamped 100", s.Goals[1].Percentage)
	}
	if s.ByType[domain.ActivityWork] != 1 {
		t.Errorf("ByType = %v", s.ByType)
	}
}

func TestOnDateAndDates(t *testing.T) {
	foods := []domain.FoodEntry{{Date: "2024-01-01"}, {Date: "2024-01-02"}, {Date: "2024-01-01"}}
	if got := len(OnDate(foods, "2024-01-01")); got != 2 {
		t.Errorf("OnDate = %d entries, want 2", got)
	}
	dates := Dates(foods)
	if len(dates) != 3 || dates[1] != "2024-01-02" {
		t.Errorf("Dates = %v", dates)
	}
}

func TestDateHelpers(t *testing.T) {
	if got := AddDays("2024-03-01", -1); got != "2024-02-29" {
		t.Errorf("AddDays = %s", got)
	}
	if got := AddDays("bad", 3); got != "bad" {
		t.Errorf("AddDays(bad) = %s", got)
	}
	from, to := MonthRange(2023, 12)
	if from != "2023-12-01" || to != "2023-12-31" {
		t.Errorf("MonthRange = %s..%s", from, to)
	}
	if _, err := ParseDate("2024-13-01"); err == nil {
		t.Error("ParseDate accepted month 13")
	}
	if got := LastNDays("2024-01-02", 3); got[0] != "2023-12-31" || got[2] != "2024-01-02" {
		t.Errorf("LastNDays = %v", got)
	}
}
