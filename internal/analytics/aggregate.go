package analytics

import (
	"math"

	"alcyxob/lifetrack/internal/domain"
)

// NutritionTotals is the sum of food entry fields for one day.
type NutritionTotals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// DailyTotals is the per-day projection the dashboard and weekly chart render.
type DailyTotals struct {
	Date string `json:"date"`
	NutritionTotals
	Workouts    int     `json:"workouts"`
	WorkMinutes float64 `json:"workMinutes"`
	WorkHours   float64 `json:"workHours"`
}

// SumNutrition totals the food entries stamped with date.
func SumNutrition(entries []domain.FoodEntry, date string) NutritionTotals {
	var t NutritionTotals
	for _, e := range entries {
		if e.Date != date {
			continue
		}
		t.Calories += e.Calories
		t.Protein += e.Protein
		t.Carbs += e.Carbs
		t.Fat += e.Fat
	}
	return t
}

// CountWorkouts counts the exercises stamped with date.
func CountWorkouts(exercises []domain.Exercise, date string) int {
	n := 0
	for _, e := range exercises {
		if e.Date == date {
			n++
		}
	}
	return n
}

// SumWorkMinutes totals session durations stamped with date.
func SumWorkMinutes(sessions []domain.WorkSession, date string) float64 {
	var m float64
	for _, s := range sessions {
		if s.Date == date {
			m += s.Duration
		}
	}
	return m
}

// MinutesToHours converts minutes to hours rounded to one decimal place.
func MinutesToHours(minutes float64) float64 {
	return RoundTo(minutes/60, 1)
}

// RoundTo rounds v to the given number of decimal places, halves away from zero.
func RoundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// AggregateDay builds the totals for one date from the raw entry lists.
// The lists may span several days; only entries on date are counted.
func AggregateDay(date string, foods []domain.FoodEntry, exercises []domain.Exercise, sessions []domain.WorkSession) DailyTotals {
	minutes := SumWorkMinutes(sessions, date)
	return DailyTotals{
		Date:            date,
		NutritionTotals: SumNutrition(foods, date),
		Workouts:        CountWorkouts(exercises, date),
		WorkMinutes:     minutes,
		WorkHours:       MinutesToHours(minutes),
	}
}

// AggregateDays builds DailyTotals for each of days, preserving order.
func AggregateDays(days []string, foods []domain.FoodEntry, exercises []domain.Exercise, sessions []domain.WorkSession) []DailyTotals {
	out := make([]DailyTotals, len(days))
	for i, d := range days {
		out[i] = AggregateDay(d, foods, exercises, sessions)
	}
	return out
}
