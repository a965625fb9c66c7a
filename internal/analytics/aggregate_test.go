package analytics

import (
	"testing"

	"alcyxob/lifetrack/internal/domain"
)

func TestSumNutritionFiltersByDate(t *testing.T) {
	entries := []domain.FoodEntry{
		{Calories: 450, Protein: 30, Carbs: 40, Fat: 12, Date: "2024-01-07"},
		{Calories: 280, Protein: 10, Carbs: 35, Fat: 9, Date: "2024-01-06"},
	}

	got := SumNutrition(entries, "2024-01-07")
	want := NutritionTotals{Calories: 450, Protein: 30, Carbs: 40, Fat: 12}
	if got != want {
		t.Fatalf("SumNutrition = %+v, want %+v", got, want)
	}
}

func TestAggregateDayEmptyInputIsZero(t *testing.T) {
	got := AggregateDay("2024-01-07", nil, nil, nil)
	want := DailyTotals{Date: "2024-01-07"}
	if got != want {
		t.Fatalf("AggregateDay(empty) = %+v, want %+v", got, want)
	}
}

func TestAggregateDayTotals(t *testing.T) {
	date := "2024-03-10"
	foods := []domain.FoodEntry{
		{Calories: 300, Protein: 20, Carbs: 30, Fat: 10, Date: date},
		{Calories: 500, Protein: 40, Carbs: 50, Fat: 20, Date: date},
		{Calories: 999, Date: "2024-03-09"},
	}
	exercises := []domain.Exercise{
		{Name: "squat", Date: date},
		{Name: "run", Date: date},
		{Name: "row", Date: "2024-03-11"},
	}
	sessions := []domain.WorkSession{
		{Duration: 50, Date: date},
		{Duration: 45, Date: date},
		{Duration: 600, Date: "2024-03-01"},
	}

	got := AggregateDay(date, foods, exercises, sessions)

	if got.Calories != 800 || got.Protein != 60 || got.Carbs != 80 || got.Fat != 30 {
		t.Errorf("nutrition totals = %+v", got.NutritionTotals)
	}
	if got.Workouts != 2 {
		t.Errorf("Workouts = %d, want 2", got.Workouts)
	}
	if got.WorkMinutes != 95 {
		t.Errorf("WorkMinutes = %v, want 95", got.WorkMinutes)
	}
	// 95 / 60 = 1.583.. -> 1.6
	if got.WorkHours != 1.6 {
		t.Errorf("WorkHours = %v, want 1.6", got.WorkHours)
	}
}

func TestMinutesToHours(t *testing.T) {
	tests := []struct {
		minutes float64
		want    float64
	}{
		{0, 0},
		{30, 0.5},
		{60, 1},
		{100, 1.7},
		{125, 2.1},
		{480, 8},
	}
	for _, tt := range tests {
		if got := MinutesToHours(tt.minutes); got != tt.want {
			t.Errorf("MinutesToHours(%v) = %v, want %v", tt.minutes, got, tt.want)
		}
	}
}

func TestSumsAreNonNegativeAndMatchArithmetic(t *testing.T) {
	date := "2024-05-01"
	var foods []domain.FoodEntry
	var wantCalories, wantProtein float64
	for i := 0; i < 50; i++ {
		c := float64(i * 13 % 97)
		p := float64(i * 7 % 31)
		foods = append(foods, domain.FoodEntry{Calories: c, Protein: p, Date: date})
		wantCalories += c
		wantProtein += p
	}

	got := SumNutrition(foods, date)
	if got.Calories != wantCalories || got.Protein != wantProtein {
		t.Fatalf("SumNutrition = %+v, want calories %v protein %v", got, wantCalories, wantProtein)
	}
	if got.Calories < 0 || got.Protein < 0 || got.Carbs < 0 || got.Fat < 0 {
		t.Fatalf("negative totals from non-negative input: %+v", got)
	}
}

func TestAggregateDaysKeepsOrder(t *testing.T) {
	days := LastNDays("2024-01-07", 7)
	foods := []domain.FoodEntry{{Calories: 100, Date: "2024-01-01"}, {Calories: 200, Date: "2024-01-07"}}

	got := AggregateDays(days, foods, nil, nil)
	if len(got) != 7 {
		t.Fatalf("len = %d, want 7", len(got))
	}
	if got[0].Date != "2024-01-01" || got[0].Calories != 100 {
		t.Errorf("first day = %+v", got[0])
	}
	if got[6].Date != "2024-01-07" || got[6].Calories != 200 {
		t.Errorf("last day = %+v", got[6])
	}
}
