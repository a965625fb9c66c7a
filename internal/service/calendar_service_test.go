package service

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"go.uber.org/zap"

	"alcyxob/lifetrack/internal/domain"
)

func TestCalendarMonth(t *testing.T) {
	m := newMemStore()
	m.foods.items = []domain.FoodEntry{
		{ID: "a", UserID: "u1", Date: "2025-02-01"},
		{ID: "b", UserID: "u1", Date: "2025-02-01"},
		{ID: "c", UserID: "u1", Date: "2025-03-01"}, // next month
	}
	m.exercises.items = []domain.Exercise{{ID: "e", UserID: "u1", Date: "2025-02-14"}}
	m.work.items = []domain.WorkSession{{ID: "w", UserID: "u1", Date: "2025-02-01"}}
	svc := NewCalendarService(m.store(), NewFetchTimeout(time.Second), zap.NewNop())

	cal, err := svc.Month(context.Background(), "u1", 2025, 2)
	if err != nil {
		t.Fatalf("Month: %v", err)
	}
	if len(cal.Days) != 28 || len(cal.Grid) != 42 {
		t.Fatalf("days = %d, grid = %d", len(cal.Days), len(cal.Grid))
	}
	first := cal.Days["2025-02-01"]
	if !first.DietLogged || !first.WorkLogged || first.WorkoutLogged || first.TotalEntries != 3 {
		t.Errorf("2025-02-01 = %+v", first)
	}
	if empty := cal.Days["2025-02-02"]; empty.TotalEntries != 0 || empty.DietLogged {
		t.Errorf("2025-02-02 = %+v", empty)
	}
	want := MonthCounts{DietDays: 1, WorkoutDays: 1, WorkDays: 1, ActiveDays: 2, TotalEntries: 4}
	if cal.Counts != want {
		t.Errorf("Counts = %+v, want %+v", cal.Counts, want)
	}
}

func TestCalendarDegraded(t *testing.T) {
	m := newMemStore()
	m.exercises.err = errStoreDown
	svc := NewCalendarService(m.store(), NewFetchTimeout(time.Second), zap.NewNop())

	cal, err := svc.Month(context.Background(), "u1", 2025, 2)
	if err != nil {
		t.Fatalf("Month: %v", err)
	}
	if !reflect.DeepEqual(cal.Degraded, []string{sourceExercises}) {
		t.Errorf("Degraded = %v", cal.Degraded)
	}

	m.foods.err = errStoreDown
	m.work.err = errStoreDown
	cal, err = svc.Month(context.Background(), "u1", 2025, 2)
	if !errors.Is(err, ErrAllSourcesFailed) || cal == nil || len(cal.Days) != 28 {
		t.Errorf("all failed: cal=%v err=%v", cal, err)
	}

	if _, err := svc.Month(context.Background(), "u1", 2025, 13); !errors.Is(err, ErrValidationFailed) {
		t.Errorf("month 13 err = %v", err)
	}
}
