package analytics

import (
	"testing"
	"time"
)

func TestIndexMonthJanuary(t *testing.T) {
	food := []string{"2024-01-01", "2024-01-02", "2024-01-03"}
	statuses := IndexMonth(2024, time.January, food, nil, nil)

	if len(statuses) != 31 {
		t.Fatalf("len = %d, want 31", len(statuses))
	}
	for _, d := range food {
		s := statuses[d]
		if !s.DietLogged || s.TotalEntries != 1 {
			t.Errorf("%s = %+v, want diet logged with 1 entry", d, s)
		}
	}
	if s := statuses["2024-01-04"]; s.DietLogged || s.TotalEntries != 0 {
		t.Errorf("2024-01-04 = %+v, want empty", s)
	}
}

func TestIndexMonthLeapFebruary(t *testing.T) {
	if got := len(IndexMonth(2024, time.February, nil, nil, nil)); got != 29 {
		t.Errorf("Feb 2024 = %d days, want 29", got)
	}
	if got := len(IndexMonth(2023, time.February, nil, nil, nil)); got != 28 {
		t.Errorf("Feb 2023 = %d days, want 28", got)
	}
}

func TestIndexMonthTotalsMatchInMonthEntries(t *testing.T) {
	food := []string{"2024-06-01", "2024-06-01", "2024-06-15", "2024-05-31"}
	exercise := []string{"2024-06-15", "2024-07-01"}
	work := []string{"2024-06-30", "2024-06-30", "2024-06-02"}

	statuses := IndexMonth(2024, time.June, food, exercise, work)

	sum := 0
	for date, s := range statuses {
		if date != s.Date {
			t.Errorf("key %s holds status for %s", date, s.Date)
		}
		sum += s.TotalEntries
	}
	// Everything except 2024-05-31 and 2024-07-01.
	if sum != 7 {
		t.Fatalf("sum of TotalEntries = %d, want 7", sum)
	}
	if _, ok := statuses["2024-05-31"]; ok {
		t.Error("out-of-month date present in index")
	}
	d := statuses["2024-06-15"]
	if !d.DietLogged || !d.WorkoutLogged || d.WorkLogged || d.TotalEntries != 2 {
		t.Errorf("2024-06-15 = %+v", d)
	}
}

func TestHistoryMostRecentFirst(t *testing.T) {
	h := History(IndexMonth(2024, time.April, []string{"2024-04-02"}, nil, nil))
	if len(h) != 30 {
		t.Fatalf("len = %d, want 30", len(h))
	}
	if h[0].Date != "2024-04-30" || h[29].Date != "2024-04-01" {
		t.Fatalf("order = %s .. %s", h[0].Date, h[29].Date)
	}
}

func TestMonthGrid(t *testing.T) {
	// 1 September 2024 is a Sunday.
	cells := MonthGrid(2024, time.September)
	if len(cells) != GridCells {
		t.Fatalf("len = %d, want %d", len(cells), GridCells)
	}
	if cells[0].Date != "2024-09-01" || !cells[0].InMonth {
		t.Errorf("first cell = %+v", cells[0])
	}

	// 1 May 2024 is a Wednesday, so the grid opens on 28 April.
	cells = MonthGrid(2024, time.May)
	if cells[0].Date != "2024-04-28" || cells[0].InMonth {
		t.Errorf("first cell = %+v, want 2024-04-28 outside month", cells[0])
	}
	in := 0
	for _, c := range cells {
		if c.InMonth {
			in++
		}
	}
	if in != 31 {
		t.Errorf("in-month cells = %d, want 31", in)
	}
	if last := cells[GridCells-1]; last.Date != "2024-06-08" || last.InMonth {
		t.Errorf("last cell = %+v", last)
	}
}
