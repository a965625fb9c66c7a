package analytics

import (
	"sort"
	"time"

	"alcyxob/lifetrack/internal/domain"
)

// GridCells is the fixed size of the month view: six weeks of seven days.
const GridCells = 42

// GridCell is one square of the month view.
type GridCell struct {
	Date    string `json:"date"`
	Day     int    `json:"day"`
	InMonth bool   `json:"inMonth"`
}

// IndexMonth maps every date of the month to its DayStatus. Days without
// entries are present with all flags false. Dates outside the month are
// ignored.
func IndexMonth(year int, month time.Month, foodDates, exerciseDates, workDates []string) map[string]domain.DayStatus {
	n := DaysInMonth(year, month)
	days := make([]string, n)
	for d := 1; d <= n; d++ {
		days[d-1] = time.Date(year, month, d, 0, 0, 0, 0, time.UTC).Format(domain.DateLayout)
	}
	return IndexDays(days, foodDates, exerciseDates, workDates)
}

// IndexDays pre-initialises one DayStatus per day and marks it from the
// three entry date lists. Dates not in days are ignored.
func IndexDays(days []string, foodDates, exerciseDates, workDates []string) map[string]domain.DayStatus {
	out := make(map[string]domain.DayStatus, len(days))
	for _, d := range days {
		out[d] = domain.DayStatus{Date: d}
	}
	mark := func(dates []string, set func(*domain.DayStatus)) {
		for _, date := range dates {
			status, ok := out[date]
			if !ok {
				continue
			}
			set(&status)
			status.TotalEntries++
			out[date] = status
		}
	}
	mark(foodDates, func(s *domain.DayStatus) { s.DietLogged = true })
	mark(exerciseDates, func(s *domain.DayStatus) { s.WorkoutLogged = true })
	mark(workDates, func(s *domain.DayStatus) { s.WorkLogged = true })
	return out
}

// History flattens a DayStatus map into a slice, most recent day first.
func History(byDate map[string]domain.DayStatus) []domain.DayStatus {
	out := make([]domain.DayStatus, 0, len(byDate))
	for _, s := range byDate {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out
}

// MonthGrid lays the month out over 42 cells, starting on the Sunday on or
// before the 1st and padding with days of the neighbouring months.
func MonthGrid(year int, month time.Month) []GridCell {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	start := first.AddDate(0, 0, -int(first.Weekday()))

	cells := make([]GridCell, GridCells)
	for i := range cells {
		d := start.AddDate(0, 0, i)
		cells[i] = GridCell{
			Date:    d.Format(domain.DateLayout),
			Day:     d.Day(),
			InMonth: d.Month() == month && d.Year() == year,
		}
	}
	return cells
}
