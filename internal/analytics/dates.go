// Package analytics holds the pure aggregation core: daily totals, goal
// progress, streaks and the month calendar. Nothing here performs I/O.
package analytics

import (
	"fmt"
	"time"

	"alcyxob/lifetrack/internal/domain"
)

// DateKey truncates t to its UTC date portion.
func DateKey(t time.Time) string {
	return t.UTC().Format(domain.DateLayout)
}

// ParseDate validates a YYYY-MM-DD key.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return t, nil
}

// AddDays shifts a date key by n days. Invalid keys are returned unchanged.
func AddDays(date string, n int) string {
	t, err := ParseDate(date)
	if err != nil {
		return date
	}
	return t.AddDate(0, 0, n).Format(domain.DateLayout)
}

// LastNDays returns n date keys ending at (and including) end, oldest first.
func LastNDays(end string, n int) []string {
	if n <= 0 {
		return []string{}
	}
	days := make([]string, n)
	for i := 0; i < n; i++ {
		days[i] = AddDays(end, i-(n-1))
	}
	return days
}

// DaysInMonth returns the number of calendar days in the given month.
func DaysInMonth(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// MonthRange returns the first and last date keys of a month.
func MonthRange(year int, month time.Month) (from, to string) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC)
	return first.Format(domain.DateLayout), last.Format(domain.DateLayout)
}

// DaysUntil returns the days from today until deadline.
// Negative values mean the deadline has passed.
func DaysUntil(today, deadline string) (int, error) {
	t, err := ParseDate(today)
	if err != nil {
		return 0, err
	}
	d, err := ParseDate(deadline)
	if err != nil {
		return 0, err
	}
	return int(d.Sub(t).Hours() / 24), nil
}

// Dates projects any entry list onto its date keys.
func Dates[T domain.Entry](entries []T) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.EntryDate()
	}
	return out
}

// OnDate filters entries down to those stamped with date.
func OnDate[T domain.Entry](entries []T, date string) []T {
	out := make([]T, 0, len(entries))
	for _, e := range entries {
		if e.EntryDate() == date {
			out = append(out, e)
		}
	}
	return out
}
