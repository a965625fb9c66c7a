package analytics

import (
	"alcyxob/lifetrack/internal/domain"
)

// CurrentStreak counts consecutive logged days for one activity, walking
// backward from today. The walk stops at the first day that is either not
// logged or absent from history. A day with zero entries counts as not
// logged, so it breaks the streak; there is no rest-day exception.
//
// history may be in any order (callers usually pass most recent first) and is
// never modified. Days after today are ignored.
func CurrentStreak(history []domain.DayStatus, activity domain.Activity, today string) int {
	if _, err := ParseDate(today); err != nil {
		return 0
	}
	byDate := indexHistory(history)

	streak := 0
	for day := today; ; day = AddDays(day, -1) {
		status, ok := byDate[day]
		if !ok || !status.Logged(activity) {
			return streak
		}
		streak++
	}
}

// LongestStreak is the longest run of consecutive logged days for one
// activity anywhere in history.
func LongestStreak(history []domain.DayStatus, activity domain.Activity) int {
	byDate := indexHistory(history)

	longest := 0
	for date, status := range byDate {
		if !status.Logged(activity) {
			continue
		}
		// Only start counting at the first day of a run.
		if prev, ok := byDate[AddDays(date, -1)]; ok && prev.Logged(activity) {
			continue
		}
		run := 0
		for d := date; ; d = AddDays(d, 1) {
			s, ok := byDate[d]
			if !ok || !s.Logged(activity) {
				break
			}
			run++
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}

// Streaks computes CurrentStreak for every activity.
func Streaks(history []domain.DayStatus, today string) domain.Streak {
	var s domain.Streak
	for _, a := range domain.Activities {
		s.Set(a, CurrentStreak(history, a, today))
	}
	return s
}

// LongestStreaks computes LongestStreak for every activity.
func LongestStreaks(history []domain.DayStatus) domain.Streak {
	var s domain.Streak
	for _, a := range domain.Activities {
		s.Set(a, LongestStreak(history, a))
	}
	return s
}

func indexHistory(history []domain.DayStatus) map[string]domain.DayStatus {
	byDate := make(map[string]domain.DayStatus, len(history))
	for _, s := range history {
		if _, err := ParseDate(s.Date); err != nil {
			continue
		}
		// Duplicate dates merge their flags.
		prev := byDate[s.Date]
		byDate[s.Date] = domain.DayStatus{
			Date:          s.Date,
			DietLogged:    prev.DietLogged || s.DietLogged,
			WorkoutLogged: prev.WorkoutLogged || s.WorkoutLogged,
			WorkLogged:    prev.WorkLogged || s.WorkLogged,
			TotalEntries:  prev.TotalEntries + s.TotalEntries,
		}
	}
	return byDate
}
