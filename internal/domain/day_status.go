package domain

// DayStatus is derived per request and never stored.
type DayStatus struct {
	Date          string `json:"date"`
	DietLogged    bool   `json:"dietLogged"`
	WorkoutLogged bool   `json:"workoutLogged"`
	WorkLogged    bool   `json:"workLogged"`
	TotalEntries  int    `json:"totalEntries"`
}

// Logged reports the flag for one activity.
func (d DayStatus) Logged(a Activity) bool {
	switch a {
	case ActivityDiet:
		return d.DietLogged
	case ActivityWorkout:
		return d.WorkoutLogged
	case ActivityWork:
		return d.WorkLogged
	}
	return false
}

// Streak holds the consecutive-day count per activity, ending today.
type Streak struct {
	Diet    int `json:"diet"`
	Workout int `json:"workout"`
	Work    int `json:"work"`
}

// Set stores n under the given activity.
func (s *Streak) Set(a Activity, n int) {
	switch a {
	case ActivityDiet:
		s.Diet = n
	case ActivityWorkout:
		s.Workout = n
	case ActivityWork:
		s.Work = n
	}
}
