package domain

// DateLayout is the YYYY-MM-DD key every entry is stamped with.
// Dates are opaque strings: equality is string equality and ranges
// compare lexicographically, which matches chronological order for this layout.
const DateLayout = "2006-01-02"

// EntryType identifies which kind of logged record an Entry is.
type EntryType string

const (
	EntryFood     EntryType = "food"
	EntryExercise EntryType = "exercise"
	EntryWork     EntryType = "work"
)

// Activity is the streak / goal category an entry type rolls up into.
type Activity string

const (
	ActivityDiet    Activity = "diet"
	ActivityWorkout Activity = "workout"
	ActivityWork    Activity = "work"
)

// Activities lists every tracked activity in display order.
var Activities = []Activity{ActivityDiet, ActivityWorkout, ActivityWork}

// Valid reports whether a is a known activity.
func (a Activity) Valid() bool {
	switch a {
	case ActivityDiet, ActivityWorkout, ActivityWork:
		return true
	}
	return false
}

// Entry is implemented by every logged record type.
type Entry interface {
	EntryDate() string
	EntryOwner() string
}
