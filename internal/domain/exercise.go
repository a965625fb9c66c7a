package domain

import (
	"time"
)

// Exercise is one logged exercise within a day's workout.
type Exercise struct {
	ID       string   `bson:"_id" json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID   string   `bson:"userId" json:"userId" gorm:"index:idx_exercise_user_date;not null"`
	Name     string   `bson:"name" json:"name"`
	Category string   `bson:"category" json:"category"` // e.g., "strength", "cardio", "flexibility", "sports", "other"
	Sets     int      `bson:"sets" json:"sets"`
	Reps     int      `bson:"reps" json:"reps"`
	Weight   *float64 `bson:"weight,omitempty" json:"weight,omitempty"`     // optional, per set
	Duration *float64 `bson:"duration,omitempty" json:"duration,omitempty"` // optional, minutes
	Date     string   `bson:"date" json:"date" gorm:"index:idx_exercise_user_date;type:varchar(10);not null"`
	PhotoURL string   `bson:"photoUrl,omitempty" json:"photoUrl,omitempty"`

	// Estimated at creation time from the MET table and the user's body weight.
	CaloriesBurned float64 `bson:"caloriesBurned" json:"estimatedCaloriesBurned"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

func (e Exercise) EntryDate() string  { return e.Date }
func (e Exercise) EntryOwner() string { return e.UserID }
