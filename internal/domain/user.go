package domain

import (
	"time"
)

// User is an account holder. Every entry, goal and profile belongs to exactly one user.
type User struct {
	ID           string    `bson:"_id" json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name         string    `bson:"name" json:"name"`
	Email        string    `bson:"email" json:"email" gorm:"uniqueIndex;not null"` // Should be unique
	PasswordHash string    `bson:"passwordHash" json:"-"`                          // Never expose this via JSON
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

// GoalSet holds the targets every aggregation view reads.
type GoalSet struct {
	DailyCalories    float64 `bson:"dailyCalories" json:"dailyCalories"`
	ProteinTarget    float64 `bson:"proteinTarget" json:"proteinTarget"`
	CarbTarget       float64 `bson:"carbTarget" json:"carbTarget"`
	FatTarget        float64 `bson:"fatTarget" json:"fatTarget"`
	WorkoutFrequency float64 `bson:"workoutFrequency" json:"workoutFrequency"` // workouts per week
	WeeklyStudyHours float64 `bson:"weeklyStudyHours" json:"weeklyStudyHours"`
	WorkHours        float64 `bson:"workHours" json:"workHours"` // per day
	WeightTarget     float64 `bson:"weightTarget,omitempty" json:"weightTarget,omitempty"`
}

// DefaultGoalSet is used at signup and whenever a profile cannot be found.
func DefaultGoalSet() GoalSet {
	return GoalSet{
		DailyCalories:    2000,
		ProteinTarget:    150,
		CarbTarget:       250,
		FatTarget:        70,
		WorkoutFrequency: 4,
		WeeklyStudyHours: 14,
		WorkHours:        8,
	}
}

// GoalSetPatch carries a partial update from the goal planner. Nil fields are left untouched.
type GoalSetPatch struct {
	DailyCalories    *float64 `json:"dailyCalories,omitempty"`
	ProteinTarget    *float64 `json:"proteinTarget,omitempty"`
	CarbTarget       *float64 `json:"carbTarget,omitempty"`
	FatTarget        *float64 `json:"fatTarget,omitempty"`
	WorkoutFrequency *float64 `json:"workoutFrequency,omitempty"`
	WeeklyStudyHours *float64 `json:"weeklyStudyHours,omitempty"`
	WorkHours        *float64 `json:"workHours,omitempty"`
	WeightTarget     *float64 `json:"weightTarget,omitempty"`
}

// Apply returns a copy of g with every non-nil patch field written over it.
func (g GoalSet) Apply(p GoalSetPatch) GoalSet {
	set := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}
	set(&g.DailyCalories, p.DailyCalories)
	set(&g.ProteinTarget, p.ProteinTarget)
	set(&g.CarbTarget, p.CarbTarget)
	set(&g.FatTarget, p.FatTarget)
	set(&g.WorkoutFrequency, p.WorkoutFrequency)
	set(&g.WeeklyStudyHours, p.WeeklyStudyHours)
	set(&g.WorkHours, p.WorkHours)
	set(&g.WeightTarget, p.WeightTarget)
	return g
}

// Profile is the per-user configuration created at signup.
// It is keyed by the owning user's ID.
type Profile struct {
	UserID    string    `bson:"_id" json:"userId" gorm:"primaryKey;type:varchar(36)"`
	Username  string    `bson:"username" json:"username"`
	FullName  string    `bson:"fullName" json:"fullName"`
	Age       int       `bson:"age,omitempty" json:"age,omitempty"`
	Weight    float64   `bson:"weight,omitempty" json:"weight,omitempty"` // kg
	Height    float64   `bson:"height,omitempty" json:"height,omitempty"` // cm
	Goals     GoalSet   `bson:"goals" json:"goals" gorm:"embedded;embeddedPrefix:goal_"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// ProfilePatch is a partial profile update. Nil fields are left untouched.
type ProfilePatch struct {
	Username *string      `json:"username,omitempty"`
	FullName *string      `json:"fullName,omitempty"`
	Age      *int         `json:"age,omitempty"`
	Weight   *float64     `json:"weight,omitempty"`
	Height   *float64     `json:"height,omitempty"`
	Goals    GoalSetPatch `json:"goals"`
}

// Apply returns a copy of p with the patch merged in.
func (p Profile) Apply(patch ProfilePatch) Profile {
	if patch.Username != nil {
		p.Username = *patch.Username
	}
	if patch.FullName != nil {
		p.FullName = *patch.FullName
	}
	if patch.Age != nil {
		p.Age = *patch.Age
	}
	if patch.Weight != nil {
		p.Weight = *patch.Weight
	}
	if patch.Height != nil {
		p.Height = *patch.Height
	}
	p.Goals = p.Goals.Apply(patch.Goals)
	return p
}
