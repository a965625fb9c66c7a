package domain

import "time"

// Goal is a user-defined target with a deadline.
// Achieved only changes through an explicit toggle, never because Current reached Target.
type Goal struct {
	ID        string    `bson:"_id" json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string    `bson:"userId" json:"userId" gorm:"index;not null"`
	Type      Activity  `bson:"type" json:"type"`
	Title     string    `bson:"title" json:"title"`
	Target    float64   `bson:"target" json:"target"`
	Current   float64   `bson:"current" json:"current"`
	Unit      string    `bson:"unit" json:"unit"`
	Deadline  string    `bson:"deadline" json:"deadline" gorm:"type:varchar(10)"`
	Achieved  bool      `bson:"achieved" json:"achieved"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// GoalPatch is a partial goal update. Nil fields are left untouched.
type GoalPatch struct {
	Type     *Activity `json:"type,omitempty"`
	Title    *string   `json:"title,omitempty"`
	Target   *float64  `json:"target,omitempty"`
	Current  *float64  `json:"current,omitempty"`
	Unit     *string   `json:"unit,omitempty"`
	Deadline *string   `json:"deadline,omitempty"`
	Achieved *bool     `json:"achieved,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (p GoalPatch) Empty() bool {
	return p.Type == nil && p.Title == nil && p.Target == nil && p.Current == nil &&
		p.Unit == nil && p.Deadline == nil && p.Achieved == nil
}

// Apply returns a copy of g with the patch merged in.
func (g Goal) Apply(p GoalPatch) Goal {
	if p.Type != nil {
		g.Type = *p.Type
	}
	if p.Title != nil {
		g.Title = *p.Title
	}
	if p.Target != nil {
		g.Target = *p.Target
	}
	if p.Current != nil {
		g.Current = *p.Current
	}
	if p.Unit != nil {
		g.Unit = *p.Unit
	}
	if p.Deadline != nil {
		g.Deadline = *p.Deadline
	}
	if p.Achieved != nil {
		g.Achieved = *p.Achieved
	}
	return g
}
