package domain

import "time"

// WorkSession is a block of focused work. Duration is in minutes.
type WorkSession struct {
	ID        string     `bson:"_id" json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string     `bson:"userId" json:"userId" gorm:"index:idx_work_user_date;not null"`
	Task      string     `bson:"task" json:"task"`
	Category  string     `bson:"category" json:"category"` // e.g., "development", "meetings", "research"
	Duration  float64    `bson:"duration" json:"duration"`
	Completed bool       `bson:"completed" json:"completed"`
	Date      string     `bson:"date" json:"date" gorm:"index:idx_work_user_date;type:varchar(10);not null"`
	StartTime time.Time  `bson:"startTime" json:"startTime"`
	EndTime   *time.Time `bson:"endTime,omitempty" json:"endTime,omitempty"` // nil while the timer is running
	PhotoURL  string     `bson:"photoUrl,omitempty" json:"photoUrl,omitempty"`
	CreatedAt time.Time  `bson:"createdAt" json:"createdAt"`
}

func (w WorkSession) EntryDate() string  { return w.Date }
func (w WorkSession) EntryOwner() string { return w.UserID }

// Running reports whether the session timer has not been stopped yet.
func (w WorkSession) Running() bool {
	return w.EndTime == nil
}
