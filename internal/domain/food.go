package domain

import "time"

// MealType labels which meal a food entry belongs to.
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

// Valid reports whether m is a known meal type.
func (m MealType) Valid() bool {
	switch m {
	case MealBreakfast, MealLunch, MealDinner, MealSnack:
		return true
	}
	return false
}

// FoodEntry is one logged food item.
type FoodEntry struct {
	ID        string    `bson:"_id" json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string    `bson:"userId" json:"userId" gorm:"index:idx_food_user_date;not null"`
	Name      string    `bson:"name" json:"name"`
	Calories  float64   `bson:"calories" json:"calories"`
	Protein   float64   `bson:"protein" json:"protein"` // grams
	Carbs     float64   `bson:"carbs" json:"carbs"`     // grams
	Fat       float64   `bson:"fat" json:"fat"`         // grams
	Quantity  float64   `bson:"quantity" json:"quantity"`
	Unit      string    `bson:"unit" json:"unit"`
	MealType  MealType  `bson:"mealType" json:"mealType"`
	Date      string    `bson:"date" json:"date" gorm:"index:idx_food_user_date;type:varchar(10);not null"`
	PhotoURL  string    `bson:"photoUrl,omitempty" json:"photoUrl,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

func (f FoodEntry) EntryDate() string  { return f.Date }
func (f FoodEntry) EntryOwner() string { return f.UserID }
