package domain

// NutritionFacts is one result of a nutrition lookup, per serving.
type NutritionFacts struct {
	FoodName    string  `json:"foodName"`
	ServingQty  float64 `json:"servingQty"`
	ServingUnit string  `json:"servingUnit"`
	Calories    float64 `json:"calories"`
	Protein     float64 `json:"protein"`
	Carbs       float64 `json:"carbs"`
	Fat         float64 `json:"fat"`
}

// Recommendations is the diet and training advice derived from a report.
type Recommendations struct {
	Diet         string   `bson:"diet" json:"diet"`
	CalorieLimit float64  `bson:"calorieLimit" json:"calorieLimit"`
	Workout      string   `bson:"workout" json:"workout"`
	Restrictions []string `bson:"restrictions" json:"restrictions"`
}

// FollowUpQuestion is asked after analysis to personalise the plan.
type FollowUpQuestion struct {
	ID       string   `bson:"id" json:"id"`
	Question string   `bson:"question" json:"question"`
	Options  []string `bson:"options" json:"options"`
}

// HealthAnalysis is what a report analyzer returns.
type HealthAnalysis struct {
	Conditions        []string           `bson:"conditions" json:"conditions"`
	Recommendations   Recommendations    `bson:"recommendations" json:"recommendations"`
	FollowUpQuestions []FollowUpQuestion `bson:"followUpQuestions" json:"followUpQuestions"`
}
