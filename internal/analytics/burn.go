package analytics

import (
	"strings"

	"alcyxob/lifetrack/internal/domain"
)

// MET multipliers per exercise category.
var metByCategory = map[string]float64{
	"strength":    5.0,
	"cardio":      8.0,
	"flexibility": 2.5,
	"sports":      7.0,
	"other":       4.0,
}

const (
	// DefaultBodyWeightKg is used when the profile has no weight.
	DefaultBodyWeightKg = 70.0
	// minutesPerSet estimates duration for exercises logged with sets only.
	minutesPerSet = 2.0
)

// MET returns the metabolic equivalent for an exercise category.
// Unknown categories are treated as "other".
func MET(category string) float64 {
	if met, ok := metByCategory[strings.ToLower(strings.TrimSpace(category))]; ok {
		return met
	}
	return metByCategory["other"]
}

// ExerciseMinutes is the logged duration, or sets × 2 minutes when none was logged.
func ExerciseMinutes(e domain.Exercise) float64 {
	if e.Duration != nil && *e.Duration > 0 {
		return *e.Duration
	}
	return float64(e.Sets) * minutesPerSet
}

// EstimateCaloriesBurned applies kcal = MET × kg × hours, rounded to whole kcal.
func EstimateCaloriesBurned(e domain.Exercise, bodyWeightKg float64) float64 {
	if bodyWeightKg <= 0 {
		bodyWeightKg = DefaultBodyWeightKg
	}
	return RoundTo(MET(e.Category)*bodyWeightKg*ExerciseMinutes(e)/60, 0)
}
