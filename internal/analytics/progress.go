package analytics

import (
	"errors"
	"math"

	"alcyxob/lifetrack/internal/domain"
)

// ErrInvalidTarget is reported when a target is zero or negative and a default was substituted.
var ErrInvalidTarget = errors.New("target must be greater than zero")

// Status classifies an unclamped percentage of target.
type Status string

const (
	StatusNeedMore   Status = "need more"
	StatusOnTrack    Status = "on track"
	StatusOverTarget Status = "over target"
)

// Band edges for StatusOnTrack; both ends are inclusive.
const (
	OnTrackLower = 80.0
	OnTrackUpper = 120.0
)

// Progress is the evaluated state of one actual-versus-target pair.
type Progress struct {
	Actual        float64 `json:"actual"`
	Target        float64 `json:"target"`
	Percentage    float64 `json:"percentage"`    // clamped to 100, for progress bars
	RawPercentage float64 `json:"rawPercentage"` // unclamped, drives Status
	Remaining     float64 `json:"remaining"`
	Status        Status  `json:"status"`
}

// NormalizeTarget returns target when it is positive. Otherwise it returns
// fallback (itself raised to at least 1) together with ErrInvalidTarget.
func NormalizeTarget(target, fallback float64) (float64, error) {
	if target > 0 {
		return target, nil
	}
	if fallback < 1 {
		fallback = 1
	}
	return fallback, ErrInvalidTarget
}

// RawPercentage is actual as a percentage of target, without clamping.
// A non-positive target is treated as 1.
func RawPercentage(actual, target float64) float64 {
	if target <= 0 {
		target = 1
	}
	return actual * 100 / target
}

// ClampedPercentage caps RawPercentage at 100. There is no lower clamp.
func ClampedPercentage(actual, target float64) float64 {
	return math.Min(RawPercentage(actual, target), 100)
}

// Remaining is how much of target is left, never negative.
func Remaining(actual, target float64) float64 {
	return math.Max(target-actual, 0)
}

// Classify maps an unclamped percentage onto the three status bands.
func Classify(pct float64) Status {
	switch {
	case pct > OnTrackUpper:
		return StatusOverTarget
	case pct >= OnTrackLower:
		return StatusOnTrack
	default:
		return StatusNeedMore
	}
}

// Evaluate computes every progress figure for actual against target.
// Callers are expected to have run target through NormalizeTarget.
func Evaluate(actual, target float64) Progress {
	if target <= 0 {
		target = 1
	}
	raw := RawPercentage(actual, target)
	return Progress{
		Actual:        actual,
		Target:        target,
		Percentage:    math.Min(raw, 100),
		RawPercentage: raw,
		Remaining:     Remaining(actual, target),
		Status:        Classify(raw),
	}
}

// CompletionScore is the share of evaluated goals that are on track, as a
// rounded percentage. An empty slice scores 0.
func CompletionScore(items ...Progress) int {
	if len(items) == 0 {
		return 0
	}
	onTrack := 0
	for _, p := range items {
		if p.Status == StatusOnTrack {
			onTrack++
		}
	}
	return int(math.Round(float64(onTrack) / float64(len(items)) * 100))
}

// MacroReport is the nutrition-vs-goals panel.
type MacroReport struct {
	Calories Progress `json:"calories"`
	Protein  Progress `json:"protein"`
	Carbs    Progress `json:"carbs"`
	Fat      Progress `json:"fat"`
	Overall  int      `json:"overall"` // CompletionScore over protein, carbs and fat
}

// EvaluateMacros compares a day's nutrition totals with the profile targets.
// Non-positive targets fall back to the signup defaults.
func EvaluateMacros(totals NutritionTotals, goals domain.GoalSet) MacroReport {
	def := domain.DefaultGoalSet()
	target := func(v, fallback float64) float64 {
		t, _ := NormalizeTarget(v, fallback)
		return t
	}
	r := MacroReport{
		Calories: Evaluate(totals.Calories, target(goals.DailyCalories, def.DailyCalories)),
		Protein:  Evaluate(totals.Protein, target(goals.ProteinTarget, def.ProteinTarget)),
		Carbs:    Evaluate(totals.Carbs, target(goals.CarbTarget, def.CarbTarget)),
		Fat:      Evaluate(totals.Fat, target(goals.FatTarget, def.FatTarget)),
	}
	r.Overall = CompletionScore(r.Protein, r.Carbs, r.Fat)
	return r
}
