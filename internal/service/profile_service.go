package service

import (
	"context"
	"errors"
	"sort"

	"alcyxob/lifetrack/internal/domain"
	"alcyxob/lifetrack/internal/repository"
)

// ProfileView is a profile as served to clients. Defaulted is set when no
// profile was stored and the signup defaults were substituted.
type ProfileView struct {
	domain.Profile
	Defaulted bool `json:"defaulted"`
}

// GoalPreset is a named bundle of targets from the goal planner.
type GoalPreset struct {
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Goals       domain.GoalSetPatch `json:"goals"`
}

func f64(v float64) *float64 { return &v }

var goalPresets = map[string]GoalPreset{
	"weight-loss": {
		Name:        "weight-loss",
		Description: "Calorie deficit with high protein",
		Goals: domain.GoalSetPatch{
			DailyCalories: f64(1800), ProteinTarget: f64(140), CarbTarget: f64(180), FatTarget: f64(60),
			WorkoutFrequency: f64(5),
		},
	},
	"muscle-gain": {
		Name:        "muscle-gain",
		Description: "Calorie surplus for building muscle",
		Goals: domain.GoalSetPatch{
			DailyCalories: f64(2500), ProteinTarget: f64(180), CarbTarget: f64(300), FatTarget: f64(85),
			WorkoutFrequency: f64(4),
		},
	},
	"maintenance": {
		Name:        "maintenance",
		Description: "Balanced intake to hold current weight",
		Goals: domain.GoalSetPatch{
			DailyCalories: f64(2200), ProteinTarget: f64(150), CarbTarget: f64(250), FatTarget: f64(75),
			WorkoutFrequency: f64(3),
		},
	},
	"student-focus": {
		Name:        "student-focus",
		Description: "Study time first, with room for training",
		Goals: domain.GoalSetPatch{
			WeeklyStudyHours: f64(20), WorkHours: f64(6), DailyCalories: f64(2000), WorkoutFrequency: f64(3),
		},
	},
}

// --- Service Interface ---

// ProfileService reads and edits the body data and goal targets.
type ProfileService interface {
	Get(ctx context.Context, userID string) (*ProfileView, error)
	Update(ctx context.Context, userID string, patch domain.ProfilePatch) (*ProfileView, error)
	ApplyPreset(ctx context.Context, userID, name string) (*ProfileView, error)
	Presets() []GoalPreset
}

// --- Service Implementation ---
type profileService struct {
	profileRepo repository.ProfileRepository
}

// NewProfileService creates a new instance of profileService.
func NewProfileService(profileRepo repository.ProfileRepository) ProfileService {
	return &profileService{profileRepo: profileRepo}
}

// Get returns the stored profile or the defaults, flagged as such.
func (s *profileService) Get(ctx context.Context, userID string) (*ProfileView, error) {
	p, err := s.profileRepo.Get(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return &ProfileView{Profile: defaultProfile(userID), Defaulted: true}, nil
	}
	if err != nil {
		return nil, err
	}
	return &ProfileView{Profile: *p}, nil
}

// Update merges patch into the profile, creating it on first write.
func (s *profileService) Update(ctx context.Context, userID string, patch domain.ProfilePatch) (*ProfileView, error) {
	if err := validateProfilePatch(patch); err != nil {
		return nil, err
	}
	current, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	updated := current.Profile.Apply(patch)
	if err := s.profileRepo.Upsert(ctx, &updated); err != nil {
		return nil, err
	}
	return &ProfileView{Profile: updated}, nil
}

func (s *profileService) ApplyPreset(ctx context.Context, userID, name string) (*ProfileView, error) {
	preset, ok := goalPresets[name]
	if !ok {
		return nil, validationErrorf("unknown preset %q", name)
	}
	return s.Update(ctx, userID, domain.ProfilePatch{Goals: preset.Goals})
}

func (s *profileService) Presets() []GoalPreset {
	out := make([]GoalPreset, 0, len(goalPresets))
	for _, p := range goalPresets {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func defaultProfile(userID string) domain.Profile {
	return domain.Profile{UserID: userID, Goals: domain.DefaultGoalSet()}
}

func validateProfilePatch(p domain.ProfilePatch) error {
	if p.Age != nil && *p.Age < 0 {
		return validationError("age must not be negative")
	}
	nonNegative := map[string]*float64{
		"weight":           p.Weight,
		"height":           p.Height,
		"dailyCalories":    p.Goals.DailyCalories,
		"proteinTarget":    p.Goals.ProteinTarget,
		"carbTarget":       p.Goals.CarbTarget,
		"fatTarget":        p.Goals.FatTarget,
		"workoutFrequency": p.Goals.WorkoutFrequency,
		"weeklyStudyHours": p.Goals.WeeklyStudyHours,
		"workHours":        p.Goals.WorkHours,
		"weightTarget":     p.Goals.WeightTarget,
	}
	for field, v := range nonNegative {
		if v != nil && *v < 0 {
			return validationErrorf("%s must not be negative", field)
		}
	}
	return nil
}
