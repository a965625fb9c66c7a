package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"alcyxob/lifetrack/internal/analytics"
	"alcyxob/lifetrack/internal/domain"
	"alcyxob/lifetrack/internal/repository"
)

// GoalTemplate is a suggested goal the planner offers per activity.
type GoalTemplate struct {
	Type   domain.Activity `json:"type"`
	Title  string          `json:"title"`
	Target float64         `json:"target"`
	Unit   string          `json:"unit"`
}

var goalTemplates = []GoalTemplate{
	{domain.ActivityDiet, "Lose 10 pounds", 10, "lbs"},
	{domain.ActivityDiet, "Drink 8 glasses of water daily", 8, "glasses/day"},
	{domain.ActivityDiet, "Eat 5 servings of vegetables daily", 5, "servings/day"},
	{domain.ActivityDiet, "Stay under daily calorie goal", 2000, "calories/day"},
	{domain.ActivityWorkout, "Workout 4 times per week", 4, "times/week"},
	{domain.ActivityWorkout, "Run 5 miles per week", 5, "miles/week"},
	{domain.ActivityWorkout, "Complete 100 push-ups", 100, "push-ups"},
	{domain.ActivityWorkout, "Increase bench press by 20 lbs", 20, "lbs"},
	{domain.ActivityWork, "Work 40 hours per week", 40, "hours/week"},
	{domain.ActivityWork, "Complete 5 projects", 5, "projects"},
	{domain.ActivityWork, "Focus for 8 hours daily", 8, "hours/day"},
	{domain.ActivityWork, "Attend 10 meetings", 10, "meetings"},
}

// --- Service Interface ---

// GoalService manages dated goals and their statistics.
type GoalService interface {
	Create(ctx context.Context, userID string, in domain.Goal) (*domain.Goal, error)
	List(ctx context.Context, userID string, typ domain.Activity) ([]domain.Goal, error)
	Update(ctx context.Context, userID, id string, patch domain.GoalPatch) (*domain.Goal, error)
	ToggleAchieved(ctx context.Context, userID, id string) (*domain.Goal, error)
	Delete(ctx context.Context, userID, id string) error
	Stats(ctx context.Context, userID string) (*analytics.GoalStats, error)
	Templates(typ domain.Activity) []GoalTemplate
}

// --- Service Implementation ---
type goalService struct {
	goalRepo repository.GoalRepository
	now      func() time.Time
}

// NewGoalService creates a new instance of goalService.
func NewGoalService(goalRepo repository.GoalRepository) GoalService {
	return &goalService{goalRepo: goalRepo, now: time.Now}
}

// Create handles the creation of a new goal.
func (s *goalService) Create(ctx context.Context, userID string, in domain.Goal) (*domain.Goal, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return nil, validationError("title is required")
	}
	if !in.Type.Valid() {
		return nil, validationErrorf("unknown goal type %q", in.Type)
	}
	if in.Target <= 0 {
		return nil, validationError("target must be greater than zero")
	}
	if in.Current < 0 {
		return nil, validationError("current must not be negative")
	}
	if _, err := analytics.ParseDate(in.Deadline); err != nil {
		return nil, validationError(err.Error())
	}

	in.ID = uuid.NewString()
	in.UserID = userID
	in.Achieved = false
	if err := s.goalRepo.Create(ctx, &in); err != nil {
		return nil, err
	}
	return &in, nil
}

// List returns the user's goals, optionally only those of one type.
func (s *goalService) List(ctx context.Context, userID string, typ domain.Activity) ([]domain.Goal, error) {
	if typ != "" && !typ.Valid() {
		return nil, validationErrorf("unknown goal type %q", typ)
	}
	goals, err := s.goalRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if typ == "" {
		return goals, nil
	}
	out := goals[:0]
	for _, g := range goals {
		if g.Type == typ {
			out = append(out, g)
		}
	}
	return out, nil
}

// Update applies patch to a goal owned by userID. Achieved is changed
// only through ToggleAchieved.
func (s *goalService) Update(ctx context.Context, userID, id string, patch domain.GoalPatch) (*domain.Goal, error) {
	if patch.Achieved != nil {
		return nil, validationError("achieved can only be changed with toggle")
	}
	if patch.Empty() {
		return nil, validationError("no fields to update")
	}
	if patch.Title != nil {
		t := strings.TrimSpace(*patch.Title)
		if t == "" {
			return nil, validationError("title must not be empty")
		}
		patch.Title = &t
	}
	if patch.Type != nil && !patch.Type.Valid() {
		return nil, validationErrorf("unknown goal type %q", *patch.Type)
	}
	if patch.Target != nil && *patch.Target <= 0 {
		return nil, validationError("target must be greater than zero")
	}
	if patch.Current != nil && *patch.Current < 0 {
		return nil, validationError("current must not be negative")
	}
	if patch.Deadline != nil {
		if _, err := analytics.ParseDate(*patch.Deadline); err != nil {
			return nil, validationError(err.Error())
		}
	}
	g, err := s.goalRepo.Update(ctx, userID, id, patch)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return g, nil
}

// ToggleAchieved flips the achieved flag. It is the only way a goal becomes achieved.
func (s *goalService) ToggleAchieved(ctx context.Context, userID, id string) (*domain.Goal, error) {
	g, err := s.goalRepo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	achieved := !g.Achieved
	updated, err := s.goalRepo.Update(ctx, userID, id, domain.GoalPatch{Achieved: &achieved})
	if err != nil {
		return nil, mapNotFound(err)
	}
	return updated, nil
}

// Delete removes a goal, ensuring ownership.
func (s *goalService) Delete(ctx context.Context, userID, id string) error {
	return mapNotFound(s.goalRepo.Delete(ctx, userID, id))
}

func (s *goalService) Stats(ctx context.Context, userID string) (*analytics.GoalStats, error) {
	goals, err := s.goalRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	stats := analytics.SummarizeGoals(goals, analytics.DateKey(s.now()))
	return &stats, nil
}

// Templates returns the suggestions for typ, or all of them when typ is empty.
func (s *goalService) Templates(typ domain.Activity) []GoalTemplate {
	out := make([]GoalTemplate, 0, len(goalTemplates))
	for _, t := range goalTemplates {
		if typ == "" || t.Type == typ {
			out = append(out, t)
		}
	}
	return out
}
