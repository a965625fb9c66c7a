package enrichment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"alcyxob/lifetrack/internal/domain"
)

var ErrAnalyzerUnavailable = errors.New("report analyzer unavailable")

// ReportInput points the analyzer at an uploaded report.
type ReportInput struct {
	ReportID    string `json:"reportId"`
	ContentType string `json:"contentType"`
	DownloadURL string `json:"downloadUrl"` // presigned GET, short-lived
}

// ReportAnalyzer extracts conditions and recommendations from a report.
type ReportAnalyzer interface {
	Analyze(ctx context.Context, in ReportInput) (*domain.HealthAnalysis, error)
}

// Follow-up question IDs and the answers PersonalizePlan understands.
const (
	QuestionDiet          = "vegetarian"
	QuestionAllergies     = "allergies"
	QuestionActivityLevel = "activity_level"

	AnswerVegetarian = "Vegetarian"
	AnswerVegan      = "Vegan"
	AnswerSedentary  = "Sedentary"
	AnswerVeryActive = "Very active"
)

// MockAnalyzer waits Delay, then returns a fixed analysis. It honours ctx
// cancellation while waiting.
type MockAnalyzer struct {
	Delay time.Duration
}

func (m MockAnalyzer) Analyze(ctx context.Context, _ ReportInput) (*domain.HealthAnalysis, error) {
	if m.Delay > 0 {
		t := time.NewTimer(m.Delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-t.C:
		}
	}
	return &domain.HealthAnalysis{
		Conditions: []string{"Type 2 Diabetes", "Hypertension", "High Cholesterol"},
		Recommendations: domain.Recommendations{
			Diet:         "Low-carb, Mediterranean diet",
			CalorieLimit: 1800,
			Workout:      "Low-impact cardio, strength training",
			Restrictions: []string{"Limit sodium", "Avoid processed sugars", "Monitor carb intake"},
		},
		FollowUpQuestions: []domain.FollowUpQuestion{
			{ID: QuestionDiet, Question: "Are you vegetarian or vegan?", Options: []string{"No", AnswerVegetarian, AnswerVegan}},
			{ID: QuestionAllergies, Question: "Do you have any food allergies?", Options: []string{"None", "Nuts", "Dairy", "Gluten", "Other"}},
			{ID: QuestionActivityLevel, Question: "What is your current activity level?", Options: []string{AnswerSedentary, "Lightly active", "Moderately active", AnswerVeryActive}},
		},
	}, nil
}

// HTTPAnalyzer forwards the report reference to an external analysis
// service and expects a HealthAnalysis JSON body back.
type HTTPAnalyzer struct {
	endpoint string
	client   *http.Client
}

func NewHTTPAnalyzer(endpoint string, timeout time.Duration) *HTTPAnalyzer {
	return &HTTPAnalyzer{endpoint: endpoint, client: &http.Client{Timeout: timeout}}
}

func (a *HTTPAnalyzer) Analyze(ctx context.Context, in ReportInput) (*domain.HealthAnalysis, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAnalyzerUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %s", ErrAnalyzerUnavailable, resp.Status)
	}

	var out domain.HealthAnalysis
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode analysis: %w", err)
	}
	return &out, nil
}

const (
	minCalorieLimit   = 1400
	sedentaryDeficit  = 200
	veryActiveSurplus = 300
)

// PersonalizePlan adjusts the analyzer's recommendations with the user's
// follow-up answers. Unknown questions and answers leave the plan unchanged.
func PersonalizePlan(rec domain.Recommendations, answers map[string]string) domain.Recommendations {
	plan := rec
	plan.Restrictions = append([]string(nil), rec.Restrictions...)

	switch answers[QuestionDiet] {
	case AnswerVegetarian:
		plan.Diet = "Vegetarian Mediterranean diet"
	case AnswerVegan:
		plan.Diet = "Plant-based Mediterranean diet"
	}

	switch answers[QuestionActivityLevel] {
	case AnswerSedentary:
		plan.CalorieLimit = max(plan.CalorieLimit-sedentaryDeficit, minCalorieLimit)
		plan.Workout = "Gentle walking, basic strength exercises"
	case AnswerVeryActive:
		plan.CalorieLimit += veryActiveSurplus
		plan.Workout = "High-intensity cardio, advanced strength training"
	}
	return plan
}
