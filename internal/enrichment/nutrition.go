// Package enrichment talks to the optional outside helpers: nutrition lookup
// and medical report analysis. Both have an in-process mock that is used by
// default and whenever the real provider is unavailable.
package enrichment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"alcyxob/lifetrack/internal/domain"
)

var (
	// ErrEmptyQuery is returned for blank nutrition searches.
	ErrEmptyQuery = errors.New("query is required")
	// ErrProviderUnavailable wraps any failure to reach a real nutrition provider.
	ErrProviderUnavailable = errors.New("nutrition provider unavailable")
)

// NutritionProvider resolves a free-text food description to per-serving facts.
type NutritionProvider interface {
	Search(ctx context.Context, query string) ([]domain.NutritionFacts, error)
}

// mockFoods is a small table of common foods, keyed by lowercase name.
var mockFoods = []struct {
	key   string
	facts domain.NutritionFacts
}{
	{"chicken breast", domain.NutritionFacts{FoodName: "Chicken Breast", ServingQty: 1, ServingUnit: "piece", Calories: 231, Protein: 43.5, Carbs: 0, Fat: 5}},
	{"banana", domain.NutritionFacts{FoodName: "Banana", ServingQty: 1, ServingUnit: "medium", Calories: 105, Protein: 1.3, Carbs: 27, Fat: 0.4}},
	{"rice", domain.NutritionFacts{FoodName: "White Rice", ServingQty: 1, ServingUnit: "cup", Calories: 205, Protein: 4.3, Carbs: 45, Fat: 0.4}},
	{"egg", domain.NutritionFacts{FoodName: "Egg", ServingQty: 1, ServingUnit: "large", Calories: 70, Protein: 6, Carbs: 0.6, Fat: 5}},
	{"apple", domain.NutritionFacts{FoodName: "Apple", ServingQty: 1, ServingUnit: "medium", Calories: 95, Protein: 0.5, Carbs: 25, Fat: 0.3}},
	{"salmon", domain.NutritionFacts{FoodName: "Salmon", ServingQty: 1, ServingUnit: "fillet", Calories: 231, Protein: 25, Carbs: 0, Fat: 14}},
	{"broccoli", domain.NutritionFacts{FoodName: "Broccoli", ServingQty: 1, ServingUnit: "cup", Calories: 25, Protein: 3, Carbs: 5, Fat: 0.3}},
	{"oatmeal", domain.NutritionFacts{FoodName: "Oatmeal", ServingQty: 1, ServingUnit: "cup", Calories: 154, Protein: 5.3, Carbs: 28, Fat: 3}},
}

// MockNutritionProvider answers from the built-in table. A query matches an
// entry when either string contains the other; anything else gets a generic
// 100 kcal serving named after the query.
type MockNutritionProvider struct{}

func (MockNutritionProvider) Search(_ context.Context, query string) ([]domain.NutritionFacts, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil, ErrEmptyQuery
	}
	for _, f := range mockFoods {
		if strings.Contains(q, f.key) || strings.Contains(f.key, q) {
			return []domain.NutritionFacts{f.facts}, nil
		}
	}
	return []domain.NutritionFacts{{
		FoodName:    strings.TrimSpace(query),
		ServingQty:  1,
		ServingUnit: "serving",
		Calories:    100,
		Protein:     5,
		Carbs:       15,
		Fat:         3,
	}}, nil
}

// FallbackNutritionProvider answers from fallback whenever primary fails.
// Wrap it around the cache, never inside it, so substitute answers are not
// stored as if they came from the real provider.
type FallbackNutritionProvider struct {
	primary  NutritionProvider
	fallback NutritionProvider
	log      *zap.Logger
}

// NewFallbackNutritionProvider creates a new FallbackNutritionProvider.
func NewFallbackNutritionProvider(primary, fallback NutritionProvider, log *zap.Logger) *FallbackNutritionProvider {
	return &FallbackNutritionProvider{primary: primary, fallback: fallback, log: log}
}

func (p *FallbackNutritionProvider) Search(ctx context.Context, query string) ([]domain.NutritionFacts, error) {
	facts, err := p.primary.Search(ctx, query)
	switch {
	case err == nil:
		return facts, nil
	case errors.Is(err, ErrEmptyQuery):
		return nil, err
	}
	p.log.Warn("nutrition lookup failed, using built-in table",
		zap.String("query", query), zap.Error(err))
	return p.fallback.Search(ctx, query)
}

// NutritionixClient queries the Nutritionix natural-language endpoint.
// Every failure is reported as ErrProviderUnavailable.
type NutritionixClient struct {
	endpoint string
	appID    string
	appKey   string
	client   *http.Client
}

// NewNutritionixClient builds a client. timeout bounds each request.
func NewNutritionixClient(endpoint, appID, appKey string, timeout time.Duration) *NutritionixClient {
	return &NutritionixClient{
		endpoint: endpoint,
		appID:    appID,
		appKey:   appKey,
		client:   &http.Client{Timeout: timeout},
	}
}

type nutritionixFood struct {
	FoodName    string  `json:"food_name"`
	ServingQty  float64 `json:"serving_qty"`
	ServingUnit string  `json:"serving_unit"`
	Calories    float64 `json:"nf_calories"`
	Protein     float64 `json:"nf_protein"`
	Carbs       float64 `json:"nf_total_carbohydrate"`
	Fat         float64 `json:"nf_total_fat"`
}

func (c *NutritionixClient) Search(ctx context.Context, query string) ([]domain.NutritionFacts, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}
	if c.appID == "" || c.appKey == "" {
		return nil, fmt.Errorf("%w: nutritionix credentials not configured", ErrProviderUnavailable)
	}

	facts, err := c.fetch(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	return facts, nil
}

func (c *NutritionixClient) fetch(ctx context.Context, query string) ([]domain.NutritionFacts, error) {
	body, err := json.Marshal(map[string]string{"query": query})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-app-id", c.appID)
	req.Header.Set("x-app-key", c.appKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nutritionix returned %s", resp.Status)
	}

	var payload struct {
		Foods []nutritionixFood `json:"foods"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode nutritionix response: %w", err)
	}

	out := make([]domain.NutritionFacts, 0, len(payload.Foods))
	for _, f := range payload.Foods {
		out = append(out, domain.NutritionFacts{
			FoodName:    f.FoodName,
			ServingQty:  f.ServingQty,
			ServingUnit: f.ServingUnit,
			Calories:    f.Calories,
			Protein:     f.Protein,
			Carbs:       f.Carbs,
			Fat:         f.Fat,
		})
	}
	return out, nil
}
