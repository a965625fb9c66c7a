package api

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"testing"

	"alcyxob/lifetrack/internal/domain"
	"alcyxob/lifetrack/internal/repository"
	"alcyxob/lifetrack/internal/service"
)

// memGoalRepo is an in-memory GoalRepository so the real goal service
// runs behind the handlers.
type memGoalRepo struct {
	mu    sync.Mutex
	goals map[string]domain.Goal
}

func newMemGoalRepo(goals ...domain.Goal) *memGoalRepo {
	r := &memGoalRepo{goals: map[string]domain.Goal{}}
	for _, g := range goals {
		r.goals[g.ID] = g
	}
	return r
}

func (r *memGoalRepo) Create(_ context.Context, g *domain.Goal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.goals[g.ID] = *g
	return nil
}

func (r *memGoalRepo) GetByID(_ context.Context, userID, id string) (*domain.Goal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.goals[id]
	if !ok || g.UserID != userID {
		return nil, repository.ErrNotFound
	}
	return &g, nil
}

func (r *memGoalRepo) ListByUser(_ context.Context, userID string) ([]domain.Goal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.Goal{}
	for _, g := range r.goals {
		if g.UserID == userID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (r *memGoalRepo) Update(_ context.Context, userID, id string, patch domain.GoalPatch) (*domain.Goal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.goals[id]
	if !ok || g.UserID != userID {
		return nil, repository.ErrNotFound
	}
	g = g.Apply(patch)
	r.goals[id] = g
	return &g, nil
}

func (r *memGoalRepo) Delete(_ context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.goals[id]
	if !ok || g.UserID != userID {
		return repository.ErrNotFound
	}
	delete(r.goals, id)
	return nil
}

func TestGoalHandlers(t *testing.T) {
	seed := []domain.Goal{
		{ID: "g1", UserID: "u1", Type: domain.ActivityWorkout, Title: "Run 50 km", Target: 50, Current: 10, Unit: "km", Deadline: "2099-01-01"},
		{ID: "g2", UserID: "u2", Type: domain.ActivityDiet, Title: "not yours", Target: 1, Deadline: "2099-01-01"},
	}

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
		check  func(t *testing.T, body []byte, repo *memGoalRepo)
	}{
		{
			name: "create", method: http.MethodPost, path: "/api/v1/goals",
			body: `{"type":"diet","title":"Eat greens","target":30,"deadline":"2099-02-01"}`,
			want: http.StatusCreated,
			check: func(t *testing.T, body []byte, _ *memGoalRepo) {
				var g domain.Goal
				if err := json.Unmarshal(body, &g); err != nil || g.ID == "" || g.UserID != "u1" || g.Achieved {
					t.Errorf("created = %s (%v)", body, err)
				}
			},
		},
		{name: "create unknown type", method: http.MethodPost, path: "/api/v1/goals", body: `{"type":"sleep","title":"x","target":1,"deadline":"2099-02-01"}`, want: http.StatusBadRequest},
		{name: "create zero target", method: http.MethodPost, path: "/api/v1/goals", body: `{"type":"diet","title":"x","target":0,"deadline":"2099-02-01"}`, want: http.StatusBadRequest},
		{
			name: "patch progress", method: http.MethodPatch, path: "/api/v1/goals/g1", body: `{"current":25}`,
			want: http.StatusOK,
			check: func(t *testing.T, _ []byte, repo *memGoalRepo) {
				if g := repo.goals["g1"]; g.Current != 25 || g.Title != "Run 50 km" {
					t.Errorf("stored = %+v", g)
				}
			},
		},
		{
			name: "patch achieved rejected", method: http.MethodPatch, path: "/api/v1/goals/g1", body: `{"achieved":true}`,
			want: http.StatusBadRequest,
			check: func(t *testing.T, _ []byte, repo *memGoalRepo) {
				if repo.goals["g1"].Achieved {
					t.Error("achieved was written through PATCH")
				}
			},
		},
		{name: "patch empty", method: http.MethodPatch, path: "/api/v1/goals/g1", body: `{}`, want: http.StatusBadRequest},
		{name: "patch other user", method: http.MethodPatch, path: "/api/v1/goals/g2", body: `{"current":1}`, want: http.StatusNotFound},
		{
			name: "toggle", method: http.MethodPost, path: "/api/v1/goals/g1/toggle", want: http.StatusOK,
			check: func(t *testing.T, _ []byte, repo *memGoalRepo) {
				if !repo.goals["g1"].Achieved {
					t.Error("toggle did not mark the goal achieved")
				}
			},
		},
		{
			name: "list by type", method: http.MethodGet, path: "/api/v1/goals?type=workout", want: http.StatusOK,
			check: func(t *testing.T, body []byte, _ *memGoalRepo) {
				var goals []domain.Goal
				if err := json.Unmarshal(body, &goals); err != nil || len(goals) != 1 || goals[0].ID != "g1" {
					t.Errorf("goals = %s (%v)", body, err)
				}
			},
		},
		{name: "list bad type", method: http.MethodGet, path: "/api/v1/goals?type=sleep", want: http.StatusBadRequest},
		{name: "stats", method: http.MethodGet, path: "/api/v1/goals/stats", want: http.StatusOK},
		{
			name: "templates", method: http.MethodGet, path: "/api/v1/goals/templates?type=work", want: http.StatusOK,
			check: func(t *testing.T, body []byte, _ *memGoalRepo) {
				var tpls []service.GoalTemplate
				if err := json.Unmarshal(body, &tpls); err != nil || len(tpls) == 0 {
					t.Fatalf("templates = %s (%v)", body, err)
				}
				for _, tpl := range tpls {
					if tpl.Type != domain.ActivityWork {
						t.Errorf("template of type %q in work list", tpl.Type)
					}
				}
			},
		},
		{name: "templates bad type", method: http.MethodGet, path: "/api/v1/goals/templates?type=sleep", want: http.StatusBadRequest},
		{
			name: "delete", method: http.MethodDelete, path: "/api/v1/goals/g1", want: http.StatusNoContent,
			check: func(t *testing.T, _ []byte, repo *memGoalRepo) {
				if _, ok := repo.goals["g1"]; ok {
					t.Error("goal still stored")
				}
			},
		},
		{name: "delete other user", method: http.MethodDelete, path: "/api/v1/goals/g2", want: http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMemGoalRepo(seed...)
			w := serveAPI(t, Services{Goal: service.NewGoalService(repo)}, tt.method, tt.path, tt.body)
			if w.Code != tt.want {
				t.Fatalf("status = %d, want %d (%s)", w.Code, tt.want, w.Body.String())
			}
			if tt.check != nil {
				tt.check(t, w.Body.Bytes(), repo)
			}
		})
	}
}
