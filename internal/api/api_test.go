package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"

	"alcyxob/lifetrack/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testSecret = "test-secret"

func signToken(t *testing.T, uid string, exp time.Time) string {
	t.Helper()
	claims := &service.Claims{
		UserID:           uid,
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(exp)},
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}

func TestAuthMiddleware(t *testing.T) {
	r := gin.New()
	r.GET("/me", AuthMiddleware(testSecret), func(c *gin.Context) {
		uid, _ := getUserIDFromContext(c)
		c.String(http.StatusOK, uid)
	})

	tests := []struct {
		name   string
		header string
		want   int
		body   string
	}{
		{"missing header", "", http.StatusUnauthorized, ""},
		{"wrong scheme", "Token abc", http.StatusUnauthorized, ""},
		{"garbage token", "Bearer not-a-jwt", http.StatusUnauthorized, ""},
		{"expired", "Bearer " + signToken(t, "u1", time.Now().Add(-time.Minute)), http.StatusUnauthorized, ""},
		{"valid", "Bearer " + signToken(t, "u1", time.Now().Add(time.Hour)), http.StatusOK, "u1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tt.want {
				t.Fatalf("status = %d, want %d (%s)", w.Code, tt.want, w.Body.String())
			}
			if tt.body != "" && w.Body.String() != tt.body {
				t.Errorf("body = %q, want %q", w.Body.String(), tt.body)
			}
		})
	}
}

func TestCORSPreflight(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"https://app.example.com"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "https://app.example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent || w.Header().Get("Access-Control-Allow-Origin") != "https://app.example.com" {
		t.Fatalf("preflight = %d %v", w.Code, w.Header())
	}

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("unlisted origin echoed: %q", got)
	}
}

func TestRateLimiter(t *testing.T) {
	done := make(chan struct{})
	defer close(done)

	r := gin.New()
	r.Use(RateLimiter(2, time.Hour, done))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 3)
	for i := range codes {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
		codes[i] = w.Code
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Fatalf("codes = %v", codes)
	}
}

type stubDashboard struct {
	d   *service.Dashboard
	err error
}

func (s stubDashboard) Load(context.Context, string, string) (*service.Dashboard, error) {
	return s.d, s.err
}

type stubCalendar struct {
	year, month int
}

func (s *stubCalendar) Month(_ context.Context, _ string, year, month int) (*service.CalendarMonth, error) {
	s.year, s.month = year, month
	if month > 12 {
		return nil, fmt.Errorf("%w: bad month", service.ErrValidationFailed)
	}
	return &service.CalendarMonth{Year: year, Month: month}, nil
}

func dashboardRouter(h *DashboardHandler) *gin.Engine {
	r := gin.New()
	withUser := func(c *gin.Context) { c.Set(ContextUserIDKey, "u1") }
	r.GET("/dashboard", withUser, h.GetDashboard)
	r.GET("/calendar", withUser, h.GetCalendar)
	return r
}

func TestGetDashboardStatuses(t *testing.T) {
	tests := []struct {
		name string
		stub stubDashboard
		want int
	}{
		{"ok", stubDashboard{d: &service.Dashboard{Date: "2025-03-10", Degraded: []string{"goals"}}}, http.StatusOK},
		{"all failed", stubDashboard{d: &service.Dashboard{Date: "2025-03-10"}, err: service.ErrAllSourcesFailed}, http.StatusServiceUnavailable},
		{"bad date", stubDashboard{err: fmt.Errorf("%w: bad date", service.ErrValidationFailed)}, http.StatusBadRequest},
		{"timeout", stubDashboard{err: context.DeadlineExceeded}, http.StatusGatewayTimeout},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := dashboardRouter(NewDashboardHandler(tt.stub, &stubCalendar{}))
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/dashboard?date=2025-03-10", nil))
			if w.Code != tt.want {
				t.Fatalf("status = %d, want %d (%s)", w.Code, tt.want, w.Body.String())
			}
			if tt.stub.d != nil {
				var got service.Dashboard
				if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil || got.Date != "2025-03-10" {
					t.Errorf("body = %s (%v)", w.Body.String(), err)
				}
			}
		})
	}
}

func TestGetCalendarQuery(t *testing.T) {
	cal := &stubCalendar{}
	h := NewDashboardHandler(stubDashboard{}, cal)
	h.now = func() time.Time { return time.Date(2025, time.July, 4, 12, 0, 0, 0, time.UTC) }
	r := dashboardRouter(h)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/calendar", nil))
	if w.Code != http.StatusOK || cal.year != 2025 || cal.month != 7 {
		t.Fatalf("default month: %d, %d-%d", w.Code, cal.year, cal.month)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/calendar?year=2024&month=abc", nil))
	if w.Code != http.StatusBadRequest {
		t.Errorf("non-numeric month status = %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/calendar?year=2024&month=13", nil))
	if w.Code != http.StatusBadRequest || !strings.Contains(w.Body.String(), "bad month") {
		t.Errorf("month 13 = %d %s", w.Code, w.Body.String())
	}
}

// serveAPI sends one authenticated request for u1 through the full route table.
func serveAPI(t *testing.T, svc Services, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	r := gin.New()
	SetupRoutes(r, testSecret, svc)

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+signToken(t, "u1", time.Now().Add(time.Hour)))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
