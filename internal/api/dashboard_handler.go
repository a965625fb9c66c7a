package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"alcyxob/lifetrack/internal/service"
)

// DashboardHandler serves the aggregated read views.
type DashboardHandler struct {
	dashboardService service.DashboardService
	calendarService  service.CalendarService
	now              func() time.Time
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService service.DashboardService, calendarService service.CalendarService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService, calendarService: calendarService, now: time.Now}
}

// GetDashboard godoc
// @Summary Daily dashboard
// @Description Totals, goal progress, streaks and the weekly chart for ?date= (default today).
// A view built with some sources missing lists them in "degraded". When every entry
// source failed the zeroed view is returned with 503.
// @Tags Dashboard
// @Produce json
// @Router /dashboard [get]
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	d, err := h.dashboardService.Load(c.Request.Context(), userID, c.Query("date"))
	if errors.Is(err, service.ErrAllSourcesFailed) {
		c.JSON(http.StatusServiceUnavailable, d)
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// GetCalendar takes ?year=&month=, defaulting to the current month.
func (h *DashboardHandler) GetCalendar(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	now := h.now().UTC()
	year, err := intQuery(c, "year", now.Year())
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	month, err := intQuery(c, "month", int(now.Month()))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	cal, err := h.calendarService.Month(c.Request.Context(), userID, year, month)
	if errors.Is(err, service.ErrAllSourcesFailed) {
		c.JSON(http.StatusServiceUnavailable, cal)
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cal)
}

func intQuery(c *gin.Context, key string, def int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New(key + " must be an integer")
	}
	return v, nil
}
