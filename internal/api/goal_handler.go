package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"alcyxob/lifetrack/internal/domain"
	"alcyxob/lifetrack/internal/service"
)

// GoalHandler handles goal-related API requests.
type GoalHandler struct {
	goalService service.GoalService
}

// NewGoalHandler creates a new GoalHandler.
func NewGoalHandler(goalService service.GoalService) *GoalHandler {
	return &GoalHandler{goalService: goalService}
}

type CreateGoalRequest struct {
	Type     domain.Activity `json:"type" binding:"required,oneof=diet workout work"`
	Title    string          `json:"title" binding:"required"`
	Target   float64         `json:"target" binding:"required,gt=0"`
	Current  float64         `json:"current" binding:"gte=0"`
	Unit     string          `json:"unit"`
	Deadline string          `json:"deadline" binding:"required"`
}

// --- Handler Methods ---

// CreateGoal handles POST /goals.
func (h *GoalHandler) CreateGoal(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	var req CreateGoalRequest
	if !bindJSON(c, &req) {
		return
	}
	g, err := h.goalService.Create(c.Request.Context(), userID, domain.Goal{
		Type:     req.Type,
		Title:    req.Title,
		Target:   req.Target,
		Current:  req.Current,
		Unit:     req.Unit,
		Deadline: req.Deadline,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, g)
}

// ListGoals accepts an optional ?type= filter.
func (h *GoalHandler) ListGoals(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	goals, err := h.goalService.List(c.Request.Context(), userID, domain.Activity(c.Query("type")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, goals)
}

// UpdateGoal handles PATCH /goals/:id. Achieved cannot be set here.
func (h *GoalHandler) UpdateGoal(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	var patch domain.GoalPatch
	if !bindJSON(c, &patch) {
		return
	}
	g, err := h.goalService.Update(c.Request.Context(), userID, c.Param("id"), patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, g)
}

// ToggleGoal flips the achieved flag.
func (h *GoalHandler) ToggleGoal(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	g, err := h.goalService.ToggleAchieved(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, g)
}

// DeleteGoal handles DELETE /goals/:id.
func (h *GoalHandler) DeleteGoal(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	if err := h.goalService.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GoalStats handles GET /goals/stats.
func (h *GoalHandler) GoalStats(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	stats, err := h.goalService.Stats(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GoalTemplates lists suggested goals for ?type=.
func (h *GoalHandler) GoalTemplates(c *gin.Context) {
	typ := domain.Activity(c.Query("type"))
	if typ != "" && !typ.Valid() {
		abortWithError(c, http.StatusBadRequest, "type must be one of diet, workout, work")
		return
	}
	c.JSON(http.StatusOK, h.goalService.Templates(typ))
}
