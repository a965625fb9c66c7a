package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"alcyxob/lifetrack/internal/domain"
	"alcyxob/lifetrack/internal/service"
)

// EntryHandler serves food, exercise and work session logging.
type EntryHandler struct {
	entryService service.EntryService
}

// NewEntryHandler creates a new EntryHandler.
func NewEntryHandler(entryService service.EntryService) *EntryHandler {
	return &EntryHandler{entryService: entryService}
}

// --- Request Structs ---

type CreateFoodRequest struct {
	Name     string          `json:"name" binding:"required"`
	Calories float64         `json:"calories" binding:"gte=0"`
	Protein  float64         `json:"protein" binding:"gte=0"`
	Carbs    float64         `json:"carbs" binding:"gte=0"`
	Fat      float64         `json:"fat" binding:"gte=0"`
	Quantity float64         `json:"quantity" binding:"gte=0"`
	Unit     string          `json:"unit"`
	MealType domain.MealType `json:"mealType"`
	Date     string          `json:"date"`
	PhotoURL string          `json:"photoUrl"`
}

type CreateExerciseRequest struct {
	Name     string   `json:"name" binding:"required"`
	Category string   `json:"category"`
	Sets     int      `json:"sets" binding:"gte=0"`
	Reps     int      `json:"reps" binding:"gte=0"`
	Weight   *float64 `json:"weight"`
	Duration *float64 `json:"duration"`
	Date     string   `json:"date"`
	PhotoURL string   `json:"photoUrl"`
}

type CreateWorkSessionRequest struct {
	Task      string     `json:"task" binding:"required"`
	Category  string     `json:"category"`
	Duration  float64    `json:"duration" binding:"gte=0"`
	Completed bool       `json:"completed"`
	Date      string     `json:"date"`
	StartTime *time.Time `json:"startTime"`
	EndTime   *time.Time `json:"endTime"`
	PhotoURL  string     `json:"photoUrl"`
}

type StartWorkSessionRequest struct {
	Task     string `json:"task" binding:"required"`
	Category string `json:"category"`
}

type FinishWorkSessionRequest struct {
	Completed bool `json:"completed"`
}

type PhotoUploadRequest struct {
	EntryType   domain.EntryType `json:"entryType" binding:"required"`
	ContentType string           `json:"contentType" binding:"required"`
}

func dateQuery(c *gin.Context) service.DateQuery {
	return service.DateQuery{Date: c.Query("date"), From: c.Query("from"), To: c.Query("to")}
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return false
	}
	return true
}

// --- Food ---

// CreateFood handles POST /food.
func (h *EntryHandler) CreateFood(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	var req CreateFoodRequest
	if !bindJSON(c, &req) {
		return
	}
	entry, err := h.entryService.CreateFood(c.Request.Context(), userID, domain.FoodEntry{
		Name:     req.Name,
		Calories: req.Calories,
		Protein:  req.Protein,
		Carbs:    req.Carbs,
		Fat:      req.Fat,
		Quantity: req.Quantity,
		Unit:     req.Unit,
		MealType: req.MealType,
		Date:     req.Date,
		PhotoURL: req.PhotoURL,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// ListFood takes ?date= or ?from=&to=; with neither it lists today.
func (h *EntryHandler) ListFood(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	entries, err := h.entryService.ListFood(c.Request.Context(), userID, dateQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// DeleteFood handles DELETE /food/:id.
func (h *EntryHandler) DeleteFood(c *gin.Context) {
	h.deleteEntry(c, h.entryService.DeleteFood)
}

// --- Exercises ---

// CreateExercise handles POST /exercises.
func (h *EntryHandler) CreateExercise(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	var req CreateExerciseRequest
	if !bindJSON(c, &req) {
		return
	}
	entry, err := h.entryService.CreateExercise(c.Request.Context(), userID, domain.Exercise{
		Name:     req.Name,
		Category: req.Category,
		Sets:     req.Sets,
		Reps:     req.Reps,
		Weight:   req.Weight,
		Duration: req.Duration,
		Date:     req.Date,
		PhotoURL: req.PhotoURL,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// ListExercises takes the same date filters as ListFood.
func (h *EntryHandler) ListExercises(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	entries, err := h.entryService.ListExercises(c.Request.Context(), userID, dateQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// DeleteExercise handles DELETE /exercises/:id.
func (h *EntryHandler) DeleteExercise(c *gin.Context) {
	h.deleteEntry(c, h.entryService.DeleteExercise)
}

// --- Work sessions ---

// CreateWorkSession records a finished session logged by hand.
func (h *EntryHandler) CreateWorkSession(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	var req CreateWorkSessionRequest
	if !bindJSON(c, &req) {
		return
	}
	in := domain.WorkSession{
		Task:      req.Task,
		Category:  req.Category,
		Duration:  req.Duration,
		Completed: req.Completed,
		Date:      req.Date,
		EndTime:   req.EndTime,
		PhotoURL:  req.PhotoURL,
	}
	if req.StartTime != nil {
		in.StartTime = *req.StartTime
	}
	ws, err := h.entryService.CreateWorkSession(c.Request.Context(), userID, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ws)
}

// StartWorkSession starts a running session at the current time.
func (h *EntryHandler) StartWorkSession(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	var req StartWorkSessionRequest
	if !bindJSON(c, &req) {
		return
	}
	ws, err := h.entryService.StartWorkSession(c.Request.Context(), userID, req.Task, req.Category)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ws)
}

// FinishWorkSession stops the timer; the body is optional.
func (h *EntryHandler) FinishWorkSession(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	var req FinishWorkSessionRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}
	ws, err := h.entryService.FinishWorkSession(c.Request.Context(), userID, c.Param("id"), req.Completed)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ws)
}

// ListWorkSessions handles GET /work-sessions.
func (h *EntryHandler) ListWorkSessions(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	sessions, err := h.entryService.ListWorkSessions(c.Request.Context(), userID, dateQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessions)
}

// DeleteWorkSession handles DELETE /work-sessions/:id.
func (h *EntryHandler) DeleteWorkSession(c *gin.Context) {
	h.deleteEntry(c, h.entryService.DeleteWorkSession)
}

// --- Photos ---

// RequestPhotoUpload returns a presigned PUT URL and the object key to
// store in the entry's photoUrl.
func (h *EntryHandler) RequestPhotoUpload(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	var req PhotoUploadRequest
	if !bindJSON(c, &req) {
		return
	}
	ticket, err := h.entryService.RequestPhotoUpload(c.Request.Context(), userID, req.EntryType, req.ContentType)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ticket)
}

func (h *EntryHandler) deleteEntry(c *gin.Context, del func(ctx context.Context, userID, id string) error) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	if err := del(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
