package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"alcyxob/lifetrack/internal/service"
)

// ReportHandler serves nutrition lookup and medical report analysis.
type ReportHandler struct {
	nutritionService service.NutritionService
	reportService    service.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(nutritionService service.NutritionService, reportService service.ReportService) *ReportHandler {
	return &ReportHandler{nutritionService: nutritionService, reportService: reportService}
}

type ReportUploadRequest struct {
	ContentType string `json:"contentType" binding:"required"`
}

type PlanRequest struct {
	Answers map[string]string `json:"answers"`
	Apply   bool              `json:"apply"`
}

// SearchNutrition looks up per-serving facts for ?q=.
func (h *ReportHandler) SearchNutrition(c *gin.Context) {
	facts, err := h.nutritionService.Lookup(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, facts)
}

// RequestReportUpload creates the report record and returns a presigned
// upload URL for the file.
func (h *ReportHandler) RequestReportUpload(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	var req ReportUploadRequest
	if !bindJSON(c, &req) {
		return
	}
	up, err := h.reportService.RequestUpload(c.Request.Context(), userID, req.ContentType)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, up)
}

// GetReport handles GET /reports/:id.
func (h *ReportHandler) GetReport(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	r, err := h.reportService.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// AnalyzeReport runs the analyzer once the client has uploaded the file.
func (h *ReportHandler) AnalyzeReport(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	r, err := h.reportService.Analyze(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// PersonalizePlan adjusts the recommendations using the follow-up answers.
func (h *ReportHandler) PersonalizePlan(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	var req PlanRequest
	if !bindJSON(c, &req) {
		return
	}
	plan, err := h.reportService.PersonalizePlan(c.Request.Context(), userID, c.Param("id"), req.Answers, req.Apply)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

// DeleteReport removes the record and its stored file.
func (h *ReportHandler) DeleteReport(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	if err := h.reportService.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
