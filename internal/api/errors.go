package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"alcyxob/lifetrack/internal/service"
)

// respondError maps service errors onto HTTP statuses. Anything unknown is
// a 500 with a generic message; the detail goes to the request log.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidationFailed):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNotFound):
		abortWithError(c, http.StatusNotFound, "Resource not found")
	case errors.Is(err, service.ErrAuthenticationFailed):
		abortWithError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrUserAlreadyExists),
		errors.Is(err, service.ErrSessionNotRunning),
		errors.Is(err, service.ErrReportNotUploaded),
		errors.Is(err, service.ErrReportNotAnalyzed):
		abortWithError(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrAnalysisFailed):
		abortWithError(c, http.StatusBadGateway, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		abortWithError(c, http.StatusGatewayTimeout, "Request timed out")
	case errors.Is(err, context.Canceled):
		// Client went away; nobody reads the body.
		c.AbortWithStatus(499)
	default:
		_ = c.Error(err)
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}
