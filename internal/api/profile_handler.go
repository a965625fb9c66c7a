package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"alcyxob/lifetrack/internal/domain"
	"alcyxob/lifetrack/internal/service"
)

// ProfileHandler handles profile-related API requests.
type ProfileHandler struct {
	profileService service.ProfileService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profileService service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// GetProfile returns the caller's profile, or the defaults flagged as such.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	p, err := h.profileService.Get(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// UpdateProfile merges the provided fields into the profile.
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	var req domain.ProfilePatch
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	p, err := h.profileService.Update(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// ListPresets handles GET /profile/presets.
func (h *ProfileHandler) ListPresets(c *gin.Context) {
	c.JSON(http.StatusOK, h.profileService.Presets())
}

// ApplyPreset replaces the goal targets named by the preset.
func (h *ProfileHandler) ApplyPreset(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	p, err := h.profileService.ApplyPreset(c.Request.Context(), userID, c.Param("name"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}
