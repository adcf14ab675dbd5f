package handlers

import (
	"github.com/gin-gonic/gin"

	types "github.com/Dee1911/Aspire.can/internal/domain/user"
	"github.com/Dee1911/Aspire.can/internal/http/response"
	"github.com/Dee1911/Aspire.can/internal/services"
)

type ProfileHandler struct {
	profileService services.ProfileService
}

func NewProfileHandler(profileService services.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// GET /api/profile
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	p, err := h.profileService.GetProfile(c.Request.Context(), userID(c))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"profile": p})
}

// PATCH /api/profile
func (h *ProfileHandler) SaveProfile(c *gin.Context) {
	var patch types.ProfilePatch
	if !bindJSON(c, &patch) {
		return
	}
	p, err := h.profileService.SaveProfile(c.Request.Context(), userID(c), patch)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"profile": p})
}
