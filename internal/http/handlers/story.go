package handlers

import (
	"github.com/gin-gonic/gin"

	types "github.com/Dee1911/Aspire.can/internal/domain/user"
	"github.com/Dee1911/Aspire.can/internal/http/response"
	"github.com/Dee1911/Aspire.can/internal/services"
)

type StoryHandler struct {
	storyService services.StoryService
}

func NewStoryHandler(storyService services.StoryService) *StoryHandler {
	return &StoryHandler{storyService: storyService}
}

// GET /api/story
func (h *StoryHandler) GetStory(c *gin.Context) {
	data, err := h.storyService.GetStory(c.Request.Context(), userID(c))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"story": data})
}

// PATCH /api/story
func (h *StoryHandler) SaveStory(c *gin.Context) {
	var patch types.StoryPatch
	if !bindJSON(c, &patch) {
		return
	}
	data, err := h.storyService.SaveStory(c.Request.Context(), userID(c), patch)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"story": data})
}

// POST /api/story/ecs
func (h *StoryHandler) AddExtracurricular(c *gin.Context) {
	var ec types.ExtracurricularStory
	if !bindJSON(c, &ec) {
		return
	}
	id, err := h.storyService.AddExtracurricular(c.Request.Context(), userID(c), ec)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	ec.ID = id
	response.RespondCreated(c, gin.H{"ec": ec})
}

// POST /api/story/ecs/from-catalog
// body: { "activityName": "..." }
func (h *StoryHandler) AddActivityFromCatalog(c *gin.Context) {
	var req struct {
		ActivityName string `json:"activityName" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}
	ec, err := h.storyService.AddActivityFromCatalog(c.Request.Context(), userID(c), req.ActivityName)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"ec": ec})
}
