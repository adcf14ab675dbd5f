package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	types "github.com/Dee1911/Aspire.can/internal/domain/tracker"
	"github.com/Dee1911/Aspire.can/internal/http/response"
	"github.com/Dee1911/Aspire.can/internal/platform/apierr"
	"github.com/Dee1911/Aspire.can/internal/platform/validate"
	"github.com/Dee1911/Aspire.can/internal/services"
)

type DeadlineHandler struct {
	trackerService services.TrackerService
}

func NewDeadlineHandler(trackerService services.TrackerService) *DeadlineHandler {
	return &DeadlineHandler{trackerService: trackerService}
}

// GET /api/deadlines
func (h *DeadlineHandler) ListDeadlines(c *gin.Context) {
	out, err := h.trackerService.GetDeadlines(c.Request.Context(), userID(c))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"deadlines": out})
}

// POST /api/deadlines
func (h *DeadlineHandler) AddDeadline(c *gin.Context) {
	var d types.Deadline
	if !bindJSON(c, &d) {
		return
	}
	created, err := h.trackerService.AddDeadline(c.Request.Context(), userID(c), d)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"deadline": created})
}

// DELETE /api/deadlines/:id
func (h *DeadlineHandler) DeleteDeadline(c *gin.Context) {
	if err := h.trackerService.DeleteDeadline(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondNoContent(c)
}

// DELETE /api/deadlines?sourceId=
func (h *DeadlineHandler) DeleteDeadlinesBySource(c *gin.Context) {
	sourceID := strings.TrimSpace(c.Query("sourceId"))
	if sourceID == "" {
		response.RespondAPIError(c, apierr.BadRequest(validate.Field("sourceId", "sourceId is required")))
		return
	}
	n, err := h.trackerService.DeleteDeadlinesBySource(c.Request.Context(), userID(c), sourceID)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"deleted": n})
}
