package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	types "github.com/Dee1911/Aspire.can/internal/domain/tracker"
	"github.com/Dee1911/Aspire.can/internal/http/response"
	"github.com/Dee1911/Aspire.can/internal/services"
)

type ApplicationHandler struct {
	trackerService services.TrackerService
	now            func() time.Time
}

func NewApplicationHandler(trackerService services.TrackerService) *ApplicationHandler {
	return &ApplicationHandler{trackerService: trackerService, now: time.Now}
}

// GET /api/applications?detail=true
func (h *ApplicationHandler) ListApplications(c *gin.Context) {
	detail, _ := strconv.ParseBool(c.Query("detail"))
	apps, err := h.trackerService.GetApplications(c.Request.Context(), userID(c), detail)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"applications": apps})
}

// GET /api/applications/:id
func (h *ApplicationHandler) GetApplication(c *gin.Context) {
	app, err := h.trackerService.GetApplication(c.Request.Context(), userID(c), c.Param("id"))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"application": app})
}

// POST /api/applications
func (h *ApplicationHandler) AddApplication(c *gin.Context) {
	var in types.NewApplication
	if !bindJSON(c, &in) {
		return
	}
	app, err := h.trackerService.AddApplication(c.Request.Context(), userID(c), in)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"application": app})
}

// PATCH /api/applications/:id
// A failed update answers with the stored application under "current".
func (h *ApplicationHandler) UpdateApplication(c *gin.Context) {
	var patch types.ApplicationPatch
	if !bindJSON(c, &patch) {
		return
	}
	app, err := h.trackerService.UpdateApplication(c.Request.Context(), userID(c), c.Param("id"), patch)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"application": app})
}

// DELETE /api/applications/:id
func (h *ApplicationHandler) DeleteApplication(c *gin.Context) {
	if err := h.trackerService.DeleteApplication(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondNoContent(c)
}

// POST /api/applications/:id/tasks
func (h *ApplicationHandler) AddTask(c *gin.Context) {
	var task types.Task
	if !bindJSON(c, &task) {
		return
	}
	created, err := h.trackerService.AddTask(c.Request.Context(), userID(c), c.Param("id"), task)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"task": created})
}

// PATCH /api/applications/:id/tasks/:taskId
func (h *ApplicationHandler) UpdateTask(c *gin.Context) {
	var patch types.TaskPatch
	if !bindJSON(c, &patch) {
		return
	}
	if err := h.trackerService.UpdateTask(c.Request.Context(), userID(c), c.Param("id"), c.Param("taskId"), patch); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondNoContent(c)
}

// DELETE /api/applications/:id/tasks/:taskId
func (h *ApplicationHandler) DeleteTask(c *gin.Context) {
	if err := h.trackerService.DeleteTask(c.Request.Context(), userID(c), c.Param("id"), c.Param("taskId")); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondNoContent(c)
}

// GET /api/dashboard/upcoming?limit=3
func (h *ApplicationHandler) Upcoming(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	apps, err := h.trackerService.UpcomingDeadlines(c.Request.Context(), userID(c), h.now(), limit)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"applications": apps})
}
