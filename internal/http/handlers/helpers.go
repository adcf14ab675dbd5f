package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/Dee1911/Aspire.can/internal/http/response"
	"github.com/Dee1911/Aspire.can/internal/platform/apierr"
	"github.com/Dee1911/Aspire.can/internal/platform/ctxutil"
)

func userID(c *gin.Context) string {
	return ctxutil.UserID(c.Request.Context())
}

// bindJSON decodes the request body into dst, writing a 400 on failure.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.RespondAPIError(c, apierr.BadRequest(err))
		return false
	}
	return true
}
