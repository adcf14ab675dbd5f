package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Dee1911/Aspire.can/internal/docstore"
	"github.com/Dee1911/Aspire.can/internal/platform/apierr"
	"github.com/Dee1911/Aspire.can/internal/platform/validate"
	"github.com/Dee1911/Aspire.can/internal/recommend/prompts"
	"github.com/Dee1911/Aspire.can/internal/services"
)

// Classify maps domain sentinels onto an HTTP status and stable code.
// Unrecognised errors become 500 internal.
func Classify(err error) *apierr.Error {
	if err == nil {
		return nil
	}
	if ae, ok := apierr.As(err); ok {
		return ae
	}
	switch {
	case errors.Is(err, validate.ErrInvalid),
		errors.Is(err, prompts.ErrInvalidInput),
		errors.Is(err, docstore.ErrInvalidPath):
		return apierr.BadRequest(err)
	case errors.Is(err, services.ErrUnauthorized):
		return apierr.Unauthorized(err)
	case errors.Is(err, services.ErrNotFound), errors.Is(err, docstore.ErrNotFound):
		return apierr.NotFound(err)
	case errors.Is(err, docstore.ErrConflict):
		return apierr.Conflict(err)
	case errors.Is(err, services.ErrGenerationFailed):
		return apierr.BadGateway(err)
	}
	return apierr.Internal(err)
}

// RespondAPIError writes err's classified envelope. Internal errors and
// generation failures are reported with a generic message; the cause is
// attached to the gin context for the request logger.
func RespondAPIError(c *gin.Context, err error) {
	c.JSON(Status(err), Envelope(c, err))
}

func Status(err error) int {
	if ae := Classify(err); ae != nil && ae.Status != 0 {
		return ae.Status
	}
	return http.StatusInternalServerError
}

func Envelope(c *gin.Context, err error) ErrorEnvelope {
	ae := Classify(err)
	if ae == nil {
		ae = apierr.Internal(errors.New("unknown error"))
	}
	_ = c.Error(err)
	out := APIError{Code: ae.Code, Message: ae.Error()}
	switch ae.Status {
	case http.StatusInternalServerError:
		out.Message = "internal error"
	case http.StatusBadGateway:
		out.Message = "generation failed"
	}
	var ve *validate.Error
	if errors.As(err, &ve) {
		out.Fields = ve.Fields
	}
	var ie *prompts.InputError
	if errors.As(err, &ie) {
		out.Fields = make(map[string]string, len(ie.Missing))
		for _, f := range ie.Missing {
			out.Fields[f] = f + " is required"
		}
	}
	if ue, ok := services.AsUpdateError(err); ok {
		return ErrorEnvelope{Error: out, Current: ue.Current}
	}
	return ErrorEnvelope{Error: out}
}
