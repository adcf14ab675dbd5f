package middleware

import (
	"encoding/hex"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Dee1911/Aspire.can/internal/platform/ctxutil"
)

const (
	headerRequestID = "X-Request-Id"
	headerTraceID   = "X-Trace-Id"

	maxRequestIDLen = 128
)

// AttachTraceContext records request and trace ids on the request context
// and echoes them in response headers. It runs after otelgin so the server
// span, when sampled, supplies the trace id.
func AttachTraceContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		reqID := strings.TrimSpace(c.GetHeader(headerRequestID))
		if reqID == "" || len(reqID) > maxRequestIDLen {
			reqID = uuid.NewString()
		}

		t := ctxutil.Trace{RequestID: reqID}
		if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
			t.TraceID = sc.TraceID().String()
			t.SpanID = sc.SpanID().String()
			trace.SpanFromContext(ctx).SetAttributes(attribute.String("aspire.request_id", reqID))
		} else if h := strings.TrimSpace(c.GetHeader(headerTraceID)); validTraceID(h) {
			t.TraceID = strings.ToLower(h)
		} else {
			id := uuid.New()
			t.TraceID = hex.EncodeToString(id[:])
		}

		c.Request = c.Request.WithContext(ctxutil.WithTrace(ctx, t))
		c.Header(headerRequestID, t.RequestID)
		c.Header(headerTraceID, t.TraceID)
		c.Next()
	}
}

func validTraceID(s string) bool {
	if len(s) != 32 {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}
