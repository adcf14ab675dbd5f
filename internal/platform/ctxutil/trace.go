package ctxutil

import "context"

type traceKey struct{}

// Trace correlates one request across log lines, spans and response headers.
type Trace struct {
	RequestID string
	TraceID   string
	SpanID    string
}

func WithTrace(ctx context.Context, t Trace) context.Context {
	return context.WithValue(ctx, traceKey{}, t)
}

func TraceFrom(ctx context.Context) (Trace, bool) {
	t, ok := ctx.Value(traceKey{}).(Trace)
	return t, ok
}

// LogFields returns logger key/value pairs for the ids that are set.
func (t Trace) LogFields() []interface{} {
	var kv []interface{}
	if t.RequestID != "" {
		kv = append(kv, "request_id", t.RequestID)
	}
	if t.TraceID != "" {
		kv = append(kv, "trace_id", t.TraceID)
	}
	if t.SpanID != "" {
		kv = append(kv, "span_id", t.SpanID)
	}
	return kv
}
