package ctxutil

import (
	"context"
	"testing"
)

func TestUserID(t *testing.T) {
	ctx := context.Background()
	if got := UserID(ctx); got != "" {
		t.Fatalf("expected empty user id, got %q", got)
	}
	ctx = WithRequestData(ctx, &RequestData{UserID: "u-1"})
	if got := UserID(ctx); got != "u-1" {
		t.Fatalf("UserID: got %q", got)
	}
}

func TestTraceLogFields(t *testing.T) {
	if _, ok := TraceFrom(context.Background()); ok {
		t.Fatal("expected no trace on a bare context")
	}
	ctx := WithTrace(context.Background(), Trace{RequestID: "r", TraceID: "t"})
	tr, ok := TraceFrom(ctx)
	if !ok {
		t.Fatal("trace not found")
	}
	kv := tr.LogFields()
	if len(kv) != 4 || kv[0] != "request_id" || kv[1] != "r" || kv[2] != "trace_id" || kv[3] != "t" {
		t.Fatalf("unexpected fields: %v", kv)
	}
}
