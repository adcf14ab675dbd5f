package memory

import (
	"testing"

	"go.uber.org/goleak"

	"github.com/Dee1911/Aspire.can/internal/docstore"
	"github.com/Dee1911/Aspire.can/internal/docstore/docstoretest"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestStore(t *testing.T) {
	docstoretest.Run(t, func(t *testing.T) docstore.Store { return New() })
}

func TestStoredDataDoesNotAliasCaller(t *testing.T) {
	s := New()
	in := map[string]any{"ecs": []any{map[string]any{"id": "e1"}}}
	b := s.Batch()
	b.Set("users/u1/storyBuilder/data", in)
	if err := b.Commit(t.Context()); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	in["ecs"].([]any)[0].(map[string]any)["id"] = "mutated"

	doc, err := s.Get(t.Context(), "users/u1/storyBuilder/data")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	got := doc.Data["ecs"].([]any)[0].(map[string]any)["id"]
	if got != "e1" {
		t.Fatalf("stored document aliased caller map: id=%v", got)
	}
}

func TestRejectsInvalidPaths(t *testing.T) {
	s := New()
	if _, err := s.Get(t.Context(), "users"); err == nil {
		t.Fatalf("expected error for collection path passed to Get")
	}
	if _, err := s.List(t.Context(), "users/u1"); err == nil {
		t.Fatalf("expected error for document path passed to List")
	}
	if err := s.Batch().Set("users//x", nil).Commit(t.Context()); err == nil {
		t.Fatalf("expected error for empty segment")
	}
}
