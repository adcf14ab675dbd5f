package firestore

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"

	"github.com/Dee1911/Aspire.can/internal/docstore"
	"github.com/Dee1911/Aspire.can/internal/docstore/docstoretest"
	"github.com/Dee1911/Aspire.can/internal/platform/logger"
)

// Each factory call gets its own project id so emulator state never leaks
// between subtests.
func TestStoreEmulator(t *testing.T) {
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("set FIRESTORE_EMULATOR_HOST to run firestore document store tests")
	}
	docstoretest.Run(t, func(t *testing.T) docstore.Store {
		s, err := Open(context.Background(), Config{ProjectID: "aspire-test-" + uuid.NewString()[:8]}, logger.NewNop())
		if err != nil {
			t.Fatalf("open: %v", err)
		}
		t.Cleanup(func() { _ = s.Close() })
		return s
	})
}

func TestRelativePath(t *testing.T) {
	got := relativePath("projects/p/databases/(default)/documents/users/u1/deadlines/d1")
	if got != "users/u1/deadlines/d1" {
		t.Fatalf("relativePath: got %q", got)
	}
}

func TestUpdatesFlattenNestedMaps(t *testing.T) {
	ups := updates(map[string]any{"nested": map[string]any{"b": "3"}, "top": "x"})
	if len(ups) != 2 {
		t.Fatalf("expected 2 updates, got %d", len(ups))
	}
	for _, u := range ups {
		switch len(u.FieldPath) {
		case 1:
			if u.FieldPath[0] != "top" {
				t.Fatalf("unexpected path %v", u.FieldPath)
			}
		case 2:
			if u.FieldPath[0] != "nested" || u.FieldPath[1] != "b" || u.Value != "3" {
				t.Fatalf("unexpected nested update %+v", u)
			}
		default:
			t.Fatalf("unexpected update %+v", u)
		}
	}
}

func TestGroupBoundsScopeToOwningDocument(t *testing.T) {
	cases := []struct {
		prefix, lo string
		ok         bool
	}{
		{"users/u1/applications/", "users/u1", true},
		{"users/u1/", "users/u1", true},
		{"users/u1/applications/a1/tasks", "users/u1/applications/a1", true},
		{"users", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		lo, hi, ok := groupBounds(tc.prefix)
		if ok != tc.ok || lo != tc.lo {
			t.Fatalf("groupBounds(%q) = %q, %v; want %q, %v", tc.prefix, lo, ok, tc.lo, tc.ok)
		}
		if !ok {
			continue
		}
		if want := tc.lo + "/\uf8ff/\uf8ff"; hi != want {
			t.Fatalf("groupBounds(%q) hi = %q, want %q", tc.prefix, hi, want)
		}
	}
}
