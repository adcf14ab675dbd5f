package testutil

import (
	"context"
	"testing"

	"github.com/Dee1911/Aspire.can/internal/docstore"
	types "github.com/Dee1911/Aspire.can/internal/domain"
)

func StrPtr(s string) *string { return &s }
func BoolPtr(b bool) *bool { return &b }

// NewApplication returns a valid creation payload. Tasks stays nil so the
// default checklist applies when seeding is on.
func NewApplication(name, deadline string) types.NewApplication {
	return types.NewApplication{
		Name:     name,
		Deadline: deadline,
		Category: types.CategoryApplication,
		Type:     types.TierTarget,
	}
}

// SeedDoc writes raw data at path, bypassing the repos. Used to simulate
// documents written by other clients.
func SeedDoc(tb testing.TB, ctx context.Context, store docstore.Store, path string, data map[string]any) {
	tb.Helper()
	if err := store.Set(ctx, path, data); err != nil {
		tb.Fatalf("seed %s: %v", path, err)
	}
}
