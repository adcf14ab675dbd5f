package services

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Dee1911/Aspire.can/internal/catalog"
	"github.com/Dee1911/Aspire.can/internal/data/repos"
	"github.com/Dee1911/Aspire.can/internal/data/repos/testutil"
)

type fixture struct {
	tracker TrackerService
	story   StoryService
	profile ProfileService
	catalog *catalog.Catalog
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	log := testutil.Logger(t)
	store := testutil.Store(t)
	cat, err := catalog.Default(log)
	require.NoError(t, err)
	appRepo := repos.NewApplicationRepo(store, log, repos.ApplicationRepoOptions{SeedDefaultChecklist: true})
	story := NewStoryService(log, repos.NewStoryBuilderRepo(store, log), cat)
	return fixture{
		tracker: NewTrackerService(log, repos.NewDeadlineRepo(store, log), appRepo),
		story:   story,
		profile: NewProfileService(log, repos.NewUserProfileRepo(store, log)),
		catalog: cat,
	}
}

type generateCall struct {
	System     string
	User       string
	SchemaName string
}

// fakeGenerator returns canned output and records every call.
type fakeGenerator struct {
	mu    sync.Mutex
	out   map[string]any
	err   error
	calls []generateCall
}

func (f *fakeGenerator) GenerateJSON(ctx context.Context, system, user, schemaName string, schema map[string]any) (map[string]any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, generateCall{System: system, User: user, SchemaName: schemaName})
	return f.out, f.err
}

func (f *fakeGenerator) Provider() string { return "fake" }

func (f *fakeGenerator) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}
