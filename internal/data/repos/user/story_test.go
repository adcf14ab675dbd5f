package user

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/Dee1911/Aspire.can/internal/data/docpath"
	"github.com/Dee1911/Aspire.can/internal/data/repos/testutil"
	"github.com/Dee1911/Aspire.can/internal/docstore"
	types "github.com/Dee1911/Aspire.can/internal/domain"
	"github.com/Dee1911/Aspire.can/internal/platform/validate"
)

func TestStoryBuilderRepoDefaults(t *testing.T) {
	ctx := context.Background()
	repo := NewStoryBuilderRepo(testutil.Store(t), testutil.Logger(t))

	got, err := repo.GetStoryBuilderData(ctx, testutil.UID())
	require.NoError(t, err)
	require.NotNil(t, got.Ecs)
	require.Empty(t, got.Ecs)
	require.Empty(t, got.PersonalStory)
}

func TestStoryBuilderRepoCoercesMalformedDocument(t *testing.T) {
	ctx := context.Background()
	store := testutil.Store(t)
	repo := NewStoryBuilderRepo(store, testutil.Logger(t))
	uid := testutil.UID()

	testutil.SeedDoc(t, ctx, store, docpath.Story(uid), map[string]any{
		"personalStory": "grew up by the lake",
		"skills":        42,
		"ecs":           "not a list",
	})
	got, err := repo.GetStoryBuilderData(ctx, uid)
	require.NoError(t, err)
	require.Equal(t, "grew up by the lake", got.PersonalStory)
	require.Empty(t, got.Skills)
	require.NotNil(t, got.Ecs)
	require.Empty(t, got.Ecs)

	testutil.SeedDoc(t, ctx, store, docpath.Story(uid), map[string]any{
		"ecs": []any{"junk", map[string]any{"id": "a", "name": "Robotics"}},
	})
	got, err = repo.GetStoryBuilderData(ctx, uid)
	require.NoError(t, err)
	require.Equal(t, []types.ExtracurricularStory{{ID: "a", Name: "Robotics"}}, got.Ecs)
}

func TestStoryBuilderRepoSaveMerges(t *testing.T) {
	ctx := context.Background()
	repo := NewStoryBuilderRepo(testutil.Store(t), testutil.Logger(t))
	uid := testutil.UID()

	ecs := []types.ExtracurricularStory{
		{ID: "b", Name: "Debate", Role: "Captain"},
		{ID: "a", Name: "Robotics"},
	}
	require.NoError(t, repo.SaveStoryBuilderData(ctx, uid, types.StoryPatch{
		PersonalStory: testutil.StrPtr("story"),
		Ecs:           &ecs,
	}))
	require.NoError(t, repo.SaveStoryBuilderData(ctx, uid, types.StoryPatch{Skills: testutil.StrPtr("leadership")}))

	got, err := repo.GetStoryBuilderData(ctx, uid)
	require.NoError(t, err)
	want := types.StoryBuilderData{
		PersonalStory: "story",
		Skills:        "leadership",
		Ecs:           ecs,
	}
	if diff := cmp.Diff(want, *got); diff != "" {
		t.Fatalf("story mismatch (-want +got):\n%s", diff)
	}
}

func TestStoryBuilderRepoRejectsDuplicateEcIDs(t *testing.T) {
	ctx := context.Background()
	repo := NewStoryBuilderRepo(testutil.Store(t), testutil.Logger(t))

	ecs := []types.ExtracurricularStory{{ID: "a"}, {ID: "a"}}
	err := repo.SaveStoryBuilderData(ctx, testutil.UID(), types.StoryPatch{Ecs: &ecs})
	require.True(t, errors.Is(err, validate.ErrInvalid), "got %v", err)
}

func TestStoryBuilderRepoAddExtracurricular(t *testing.T) {
	ctx := context.Background()
	repo := NewStoryBuilderRepo(testutil.Store(t), testutil.Logger(t))
	uid := testutil.UID()

	first, err := repo.AddExtracurricular(ctx, uid, types.ExtracurricularStory{Name: "Robotics"})
	require.NoError(t, err)
	require.NotEmpty(t, first)
	_, err = repo.AddExtracurricular(ctx, uid, types.ExtracurricularStory{ID: "debate", Name: "Debate"})
	require.NoError(t, err)

	_, err = repo.AddExtracurricular(ctx, uid, types.ExtracurricularStory{ID: "debate"})
	require.ErrorIs(t, err, docstore.ErrConflict)

	got, err := repo.GetStoryBuilderData(ctx, uid)
	require.NoError(t, err)
	require.Len(t, got.Ecs, 2)
	require.Equal(t, first, got.Ecs[0].ID)
	require.Equal(t, "debate", got.Ecs[1].ID)
}

func TestStoryBuilderRepoConcurrentAddsKeepEveryEntry(t *testing.T) {
	ctx := context.Background()
	repo := NewStoryBuilderRepo(testutil.Store(t), testutil.Logger(t))
	uid := testutil.UID()

	const n = 16
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := repo.AddExtracurricular(ctx, uid, types.ExtracurricularStory{Name: fmt.Sprintf("club %d", i)})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	got, err := repo.GetStoryBuilderData(ctx, uid)
	require.NoError(t, err)
	require.Len(t, got.Ecs, n)
}
