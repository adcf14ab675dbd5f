package tracker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Dee1911/Aspire.can/internal/data/repos/testutil"
	types "github.com/Dee1911/Aspire.can/internal/domain"
)

func TestDeadlineRepoRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewDeadlineRepo(testutil.Store(t), testutil.Logger(t))
	uid := testutil.UID()

	d := types.Deadline{Date: "2026-01-15", Name: "OUAC submission", Type: types.DeadlineProgram}
	id, err := repo.AddDeadline(ctx, uid, d)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	got, err := repo.GetDeadlines(ctx, uid)
	require.NoError(t, err)
	require.Len(t, got, 1)
	d.ID = id
	require.Equal(t, d, got[0])
}

func TestDeadlineRepoDeleteByID(t *testing.T) {
	ctx := context.Background()
	repo := NewDeadlineRepo(testutil.Store(t), testutil.Logger(t))
	uid := testutil.UID()

	keep, err := repo.AddDeadline(ctx, uid, types.Deadline{Date: "2026-02-01", Name: "keep", Type: types.DeadlineTask})
	require.NoError(t, err)
	drop, err := repo.AddDeadline(ctx, uid, types.Deadline{Date: "2026-02-02", Name: "drop", Type: types.DeadlineTask})
	require.NoError(t, err)

	n, err := repo.DeleteDeadline(ctx, uid, drop, false)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	got, err := repo.GetDeadlines(ctx, uid)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, keep, got[0].ID)

	_, err = repo.DeleteDeadline(ctx, uid, drop, false)
	require.NoError(t, err)
}

func TestDeadlineRepoDeleteBySourceID(t *testing.T) {
	ctx := context.Background()
	repo := NewDeadlineRepo(testutil.Store(t), testutil.Logger(t))
	uid := testutil.UID()

	for _, src := range []string{"app-1", "app-1", "app-2", ""} {
		_, err := repo.AddDeadline(ctx, uid, types.Deadline{Date: "2026-03-01", Name: "d", Type: types.DeadlineTask, SourceID: src})
		require.NoError(t, err)
	}

	n, err := repo.DeleteDeadline(ctx, uid, "app-1", true)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	got, err := repo.GetDeadlines(ctx, uid)
	require.NoError(t, err)
	require.Len(t, got, 2)
	for _, d := range got {
		require.NotEqual(t, "app-1", d.SourceID)
	}

	n, err = repo.DeleteDeadline(ctx, uid, "missing", true)
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestDeadlineRepoIsolatesUsers(t *testing.T) {
	ctx := context.Background()
	repo := NewDeadlineRepo(testutil.Store(t), testutil.Logger(t))
	a, b := testutil.UID(), testutil.UID()

	_, err := repo.AddDeadline(ctx, a, types.Deadline{Date: "2026-03-01", Name: "a", Type: types.DeadlineTask, SourceID: "shared"})
	require.NoError(t, err)
	_, err = repo.DeleteDeadline(ctx, b, "shared", true)
	require.NoError(t, err)

	got, err := repo.GetDeadlines(ctx, a)
	require.NoError(t, err)
	require.Len(t, got, 1)
}
