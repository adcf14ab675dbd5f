// Package docstoretest is a behaviour suite every docstore.Store backend
// must pass.
package docstoretest

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dee1911/Aspire.can/internal/docstore"
)

// Factory returns a fresh, empty store.
type Factory func(t *testing.T) docstore.Store

func Run(t *testing.T, newStore Factory) {
	t.Run("GetMissing", func(t *testing.T) { testGetMissing(t, newStore(t)) })
	t.Run("SetAndGet", func(t *testing.T) { testSetAndGet(t, newStore(t)) })
	t.Run("MergeKeepsUnrelatedFields", func(t *testing.T) { testMerge(t, newStore(t)) })
	t.Run("UpdateRequiresDocument", func(t *testing.T) { testUpdate(t, newStore(t)) })
	t.Run("CreateAndList", func(t *testing.T) { testCreateAndList(t, newStore(t)) })
	t.Run("ListEqualityFilter", func(t *testing.T) { testFilter(t, newStore(t)) })
	t.Run("ListGroupByPrefix", func(t *testing.T) { testListGroup(t, newStore(t)) })
	t.Run("ListGroupStaysInsideOneUser", func(t *testing.T) { testListGroupTenants(t, newStore(t)) })
	t.Run("BatchAllOrNothing", func(t *testing.T) { testBatchAtomic(t, newStore(t)) })
	t.Run("BatchCommits", func(t *testing.T) { testBatchCommits(t, newStore(t)) })
	t.Run("DeleteIsIdempotent", func(t *testing.T) { testDelete(t, newStore(t)) })
	t.Run("ConcurrentWritersLastWins", func(t *testing.T) { testConcurrentWriters(t, newStore(t)) })
}

func testGetMissing(t *testing.T, s docstore.Store) {
	_, err := s.Get(context.Background(), "users/nobody")
	require.Error(t, err)
	assert.True(t, errors.Is(err, docstore.ErrNotFound), "got %v", err)
}

func testSetAndGet(t *testing.T, s docstore.Store) {
	ctx := context.Background()
	in := map[string]any{"grade": "12", "onboardingComplete": true, "courses": "Calculus"}
	require.NoError(t, s.Set(ctx, "users/u1", in))

	doc, err := s.Get(ctx, "users/u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", doc.ID)
	assert.Equal(t, "users/u1", doc.Path)
	if diff := cmp.Diff(in, doc.Data); diff != "" {
		t.Fatalf("data mismatch (-want +got):\n%s", diff)
	}

	require.NoError(t, s.Set(ctx, "users/u1", map[string]any{"grade": "11"}))
	doc, err = s.Get(ctx, "users/u1")
	require.NoError(t, err)
	if diff := cmp.Diff(map[string]any{"grade": "11"}, doc.Data); diff != "" {
		t.Fatalf("overwrite should replace the document (-want +got):\n%s", diff)
	}
}

func testMerge(t *testing.T, s docstore.Store) {
	ctx := context.Background()
	require.NoError(t, s.Set(ctx, "users/u1", map[string]any{
		"grade":  "11",
		"nested": map[string]any{"a": "1", "b": "2"},
	}))
	require.NoError(t, s.Set(ctx, "users/u1", map[string]any{
		"average": "92",
		"nested":  map[string]any{"b": "3"},
	}, docstore.Merge()))

	doc, err := s.Get(ctx, "users/u1")
	require.NoError(t, err)
	want := map[string]any{
		"grade":   "11",
		"average": "92",
		"nested":  map[string]any{"a": "1", "b": "3"},
	}
	if diff := cmp.Diff(want, doc.Data); diff != "" {
		t.Fatalf("merge mismatch (-want +got):\n%s", diff)
	}

	require.NoError(t, s.Set(ctx, "users/u2", map[string]any{"x": "y"}, docstore.Merge()))
	_, err = s.Get(ctx, "users/u2")
	require.NoError(t, err, "merge must create a missing document")
}

func testUpdate(t *testing.T, s docstore.Store) {
	ctx := context.Background()
	err := s.Update(ctx, "users/u1/applications/a1", map[string]any{"progress": "Applied"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, docstore.ErrNotFound), "got %v", err)

	require.NoError(t, s.Set(ctx, "users/u1/applications/a1", map[string]any{"name": "UofT", "progress": "Not Started"}))
	require.NoError(t, s.Update(ctx, "users/u1/applications/a1", map[string]any{"progress": "Applied"}))
	doc, err := s.Get(ctx, "users/u1/applications/a1")
	require.NoError(t, err)
	assert.Equal(t, "UofT", doc.Data["name"])
	assert.Equal(t, "Applied", doc.Data["progress"])
}

func testCreateAndList(t *testing.T, s docstore.Store) {
	ctx := context.Background()
	id1, err := s.Create(ctx, "users/u1/deadlines", map[string]any{"name": "A"})
	require.NoError(t, err)
	id2, err := s.Create(ctx, "users/u1/deadlines", map[string]any{"name": "B"})
	require.NoError(t, err)
	require.NotEqual(t, id1, id2)
	_, err = s.Create(ctx, "users/u2/deadlines", map[string]any{"name": "other user"})
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "users/u1/deadlines/"+id1+"/nested/x", map[string]any{"deep": true}))

	docs, err := s.List(ctx, "users/u1/deadlines")
	require.NoError(t, err)
	ids := map[string]bool{}
	for _, d := range docs {
		ids[d.ID] = true
	}
	assert.Equal(t, map[string]bool{id1: true, id2: true}, ids)
}

func testFilter(t *testing.T, s docstore.Store) {
	ctx := context.Background()
	for _, src := range []string{"app1", "app1", "app2"} {
		_, err := s.Create(ctx, "users/u1/deadlines", map[string]any{"sourceId": src})
		require.NoError(t, err)
	}
	_, err := s.Create(ctx, "users/u1/deadlines", map[string]any{"name": "no source"})
	require.NoError(t, err)

	docs, err := s.List(ctx, "users/u1/deadlines", docstore.Eq("sourceId", "app1"))
	require.NoError(t, err)
	assert.Len(t, docs, 2)
	for _, d := range docs {
		assert.Equal(t, "app1", d.Data["sourceId"])
	}
}

func testListGroup(t *testing.T, s docstore.Store) {
	ctx := context.Background()
	paths := []string{
		"users/u1/applications/a1/tasks/t1",
		"users/u1/applications/a1/tasks/t2",
		"users/u1/applications/a2/tasks/t3",
		"users/u2/applications/a9/tasks/t9",
		"users/u1/applications/a1/notes/content",
	}
	for _, p := range paths {
		require.NoError(t, s.Set(ctx, p, map[string]any{"name": docstore.Base(p)}))
	}
	docs, err := s.ListGroup(ctx, "tasks", "users/u1/")
	require.NoError(t, err)
	got := map[string]bool{}
	for _, d := range docs {
		got[d.Path] = true
	}
	assert.Equal(t, map[string]bool{
		"users/u1/applications/a1/tasks/t1": true,
		"users/u1/applications/a1/tasks/t2": true,
		"users/u1/applications/a2/tasks/t3": true,
	}, got)
}

func testListGroupTenants(t *testing.T, s docstore.Store) {
	ctx := context.Background()
	for _, p := range []string{
		"users/u1/applications/a1/tasks/t1",
		"users/u1/applications/a1/notes/content",
		"users/u10/applications/b1/tasks/t1",
		"users/u2/applications/c1/tasks/t1",
		"users/u0/applications/d1/tasks/t1",
	} {
		require.NoError(t, s.Set(ctx, p, map[string]any{"name": docstore.Base(p)}))
	}

	for uid, want := range map[string][]string{
		"u1":  {"users/u1/applications/a1/tasks/t1"},
		"u10": {"users/u10/applications/b1/tasks/t1"},
		"u2":  {"users/u2/applications/c1/tasks/t1"},
		"u3":  nil,
	} {
		docs, err := s.ListGroup(ctx, "tasks", "users/"+uid+"/applications/")
		require.NoError(t, err)
		var got []string
		for _, d := range docs {
			got = append(got, d.Path)
		}
		assert.ElementsMatch(t, want, got, "user %s", uid)
	}
}

func testBatchAtomic(t *testing.T, s docstore.Store) {
	ctx := context.Background()
	require.NoError(t, s.Set(ctx, "users/u1/applications/a1", map[string]any{"name": "keep"}))

	err := s.Batch().
		Set("users/u1/applications/a2", map[string]any{"name": "new"}).
		Delete("users/u1/applications/a1").
		Update("users/u1/applications/missing", map[string]any{"name": "x"}).
		Commit(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, docstore.ErrNotFound), "got %v", err)

	_, err = s.Get(ctx, "users/u1/applications/a2")
	assert.True(t, errors.Is(err, docstore.ErrNotFound), "failed batch must not create documents")
	_, err = s.Get(ctx, "users/u1/applications/a1")
	assert.NoError(t, err, "failed batch must not delete documents")
}

func testBatchCommits(t *testing.T, s docstore.Store) {
	ctx := context.Background()
	b := s.Batch()
	b.Set("users/u1/applications/a1", map[string]any{"name": "UBC"})
	b.Set("users/u1/applications/a1/tasks/t1", map[string]any{"name": "Pay fee", "completed": false})
	b.Set("users/u1/applications/a1/notes/content", map[string]any{"text": ""}, docstore.Merge())
	assert.Equal(t, 3, b.Len())
	require.NoError(t, b.Commit(ctx))

	tasks, err := s.List(ctx, "users/u1/applications/a1/tasks")
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Pay fee", tasks[0].Data["name"])
	assert.Equal(t, false, tasks[0].Data["completed"])

	notes, err := s.Get(ctx, "users/u1/applications/a1/notes/content")
	require.NoError(t, err)
	assert.Equal(t, "", notes.Data["text"])
}

func testDelete(t *testing.T, s docstore.Store) {
	ctx := context.Background()
	require.NoError(t, s.Set(ctx, "users/u1/deadlines/d1", map[string]any{"name": "x"}))
	require.NoError(t, s.Delete(ctx, "users/u1/deadlines/d1"))
	require.NoError(t, s.Delete(ctx, "users/u1/deadlines/d1"))
	_, err := s.Get(ctx, "users/u1/deadlines/d1")
	assert.True(t, errors.Is(err, docstore.ErrNotFound))
}

func testConcurrentWriters(t *testing.T, s docstore.Store) {
	ctx := context.Background()
	p := "users/u1/applications/a1"
	require.NoError(t, s.Set(ctx, p, map[string]any{"progress": "Not Started"}))

	var wg sync.WaitGroup
	for _, v := range []string{"Applied", "Completed"} {
		wg.Add(1)
		go func(v string) {
			defer wg.Done()
			assert.NoError(t, s.Update(ctx, p, map[string]any{"progress": v}))
		}(v)
	}
	wg.Wait()

	doc, err := s.Get(ctx, p)
	require.NoError(t, err)
	assert.Contains(t, []any{"Applied", "Completed"}, doc.Data["progress"])
}
