package gormstore

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"

	"github.com/Dee1911/Aspire.can/internal/docstore"
	"github.com/Dee1911/Aspire.can/internal/docstore/docstoretest"
	"github.com/Dee1911/Aspire.can/internal/platform/logger"
)

func openSQLite(t *testing.T) *Store {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	s, err := Open(Config{Driver: "sqlite", DSN: dsn}, logger.NewNop())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	if err := s.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return s
}

func TestStoreSQLite(t *testing.T) {
	docstoretest.Run(t, func(t *testing.T) docstore.Store { return openSQLite(t) })
}

func TestStorePostgres(t *testing.T) {
	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("set TEST_POSTGRES_DSN to run postgres document store tests")
	}
	docstoretest.Run(t, func(t *testing.T) docstore.Store {
		s, err := Open(Config{Driver: "postgres", DSN: dsn}, logger.NewNop())
		if err != nil {
			t.Fatalf("open postgres: %v", err)
		}
		if err := s.Migrate(context.Background()); err != nil {
			t.Fatalf("migrate: %v", err)
		}
		if err := s.DB().Exec("DELETE FROM documents").Error; err != nil {
			t.Fatalf("truncate: %v", err)
		}
		t.Cleanup(func() { _ = s.Close() })
		return s
	})
}

func TestListGroupEscapesLikeWildcards(t *testing.T) {
	s := openSQLite(t)
	ctx := context.Background()
	if err := s.Set(ctx, "users/a_b/applications/x/tasks/t1", map[string]any{"n": "mine"}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Set(ctx, "users/aXb/applications/x/tasks/t2", map[string]any{"n": "theirs"}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	docs, err := s.ListGroup(ctx, "tasks", "users/a_b/")
	if err != nil {
		t.Fatalf("ListGroup: %v", err)
	}
	if len(docs) != 1 || docs[0].ID != "t1" {
		t.Fatalf("unexpected docs: %+v", docs)
	}
}

func TestRowColumns(t *testing.T) {
	row, err := newRow("users/u1/applications/a1/tasks/t1", map[string]any{"name": "x"})
	if err != nil {
		t.Fatalf("newRow: %v", err)
	}
	if row.Parent != "users/u1/applications/a1/tasks" || row.Collection != "tasks" || row.DocID != "t1" {
		t.Fatalf("unexpected row: %+v", row)
	}
}
