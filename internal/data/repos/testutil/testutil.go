package testutil

import (
	"context"
	"os"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/Dee1911/Aspire.can/internal/docstore"
	"github.com/Dee1911/Aspire.can/internal/docstore/gormstore"
	"github.com/Dee1911/Aspire.can/internal/docstore/memory"
	"github.com/Dee1911/Aspire.can/internal/platform/logger"
)

var (
	logOnce sync.Once
	logg    *logger.Logger
	logErr  error
)

func Logger(tb testing.TB) *logger.Logger {
	tb.Helper()
	logOnce.Do(func() {
		if os.Getenv("TEST_LOG") == "" {
			logg = logger.NewNop()
			return
		}
		logg, logErr = logger.New("test")
	})
	if logErr != nil {
		tb.Fatalf("failed to init logger: %v", logErr)
	}
	return logg
}

// Store returns a fresh document store. TEST_DOCSTORE=sqlite runs the repo
// tests against an in-memory SQLite database instead of the memory backend.
func Store(tb testing.TB) docstore.Store {
	tb.Helper()
	if os.Getenv("TEST_DOCSTORE") != "sqlite" {
		return memory.New()
	}
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	s, err := gormstore.Open(gormstore.Config{Driver: "sqlite", DSN: dsn}, Logger(tb))
	if err != nil {
		tb.Fatalf("open sqlite store: %v", err)
	}
	tb.Cleanup(func() { _ = s.Close() })
	if err := s.Migrate(context.Background()); err != nil {
		tb.Fatalf("migrate sqlite store: %v", err)
	}
	return s
}

// UID returns a user id unique to the test.
func UID() string { return "user-" + uuid.NewString()[:8] }
