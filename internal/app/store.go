package app

import (
	"context"
	"fmt"

	"github.com/Dee1911/Aspire.can/internal/docstore"
	"github.com/Dee1911/Aspire.can/internal/docstore/firestore"
	"github.com/Dee1911/Aspire.can/internal/docstore/gormstore"
	"github.com/Dee1911/Aspire.can/internal/docstore/memory"
	"github.com/Dee1911/Aspire.can/internal/platform/logger"
)

// OpenStore connects the configured document store. Relational backends are
// migrated when migrate is set.
func OpenStore(ctx context.Context, cfg StoreConfig, log *logger.Logger, migrate bool) (docstore.Store, error) {
	switch cfg.Driver {
	case StoreMemory:
		log.Warn("Using in-memory document store; data is lost on restart")
		return memory.New(), nil
	case StoreSQLite, StorePostgres:
		gcfg := gormstore.Config{Driver: cfg.Driver, DSN: cfg.SQLitePath}
		if cfg.Driver == StorePostgres {
			gcfg.DSN = cfg.Postgres.URL()
		}
		s, err := gormstore.Open(gcfg, log)
		if err != nil {
			return nil, err
		}
		if migrate {
			if err := s.Migrate(ctx); err != nil {
				_ = s.Close()
				return nil, fmt.Errorf("%s automigrate: %w", cfg.Driver, err)
			}
		}
		return s, nil
	case StoreFirestore:
		return firestore.Open(ctx, firestore.Config{
			ProjectID:       cfg.FirestoreProjectID,
			CredentialsFile: cfg.FirestoreCredentialsFile,
			DatabaseID:      cfg.FirestoreDatabaseID,
		}, log)
	default:
		return nil, fmt.Errorf("unsupported STORE_DRIVER %q", cfg.Driver)
	}
}
