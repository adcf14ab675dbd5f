package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Dee1911/Aspire.can/internal/app"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the documents table (sqlite and postgres stores)",
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := newLogger()
		if err != nil {
			return err
		}
		defer log.Sync()

		cfg, err := app.LoadConfig(log)
		if err != nil {
			return err
		}
		switch cfg.Store.Driver {
		case app.StoreSQLite, app.StorePostgres:
		default:
			return fmt.Errorf("STORE_DRIVER=%s has no schema to migrate", cfg.Store.Driver)
		}
		store, err := app.OpenStore(cmd.Context(), cfg.Store, log, true)
		if err != nil {
			return err
		}
		log.Info("Migration complete", "driver", cfg.Store.Driver)
		return store.Close()
	},
}
