package main

import (
	"github.com/spf13/cobra"

	"github.com/Dee1911/Aspire.can/internal/app"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API until SIGINT or SIGTERM",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	log.Info("Loading configuration...")
	cfg, err := app.LoadConfig(log)
	if err != nil {
		return err
	}
	a, err := app.New(cmd.Context(), log, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			log.Warn("Shutdown cleanup failed", "error", err)
		}
	}()
	return a.Run(cmd.Context())
}
