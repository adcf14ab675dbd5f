// Command aspire runs the Aspire application planner API and its
// maintenance tasks.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Dee1911/Aspire.can/internal/platform/envutil"
	"github.com/Dee1911/Aspire.can/internal/platform/logger"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "aspire",
	Short: "University application planner API",
	Long: `Aspire tracks a student's applications, deadlines and narrative and
serves generated program, admission, essay and scholarship recommendations.

Running aspire without a subcommand starts the HTTP server.`,
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log from maintenance commands")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(tokenCmd)
	rootCmd.AddCommand(catalogCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger() (*logger.Logger, error) {
	log, err := logger.New(envutil.String("LOG_MODE", "development"))
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return log, nil
}

// quietLogger is used by commands whose stdout is their output.
func quietLogger() (*logger.Logger, error) {
	if verbose {
		return newLogger()
	}
	return logger.NewNop(), nil
}
