// Package cli implements the wordlookup command line.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/wordlookup/internal/app"
	"github.com/heartmarshall/wordlookup/internal/config"
)

// configPath is the --config flag; empty defers to CONFIG_PATH.
var configPath string

// NewRootCmd builds the wordlookup command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           app.Name,
		Short:         "Look up English words in a public dictionary",
		Long:          "wordlookup serves a word-lookup widget over HTTP and looks words up from the terminal.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file (default $CONFIG_PATH or ./config.yaml)")

	root.AddCommand(
		newServeCmd(),
		newLookupCmd(),
		newHistoryCmd(),
		newMigrateCmd(),
		newVersionCmd(),
	)
	return root
}

// Execute runs the root command and returns its error.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

// loadApp loads configuration, sets up logging and builds the App.
// The caller must Close the returned App.
func loadApp(ctx context.Context, adjust func(*config.Config)) (*app.App, *slog.Logger, error) {
	path := configPath
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	cfg, err := config.LoadFrom(path)
	if err != nil {
		return nil, nil, err
	}
	if adjust != nil {
		adjust(cfg)
	}

	logger := app.NewLogger(cfg.Log)

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("init app: %w", err)
	}
	return a, logger, nil
}
