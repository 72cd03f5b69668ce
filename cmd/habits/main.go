// habits: a personal habit tracker with streak analytics.
//
// Usage:
//
//	habits           # Interactive menu
//	habits seed      # Load the five predefined example habits
//	habits serve     # Start MCP server (stdio transport)
//	habits version   # Print the version
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/HendryAvila/habits/internal/config"
	"github.com/HendryAvila/habits/internal/logging"
	"github.com/HendryAvila/habits/internal/shell"
	"github.com/HendryAvila/habits/internal/storage"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags
	configPath string
	verbose    bool

	// Set up by PersistentPreRunE for every command but version.
	cfg    *config.Config
	loc    *time.Location
	logger *zap.Logger
	store  storage.Store
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "habits",
	Short: "Track daily and weekly habits and their streaks",
	Long: `habits records completions of your daily and weekly habits and tells you
how long your current and longest streaks are.

Run without arguments to start the interactive menu.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" {
			return nil
		}

		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if loc, err = cfg.Location(); err != nil {
			return err
		}
		if logger, err = logging.New(cfg.LogLevel, verbose); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		if store, err = storage.Open(cfg, logger); err != nil {
			return err
		}

		logger.Debug("configuration loaded",
			zap.String("backend", cfg.Backend),
			zap.String("data", store.Path()),
			zap.String("timezone", loc.String()))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if store != nil {
			if err := store.Close(); err != nil {
				logger.Warn("closing store", zap.Error(err))
			}
		}
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return shell.New(store, cmd.InOrStdin(), cmd.OutOrStdout(), loc, logger).Run(ctx)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: ~/.habits/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	initCmd.Flags().BoolVar(&forceInit, "force", false, "Overwrite an existing config file")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
