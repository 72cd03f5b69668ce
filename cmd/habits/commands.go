package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/HendryAvila/habits/internal/config"
	"github.com/HendryAvila/habits/internal/fixtures"
	habitsserver "github.com/HendryAvila/habits/internal/server"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// seedCmd loads the predefined habits without entering the menu.
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the five predefined example habits",
	Long: `Adds the five example habits with four weeks of history starting 2024-01-01.
Habits whose name already exists are skipped, never overwritten.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := store.Load()
		if err != nil {
			return err
		}

		added, skipped := fixtures.Seed(c)
		if len(added) > 0 {
			if err := store.Save(c); err != nil {
				return err
			}
		}
		logger.Info("seeded fixtures", zap.Strings("added", added), zap.Strings("skipped", skipped))

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Added %d: %s\n", len(added), orNone(added))
		fmt.Fprintf(out, "Skipped %d (already exist): %s\n", len(skipped), orNone(skipped))
		return nil
	},
}

// serveCmd runs the MCP server on stdin/stdout.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server (stdio transport)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s := habitsserver.New(store, loc, logger)
		logger.Info("serving MCP over stdio", zap.String("data", store.Path()))
		return server.ServeStdio(s)
	},
}

var forceInit bool

// initCmd writes the effective settings to the config file so they can be
// edited by hand.
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the current settings",
	Long: `Writes the settings in effect (defaults, plus any HABITS_* environment
overrides) to the config file given by --config, or ~/.habits/config.yaml.
An existing file is left alone unless --force is set.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			path = config.DefaultPath()
		}
		if _, err := os.Stat(path); err == nil && !forceInit {
			return fmt.Errorf("config file %s already exists (use --force to overwrite)", path)
		} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("checking config file: %w", err)
		}

		if err := cfg.SaveToFile(path); err != nil {
			return err
		}
		logger.Info("config written", zap.String("path", path))
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "habits v%s\n", habitsserver.Version)
	},
}

func orNone(names []string) string {
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ", ")
}
