// Package commands provides the CLI commands for Larago.
package commands

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/larago/larago/internal/version"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "larago",
	Short: "Larago - A Laravel-inspired web framework for Go",
	Long: `Larago is the command-line companion for Laravel-inspired Go applications:
project scaffolding, component generation, migrations, and the day-to-day
development workflow.

Quick Start:
  larago new myapp              Create a new Larago project
  larago serve                  Start the development server
  larago make:model User        Generate a model
  larago migrate                Run pending migrations
  larago db:seed                Seed the database

Run 'larago <command> --help' for details on any command.`,
	Version: version.GetVersion(),
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format (for automation)")

	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		color.NoColor = true
	}

	// Commands
	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(makeControllerCmd)
	rootCmd.AddCommand(makeModelCmd)
	rootCmd.AddCommand(makeMigrationCmd)
	rootCmd.AddCommand(makeMiddlewareCmd)
	rootCmd.AddCommand(makeRequestCmd)
	rootCmd.AddCommand(makeResourceCmd)
	rootCmd.AddCommand(makeSeederCmd)
	rootCmd.AddCommand(makeFactoryCmd)
	rootCmd.AddCommand(makeJobCmd)
	rootCmd.AddCommand(makeEventCmd)
	rootCmd.AddCommand(makeListenerCmd)
	rootCmd.AddCommand(dbStatusCmd)
	rootCmd.AddCommand(dbCreateCmd)
	rootCmd.AddCommand(dbDropCmd)
	rootCmd.AddCommand(dbResetCmd)
	rootCmd.AddCommand(dbSeedCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(migrateDownCmd)
	rootCmd.AddCommand(migrateResetCmd)
	rootCmd.AddCommand(migrateRefreshCmd)
	rootCmd.AddCommand(migrateStatusCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(routeListCmd)
	rootCmd.AddCommand(routeClearCmd)
	rootCmd.AddCommand(routeCacheCmd)
	rootCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(cacheForgetCmd)
	rootCmd.AddCommand(cacheConfigCmd)
	rootCmd.AddCommand(queueWorkCmd)
	rootCmd.AddCommand(queueFailedCmd)
	rootCmd.AddCommand(queueRetryCmd)
	rootCmd.AddCommand(queueFlushCmd)
	rootCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configGetCmd)
	rootCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configGenerateKeyCmd)
	rootCmd.AddCommand(configValidateCmd)
	rootCmd.AddCommand(configResetCmd)
	rootCmd.AddCommand(packageInstallCmd)
	rootCmd.AddCommand(packageRemoveCmd)
	rootCmd.AddCommand(packageListCmd)
	rootCmd.AddCommand(packageUpdateCmd)
	rootCmd.AddCommand(testCmd)
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(deployCmd)
	rootCmd.AddCommand(infoCmd)
}
