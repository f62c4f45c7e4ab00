package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/larago/larago/pkg/migrate"
	"github.com/larago/larago/pkg/project"
	"github.com/larago/larago/pkg/tools"
	"github.com/spf13/cobra"
)

var dbStatusCmd = &cobra.Command{
	Use:   "db:status",
	Short: "Check the database connection",
	Run: func(cmd *cobra.Command, args []string) {
		conn := mustDBConnection()
		if _, err := runSQL(cmd.Context(), conn, false, "SELECT 1;"); err != nil {
			fail(err)
		}
		if jsonOutput {
			printSuccess(map[string]any{"driver": conn.Driver, "database": conn.Database, "connected": true})
			return
		}
		statusOK("Connected to %s database %q on %s:%d", conn.Driver, conn.Database, conn.Host, conn.Port)
	},
}

var dbCreateCmd = &cobra.Command{
	Use:   "db:create",
	Short: "Create the configured database",
	Run: func(cmd *cobra.Command, args []string) {
		conn := mustDBConnection()
		if err := createDatabase(cmd.Context(), conn); err != nil {
			fail(err)
		}
		if jsonOutput {
			printSuccess(map[string]any{"database": conn.Database, "created": true})
			return
		}
		statusOK("Database %q created", conn.Database)
	},
}

var dbDropCmd = &cobra.Command{
	Use:   "db:drop",
	Short: "Drop the configured database",
	Run: func(cmd *cobra.Command, args []string) {
		conn := mustDBConnection()
		if !dbForce && !confirmDestructive(fmt.Sprintf("Drop database %q? All data will be lost.", conn.Database)) {
			statusWarn("Aborted")
			return
		}
		if err := dropDatabase(cmd.Context(), conn); err != nil {
			fail(err)
		}
		if jsonOutput {
			printSuccess(map[string]any{"database": conn.Database, "dropped": true})
			return
		}
		statusOK("Database %q dropped", conn.Database)
	},
}

var dbResetCmd = &cobra.Command{
	Use:   "db:reset",
	Short: "Drop and recreate the database, then run migrations",
	Run: func(cmd *cobra.Command, args []string) {
		conn := mustDBConnection()
		if !dbForce && !confirmDestructive(fmt.Sprintf("Reset database %q? All data will be lost.", conn.Database)) {
			statusWarn("Aborted")
			return
		}
		ctx := cmd.Context()
		if err := dropDatabase(ctx, conn); err != nil {
			fail(err)
		}
		if err := createDatabase(ctx, conn); err != nil {
			fail(err)
		}
		// The recreated database has no tables, so the applied history is
		// stale. Clear it or every migration would read as already run.
		layout, err := project.MustFind()
		if err != nil {
			fail(err)
		}
		ledger, err := migrate.LoadLedger(layout.MigrationLedger())
		if err != nil {
			fail(err)
		}
		if err := ledger.Reset(); err != nil {
			fail(err)
		}
		if !jsonOutput {
			statusOK("Database %q recreated", conn.Database)
		}
		runMigrate(cmd, args)
	},
}

var dbSeedCmd = &cobra.Command{
	Use:   "db:seed",
	Short: "Seed the database",
	Run: func(cmd *cobra.Command, args []string) {
		runSeed(cmd, args)
	},
}

var dbForce bool

func init() {
	dbDropCmd.Flags().BoolVar(&dbForce, "force", false, "Skip the confirmation prompt")
	dbResetCmd.Flags().BoolVar(&dbForce, "force", false, "Skip the confirmation prompt")
}

func mustDBConnection() dbConnection {
	layout, err := project.MustFind()
	if err != nil {
		fail(err)
	}
	v, err := loadProjectConfig(layout)
	if err != nil {
		fail(err)
	}
	conn := dbConnectionFrom(v)
	if conn.Database == "" {
		fail(fmt.Errorf("database.database is not set in larago.toml"))
	}
	return conn
}

// runSQL pipes a statement to the configured database client.
func runSQL(ctx context.Context, conn dbConnection, withDatabase bool, sql string) (string, error) {
	name, baseArgs, err := conn.clientCommand(withDatabase)
	if err != nil {
		return "", err
	}
	if !tools.CommandExists(name) {
		return "", fmt.Errorf("database client %q not found on PATH", name)
	}
	return tools.RunWithInput(ctx, "", sql, conn.clientEnv(), name, baseArgs...)
}

// createDatabase creates the configured database. File-backed databases are
// touched on disk, server databases via the driver's CREATE dialect.
func createDatabase(ctx context.Context, conn dbConnection) error {
	if conn.isFileDatabase() {
		f, err := os.OpenFile(conn.Database, os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return fmt.Errorf("failed to create database file: %w", err)
		}
		return f.Close()
	}
	stmt, err := conn.createStatement()
	if err != nil {
		return err
	}
	_, err = runSQL(ctx, conn, false, stmt)
	return err
}

// dropDatabase drops the configured database.
func dropDatabase(ctx context.Context, conn dbConnection) error {
	if conn.isFileDatabase() {
		if err := os.Remove(conn.Database); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove database file: %w", err)
		}
		return nil
	}
	stmt, err := conn.dropStatement()
	if err != nil {
		return err
	}
	_, err = runSQL(ctx, conn, false, stmt)
	return err
}

// confirmDestructive prompts before an irreversible operation.
func confirmDestructive(message string) bool {
	var confirmed bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(message).
				Affirmative("Yes").
				Negative("No").
				Value(&confirmed),
		),
	)
	if err := form.Run(); err != nil {
		return false
	}
	return confirmed
}
