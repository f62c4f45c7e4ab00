package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/larago/larago/pkg/migrate"
	"github.com/larago/larago/pkg/project"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run pending database migrations",
	Run:   runMigrate,
}

var migrateDownCmd = &cobra.Command{
	Use:   "migrate:down",
	Short: "Roll back applied migrations",
	Run:   runMigrateDown,
}

var migrateResetCmd = &cobra.Command{
	Use:   "migrate:reset",
	Short: "Roll back every applied migration",
	Run: func(cmd *cobra.Command, args []string) {
		migrateSteps = 0
		runMigrateDown(cmd, args)
	},
}

var migrateRefreshCmd = &cobra.Command{
	Use:   "migrate:refresh",
	Short: "Roll back everything, then migrate from scratch",
	Run: func(cmd *cobra.Command, args []string) {
		migrateSteps = 0
		runMigrateDown(cmd, args)
		runMigrate(cmd, args)
	},
}

var migrateStatusCmd = &cobra.Command{
	Use:   "migrate:status",
	Short: "Show the status of each migration",
	Run:   runMigrateStatus,
}

var migrateSteps int

func init() {
	migrateDownCmd.Flags().IntVar(&migrateSteps, "steps", 1, "Number of migrations to roll back")
}

func loadMigrationState() (*project.Layout, []migrate.Migration, *migrate.Ledger) {
	layout, err := project.MustFind()
	if err != nil {
		fail(err)
	}
	migrations, err := migrate.LoadDir(layout.Migrations())
	if err != nil {
		fail(err)
	}
	ledger, err := migrate.LoadLedger(layout.MigrationLedger())
	if err != nil {
		fail(err)
	}
	return layout, migrations, ledger
}

func runMigrate(cmd *cobra.Command, args []string) {
	_, migrations, ledger := loadMigrationState()
	pending := migrate.Pending(migrations, ledger)
	if len(pending) == 0 {
		if jsonOutput {
			printSuccess(MigrateOutput{})
		} else {
			statusInfo("Nothing to migrate")
		}
		return
	}

	conn := mustDBConnection()
	batch := ledger.NextBatch()
	var applied []string
	for _, m := range pending {
		if m.Up == "" {
			fail(fmt.Errorf("migration %s has an empty up section", m.Name))
		}
		if _, err := runSQL(cmd.Context(), conn, true, m.Up); err != nil {
			fail(fmt.Errorf("migration %s failed: %w", m.Name, err))
		}
		ledger.MarkApplied(m.Name, batch)
		if err := ledger.Save(); err != nil {
			fail(err)
		}
		applied = append(applied, m.Name)
		if !jsonOutput {
			statusOK("Migrated %s", m.Name)
		}
	}

	if jsonOutput {
		printSuccess(MigrateOutput{Applied: applied, Batch: batch})
	}
}

func runMigrateDown(cmd *cobra.Command, args []string) {
	_, migrations, ledger := loadMigrationState()
	names := ledger.Rollback(migrateSteps)
	if len(names) == 0 {
		if jsonOutput {
			printSuccess(MigrateOutput{})
		} else {
			statusInfo("Nothing to roll back")
		}
		return
	}

	conn := mustDBConnection()
	var rolledBack []string
	for _, name := range names {
		m, ok := migrate.Find(migrations, name)
		if !ok {
			fail(fmt.Errorf("applied migration %s has no file in database/migrations", name))
		}
		if m.Down == "" {
			fail(fmt.Errorf("migration %s has no down section", name))
		}
		if _, err := runSQL(cmd.Context(), conn, true, m.Down); err != nil {
			fail(fmt.Errorf("rollback of %s failed: %w", name, err))
		}
		ledger.MarkRolledBack(name)
		if err := ledger.Save(); err != nil {
			fail(err)
		}
		rolledBack = append(rolledBack, name)
		if !jsonOutput {
			statusOK("Rolled back %s", name)
		}
	}

	if jsonOutput {
		printSuccess(MigrateOutput{RolledBack: rolledBack})
	}
}

func runMigrateStatus(cmd *cobra.Command, args []string) {
	_, migrations, ledger := loadMigrationState()
	batches := map[string]int{}
	for _, r := range ledger.Records {
		batches[r.Name] = r.Batch
	}

	var rows []MigrationStatusOutput
	for _, m := range migrations {
		batch, applied := batches[m.Name]
		rows = append(rows, MigrationStatusOutput{Name: m.Name, Applied: applied, Batch: batch})
	}

	if jsonOutput {
		printSuccess(rows)
		return
	}

	if len(rows) == 0 {
		statusInfo("No migrations found")
		return
	}
	green := color.New(color.FgGreen).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	for _, row := range rows {
		if row.Applied {
			fmt.Printf("  %s %s (batch %d)\n", green("✓"), row.Name, row.Batch)
		} else {
			fmt.Printf("  %s %s\n", yellow("pending"), row.Name)
		}
	}
}
