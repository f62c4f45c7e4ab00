package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/larago/larago/internal/version"
	"github.com/larago/larago/pkg/migrate"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show information about the current project",
	Run:   runInfo,
}

var infoDetailed bool

func init() {
	infoCmd.Flags().BoolVar(&infoDetailed, "detailed", false, "Include component counts")
}

func runInfo(cmd *cobra.Command, args []string) {
	layout := mustLayout()
	v, err := loadProjectConfig(layout)
	if err != nil {
		fail(err)
	}

	out := InfoOutput{
		Name:     v.GetString("app.name"),
		Env:      v.GetString("app.env"),
		Version:  version.GetVersion(),
		Database: v.GetString("database.driver"),
	}

	migrations, err := migrate.LoadDir(layout.Migrations())
	if err == nil {
		ledger, lerr := migrate.LoadLedger(layout.MigrationLedger())
		if lerr == nil {
			applied := len(migrations) - len(migrate.Pending(migrations, ledger))
			out.Migrations.Applied = applied
			out.Migrations.Pending = len(migrations) - applied
		}
	}

	if infoDetailed {
		out.Components = map[string]int{
			"controllers": countGoFiles(layout.Controllers()),
			"models":      countGoFiles(layout.Models()),
			"middleware":  countGoFiles(layout.Middleware()),
			"requests":    countGoFiles(layout.Requests()),
			"resources":   countGoFiles(layout.Resources()),
			"jobs":        countGoFiles(layout.Jobs()),
			"events":      countGoFiles(layout.Events()),
			"listeners":   countGoFiles(layout.Listeners()),
			"seeders":     countGoFiles(layout.Seeders()),
			"factories":   countGoFiles(layout.Factories()),
		}
	}

	if jsonOutput {
		printSuccess(out)
		return
	}

	cyan := color.New(color.FgCyan).SprintFunc()
	fmt.Printf("\n  %s %s\n\n", cyan("Larago"), out.Name)
	fmt.Printf("  Environment:  %s\n", out.Env)
	fmt.Printf("  CLI version:  %s\n", out.Version)
	fmt.Printf("  Database:     %s\n", out.Database)
	fmt.Printf("  Migrations:   %d applied, %d pending\n", out.Migrations.Applied, out.Migrations.Pending)
	if infoDetailed {
		fmt.Println("\n  Components:")
		for _, kind := range []string{"controllers", "models", "middleware", "requests", "resources", "jobs", "events", "listeners", "seeders", "factories"} {
			fmt.Printf("    %-12s %d\n", kind, out.Components[kind])
		}
	}
	fmt.Println()
}

func countGoFiles(dir string) int {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0
	}
	count := 0
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			continue
		}
		if name == "main.go" {
			continue
		}
		count++
	}
	return count
}
