package commands

import (
	"fmt"

	"github.com/larago/larago/pkg/project"
	"github.com/larago/larago/pkg/tools"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Run the database seeders",
	Long: `Run the project's seeders from database/seeders.

Examples:
  larago seed
  larago seed --class UserSeeder
  larago seed --force`,
	Run: runSeed,
}

var (
	seedClass string
	seedForce bool
)

func init() {
	seedCmd.Flags().StringVar(&seedClass, "class", "", "Run a single seeder by name")
	seedCmd.Flags().BoolVar(&seedForce, "force", false, "Allow seeding in production")
	dbSeedCmd.Flags().StringVar(&seedClass, "class", "", "Run a single seeder by name")
	dbSeedCmd.Flags().BoolVar(&seedForce, "force", false, "Allow seeding in production")
}

func runSeed(cmd *cobra.Command, args []string) {
	layout, err := project.MustFind()
	if err != nil {
		fail(err)
	}
	v, err := loadProjectConfig(layout)
	if err != nil {
		fail(err)
	}
	if v.GetString("app.env") == "production" && !seedForce {
		fail(fmt.Errorf("refusing to seed in production without --force"))
	}

	env := []string{}
	if seedClass != "" {
		env = append(env, "LARAGO_SEEDER="+seedClass)
	}
	if !jsonOutput {
		statusInfo("Running seeders...")
	}
	if err := tools.RunInDir(cmd.Context(), layout.Root, env, "go", "run", "./database/seeders"); err != nil {
		fail(err)
	}
	if jsonOutput {
		printSuccess(map[string]any{"seeded": true, "class": seedClass})
		return
	}
	statusOK("Seeding complete")
}
