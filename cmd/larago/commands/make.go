package commands

import (
	"github.com/larago/larago/pkg/generator"
	"github.com/larago/larago/pkg/project"
	"github.com/spf13/cobra"
)

var makeControllerCmd = &cobra.Command{
	Use:   "make:controller [name]",
	Short: "Generate a controller",
	Long: `Generate an HTTP controller in app/http/controllers.

Examples:
  larago make:controller User
  larago make:controller User --resource
  larago make:controller Post --api --model Post`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		emitGenerated(cmd.Name(), generator.Spec{
			Kind:     generator.KindController,
			Name:     args[0],
			Force:    makeForce,
			Resource: controllerResource,
			API:      controllerAPI,
			Model:    controllerModel,
		})
	},
}

var makeModelCmd = &cobra.Command{
	Use:   "make:model [name]",
	Short: "Generate a model",
	Long: `Generate a model in app/models, optionally with its migration,
factory and seeder.

Examples:
  larago make:model User
  larago make:model User --migration
  larago make:model Post --migration --factory --seeder`,
	Args: cobra.ExactArgs(1),
	Run:  runMakeModel,
}

var makeMigrationCmd = &cobra.Command{
	Use:   "make:migration [name]",
	Short: "Generate a database migration",
	Long: `Generate a timestamped SQL migration in database/migrations.

Examples:
  larago make:migration create_users_table --create users
  larago make:migration add_status_to_orders --table orders`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		emitGenerated(cmd.Name(), generator.Spec{
			Kind:      generator.KindMigration,
			Name:      args[0],
			Force:     makeForce,
			Table:     migrationTable,
			CreateTab: migrationCreate,
		})
	},
}

var makeMiddlewareCmd = &cobra.Command{
	Use:   "make:middleware [name]",
	Short: "Generate HTTP middleware",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		emitGenerated(cmd.Name(), generator.Spec{
			Kind:  generator.KindMiddleware,
			Name:  args[0],
			Force: makeForce,
		})
	},
}

var makeRequestCmd = &cobra.Command{
	Use:   "make:request [name]",
	Short: "Generate a form request",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		emitGenerated(cmd.Name(), generator.Spec{
			Kind:  generator.KindRequest,
			Name:  args[0],
			Force: makeForce,
		})
	},
}

var makeResourceCmd = &cobra.Command{
	Use:   "make:resource [name]",
	Short: "Generate an API resource",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		emitGenerated(cmd.Name(), generator.Spec{
			Kind:       generator.KindResource,
			Name:       args[0],
			Force:      makeForce,
			Collection: resourceCollection,
		})
	},
}

var makeSeederCmd = &cobra.Command{
	Use:   "make:seeder [name]",
	Short: "Generate a database seeder",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		emitGenerated(cmd.Name(), generator.Spec{
			Kind:  generator.KindSeeder,
			Name:  args[0],
			Force: makeForce,
			Model: seederModel,
		})
	},
}

var makeFactoryCmd = &cobra.Command{
	Use:   "make:factory [name]",
	Short: "Generate a model factory",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		emitGenerated(cmd.Name(), generator.Spec{
			Kind:  generator.KindFactory,
			Name:  args[0],
			Force: makeForce,
			Model: factoryModel,
		})
	},
}

var makeJobCmd = &cobra.Command{
	Use:   "make:job [name]",
	Short: "Generate a queueable job",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		emitGenerated(cmd.Name(), generator.Spec{
			Kind:  generator.KindJob,
			Name:  args[0],
			Force: makeForce,
			Sync:  jobSync,
		})
	},
}

var makeEventCmd = &cobra.Command{
	Use:   "make:event [name]",
	Short: "Generate an event",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		emitGenerated(cmd.Name(), generator.Spec{
			Kind:  generator.KindEvent,
			Name:  args[0],
			Force: makeForce,
		})
	},
}

var makeListenerCmd = &cobra.Command{
	Use:   "make:listener [name]",
	Short: "Generate an event listener",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		emitGenerated(cmd.Name(), generator.Spec{
			Kind:  generator.KindListener,
			Name:  args[0],
			Force: makeForce,
			Event: listenerEvent,
		})
	},
}

var (
	makeForce          bool
	controllerResource bool
	controllerAPI      bool
	controllerModel    string
	modelMigration     bool
	modelFactory       bool
	modelSeeder        bool
	migrationTable     string
	migrationCreate    string
	resourceCollection bool
	seederModel        string
	factoryModel       string
	jobSync            bool
	listenerEvent      string
)

func init() {
	for _, cmd := range []*cobra.Command{
		makeControllerCmd, makeModelCmd, makeMigrationCmd, makeMiddlewareCmd,
		makeRequestCmd, makeResourceCmd, makeSeederCmd, makeFactoryCmd,
		makeJobCmd, makeEventCmd, makeListenerCmd,
	} {
		cmd.Flags().BoolVar(&makeForce, "force", false, "Overwrite the target if it exists")
	}

	makeControllerCmd.Flags().BoolVar(&controllerResource, "resource", false, "Generate the full resource action set")
	makeControllerCmd.Flags().BoolVar(&controllerAPI, "api", false, "Generate API actions only")
	makeControllerCmd.Flags().StringVar(&controllerModel, "model", "", "Associated model name")
	makeModelCmd.Flags().BoolVar(&modelMigration, "migration", false, "Also generate a create-table migration")
	makeModelCmd.Flags().BoolVar(&modelFactory, "factory", false, "Also generate a factory")
	makeModelCmd.Flags().BoolVar(&modelSeeder, "seeder", false, "Also generate a seeder")
	makeMigrationCmd.Flags().StringVar(&migrationTable, "table", "", "Table the migration alters")
	makeMigrationCmd.Flags().StringVar(&migrationCreate, "create", "", "Table the migration creates")
	makeResourceCmd.Flags().BoolVar(&resourceCollection, "collection", false, "Include a collection wrapper")
	makeSeederCmd.Flags().StringVar(&seederModel, "model", "", "Model the seeder populates")
	makeFactoryCmd.Flags().StringVar(&factoryModel, "model", "", "Model the factory builds")
	makeJobCmd.Flags().BoolVar(&jobSync, "sync", false, "Dispatch the job synchronously")
	makeListenerCmd.Flags().StringVar(&listenerEvent, "event", "", "Event type the listener handles")
}

// runMakeModel generates the model first, then its companions in a fixed
// order. Each generation is existence-checked on its own; the first failure
// stops the run.
func runMakeModel(cmd *cobra.Command, args []string) {
	name := args[0]
	var files []string

	specs := []generator.Spec{{
		Kind:  generator.KindModel,
		Name:  name,
		Force: makeForce,
	}}
	if modelMigration {
		table := generator.Pluralize(generator.ToSnake(name))
		specs = append(specs, generator.Spec{
			Kind:      generator.KindMigration,
			Name:      "create_" + table + "_table",
			Force:     makeForce,
			CreateTab: table,
		})
	}
	if modelFactory {
		specs = append(specs, generator.Spec{
			Kind:  generator.KindFactory,
			Name:  name,
			Force: makeForce,
			Model: name,
		})
	}
	if modelSeeder {
		specs = append(specs, generator.Spec{
			Kind:  generator.KindSeeder,
			Name:  name,
			Force: makeForce,
			Model: name,
		})
	}

	for _, spec := range specs {
		result, err := generateInProject(spec)
		if err != nil {
			fail(err)
		}
		files = append(files, result.Files...)
	}

	if jsonOutput {
		printSuccess(MakeOutput{Command: cmd.Name(), Name: name, Files: files})
		return
	}
	for _, f := range files {
		statusOK("Created %s", f)
	}
}

// generateInProject anchors the spec at the enclosing project root before
// generating, so make commands behave the same from any subdirectory and
// refuse to run outside a project.
func generateInProject(spec generator.Spec) (*generator.Result, error) {
	layout, err := project.MustFind()
	if err != nil {
		return nil, err
	}
	spec.Root = layout.Root
	return generator.Generate(spec)
}

// emitGenerated runs a single generation and reports it in the active output
// mode.
func emitGenerated(command string, spec generator.Spec) {
	result, err := generateInProject(spec)
	if err != nil {
		fail(err)
	}
	if jsonOutput {
		printSuccess(MakeOutput{Command: command, Name: spec.Name, Files: result.Files})
		return
	}
	for _, f := range result.Files {
		statusOK("Created %s", f)
	}
}
