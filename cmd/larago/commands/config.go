package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/larago/larago/pkg/config"
	"github.com/larago/larago/pkg/project"
	"github.com/spf13/cobra"
)

var configShowCmd = &cobra.Command{
	Use:   "config:show",
	Short: "Show the project configuration",
	Run:   runConfigShow,
}

var configGetCmd = &cobra.Command{
	Use:   "config:get [key]",
	Short: "Get a configuration value",
	Long: `Get a configuration value by dotted key.

Examples:
  larago config:get app.name
  larago config:get database.host`,
	Args: cobra.ExactArgs(1),
	Run:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "config:set [key] [value]",
	Short: "Set a configuration value",
	Long: `Set a configuration value by dotted key. Values parse as bool,
integer, float, then string. Intermediate tables are created as needed and
unrelated keys are preserved.

Examples:
  larago config:set app.debug false
  larago config:set server.port 9000
  larago config:set database.host db.internal`,
	Args: cobra.ExactArgs(2),
	Run:  runConfigSet,
}

var configGenerateKeyCmd = &cobra.Command{
	Use:   "config:generate-key",
	Short: "Generate a fresh application key",
	Run:   runConfigGenerateKey,
}

var configValidateCmd = &cobra.Command{
	Use:   "config:validate",
	Short: "Validate the project configuration",
	Run:   runConfigValidate,
}

var configResetCmd = &cobra.Command{
	Use:   "config:reset",
	Short: "Reset larago.toml to defaults",
	Run:   runConfigReset,
}

var (
	configShowAll bool
	configForce   bool
)

func init() {
	configShowCmd.Flags().BoolVar(&configShowAll, "unmask", false, "Show sensitive values unmasked")
	configResetCmd.Flags().BoolVar(&configForce, "force", false, "Skip the confirmation prompt")
}

func mustConfigStore() (*project.Layout, *config.Store) {
	layout := mustLayout()
	store, err := config.Load(layout.ConfigPath())
	if err != nil {
		fail(err)
	}
	return layout, store
}

func runConfigShow(cmd *cobra.Command, args []string) {
	_, store := mustConfigStore()
	entries := store.Flatten()

	if jsonOutput {
		out := make([]ConfigOutput, 0, len(entries))
		for _, e := range entries {
			value := any(config.DisplayValue(e.Key, e.Value))
			if configShowAll {
				value = e.Value
			}
			out = append(out, ConfigOutput{Key: e.Key, Value: value})
		}
		printSuccess(out)
		return
	}

	cyan := color.New(color.FgCyan).SprintFunc()
	for _, e := range entries {
		value := config.DisplayValue(e.Key, e.Value)
		if configShowAll {
			value = config.FormatValue(e.Value)
		}
		fmt.Printf("  %s = %s\n", cyan(e.Key), value)
	}
}

func runConfigGet(cmd *cobra.Command, args []string) {
	_, store := mustConfigStore()
	key := args[0]
	value, err := store.Get(key)
	if err != nil {
		fail(err)
	}
	if jsonOutput {
		printSuccess(ConfigOutput{Key: key, Value: value})
		return
	}
	fmt.Println(config.FormatValue(value))
}

func runConfigSet(cmd *cobra.Command, args []string) {
	_, store := mustConfigStore()
	key, raw := args[0], args[1]
	value := config.ParseValue(raw)
	if err := store.Set(key, value); err != nil {
		fail(err)
	}
	if jsonOutput {
		printSuccess(ConfigOutput{Key: key, Value: value})
		return
	}
	statusOK("Set %s = %s", key, config.DisplayValue(key, value))
}

func runConfigGenerateKey(cmd *cobra.Command, args []string) {
	_, store := mustConfigStore()
	key, err := config.GenerateKey()
	if err != nil {
		fail(err)
	}
	if err := store.Set("app.key", key); err != nil {
		fail(err)
	}
	if jsonOutput {
		printSuccess(ConfigOutput{Key: "app.key", Message: "application key generated"})
		return
	}
	statusOK("Application key generated")
}

func runConfigValidate(cmd *cobra.Command, args []string) {
	_, store := mustConfigStore()
	missing := store.Validate()
	if len(missing) == 0 {
		if jsonOutput {
			printSuccess(ConfigOutput{Message: "configuration valid"})
			return
		}
		statusOK("Configuration valid")
		return
	}
	if !jsonOutput {
		for _, key := range missing {
			statusWarn("Missing required key %s", key)
		}
	}
	fail(fmt.Errorf("configuration invalid: missing required keys %v", missing))
}

func runConfigReset(cmd *cobra.Command, args []string) {
	layout := mustLayout()
	if !configForce && !confirmDestructive("Reset larago.toml to defaults? Current values will be lost.") {
		statusWarn("Aborted")
		return
	}
	name := "larago-app"
	if v, err := loadProjectConfig(layout); err == nil {
		name = v.GetString("app.name")
	}
	if err := config.WriteDefault(layout.ConfigPath(), name); err != nil {
		fail(err)
	}
	if jsonOutput {
		printSuccess(ConfigOutput{Message: "configuration reset"})
		return
	}
	statusOK("Configuration reset to defaults")
}
