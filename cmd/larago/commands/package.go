package commands

import (
	"fmt"
	"strings"

	"github.com/larago/larago/pkg/project"
	"github.com/larago/larago/pkg/tools"
	"github.com/spf13/cobra"
)

var packageInstallCmd = &cobra.Command{
	Use:   "package:install [module...]",
	Short: "Add Go module dependencies",
	Long: `Add one or more Go modules to the project and tidy go.mod.

Examples:
  larago package:install github.com/google/uuid
  larago package:install github.com/spf13/cobra@v1.10.2`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runPackageCommands(cmd, installCommands(args))
		reportPackages("installed", args)
	},
}

var packageRemoveCmd = &cobra.Command{
	Use:   "package:remove [module...]",
	Short: "Remove Go module dependencies",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runPackageCommands(cmd, removeCommands(args))
		reportPackages("removed", args)
	},
}

var packageListCmd = &cobra.Command{
	Use:   "package:list",
	Short: "List the project's module dependencies",
	Run: func(cmd *cobra.Command, args []string) {
		layout := mustLayout()
		out, err := tools.Capture(cmd.Context(), layout.Root, "go", "list", "-m", "all")
		if err != nil {
			fail(err)
		}
		lines := strings.Split(out, "\n")
		// The first line is the project module itself.
		deps := lines[1:]
		if jsonOutput {
			printSuccess(map[string]any{"modules": deps})
			return
		}
		for _, dep := range deps {
			fmt.Printf("  %s\n", dep)
		}
		fmt.Printf("\n  %d modules\n", len(deps))
	},
}

var packageUpdateCmd = &cobra.Command{
	Use:   "package:update [module...]",
	Short: "Update module dependencies",
	Long: `Update modules to their latest versions. With no arguments every
dependency is updated.`,
	Run: func(cmd *cobra.Command, args []string) {
		runPackageCommands(cmd, updateCommands(args))
		if jsonOutput {
			printSuccess(map[string]any{"updated": args})
			return
		}
		if len(args) == 0 {
			statusOK("Updated all dependencies")
			return
		}
		reportPackages("updated", args)
	},
}

// installCommands returns the go invocations that add modules and tidy up.
func installCommands(modules []string) [][]string {
	get := append([]string{"get"}, modules...)
	return [][]string{get, {"mod", "tidy"}}
}

// removeCommands drops each module by pinning it to the none version, then
// tidies so indirect requirements settle.
func removeCommands(modules []string) [][]string {
	get := []string{"get"}
	for _, m := range modules {
		get = append(get, strings.SplitN(m, "@", 2)[0]+"@none")
	}
	return [][]string{get, {"mod", "tidy"}}
}

// updateCommands updates the named modules, or everything when none are
// given.
func updateCommands(modules []string) [][]string {
	get := []string{"get", "-u"}
	if len(modules) == 0 {
		get = append(get, "./...")
	} else {
		get = append(get, modules...)
	}
	return [][]string{get, {"mod", "tidy"}}
}

// runPackageCommands executes go invocations in the project root, stopping at
// the first failure.
func runPackageCommands(cmd *cobra.Command, invocations [][]string) {
	layout, err := project.MustFind()
	if err != nil {
		fail(err)
	}
	if !tools.CommandExists("go") {
		fail(fmt.Errorf("go toolchain not found on PATH"))
	}
	for _, args := range invocations {
		if err := tools.RunInDir(cmd.Context(), layout.Root, nil, "go", args...); err != nil {
			fail(err)
		}
	}
}

func reportPackages(verb string, modules []string) {
	if jsonOutput {
		printSuccess(map[string]any{verb: modules})
		return
	}
	for _, m := range modules {
		statusOK("%s %s", strings.ToUpper(verb[:1])+verb[1:], m)
	}
}
