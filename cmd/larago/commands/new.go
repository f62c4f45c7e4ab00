package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/larago/larago/pkg/scaffold"
	"github.com/spf13/cobra"
)

var newCmd = &cobra.Command{
	Use:   "new [name]",
	Short: "Create a new Larago project",
	Long: `Create a new Larago project with the standard directory structure.

Examples:
  larago new myapp
  larago new myapp --template web
  larago new myapp --path ./projects/myapp --git
  larago new myapp --json`,
	Args: cobra.ExactArgs(1),
	Run:  runNew,
}

var (
	newPath     string
	newTemplate string
	newGit      bool
)

func init() {
	newCmd.Flags().StringVar(&newPath, "path", "", "Destination directory (default: ./<name>)")
	newCmd.Flags().StringVar(&newTemplate, "template", "api", "Project template: api, web or minimal")
	newCmd.Flags().BoolVar(&newGit, "git", false, "Initialize a git repository with an initial commit")
}

func runNew(cmd *cobra.Command, args []string) {
	name := args[0]

	if !jsonOutput {
		green := color.New(color.FgGreen).SprintFunc()
		cyan := color.New(color.FgCyan).SprintFunc()
		fmt.Printf("\n  %s Creating new Larago project: %s\n\n", cyan("Larago"), green(name))
	}

	result, err := scaffold.Create(cmd.Context(), scaffold.Options{
		Name:     name,
		Path:     newPath,
		Template: newTemplate,
		Git:      newGit,
	})
	if err != nil {
		fail(err)
	}

	nextSteps := []string{
		fmt.Sprintf("cd %s", result.Path),
		"larago serve",
	}

	if jsonOutput {
		printSuccess(NewProjectOutput{
			Project:   name,
			Directory: result.Path,
			Template:  newTemplate,
			Created:   result.Files,
			Git:       result.Git,
			NextSteps: nextSteps,
		})
		return
	}

	for _, f := range result.Files {
		statusOK("Created %s", f)
	}
	if result.Git {
		statusOK("Initialized git repository")
	}

	cyan := color.New(color.FgCyan).SprintFunc()
	fmt.Printf("\n  Next steps:\n")
	for _, step := range nextSteps {
		fmt.Printf("    %s %s\n", cyan("→"), step)
	}
	fmt.Println()
}
