package commands

import (
	"github.com/larago/larago/pkg/tools"
	"github.com/spf13/cobra"
)

var testCmd = &cobra.Command{
	Use:   "test [pattern]",
	Short: "Run the project's tests",
	Long: `Run the project's tests with go test.

Examples:
  larago test
  larago test TestUserLogin
  larago test --unit
  larago test --integration --verbose`,
	Args: cobra.MaximumNArgs(1),
	Run:  runTest,
}

var (
	testUnit        bool
	testIntegration bool
	testVerbose     bool
)

func init() {
	testCmd.Flags().BoolVar(&testUnit, "unit", false, "Run unit tests only")
	testCmd.Flags().BoolVar(&testIntegration, "integration", false, "Run integration tests only")
	testCmd.Flags().BoolVarP(&testVerbose, "verbose", "v", false, "Verbose test output")
}

func runTest(cmd *cobra.Command, args []string) {
	layout := mustLayout()

	goArgs := []string{"test"}
	switch {
	case testUnit && !testIntegration:
		goArgs = append(goArgs, "./tests/unit/...")
	case testIntegration && !testUnit:
		goArgs = append(goArgs, "./tests/integration/...")
	default:
		goArgs = append(goArgs, "./...")
	}
	if len(args) == 1 {
		goArgs = append(goArgs, "-run", args[0])
	}
	if testVerbose {
		goArgs = append(goArgs, "-v")
	}

	if !jsonOutput {
		statusInfo("Running tests...")
	}
	if err := tools.RunInDir(cmd.Context(), layout.Root, nil, "go", goArgs...); err != nil {
		fail(err)
	}
	if jsonOutput {
		printSuccess(map[string]any{"passed": true})
		return
	}
	statusOK("Tests passed")
}
