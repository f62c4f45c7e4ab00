package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/larago/larago/pkg/tools"
	"github.com/spf13/cobra"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the application for deployment",
	Long: `Build the application binary.

Production builds cache the configuration and strip debug information.

Examples:
  larago build
  larago build --env production --optimize
  larago build --output ./dist`,
	Run: runBuild,
}

var (
	buildEnv      string
	buildOptimize bool
	buildOutput   string
)

func init() {
	buildCmd.Flags().StringVar(&buildEnv, "env", "production", "Build environment")
	buildCmd.Flags().BoolVar(&buildOptimize, "optimize", false, "Strip symbols and trim paths")
	buildCmd.Flags().StringVarP(&buildOutput, "output", "o", "build", "Output directory")
}

func runBuild(cmd *cobra.Command, args []string) {
	layout := mustLayout()
	v, err := loadProjectConfig(layout)
	if err != nil {
		fail(err)
	}
	appName := v.GetString("app.name")

	cyan := color.New(color.FgCyan).SprintFunc()
	if !jsonOutput {
		fmt.Printf("\n  %s Building %s (%s)\n\n", cyan("Larago"), appName, buildEnv)
	}

	if buildEnv == "production" {
		if _, err := cacheConfig(layout); err != nil {
			fail(err)
		}
		if !jsonOutput {
			statusOK("Configuration cached")
		}
	}

	outDir := buildOutput
	if !filepath.IsAbs(outDir) {
		outDir = filepath.Join(layout.Root, outDir)
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		fail(fmt.Errorf("failed to create output directory: %w", err))
	}

	binary := filepath.Join(outDir, appName)
	goArgs := []string{"build", "-o", binary}
	if buildOptimize || buildEnv == "production" {
		goArgs = append(goArgs, "-trimpath", "-ldflags", "-s -w")
	}
	goArgs = append(goArgs, ".")

	if err := tools.RunInDir(cmd.Context(), layout.Root, []string{"APP_ENV=" + buildEnv}, "go", goArgs...); err != nil {
		fail(err)
	}

	var size int64
	if info, err := os.Stat(binary); err == nil {
		size = info.Size()
	}

	if jsonOutput {
		printSuccess(BuildOutput{Binary: binary, Env: buildEnv, Size: size})
		return
	}
	statusOK("Built %s", binary)
	if size > 0 {
		statusInfo("Binary size: %s", formatSize(size))
	}
	fmt.Println()
}

func formatSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMG"[exp])
}
