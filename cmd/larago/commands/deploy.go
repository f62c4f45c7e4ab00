package commands

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/fatih/color"
	"github.com/larago/larago/pkg/tools"
	"github.com/spf13/cobra"
)

var deployCmd = &cobra.Command{
	Use:   "deploy [target]",
	Short: "Deploy the application",
	Long: `Deploy the application to a target defined in larago.toml.

Targets live under [deploy.targets.<name>] with a type of "docker" or
"server".

Examples:
  larago deploy production
  larago deploy staging --skip-build
  larago deploy production --dry-run`,
	Args: cobra.MaximumNArgs(1),
	Run:  runDeploy,
}

var (
	deploySkipBuild bool
	deployDryRun    bool
)

func init() {
	deployCmd.Flags().BoolVar(&deploySkipBuild, "skip-build", false, "Deploy without rebuilding")
	deployCmd.Flags().BoolVar(&deployDryRun, "dry-run", false, "Print the deployment plan without executing it")
}

type deployTarget struct {
	Name     string
	Type     string
	Image    string
	Registry string
	Host     string
	User     string
	Path     string
}

func runDeploy(cmd *cobra.Command, args []string) {
	layout := mustLayout()
	v, err := loadProjectConfig(layout)
	if err != nil {
		fail(err)
	}
	appName := v.GetString("app.name")

	targets := v.GetStringMap("deploy.targets")
	if len(targets) == 0 {
		fail(fmt.Errorf("no deploy targets defined in larago.toml"))
	}

	name := ""
	if len(args) == 1 {
		name = args[0]
	} else {
		var options []huh.Option[string]
		for t := range targets {
			options = append(options, huh.NewOption(t, t))
		}
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("Deploy target").
					Options(options...).
					Value(&name),
			),
		)
		if err := form.Run(); err != nil {
			fail(err)
		}
	}
	if _, ok := targets[name]; !ok {
		fail(fmt.Errorf("unknown deploy target %q", name))
	}

	prefix := "deploy.targets." + name + "."
	target := deployTarget{
		Name:     name,
		Type:     v.GetString(prefix + "type"),
		Image:    v.GetString(prefix + "image"),
		Registry: v.GetString(prefix + "registry"),
		Host:     v.GetString(prefix + "host"),
		User:     v.GetString(prefix + "user"),
		Path:     v.GetString(prefix + "path"),
	}
	if target.Image == "" {
		target.Image = appName
	}

	var steps []string
	if !deploySkipBuild && target.Type != "docker" {
		steps = append(steps, "go build")
	}
	switch target.Type {
	case "docker":
		image := target.Image + ":latest"
		if target.Registry != "" {
			image = target.Registry + "/" + image
		}
		steps = append(steps, "docker build -t "+image+" .")
		steps = append(steps, "docker push "+image)
	case "server":
		if target.Host == "" || target.Path == "" {
			fail(fmt.Errorf("deploy target %q needs host and path", name))
		}
		dest := target.Host + ":" + target.Path
		if target.User != "" {
			dest = target.User + "@" + dest
		}
		steps = append(steps, fmt.Sprintf("rsync -az build/%s %s", appName, dest))
	default:
		fail(fmt.Errorf("deploy target %q has unsupported type %q", name, target.Type))
	}

	cyan := color.New(color.FgCyan).SprintFunc()
	if !jsonOutput {
		fmt.Printf("\n  %s Deploying %s to %s (%s)\n\n", cyan("Larago"), appName, name, target.Type)
	}

	if deployDryRun {
		if jsonOutput {
			printSuccess(DeployOutput{Target: name, Type: target.Type, DryRun: true, Steps: steps})
			return
		}
		statusInfo("Dry run, nothing executed:")
		for _, step := range steps {
			fmt.Printf("    %s %s\n", cyan("→"), step)
		}
		fmt.Println()
		return
	}

	if !deploySkipBuild && target.Type != "docker" {
		runBuild(cmd, nil)
	}

	ctx := cmd.Context()
	switch target.Type {
	case "docker":
		if !tools.CommandExists("docker") {
			fail(fmt.Errorf("docker not found on PATH"))
		}
		image := target.Image + ":latest"
		if target.Registry != "" {
			image = target.Registry + "/" + image
		}
		if err := tools.RunInDir(ctx, layout.Root, nil, "docker", "build", "-t", image, "."); err != nil {
			fail(err)
		}
		if err := tools.RunInDir(ctx, layout.Root, nil, "docker", "push", image); err != nil {
			fail(err)
		}
	case "server":
		if !tools.CommandExists("rsync") {
			fail(fmt.Errorf("rsync not found on PATH"))
		}
		dest := target.Host + ":" + target.Path
		if target.User != "" {
			dest = target.User + "@" + dest
		}
		binary := "build/" + appName
		if err := tools.RunInDir(ctx, layout.Root, nil, "rsync", "-az", binary, dest); err != nil {
			fail(err)
		}
	}

	if jsonOutput {
		printSuccess(DeployOutput{Target: name, Type: target.Type, Steps: steps})
		return
	}
	statusOK("Deployed %s to %s", appName, name)
	fmt.Println()
}
