package commands

import (
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/larago/larago/pkg/project"
	"github.com/larago/larago/pkg/routes"
	"github.com/spf13/cobra"
)

var routeListCmd = &cobra.Command{
	Use:   "route:list",
	Short: "List the application's routes",
	Long: `Scan routes/ and list every registered route.

Examples:
  larago route:list
  larago route:list --method GET
  larago route:list --path users`,
	Run: runRouteList,
}

var routeClearCmd = &cobra.Command{
	Use:   "route:clear",
	Short: "Remove the cached route table",
	Run: func(cmd *cobra.Command, args []string) {
		layout := mustLayout()
		removed, err := routes.ClearCache(routeCachePath(layout))
		if err != nil {
			fail(err)
		}
		if jsonOutput {
			printSuccess(map[string]any{"cleared": removed})
			return
		}
		if removed {
			statusOK("Route cache cleared")
		} else {
			statusInfo("No route cache to clear")
		}
	},
}

var routeCacheCmd = &cobra.Command{
	Use:   "route:cache",
	Short: "Cache the route table",
	Run: func(cmd *cobra.Command, args []string) {
		layout := mustLayout()
		discovered, err := routes.Scan(layout.Routes())
		if err != nil {
			fail(err)
		}
		path := routeCachePath(layout)
		if err := routes.WriteCache(path, discovered); err != nil {
			fail(err)
		}
		if jsonOutput {
			printSuccess(map[string]any{"cached": len(discovered), "path": path})
			return
		}
		statusOK("Cached %d routes to %s", len(discovered), path)
	},
}

var (
	routeMethod string
	routePath   string
)

func init() {
	routeListCmd.Flags().StringVar(&routeMethod, "method", "", "Filter by HTTP method")
	routeListCmd.Flags().StringVar(&routePath, "path", "", "Filter by path substring")
}

func mustLayout() *project.Layout {
	layout, err := project.MustFind()
	if err != nil {
		fail(err)
	}
	return layout
}

func routeCachePath(layout *project.Layout) string {
	return filepath.Join(layout.BootstrapCache(), "routes.json")
}

func runRouteList(cmd *cobra.Command, args []string) {
	layout := mustLayout()
	discovered, err := routes.Scan(layout.Routes())
	if err != nil {
		fail(err)
	}
	filtered := routes.Filter(discovered, routeMethod, routePath)

	if jsonOutput {
		out := RouteListOutput{Total: len(filtered)}
		for _, r := range filtered {
			out.Routes = append(out.Routes, RouteOutput(r))
		}
		printSuccess(out)
		return
	}

	if len(filtered) == 0 {
		statusInfo("No routes found")
		return
	}
	cyan := color.New(color.FgCyan).SprintFunc()
	for _, r := range filtered {
		handler := r.Handler
		if handler == "" {
			handler = "closure"
		}
		fmt.Printf("  %-7s %-30s %s (%s)\n", cyan(r.Method), r.Path, handler, r.File)
	}
	fmt.Printf("\n  %d routes\n", len(filtered))
}
