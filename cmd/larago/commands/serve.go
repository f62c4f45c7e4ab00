package commands

import (
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/fsnotify/fsnotify"
	"github.com/larago/larago/pkg/project"
	"github.com/larago/larago/pkg/tools"
	"github.com/pkg/browser"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the development server",
	Long: `Build and run the application, restarting on source changes when
--reload is set.

Examples:
  larago serve
  larago serve --port 8080 --reload
  larago serve --env production`,
	Run: runServe,
}

var (
	serveHost   string
	servePort   string
	serveEnv    string
	serveReload bool
	serveOpen   bool
)

func init() {
	serveCmd.Flags().StringVarP(&serveHost, "host", "H", "127.0.0.1", "Host to bind to")
	serveCmd.Flags().StringVarP(&servePort, "port", "p", "8000", "Port to listen on")
	serveCmd.Flags().StringVar(&serveEnv, "env", "development", "Application environment")
	serveCmd.Flags().BoolVar(&serveReload, "reload", false, "Restart on source changes")
	serveCmd.Flags().BoolVar(&serveOpen, "open", false, "Open the application in the browser")
}

func serverEnviron() []string {
	return []string{
		"APP_ENV=" + serveEnv,
		"SERVER_HOST=" + serveHost,
		"SERVER_PORT=" + servePort,
	}
}

func runServe(cmd *cobra.Command, args []string) {
	cyan := color.New(color.FgCyan).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	layout, err := project.MustFind()
	if err != nil {
		fail(err)
	}

	fmt.Printf("\n  %s Development Server\n\n", cyan("Larago"))

	url := fmt.Sprintf("http://%s:%s", serveHost, servePort)
	server := startServer(layout.Root)
	if server == nil {
		os.Exit(1)
	}

	fmt.Printf("  ➜ Local: %s\n\n", cyan(url))

	if serveOpen {
		if err := browser.OpenURL(url); err != nil {
			fmt.Printf("  %s Failed to open browser: %v\n", yellow("Warning:"), err)
		}
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)

	if !serveReload {
		<-signals
		fmt.Println("\n  Shutting down...")
		stopServer(server)
		return
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		fmt.Printf("  %s Failed to create file watcher: %v\n", red("Error:"), err)
		stopServer(server)
		os.Exit(1)
	}
	defer func() { _ = watcher.Close() }()

	_ = filepath.Walk(layout.Root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			name := info.Name()
			if strings.HasPrefix(name, ".") || name == "vendor" || name == "storage" || name == "bootstrap" {
				return filepath.SkipDir
			}
			_ = watcher.Add(path)
		}
		return nil
	})

	fmt.Printf("  %s Watching for changes...\n", green("✓"))

	var debounceTimer *time.Timer
	debounceDuration := 100 * time.Millisecond

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove) == 0 {
				continue
			}
			if filepath.Ext(event.Name) != ".go" {
				continue
			}
			if strings.HasSuffix(event.Name, "_test.go") {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(debounceDuration, func() {
				timestamp := time.Now().Format("15:04:05")
				fmt.Printf("  [%s] %s Restarting...\n", timestamp, yellow("→"))
				stopServer(server)
				server = startServer(layout.Root)
				if server != nil {
					fmt.Printf("  [%s] %s Ready\n", timestamp, green("✓"))
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			fmt.Printf("  %s Watcher error: %v\n", yellow("Warning:"), err)

		case <-signals:
			fmt.Println("\n  Shutting down...")
			stopServer(server)
			return
		}
	}
}

func startServer(dir string) *exec.Cmd {
	server, err := tools.Start(dir, serverEnviron(), "go", "run", ".")
	if err != nil {
		fmt.Printf("  %s Failed to start server: %v\n", color.RedString("Error:"), err)
		return nil
	}
	return server
}

func stopServer(server *exec.Cmd) {
	if server != nil && server.Process != nil {
		_ = server.Process.Signal(syscall.SIGTERM)
		_ = server.Wait()
	}
}
