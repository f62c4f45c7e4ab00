package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
)

// jsonOutput is the global flag for JSON output mode
var jsonOutput bool

// JSONResponse is the standard response wrapper for JSON output
type JSONResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// NewProjectOutput represents the JSON output for the new command
type NewProjectOutput struct {
	Project   string   `json:"project"`
	Directory string   `json:"directory"`
	Template  string   `json:"template"`
	Created   []string `json:"created"`
	Git       bool     `json:"git"`
	NextSteps []string `json:"next_steps"`
}

// MakeOutput represents the JSON output for make:* commands
type MakeOutput struct {
	Command string   `json:"command"`
	Name    string   `json:"name"`
	Files   []string `json:"files"`
}

// MigrateOutput represents the JSON output for migrate commands
type MigrateOutput struct {
	Applied    []string `json:"applied,omitempty"`
	RolledBack []string `json:"rolled_back,omitempty"`
	Batch      int      `json:"batch,omitempty"`
}

// MigrationStatusOutput represents one row of migrate:status output
type MigrationStatusOutput struct {
	Name    string `json:"name"`
	Applied bool   `json:"applied"`
	Batch   int    `json:"batch,omitempty"`
}

// RouteListOutput represents the JSON output for route:list
type RouteListOutput struct {
	Routes []RouteOutput `json:"routes"`
	Total  int           `json:"total"`
}

// RouteOutput represents a single route in JSON output
type RouteOutput struct {
	Method  string `json:"method"`
	Path    string `json:"path"`
	Handler string `json:"handler,omitempty"`
	File    string `json:"file"`
}

// ConfigOutput represents the JSON output for config commands
type ConfigOutput struct {
	Key     string `json:"key,omitempty"`
	Value   any    `json:"value,omitempty"`
	Message string `json:"message,omitempty"`
}

// QueueWorkOutput represents the JSON output for queue:work
type QueueWorkOutput struct {
	Queue     string `json:"queue"`
	Processed int    `json:"processed"`
	Failed    int    `json:"failed"`
}

// BuildOutput represents the JSON output for the build command
type BuildOutput struct {
	Binary string `json:"binary"`
	Env    string `json:"env"`
	Size   int64  `json:"size,omitempty"`
}

// DeployOutput represents the JSON output for the deploy command
type DeployOutput struct {
	Target string   `json:"target"`
	Type   string   `json:"type"`
	DryRun bool     `json:"dry_run"`
	Steps  []string `json:"steps"`
}

// InfoOutput represents the JSON output for the info command
type InfoOutput struct {
	Name       string         `json:"name"`
	Env        string         `json:"env"`
	Version    string         `json:"version"`
	Database   string         `json:"database,omitempty"`
	Components map[string]int `json:"components,omitempty"`
	Migrations struct {
		Applied int `json:"applied"`
		Pending int `json:"pending"`
	} `json:"migrations"`
}

// printJSON outputs data as formatted JSON to stdout
func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
	}
}

// printSuccess outputs a successful JSON response
func printSuccess(data any) {
	printJSON(JSONResponse{Success: true, Data: data})
}

// printJSONError outputs an error as JSON
func printJSONError(err error) {
	printJSON(JSONResponse{Success: false, Error: err.Error()})
}

// Colored status-line helpers shared by all commands.

func statusOK(format string, args ...any) {
	green := color.New(color.FgGreen).SprintFunc()
	fmt.Printf("  %s %s\n", green("✓"), fmt.Sprintf(format, args...))
}

func statusInfo(format string, args ...any) {
	cyan := color.New(color.FgCyan).SprintFunc()
	fmt.Printf("  %s %s\n", cyan("ℹ"), fmt.Sprintf(format, args...))
}

func statusWarn(format string, args ...any) {
	yellow := color.New(color.FgYellow).SprintFunc()
	fmt.Printf("  %s %s\n", yellow("⚠"), fmt.Sprintf(format, args...))
}

// fail reports an error in the active output mode and exits non-zero.
func fail(err error) {
	if jsonOutput {
		printJSONError(err)
	} else {
		fmt.Printf("  %s %v\n", color.RedString("✗"), err)
	}
	os.Exit(1)
}
