// Package scaffold creates new Larago application projects.
package scaffold

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/larago/larago/pkg/config"
	"github.com/larago/larago/pkg/generator"
	"github.com/larago/larago/pkg/project"
	"github.com/larago/larago/pkg/tools"
)

// Sentinel errors reported by Create.
var (
	ErrDestinationNotEmpty = errors.New("destination directory is not empty")
	ErrInvalidName         = errors.New("invalid project name")
	ErrUnknownTemplate     = errors.New("unknown project template")
)

// Options configures a new project.
type Options struct {
	Name     string
	Path     string // destination; defaults to ./<name>
	Template string // api, web or minimal
	Git      bool   // initialize a repository with an initial commit
}

// Result reports what the scaffolder produced.
type Result struct {
	Path  string   `json:"path"`
	Files []string `json:"files"`
	Git   bool     `json:"git"`
}

var templates = map[string]bool{"api": true, "web": true, "minimal": true}

// Create scaffolds a project. The destination is checked before anything is
// written: an existing non-empty directory fails with ErrDestinationNotEmpty
// and leaves the filesystem untouched. A failure mid-scaffold leaves partial
// output behind and is reported as an error.
func Create(ctx context.Context, opts Options) (*Result, error) {
	if !generator.ValidIdentifier(opts.Name) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidName, opts.Name)
	}
	if opts.Template == "" {
		opts.Template = "api"
	}
	if !templates[opts.Template] {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTemplate, opts.Template)
	}
	dest := opts.Path
	if dest == "" {
		dest = opts.Name
	}

	if err := checkDestination(dest); err != nil {
		return nil, err
	}

	layout := project.NewLayout(dest)
	for _, dir := range layout.Dirs() {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	files, err := renderFiles(dest, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{Path: dest, Files: files}
	if opts.Git {
		if err := initGit(ctx, dest); err != nil {
			return nil, err
		}
		result.Git = true
	}
	return result, nil
}

// checkDestination fails when dest exists and holds any entry.
func checkDestination(dest string) error {
	entries, err := os.ReadDir(dest)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to inspect destination: %w", err)
	}
	if len(entries) > 0 {
		return fmt.Errorf("%w: %s", ErrDestinationNotEmpty, dest)
	}
	return nil
}

// scaffoldFile pairs a destination-relative path with its template.
type scaffoldFile struct {
	rel  string
	tmpl string
}

func renderFiles(dest string, opts Options) ([]string, error) {
	snake := generator.ToSnake(opts.Name)
	data := templateData{
		Name:   opts.Name,
		Snake:  snake,
		Module: snake,
	}

	// Ordered so repeated runs create and report files identically.
	files := []scaffoldFile{
		{"go.mod", goModTemplate},
		{"main.go", mainTemplate},
		{".gitignore", gitignoreTemplate},
		{"README.md", readmeTemplate},
		{"database/seeders/main.go", seederRunnerTemplate},
		{"tests/unit/example_test.go", exampleTestTemplate},
	}
	switch opts.Template {
	case "web":
		files = append(files,
			scaffoldFile{"routes/web.go", webRoutesTemplate},
			scaffoldFile{"public/index.html", indexHTMLTemplate})
	case "minimal":
		files = append(files, scaffoldFile{"routes/web.go", minimalRoutesTemplate})
	default:
		files = append(files, scaffoldFile{"routes/api.go", apiRoutesTemplate})
	}

	var written []string
	for _, f := range files {
		path := filepath.Join(dest, filepath.FromSlash(f.rel))
		if err := renderFile(path, f.tmpl, data); err != nil {
			return written, err
		}
		written = append(written, path)
	}

	cfgPath := filepath.Join(dest, project.ConfigFile)
	if err := config.WriteDefault(cfgPath, snake); err != nil {
		return written, err
	}
	written = append(written, cfgPath)

	// Keep empty runtime directories in version control.
	for _, rel := range []string{"storage/logs", "storage/framework/cache/data", "bootstrap/cache"} {
		keep := filepath.Join(dest, filepath.FromSlash(rel), ".gitkeep")
		if err := os.WriteFile(keep, nil, 0644); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", keep, err)
		}
	}
	return written, nil
}

func renderFile(path, tmplContent string, data templateData) error {
	tmpl, err := template.New(filepath.Base(path)).Parse(tmplContent)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()
	if err := tmpl.Execute(f, data); err != nil {
		return fmt.Errorf("failed to render %s: %w", path, err)
	}
	return nil
}

func initGit(ctx context.Context, dest string) error {
	if !tools.CommandExists("git") {
		return fmt.Errorf("git requested but not found on PATH")
	}
	if _, err := tools.Capture(ctx, dest, "git", "init"); err != nil {
		return err
	}
	if _, err := tools.Capture(ctx, dest, "git", "add", "."); err != nil {
		return err
	}
	if _, err := tools.Capture(ctx, dest, "git", "commit", "-m", "Initial commit"); err != nil {
		return err
	}
	return nil
}
