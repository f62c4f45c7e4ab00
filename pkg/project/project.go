// Package project locates and describes Larago application projects.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ConfigFile is the project configuration file every Larago application carries
// at its root.
const ConfigFile = "larago.toml"

// ErrNotProject is returned when a directory is not a Larago project root.
var ErrNotProject = errors.New("not a larago project (missing larago.toml or go.mod)")

// Layout holds the canonical directory paths of a Larago application, relative
// to the project root.
type Layout struct {
	Root string
}

// NewLayout returns the layout rooted at dir.
func NewLayout(dir string) *Layout {
	return &Layout{Root: dir}
}

// Controllers returns the HTTP controllers directory.
func (l *Layout) Controllers() string { return filepath.Join(l.Root, "app", "http", "controllers") }

// Middleware returns the HTTP middleware directory.
func (l *Layout) Middleware() string { return filepath.Join(l.Root, "app", "http", "middleware") }

// Requests returns the form request directory.
func (l *Layout) Requests() string { return filepath.Join(l.Root, "app", "http", "requests") }

// Resources returns the API resource directory.
func (l *Layout) Resources() string { return filepath.Join(l.Root, "app", "http", "resources") }

// Models returns the models directory.
func (l *Layout) Models() string { return filepath.Join(l.Root, "app", "models") }

// Jobs returns the queued jobs directory.
func (l *Layout) Jobs() string { return filepath.Join(l.Root, "app", "jobs") }

// Events returns the events directory.
func (l *Layout) Events() string { return filepath.Join(l.Root, "app", "events") }

// Listeners returns the event listeners directory.
func (l *Layout) Listeners() string { return filepath.Join(l.Root, "app", "listeners") }

// Migrations returns the database migrations directory.
func (l *Layout) Migrations() string { return filepath.Join(l.Root, "database", "migrations") }

// Seeders returns the database seeders directory.
func (l *Layout) Seeders() string { return filepath.Join(l.Root, "database", "seeders") }

// Factories returns the model factories directory.
func (l *Layout) Factories() string { return filepath.Join(l.Root, "database", "factories") }

// Routes returns the route definitions directory.
func (l *Layout) Routes() string { return filepath.Join(l.Root, "routes") }

// Storage returns the storage directory.
func (l *Layout) Storage() string { return filepath.Join(l.Root, "storage") }

// CacheData returns the file cache data directory.
func (l *Layout) CacheData() string {
	return filepath.Join(l.Root, "storage", "framework", "cache", "data")
}

// QueueDir returns the file-backed queue directory.
func (l *Layout) QueueDir() string { return filepath.Join(l.Root, "storage", "framework", "queue") }

// BootstrapCache returns the bootstrap cache directory.
func (l *Layout) BootstrapCache() string { return filepath.Join(l.Root, "bootstrap", "cache") }

// MigrationLedger returns the applied-migrations ledger path.
func (l *Layout) MigrationLedger() string {
	return filepath.Join(l.Root, "storage", "framework", "migrations.json")
}

// ConfigPath returns the larago.toml path.
func (l *Layout) ConfigPath() string { return filepath.Join(l.Root, ConfigFile) }

// Dirs returns every directory the scaffolder creates, in creation order.
func (l *Layout) Dirs() []string {
	rel := []string{
		"app/http/controllers",
		"app/http/middleware",
		"app/http/requests",
		"app/http/resources",
		"app/models",
		"app/jobs",
		"app/events",
		"app/listeners",
		"database/migrations",
		"database/seeders",
		"database/factories",
		"routes",
		"public",
		"storage/logs",
		"storage/framework/cache/data",
		"storage/framework/sessions",
		"storage/framework/queue",
		"bootstrap/cache",
		"tests/unit",
		"tests/integration",
	}
	dirs := make([]string, len(rel))
	for i, r := range rel {
		dirs[i] = filepath.Join(l.Root, filepath.FromSlash(r))
	}
	return dirs
}

// IsProject reports whether dir looks like a Larago project root.
func IsProject(dir string) bool {
	if _, err := os.Stat(filepath.Join(dir, ConfigFile)); err != nil {
		return false
	}
	if _, err := os.Stat(filepath.Join(dir, "go.mod")); err != nil {
		return false
	}
	return true
}

// Find walks upward from dir looking for a project root.
func Find(dir string) (*Layout, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	for {
		if IsProject(abs) {
			return NewLayout(abs), nil
		}
		parent := filepath.Dir(abs)
		if parent == abs {
			return nil, fmt.Errorf("%w: searched from %s", ErrNotProject, dir)
		}
		abs = parent
	}
}

// MustFind is Find rooted at the working directory.
func MustFind() (*Layout, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return Find(wd)
}
