// Package migrate manages SQL migration files and the ledger of applied
// migrations. Execution itself is delegated to the database client binary.
package migrate

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const (
	upMarker   = "-- +migrate Up"
	downMarker = "-- +migrate Down"
)

// Migration is one parsed migration file.
type Migration struct {
	Name string // filename without extension
	Path string
	Up   string
	Down string
}

// LoadDir parses every .sql file in dir, sorted by filename. Timestamped
// filenames make that chronological order.
func LoadDir(dir string) ([]Migration, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read migrations: %w", err)
	}
	var migrations []Migration
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		m, err := parseFile(path)
		if err != nil {
			return nil, err
		}
		migrations = append(migrations, m)
	}
	sort.Slice(migrations, func(i, j int) bool { return migrations[i].Name < migrations[j].Name })
	return migrations, nil
}

func parseFile(path string) (Migration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Migration{}, fmt.Errorf("failed to read migration: %w", err)
	}
	content := string(data)
	upIdx := strings.Index(content, upMarker)
	downIdx := strings.Index(content, downMarker)
	if upIdx < 0 {
		return Migration{}, fmt.Errorf("migration %s has no %q section", path, upMarker)
	}
	m := Migration{
		Name: strings.TrimSuffix(filepath.Base(path), ".sql"),
		Path: path,
	}
	if downIdx < 0 {
		m.Up = strings.TrimSpace(content[upIdx+len(upMarker):])
		return m, nil
	}
	if downIdx < upIdx {
		return Migration{}, fmt.Errorf("migration %s has %q before %q", path, downMarker, upMarker)
	}
	m.Up = strings.TrimSpace(content[upIdx+len(upMarker) : downIdx])
	m.Down = strings.TrimSpace(content[downIdx+len(downMarker):])
	return m, nil
}

// Pending returns the migrations not yet recorded in the ledger, in apply
// order.
func Pending(migrations []Migration, ledger *Ledger) []Migration {
	applied := ledger.Applied()
	var pending []Migration
	for _, m := range migrations {
		if !applied[m.Name] {
			pending = append(pending, m)
		}
	}
	return pending
}
