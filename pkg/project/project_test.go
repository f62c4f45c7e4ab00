package project

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func makeProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ConfigFile), []byte("[app]\nname = \"x\"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module x\n"), 0644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestIsProject(t *testing.T) {
	dir := makeProject(t)
	if !IsProject(dir) {
		t.Error("expected project to be detected")
	}
	if IsProject(t.TempDir()) {
		t.Error("empty dir detected as project")
	}
}

func TestFindWalksUp(t *testing.T) {
	root := makeProject(t)
	nested := filepath.Join(root, "app", "models")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	layout, err := Find(nested)
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if layout.Root != root {
		t.Errorf("Find root = %s, want %s", layout.Root, root)
	}
}

func TestFindOutsideProject(t *testing.T) {
	_, err := Find(t.TempDir())
	if !errors.Is(err, ErrNotProject) {
		t.Errorf("expected ErrNotProject, got %v", err)
	}
}

func TestLayoutPaths(t *testing.T) {
	l := NewLayout("proj")
	if got := l.Controllers(); got != filepath.Join("proj", "app", "http", "controllers") {
		t.Errorf("Controllers = %s", got)
	}
	if got := l.Migrations(); got != filepath.Join("proj", "database", "migrations") {
		t.Errorf("Migrations = %s", got)
	}
	if got := l.ConfigPath(); got != filepath.Join("proj", ConfigFile) {
		t.Errorf("ConfigPath = %s", got)
	}
	if len(l.Dirs()) == 0 {
		t.Error("Dirs returned nothing")
	}
}
