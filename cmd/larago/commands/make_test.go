package commands

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/larago/larago/pkg/generator"
	"github.com/larago/larago/pkg/project"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}

func writeProjectMarkers(t *testing.T, root string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(root, "larago.toml"), []byte("[app]\nname = \"demo\"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "go.mod"), []byte("module demo\n\ngo 1.25\n"), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestGenerateInProjectAnchorsAtRoot(t *testing.T) {
	root := t.TempDir()
	writeProjectMarkers(t, root)
	nested := filepath.Join(root, "app", "models")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}
	chdir(t, nested)

	result, err := generateInProject(generator.Spec{
		Kind: generator.KindController,
		Name: "User",
	})
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(root, "app", "http", "controllers", "user_controller.go")
	if _, err := os.Stat(want); err != nil {
		t.Fatalf("controller not at project root: %v (result %v)", err, result.Files)
	}
	// Nothing may be created relative to the working directory.
	if _, err := os.Stat(filepath.Join(nested, "app")); !os.IsNotExist(err) {
		t.Error("generation leaked into the working directory")
	}
}

func TestGenerateInProjectOutsideProject(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	_, err := generateInProject(generator.Spec{
		Kind: generator.KindController,
		Name: "User",
	})
	if !errors.Is(err, project.ErrNotProject) {
		t.Fatalf("err = %v, want ErrNotProject", err)
	}
	entries, readErr := os.ReadDir(dir)
	if readErr != nil {
		t.Fatal(readErr)
	}
	if len(entries) != 0 {
		t.Errorf("files created outside a project: %v", entries)
	}
}
