package scaffold

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCreateProject(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "shop")
	result, err := Create(context.Background(), Options{Name: "shop", Path: dest})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if result.Path != dest {
		t.Errorf("result path = %s, want %s", result.Path, dest)
	}

	for _, rel := range []string{
		"go.mod",
		"main.go",
		"larago.toml",
		".gitignore",
		"README.md",
		"routes/api.go",
		"database/seeders/main.go",
		"app/http/controllers",
		"app/models",
		"database/migrations",
		"storage/framework/cache/data",
		"bootstrap/cache",
		"tests/unit",
	} {
		if _, err := os.Stat(filepath.Join(dest, filepath.FromSlash(rel))); err != nil {
			t.Errorf("expected %s to exist: %v", rel, err)
		}
	}

	goMod, err := os.ReadFile(filepath.Join(dest, "go.mod"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(goMod), "module shop") {
		t.Errorf("go.mod missing module line: %s", goMod)
	}

	cfg, err := os.ReadFile(filepath.Join(dest, "larago.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(cfg), `name = "shop"`) {
		t.Error("larago.toml missing app name")
	}
}

func TestCreateReportsFilesInFixedOrder(t *testing.T) {
	relative := func(dest string, files []string) []string {
		out := make([]string, len(files))
		for i, f := range files {
			rel, err := filepath.Rel(dest, f)
			if err != nil {
				t.Fatal(err)
			}
			out[i] = filepath.ToSlash(rel)
		}
		return out
	}

	dir := t.TempDir()
	first, err := Create(context.Background(), Options{Name: "shop", Path: filepath.Join(dir, "a")})
	if err != nil {
		t.Fatal(err)
	}
	second, err := Create(context.Background(), Options{Name: "shop", Path: filepath.Join(dir, "b")})
	if err != nil {
		t.Fatal(err)
	}

	got := relative(first.Path, first.Files)
	again := relative(second.Path, second.Files)
	if strings.Join(got, ",") != strings.Join(again, ",") {
		t.Errorf("file order differs between runs:\n  %v\n  %v", got, again)
	}
	if got[0] != "go.mod" {
		t.Errorf("first file = %q, want go.mod", got[0])
	}
	if got[len(got)-1] != "larago.toml" {
		t.Errorf("last file = %q, want larago.toml", got[len(got)-1])
	}
}

func TestCreateWebTemplate(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "site")
	if _, err := Create(context.Background(), Options{Name: "site", Path: dest, Template: "web"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dest, "routes", "web.go")); err != nil {
		t.Errorf("web template missing routes/web.go: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dest, "public", "index.html")); err != nil {
		t.Errorf("web template missing public/index.html: %v", err)
	}
}

func TestCreateIntoNonEmptyDirFailsBeforeWriting(t *testing.T) {
	dest := t.TempDir()
	marker := filepath.Join(dest, "existing.txt")
	if err := os.WriteFile(marker, []byte("keep me"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Create(context.Background(), Options{Name: "shop", Path: dest})
	if !errors.Is(err, ErrDestinationNotEmpty) {
		t.Fatalf("expected ErrDestinationNotEmpty, got %v", err)
	}

	entries, err := os.ReadDir(dest)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("destination gained entries: %d", len(entries))
	}
	content, _ := os.ReadFile(marker)
	if string(content) != "keep me" {
		t.Error("existing file was modified")
	}
}

func TestCreateEmptyExistingDirSucceeds(t *testing.T) {
	dest := t.TempDir()
	if _, err := Create(context.Background(), Options{Name: "shop", Path: dest}); err != nil {
		t.Fatalf("Create into empty dir failed: %v", err)
	}
}

func TestCreateRejectsBadInput(t *testing.T) {
	if _, err := Create(context.Background(), Options{Name: "my app"}); !errors.Is(err, ErrInvalidName) {
		t.Errorf("expected ErrInvalidName, got %v", err)
	}
	if _, err := Create(context.Background(), Options{Name: "shop", Template: "fancy"}); !errors.Is(err, ErrUnknownTemplate) {
		t.Errorf("expected ErrUnknownTemplate, got %v", err)
	}
}
