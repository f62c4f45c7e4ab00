package commands

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/larago/larago/pkg/project"
)

func TestFormatSize(t *testing.T) {
	tests := []struct {
		size int64
		want string
	}{
		{512, "512 B"},
		{2048, "2.0 KB"},
		{5 * 1024 * 1024, "5.0 MB"},
		{3 * 1024 * 1024 * 1024, "3.0 GB"},
	}
	for _, tt := range tests {
		if got := formatSize(tt.size); got != tt.want {
			t.Errorf("formatSize(%d) = %q, want %q", tt.size, got, tt.want)
		}
	}
}

func TestCacheEntryPath(t *testing.T) {
	layout := project.NewLayout("proj")
	path := cacheEntryPath(layout, "users:all")
	if !strings.HasPrefix(path, filepath.Join("proj", "storage", "framework", "cache", "data")) {
		t.Errorf("cache entry outside data dir: %s", path)
	}
	if !strings.HasSuffix(path, ".cache") {
		t.Errorf("cache entry missing extension: %s", path)
	}
	if path == cacheEntryPath(layout, "users:one") {
		t.Error("different keys map to the same file")
	}
	if path != cacheEntryPath(layout, "users:all") {
		t.Error("same key maps to different files")
	}
}

func TestClientCommand(t *testing.T) {
	mysql := dbConnection{Driver: "mysql", Host: "127.0.0.1", Port: 3306, Username: "root", Password: "secret", Database: "shop"}
	name, args, err := mysql.clientCommand(true)
	if err != nil {
		t.Fatal(err)
	}
	if name != "mysql" {
		t.Errorf("client = %s, want mysql", name)
	}
	joined := strings.Join(args, " ")
	if !strings.Contains(joined, "-h 127.0.0.1") || !strings.Contains(joined, "-P 3306") || !strings.Contains(joined, "-psecret") {
		t.Errorf("unexpected mysql args: %v", args)
	}
	if args[len(args)-1] != "shop" {
		t.Errorf("database not last arg: %v", args)
	}

	pg := dbConnection{Driver: "postgres", Host: "db", Port: 5432, Username: "app", Database: "shop"}
	name, args, err = pg.clientCommand(true)
	if err != nil {
		t.Fatal(err)
	}
	if name != "psql" {
		t.Errorf("client = %s, want psql", name)
	}
	if !strings.Contains(strings.Join(args, " "), "-d shop") {
		t.Errorf("unexpected psql args: %v", args)
	}

	bad := dbConnection{Driver: "oracle"}
	if _, _, err := bad.clientCommand(false); err == nil {
		t.Error("expected error for unsupported driver")
	}
}
