package routes

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleRoutes = `package routes

import "net/http"

func Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/users", listUsers)
	mux.HandleFunc("POST /api/users", createUser)
	mux.HandleFunc("GET /api/users/{id}", showUser)
	mux.Handle("GET /static/", http.FileServer(http.Dir("public")))
	mux.HandleFunc("/legacy", legacyHandler)
}
`

func writeRoutes(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "api.go"), []byte(sampleRoutes), 0644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestScan(t *testing.T) {
	routes, err := Scan(writeRoutes(t))
	if err != nil {
		t.Fatal(err)
	}
	if len(routes) != 5 {
		t.Fatalf("got %d routes, want 5", len(routes))
	}

	byPattern := map[string]Route{}
	for _, r := range routes {
		byPattern[r.Method+" "+r.Path] = r
	}
	if r, ok := byPattern["GET /api/users"]; !ok || r.Handler != "listUsers" {
		t.Errorf("GET /api/users not discovered correctly: %+v", r)
	}
	if r, ok := byPattern["POST /api/users"]; !ok || r.File != "api.go" {
		t.Errorf("POST /api/users not discovered correctly: %+v", r)
	}
	if _, ok := byPattern["GET /api/users/{id}"]; !ok {
		t.Error("parameterized route not discovered")
	}
	if _, ok := byPattern["ANY /legacy"]; !ok {
		t.Error("pattern-only route should match every method")
	}
}

func TestScanMissingDir(t *testing.T) {
	routes, err := Scan(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("missing dir should not error: %v", err)
	}
	if len(routes) != 0 {
		t.Errorf("got %d routes, want 0", len(routes))
	}
}

func TestFilter(t *testing.T) {
	routes, err := Scan(writeRoutes(t))
	if err != nil {
		t.Fatal(err)
	}

	gets := Filter(routes, "GET", "")
	for _, r := range gets {
		if r.Method != "GET" {
			t.Errorf("method filter leaked %s", r.Method)
		}
	}
	if len(gets) != 3 {
		t.Errorf("got %d GET routes, want 3", len(gets))
	}

	users := Filter(routes, "", "users")
	if len(users) != 3 {
		t.Errorf("got %d user routes, want 3", len(users))
	}

	if got := Filter(routes, "", ""); len(got) != len(routes) {
		t.Error("empty filter should match everything")
	}
}

func TestCacheRoundTrip(t *testing.T) {
	routes, err := Scan(writeRoutes(t))
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "bootstrap", "cache", "routes.json")
	if err := WriteCache(path, routes); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("cache file missing: %v", err)
	}

	removed, err := ClearCache(path)
	if err != nil || !removed {
		t.Errorf("ClearCache = %v, %v", removed, err)
	}
	removed, err = ClearCache(path)
	if err != nil || removed {
		t.Errorf("second ClearCache = %v, %v", removed, err)
	}
}
