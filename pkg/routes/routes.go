// Package routes discovers the routes a Larago application registers by
// scanning its routes/ directory.
package routes

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// Route is one discovered route registration.
type Route struct {
	Method  string `json:"method"`
	Path    string `json:"path"`
	Handler string `json:"handler,omitempty"`
	File    string `json:"file"`
}

// Registration patterns recognized in route files: mux.HandleFunc and
// mux.Handle with Go 1.22 "METHOD /path" patterns, pattern-only
// registrations match every method.
var (
	handlePatternRe = regexp.MustCompile(`\.Handle(?:Func)?\(\s*"([^"]+)"`)
	handlerNameRe   = regexp.MustCompile(`\.Handle(?:Func)?\(\s*"[^"]+"\s*,\s*([\w.]+)`)
	methodPrefixRe  = regexp.MustCompile(`^(GET|POST|PUT|PATCH|DELETE|HEAD|OPTIONS)\s+(.+)$`)
)

// Scan parses every .go file under dir and returns the routes it registers,
// sorted by path then method.
func Scan(dir string) ([]Route, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read routes directory: %w", err)
	}
	var routes []Route
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".go") || strings.HasSuffix(entry.Name(), "_test.go") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read route file: %w", err)
		}
		routes = append(routes, scanSource(string(data), entry.Name())...)
	}
	sort.Slice(routes, func(i, j int) bool {
		if routes[i].Path != routes[j].Path {
			return routes[i].Path < routes[j].Path
		}
		return routes[i].Method < routes[j].Method
	})
	return routes, nil
}

func scanSource(src, file string) []Route {
	var routes []Route
	for _, line := range strings.Split(src, "\n") {
		m := handlePatternRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		pattern := m[1]
		method := "ANY"
		path := pattern
		if pm := methodPrefixRe.FindStringSubmatch(pattern); pm != nil {
			method = pm[1]
			path = pm[2]
		}
		handler := ""
		if hm := handlerNameRe.FindStringSubmatch(line); hm != nil && hm[1] != "func" {
			handler = hm[1]
		}
		routes = append(routes, Route{Method: method, Path: path, Handler: handler, File: file})
	}
	return routes
}

// Filter narrows routes by method and a path substring. Empty filters match
// everything.
func Filter(routes []Route, method, path string) []Route {
	if method == "" && path == "" {
		return routes
	}
	var out []Route
	for _, r := range routes {
		if method != "" && !strings.EqualFold(r.Method, method) {
			continue
		}
		if path != "" && !strings.Contains(r.Path, path) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// WriteCache stores the route table at path.
func WriteCache(path string, routes []Route) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	data, err := json.MarshalIndent(routes, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode route cache: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write route cache: %w", err)
	}
	return nil
}

// ClearCache removes the cached route table. Missing cache is not an error;
// the bool reports whether anything was removed.
func ClearCache(path string) (bool, error) {
	err := os.Remove(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to clear route cache: %w", err)
	}
	return true, nil
}
