package commands

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/larago/larago/pkg/project"
	"github.com/spf13/cobra"
)

var cacheClearCmd = &cobra.Command{
	Use:   "cache:clear",
	Short: "Clear the application cache",
	Run: func(cmd *cobra.Command, args []string) {
		layout := mustLayout()
		cleared := 0
		for _, dir := range []string{layout.CacheData(), layout.BootstrapCache()} {
			n, err := clearDir(dir)
			if err != nil {
				fail(err)
			}
			cleared += n
		}
		if jsonOutput {
			printSuccess(map[string]any{"cleared": cleared})
			return
		}
		statusOK("Cleared %d cached entries", cleared)
	},
}

var cacheForgetCmd = &cobra.Command{
	Use:   "cache:forget [key]",
	Short: "Remove a single cache entry",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		layout := mustLayout()
		key := args[0]
		path := cacheEntryPath(layout, key)
		if err := os.Remove(path); err != nil {
			if os.IsNotExist(err) {
				if jsonOutput {
					printSuccess(map[string]any{"key": key, "removed": false})
					return
				}
				statusInfo("Cache key %q not found", key)
				return
			}
			fail(fmt.Errorf("failed to remove cache entry: %w", err))
		}
		if jsonOutput {
			printSuccess(map[string]any{"key": key, "removed": true})
			return
		}
		statusOK("Forgot cache key %q", key)
	},
}

var cacheConfigCmd = &cobra.Command{
	Use:   "cache:config",
	Short: "Cache the project configuration",
	Run: func(cmd *cobra.Command, args []string) {
		layout := mustLayout()
		path, err := cacheConfig(layout)
		if err != nil {
			fail(err)
		}
		if jsonOutput {
			printSuccess(map[string]any{"path": path})
			return
		}
		statusOK("Configuration cached to %s", path)
	},
}

// cacheEntryPath maps a cache key to its sha256-addressed file.
func cacheEntryPath(layout *project.Layout, key string) string {
	sum := sha256.Sum256([]byte(key))
	return filepath.Join(layout.CacheData(), fmt.Sprintf("%x.cache", sum))
}

// cacheConfig snapshots larago.toml into bootstrap/cache/config.json so the
// application can skip parsing TOML at boot.
func cacheConfig(layout *project.Layout) (string, error) {
	v, err := loadProjectConfig(layout)
	if err != nil {
		return "", err
	}
	data, err := json.MarshalIndent(v.AllSettings(), "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode config cache: %w", err)
	}
	if err := os.MkdirAll(layout.BootstrapCache(), 0755); err != nil {
		return "", fmt.Errorf("failed to create cache directory: %w", err)
	}
	path := filepath.Join(layout.BootstrapCache(), "config.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write config cache: %w", err)
	}
	return path, nil
}

// clearDir removes every entry in dir except .gitkeep, returning the count.
func clearDir(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read cache directory: %w", err)
	}
	removed := 0
	for _, entry := range entries {
		if entry.Name() == ".gitkeep" {
			continue
		}
		if err := os.RemoveAll(filepath.Join(dir, entry.Name())); err != nil {
			return removed, fmt.Errorf("failed to clear cache: %w", err)
		}
		removed++
	}
	return removed, nil
}
