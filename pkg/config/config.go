// Package config reads and writes larago.toml project configuration.
package config

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Sentinel errors for key access.
var (
	ErrKeyNotFound  = errors.New("config key not found")
	ErrTypeConflict = errors.New("config key type conflict")
)

// Store is a parsed configuration document. Get and Set address values with
// dotted keys ("database.host"). Set rewrites the file read-modify-write so
// unrelated keys survive.
type Store struct {
	path string
	doc  map[string]any
}

// Load reads the document at path.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	doc := map[string]any{}
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &Store{path: path, doc: doc}, nil
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Get resolves a dotted key. A path that cannot be resolved, whether a
// segment is missing or an intermediate value is not a table, returns
// ErrKeyNotFound. ErrTypeConflict is reserved for writes.
func (s *Store) Get(key string) (any, error) {
	parts := strings.Split(key, ".")
	var cur any = s.doc
	for _, part := range parts {
		table, ok := cur.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, key)
		}
		next, ok := table[part]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, key)
		}
		cur = next
	}
	return cur, nil
}

// GetString resolves a dotted key and renders it as a string.
func (s *Store) GetString(key string) (string, error) {
	v, err := s.Get(key)
	if err != nil {
		return "", err
	}
	return FormatValue(v), nil
}

// Set assigns a dotted key, creating intermediate tables as needed, and writes
// the document back to disk. Assigning through an existing non-table value
// fails with ErrTypeConflict and leaves the file untouched.
func (s *Store) Set(key string, value any) error {
	parts := strings.Split(key, ".")
	table := s.doc
	for i, part := range parts[:len(parts)-1] {
		next, ok := table[part]
		if !ok {
			created := map[string]any{}
			table[part] = created
			table = created
			continue
		}
		sub, ok := next.(map[string]any)
		if !ok {
			return fmt.Errorf("%w: %s is not a table", ErrTypeConflict, strings.Join(parts[:i+1], "."))
		}
		table = sub
	}
	final := parts[len(parts)-1]
	if existing, ok := table[final]; ok {
		if _, isTable := existing.(map[string]any); isTable {
			if _, newIsTable := value.(map[string]any); !newIsTable {
				return fmt.Errorf("%w: %s is a table", ErrTypeConflict, key)
			}
		}
	}
	table[final] = value
	return s.Save()
}

// Save marshals the document back to its file.
func (s *Store) Save() error {
	data, err := toml.Marshal(s.doc)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Flatten returns every leaf as a dotted key, sorted.
func (s *Store) Flatten() []Entry {
	var entries []Entry
	flatten("", s.doc, &entries)
	sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })
	return entries
}

// Entry is one leaf of the document.
type Entry struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}

func flatten(prefix string, v any, out *[]Entry) {
	table, ok := v.(map[string]any)
	if !ok {
		*out = append(*out, Entry{Key: prefix, Value: v})
		return
	}
	for k, sub := range table {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		flatten(key, sub, out)
	}
}

// ParseValue interprets a raw string the way the CLI accepts values on the
// command line: bool, then integer, then float, then string.
func ParseValue(raw string) any {
	if b, err := strconv.ParseBool(raw); err == nil && (raw == "true" || raw == "false") {
		return b
	}
	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	return raw
}

// FormatValue renders a config value for display.
func FormatValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", val)
	}
}

// sensitiveFragments flag keys whose values are masked on display.
var sensitiveFragments = []string{"password", "secret", "key", "token"}

// IsSensitive reports whether a key's value should be masked.
func IsSensitive(key string) bool {
	lower := strings.ToLower(key)
	for _, frag := range sensitiveFragments {
		if strings.Contains(lower, frag) {
			return true
		}
	}
	return false
}

// Mask is the placeholder shown instead of sensitive values.
const Mask = "••••••••"

// DisplayValue masks sensitive keys.
func DisplayValue(key string, v any) string {
	if IsSensitive(key) && FormatValue(v) != "" {
		return Mask
	}
	return FormatValue(v)
}

// GenerateKey produces a fresh application key.
func GenerateKey() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate key: %w", err)
	}
	return "base64:" + base64.StdEncoding.EncodeToString(buf), nil
}

// requiredKeys must be present for a project configuration to validate.
var requiredKeys = []string{
	"app.name",
	"app.env",
	"server.host",
	"server.port",
	"database.driver",
	"database.database",
}

// Validate checks the document for required keys and returns the missing ones.
func (s *Store) Validate() []string {
	var missing []string
	for _, key := range requiredKeys {
		if _, err := s.Get(key); err != nil {
			missing = append(missing, key)
		}
	}
	return missing
}
