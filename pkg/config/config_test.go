package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "larago.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

const sampleConfig = `[app]
name = "shop"
env = "development"
debug = true

[database]
host = "127.0.0.1"
port = 3306
`

func TestGetDottedKey(t *testing.T) {
	store, err := Load(writeConfig(t, sampleConfig))
	if err != nil {
		t.Fatal(err)
	}
	v, err := store.Get("app.name")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if v != "shop" {
		t.Errorf("Get(app.name) = %v, want shop", v)
	}
	if _, err := store.Get("app.missing"); !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("expected ErrKeyNotFound, got %v", err)
	}
	// Reading through a scalar is a lookup miss, not a type conflict.
	if _, err := store.Get("app.name.deeper"); !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("expected ErrKeyNotFound, got %v", err)
	}
}

func TestSetThenGetRoundTrip(t *testing.T) {
	path := writeConfig(t, sampleConfig)
	store, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Set("database.host", "db.internal"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	reloaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	v, err := reloaded.Get("database.host")
	if err != nil {
		t.Fatal(err)
	}
	if v != "db.internal" {
		t.Errorf("round trip returned %v, want db.internal", v)
	}
}

func TestSetPreservesUnrelatedKeys(t *testing.T) {
	path := writeConfig(t, sampleConfig)
	store, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Set("app.debug", false); err != nil {
		t.Fatal(err)
	}

	reloaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	for key, want := range map[string]any{
		"app.name":      "shop",
		"app.env":       "development",
		"database.host": "127.0.0.1",
		"database.port": int64(3306),
	} {
		got, err := reloaded.Get(key)
		if err != nil {
			t.Fatalf("Get(%s) after Set failed: %v", key, err)
		}
		if got != want {
			t.Errorf("Get(%s) = %v (%T), want %v", key, got, got, want)
		}
	}
}

func TestSetCreatesIntermediateTables(t *testing.T) {
	path := writeConfig(t, sampleConfig)
	store, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Set("mail.smtp.host", "mail.internal"); err != nil {
		t.Fatal(err)
	}
	v, err := store.Get("mail.smtp.host")
	if err != nil {
		t.Fatal(err)
	}
	if v != "mail.internal" {
		t.Errorf("Get = %v, want mail.internal", v)
	}
}

func TestSetThroughScalarFailsAndLeavesFileUntouched(t *testing.T) {
	path := writeConfig(t, sampleConfig)
	before, _ := os.ReadFile(path)

	store, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Set("app.name.nested", "x"); !errors.Is(err, ErrTypeConflict) {
		t.Fatalf("expected ErrTypeConflict, got %v", err)
	}

	after, _ := os.ReadFile(path)
	if string(before) != string(after) {
		t.Error("file changed despite type conflict")
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{"true", true},
		{"false", false},
		{"42", int64(42)},
		{"3.14", 3.14},
		{"hello", "hello"},
		{"127.0.0.1", "127.0.0.1"},
	}
	for _, tt := range tests {
		if got := ParseValue(tt.in); got != tt.want {
			t.Errorf("ParseValue(%q) = %v (%T), want %v (%T)", tt.in, got, got, tt.want, tt.want)
		}
	}
}

func TestSensitiveMasking(t *testing.T) {
	if !IsSensitive("database.password") || !IsSensitive("app.key") || !IsSensitive("api.token") {
		t.Error("expected sensitive keys to be detected")
	}
	if IsSensitive("app.name") || IsSensitive("server.port") {
		t.Error("expected plain keys to not be sensitive")
	}
	if got := DisplayValue("database.password", "hunter2"); got != Mask {
		t.Errorf("DisplayValue = %q, want mask", got)
	}
	if got := DisplayValue("app.name", "shop"); got != "shop" {
		t.Errorf("DisplayValue = %q, want shop", got)
	}
}

func TestGenerateKey(t *testing.T) {
	key, err := GenerateKey()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(key, "base64:") {
		t.Errorf("key %q missing base64 prefix", key)
	}
	other, _ := GenerateKey()
	if key == other {
		t.Error("consecutive keys are identical")
	}
}

func TestValidate(t *testing.T) {
	store, err := Load(writeConfig(t, sampleConfig))
	if err != nil {
		t.Fatal(err)
	}
	missing := store.Validate()
	found := false
	for _, key := range missing {
		if key == "database.driver" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected database.driver to be missing, got %v", missing)
	}

	full, err := Load(writeConfig(t, Default("shop")))
	if err != nil {
		t.Fatal(err)
	}
	if missing := full.Validate(); len(missing) != 0 {
		t.Errorf("default config should validate, missing %v", missing)
	}
}
