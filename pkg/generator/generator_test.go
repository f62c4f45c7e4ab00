package generator

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestGenerateController(t *testing.T) {
	dir := t.TempDir()
	result, err := Generate(Spec{Kind: KindController, Name: "User", Root: dir, Resource: true})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	want := filepath.Join(dir, "app", "http", "controllers", "user_controller.go")
	if len(result.Files) != 1 || result.Files[0] != want {
		t.Fatalf("unexpected files: %v", result.Files)
	}
	content, err := os.ReadFile(want)
	if err != nil {
		t.Fatalf("generated file missing: %v", err)
	}
	for _, expect := range []string{"package controllers", "type UserController struct", "func (c *UserController) Index", "func (c *UserController) Destroy"} {
		if !strings.Contains(string(content), expect) {
			t.Errorf("generated controller missing %q", expect)
		}
	}
}

func TestGenerateTwiceFailsAndPreservesFirst(t *testing.T) {
	dir := t.TempDir()
	spec := Spec{Kind: KindModel, Name: "User", Root: dir}
	result, err := Generate(spec)
	if err != nil {
		t.Fatalf("first Generate failed: %v", err)
	}
	original, err := os.ReadFile(result.Files[0])
	if err != nil {
		t.Fatal(err)
	}

	// Change the file so an accidental rewrite is detectable.
	if err := os.WriteFile(result.Files[0], append(original, []byte("\n// local edit\n")...), 0644); err != nil {
		t.Fatal(err)
	}
	edited, _ := os.ReadFile(result.Files[0])

	_, err = Generate(spec)
	if !errors.Is(err, ErrTargetExists) {
		t.Fatalf("expected ErrTargetExists, got %v", err)
	}
	after, _ := os.ReadFile(result.Files[0])
	if string(after) != string(edited) {
		t.Error("existing file was modified by the failed generation")
	}
}

func TestGenerateForceOverwrites(t *testing.T) {
	dir := t.TempDir()
	spec := Spec{Kind: KindEvent, Name: "OrderShipped", Root: dir}
	if _, err := Generate(spec); err != nil {
		t.Fatalf("first Generate failed: %v", err)
	}
	spec.Force = true
	if _, err := Generate(spec); err != nil {
		t.Fatalf("forced Generate failed: %v", err)
	}
}

func TestGenerateInvalidName(t *testing.T) {
	dir := t.TempDir()
	_, err := Generate(Spec{Kind: KindModel, Name: "2fast", Root: dir})
	if !errors.Is(err, ErrInvalidName) {
		t.Fatalf("expected ErrInvalidName, got %v", err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Error("invalid name still produced files")
	}
}

func TestGenerateMigrationCreateTable(t *testing.T) {
	dir := t.TempDir()
	ts := time.Date(2026, 8, 30, 12, 30, 45, 0, time.UTC)
	result, err := Generate(Spec{
		Kind:      KindMigration,
		Name:      "create_users_table",
		Root:      dir,
		CreateTab: "users",
		Timestamp: ts,
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	want := filepath.Join(dir, "database", "migrations", "2026_08_30_123045_create_users_table.sql")
	if result.Files[0] != want {
		t.Fatalf("unexpected migration path: %s", result.Files[0])
	}
	content, _ := os.ReadFile(want)
	if !strings.Contains(string(content), "-- +migrate Up") || !strings.Contains(string(content), "CREATE TABLE users") {
		t.Error("migration missing up section")
	}
	if !strings.Contains(string(content), "-- +migrate Down") || !strings.Contains(string(content), "DROP TABLE IF EXISTS users") {
		t.Error("migration missing down section")
	}
}

func TestModelThenMigrationOrder(t *testing.T) {
	dir := t.TempDir()
	modelResult, err := Generate(Spec{Kind: KindModel, Name: "Post", Root: dir})
	if err != nil {
		t.Fatalf("model generation failed: %v", err)
	}
	migResult, err := Generate(Spec{
		Kind:      KindMigration,
		Name:      "create_posts_table",
		Root:      dir,
		CreateTab: "posts",
	})
	if err != nil {
		t.Fatalf("migration generation failed: %v", err)
	}
	if _, err := os.Stat(modelResult.Files[0]); err != nil {
		t.Errorf("model file missing: %v", err)
	}
	if _, err := os.Stat(migResult.Files[0]); err != nil {
		t.Errorf("migration file missing: %v", err)
	}

	// The second run must fail on the model without touching the migration.
	if _, err := Generate(Spec{Kind: KindModel, Name: "Post", Root: dir}); !errors.Is(err, ErrTargetExists) {
		t.Fatalf("expected ErrTargetExists for model, got %v", err)
	}
}

func TestGenerateAllKinds(t *testing.T) {
	dir := t.TempDir()
	specs := []Spec{
		{Kind: KindController, Name: "Order"},
		{Kind: KindModel, Name: "Order"},
		{Kind: KindMiddleware, Name: "RateLimit"},
		{Kind: KindRequest, Name: "StoreOrder"},
		{Kind: KindResource, Name: "Order", Collection: true},
		{Kind: KindSeeder, Name: "Order"},
		{Kind: KindFactory, Name: "Order"},
		{Kind: KindJob, Name: "SendInvoice", Sync: true},
		{Kind: KindEvent, Name: "OrderPlaced"},
		{Kind: KindListener, Name: "NotifyCustomer", Event: "OrderPlaced"},
	}
	for _, spec := range specs {
		spec.Root = dir
		result, err := Generate(spec)
		if err != nil {
			t.Fatalf("Generate(%s) failed: %v", spec.Kind, err)
		}
		if _, err := os.Stat(result.Files[0]); err != nil {
			t.Errorf("Generate(%s) produced no file: %v", spec.Kind, err)
		}
	}
}

func TestTargetPathLayout(t *testing.T) {
	tests := []struct {
		kind Kind
		name string
		want string
	}{
		{KindController, "User", "app/http/controllers/user_controller.go"},
		{KindModel, "User", "app/models/user.go"},
		{KindMiddleware, "Auth", "app/http/middleware/auth_middleware.go"},
		{KindRequest, "StoreUser", "app/http/requests/store_user_request.go"},
		{KindResource, "User", "app/http/resources/user_resource.go"},
		{KindSeeder, "User", "database/seeders/user_seeder.go"},
		{KindFactory, "User", "database/factories/user_factory.go"},
		{KindJob, "SendEmail", "app/jobs/send_email_job.go"},
		{KindEvent, "UserRegistered", "app/events/user_registered.go"},
		{KindListener, "SendWelcome", "app/listeners/send_welcome_listener.go"},
	}
	for _, tt := range tests {
		got, err := TargetPath(Spec{Kind: tt.kind, Name: tt.name, Root: "proj"})
		if err != nil {
			t.Fatalf("TargetPath(%s) failed: %v", tt.kind, err)
		}
		want := filepath.Join("proj", filepath.FromSlash(tt.want))
		if got != want {
			t.Errorf("TargetPath(%s, %s) = %s, want %s", tt.kind, tt.name, got, want)
		}
	}
}
