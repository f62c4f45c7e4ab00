// Package generator provides component code generation for Larago projects.
package generator

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"
)

// Kind identifies a generatable component type. The set is closed: commands
// map one-to-one onto these kinds and nothing else.
type Kind string

const (
	KindController Kind = "controller"
	KindModel      Kind = "model"
	KindMiddleware Kind = "middleware"
	KindRequest    Kind = "request"
	KindResource   Kind = "resource"
	KindSeeder     Kind = "seeder"
	KindFactory    Kind = "factory"
	KindJob        Kind = "job"
	KindEvent      Kind = "event"
	KindListener   Kind = "listener"
	KindMigration  Kind = "migration"
)

// Sentinel errors reported by Generate.
var (
	ErrTargetExists = errors.New("target already exists")
	ErrInvalidName  = errors.New("invalid component name")
	ErrUnknownKind  = errors.New("unknown component kind")
)

// Spec describes a single component to generate.
type Spec struct {
	Kind  Kind
	Name  string
	Root  string // project root; "." when empty
	Force bool   // overwrite an existing target

	// Kind-specific options.
	Resource   bool      // controller: full resource action set
	API        bool      // controller: API action set
	Model      string    // controller/seeder/factory: associated model name
	Collection bool      // resource: wrap a collection
	Event      string    // listener: event type to handle
	Sync       bool      // job: dispatch synchronously
	Table      string    // migration: table being altered
	CreateTab  string    // migration: table being created
	Timestamp  time.Time // migration: filename timestamp; zero means now
}

// Result reports what a generation produced.
type Result struct {
	Files []string `json:"files"`
}

type kindLayout struct {
	dir    string // slash-separated, relative to the project root
	pkg    string
	suffix string // appended to the struct name when missing
	tmpl   string
}

var kinds = map[Kind]kindLayout{
	KindController: {dir: "app/http/controllers", pkg: "controllers", suffix: "Controller", tmpl: controllerTemplate},
	KindModel:      {dir: "app/models", pkg: "models", tmpl: modelTemplate},
	KindMiddleware: {dir: "app/http/middleware", pkg: "middleware", suffix: "Middleware", tmpl: middlewareTemplate},
	KindRequest:    {dir: "app/http/requests", pkg: "requests", suffix: "Request", tmpl: requestTemplate},
	KindResource:   {dir: "app/http/resources", pkg: "resources", suffix: "Resource", tmpl: resourceTemplate},
	KindSeeder:     {dir: "database/seeders", pkg: "main", suffix: "Seeder", tmpl: seederTemplate},
	KindFactory:    {dir: "database/factories", pkg: "factories", suffix: "Factory", tmpl: factoryTemplate},
	KindJob:        {dir: "app/jobs", pkg: "jobs", suffix: "Job", tmpl: jobTemplate},
	KindEvent:      {dir: "app/events", pkg: "events", tmpl: eventTemplate},
	KindListener:   {dir: "app/listeners", pkg: "listeners", suffix: "Listener", tmpl: listenerTemplate},
	KindMigration:  {dir: "database/migrations"},
}

// TargetPath returns the file a spec would generate, without generating it.
func TargetPath(spec Spec) (string, error) {
	layout, ok := kinds[spec.Kind]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, spec.Kind)
	}
	root := spec.Root
	if root == "" {
		root = "."
	}
	dir := filepath.Join(root, filepath.FromSlash(layout.dir))
	if spec.Kind == KindMigration {
		ts := spec.Timestamp
		if ts.IsZero() {
			ts = time.Now()
		}
		name := ts.Format("2006_01_02_150405") + "_" + ToSnake(spec.Name) + ".sql"
		return filepath.Join(dir, name), nil
	}
	return filepath.Join(dir, ToSnake(structName(spec))+".go"), nil
}

func structName(spec Spec) string {
	name := ToPascal(spec.Name)
	layout := kinds[spec.Kind]
	if layout.suffix != "" && !strings.HasSuffix(name, layout.suffix) {
		name += layout.suffix
	}
	return name
}

// Generate renders a single component. Name validation happens before any
// filesystem access; an existing target fails with ErrTargetExists unless
// Force is set.
func Generate(spec Spec) (*Result, error) {
	if !ValidIdentifier(spec.Name) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidName, spec.Name)
	}
	layout, ok := kinds[spec.Kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, spec.Kind)
	}

	target, err := TargetPath(spec)
	if err != nil {
		return nil, err
	}
	if !spec.Force {
		if _, err := os.Stat(target); err == nil {
			return nil, fmt.Errorf("%w: %s", ErrTargetExists, target)
		}
	}
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	if spec.Kind == KindMigration {
		if err := os.WriteFile(target, []byte(migrationContent(spec)), 0644); err != nil {
			return nil, fmt.Errorf("failed to write migration: %w", err)
		}
		return &Result{Files: []string{target}}, nil
	}

	data := buildTemplateData(spec, layout)
	if err := executeTemplate(target, layout.tmpl, data); err != nil {
		return nil, err
	}
	return &Result{Files: []string{target}}, nil
}

type templateData struct {
	Package    string
	Name       string // struct name, suffix included
	Base       string // PascalCase name without suffix
	Snake      string
	Camel      string
	Plural     string // snake plural of the base name
	Table      string
	Model      string
	Event      string
	Resource   bool
	API        bool
	Collection bool
	Sync       bool
}

func buildTemplateData(spec Spec, layout kindLayout) templateData {
	base := ToPascal(spec.Name)
	if layout.suffix != "" {
		base = strings.TrimSuffix(base, layout.suffix)
	}
	model := ToPascal(spec.Model)
	if model == "" {
		model = base
	}
	event := ToPascal(spec.Event)
	return templateData{
		Package:    layout.pkg,
		Name:       structName(spec),
		Base:       base,
		Snake:      ToSnake(base),
		Camel:      ToCamel(base),
		Plural:     Pluralize(ToSnake(base)),
		Table:      Pluralize(ToSnake(model)),
		Model:      model,
		Event:      event,
		Resource:   spec.Resource,
		API:        spec.API,
		Collection: spec.Collection,
		Sync:       spec.Sync,
	}
}

func migrationContent(spec Spec) string {
	switch {
	case spec.CreateTab != "":
		table := ToSnake(spec.CreateTab)
		return fmt.Sprintf(`-- +migrate Up
CREATE TABLE %s (
    id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
    created_at TIMESTAMP NULL,
    updated_at TIMESTAMP NULL
);

-- +migrate Down
DROP TABLE IF EXISTS %s;
`, table, table)
	case spec.Table != "":
		table := ToSnake(spec.Table)
		return fmt.Sprintf(`-- +migrate Up
ALTER TABLE %s
    ADD COLUMN example VARCHAR(255) NULL;

-- +migrate Down
ALTER TABLE %s
    DROP COLUMN example;
`, table, table)
	default:
		return `-- +migrate Up

-- +migrate Down
`
	}
}

func executeTemplate(path, tmplContent string, data any) error {
	tmpl, err := template.New(filepath.Base(path)).Parse(tmplContent)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()
	if err := tmpl.Execute(f, data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}
	return nil
}
