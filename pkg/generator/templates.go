package generator

// Component templates. Generated code is plain Go over net/http so a fresh
// project compiles without the framework runtime wired in.

var controllerTemplate = `package {{.Package}}

import (
	"encoding/json"
	"net/http"
)

// {{.Name}} handles HTTP requests for {{.Plural}}.
type {{.Name}} struct{}

func New{{.Name}}() *{{.Name}} {
	return &{{.Name}}{}
}
{{if or .Resource .API}}
// Index lists {{.Plural}}.
func (c *{{.Name}}) Index(w http.ResponseWriter, r *http.Request) {
	json.NewEncoder(w).Encode(map[string]any{"data": []any{}})
}

// Show returns a single {{.Snake}}.
func (c *{{.Name}}) Show(w http.ResponseWriter, r *http.Request) {
	json.NewEncoder(w).Encode(map[string]any{"data": nil})
}

// Store creates a new {{.Snake}}.
func (c *{{.Name}}) Store(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusCreated)
}

// Update modifies an existing {{.Snake}}.
func (c *{{.Name}}) Update(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// Destroy removes a {{.Snake}}.
func (c *{{.Name}}) Destroy(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}
{{else}}
// Handle processes the request.
func (c *{{.Name}}) Handle(w http.ResponseWriter, r *http.Request) {
	json.NewEncoder(w).Encode(map[string]any{"message": "ok"})
}
{{end}}`

var modelTemplate = `package {{.Package}}

import "time"

// {{.Name}} is stored in the {{.Plural}} table.
type {{.Name}} struct {
	ID        uint64    ` + "`json:\"id\" db:\"id\"`" + `
	CreatedAt time.Time ` + "`json:\"created_at\" db:\"created_at\"`" + `
	UpdatedAt time.Time ` + "`json:\"updated_at\" db:\"updated_at\"`" + `
}

// TableName returns the database table backing {{.Name}}.
func ({{.Name}}) TableName() string {
	return "{{.Plural}}"
}
`

var middlewareTemplate = `package {{.Package}}

import "net/http"

// {{.Name}} wraps an http.Handler.
func {{.Name}}(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r)
	})
}
`

var requestTemplate = `package {{.Package}}

import (
	"encoding/json"
	"net/http"
)

// {{.Name}} carries validated input for {{.Base}} requests.
type {{.Name}} struct {
}

// Parse decodes and validates the request body.
func Parse{{.Name}}(r *http.Request) (*{{.Name}}, error) {
	var req {{.Name}}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return &req, nil
}

// Validate checks field constraints.
func (r *{{.Name}}) Validate() error {
	return nil
}
`

var resourceTemplate = `package {{.Package}}

// {{.Name}} shapes {{.Base}} data for API responses.
type {{.Name}} struct {
	value any
}

func New{{.Name}}(value any) *{{.Name}} {
	return &{{.Name}}{value: value}
}

// ToMap returns the serializable representation.
func (r *{{.Name}}) ToMap() map[string]any {
	return map[string]any{
		"data": r.value,
	}
}
{{if .Collection}}
// {{.Base}}Collection shapes a list of {{.Plural}}.
type {{.Base}}Collection struct {
	items []any
}

func New{{.Base}}Collection(items []any) *{{.Base}}Collection {
	return &{{.Base}}Collection{items: items}
}

func (c *{{.Base}}Collection) ToMap() map[string]any {
	return map[string]any{
		"data": c.items,
		"meta": map[string]any{"count": len(c.items)},
	}
}
{{end}}`

var seederTemplate = `package main

import "database/sql"

// {{.Name}} populates the {{.Table}} table.
type {{.Name}} struct{}

func init() {
	registerSeeder("{{.Name}}", &{{.Name}}{})
}

// Run inserts seed data.
func (s *{{.Name}}) Run(db *sql.DB) error {
	return nil
}
`

var factoryTemplate = `package {{.Package}}

// {{.Name}} builds {{.Model}} attribute sets for tests and seeding.
type {{.Name}} struct{}

func New{{.Name}}() *{{.Name}} {
	return &{{.Name}}{}
}

// Definition returns the default attribute set.
func (f *{{.Name}}) Definition() map[string]any {
	return map[string]any{}
}

// Make returns count attribute sets.
func (f *{{.Name}}) Make(count int) []map[string]any {
	out := make([]map[string]any, count)
	for i := range out {
		out[i] = f.Definition()
	}
	return out
}
`

var jobTemplate = `package {{.Package}}

// {{.Name}} is a queueable unit of work.
type {{.Name}} struct {
}

// Queue names the queue this job runs on.
func (j *{{.Name}}) Queue() string {
	return "default"
}
{{if .Sync}}
// Sync reports that the job runs in-process when dispatched.
func (j *{{.Name}}) Sync() bool {
	return true
}
{{end}}
// Handle performs the work.
func (j *{{.Name}}) Handle() error {
	return nil
}
`

var eventTemplate = `package {{.Package}}

import "time"

// {{.Name}} is emitted when a {{.Snake}} occurs.
type {{.Name}} struct {
	OccurredAt time.Time
}

func New{{.Name}}() *{{.Name}} {
	return &{{.Name}}{OccurredAt: time.Now()}
}

// EventName identifies the event on the bus.
func (e *{{.Name}}) EventName() string {
	return "{{.Snake}}"
}
`

var listenerTemplate = `package {{.Package}}

// {{.Name}} reacts to {{if .Event}}{{.Event}} events{{else}}dispatched events{{end}}.
type {{.Name}} struct{}

func New{{.Name}}() *{{.Name}} {
	return &{{.Name}}{}
}

// Handle processes one event.
func (l *{{.Name}}) Handle(event any) error {
	return nil
}
`
