package scaffold

type templateData struct {
	Name   string
	Snake  string
	Module string
}

var goModTemplate = `module {{.Module}}

go 1.25
`

var mainTemplate = `package main

import (
	"log"
	"net/http"
	"os"

	"{{.Module}}/routes"
)

func main() {
	host := envOr("SERVER_HOST", "127.0.0.1")
	port := envOr("SERVER_PORT", "8000")

	mux := http.NewServeMux()
	routes.Register(mux)

	addr := host + ":" + port
	log.Printf("{{.Name}} listening on http://%s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatal(err)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
`

var apiRoutesTemplate = `package routes

import (
	"encoding/json"
	"net/http"
)

// Register mounts the application's API routes.
func Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})
}
`

var webRoutesTemplate = `package routes

import "net/http"

// Register mounts the application's web routes.
func Register(mux *http.ServeMux) {
	mux.Handle("GET /", http.FileServer(http.Dir("public")))
}
`

var minimalRoutesTemplate = `package routes

import (
	"fmt"
	"net/http"
)

// Register mounts the application's routes.
func Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "{{.Name}}")
	})
}
`

var indexHTMLTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="utf-8">
	<title>{{.Name}}</title>
</head>
<body>
	<h1>{{.Name}}</h1>
	<p>Your Larago application is running.</p>
</body>
</html>
`

var seederRunnerTemplate = `package main

import (
	"database/sql"
	"fmt"
	"os"
)

type seeder interface {
	Run(db *sql.DB) error
}

var seeders = map[string]seeder{}

func registerSeeder(name string, s seeder) {
	seeders[name] = s
}

func main() {
	only := os.Getenv("LARAGO_SEEDER")
	var db *sql.DB
	for name, s := range seeders {
		if only != "" && name != only {
			continue
		}
		fmt.Printf("Seeding: %s\n", name)
		if err := s.Run(db); err != nil {
			fmt.Fprintf(os.Stderr, "seeder %s failed: %v\n", name, err)
			os.Exit(1)
		}
	}
}
`

var exampleTestTemplate = `package unit

import "testing"

func TestExample(t *testing.T) {
	if 1+1 != 2 {
		t.Fatal("arithmetic is broken")
	}
}
`

var gitignoreTemplate = `# Binaries
/bin/
/build/
{{.Snake}}

# Runtime state
/storage/logs/*
/storage/framework/cache/data/*
/storage/framework/sessions/*
/storage/framework/queue/*
/bootstrap/cache/*
!**/.gitkeep

# Environment
.env
`

var readmeTemplate = `# {{.Name}}

A Larago application.

## Getting started

` + "```bash" + `
larago serve
` + "```" + `

## Common tasks

` + "```bash" + `
larago make:controller User --resource
larago make:model Post --migration
larago migrate
larago db:seed
larago test
` + "```" + `
`
