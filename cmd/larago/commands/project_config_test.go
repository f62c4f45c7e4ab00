package commands

import (
	"strings"
	"testing"
)

func TestClientCommandPerDriver(t *testing.T) {
	conn := dbConnection{
		Driver:   "mysql",
		Host:     "127.0.0.1",
		Port:     3306,
		Username: "root",
		Password: "secret",
		Database: "blog",
	}

	name, args, err := conn.clientCommand(true)
	if err != nil {
		t.Fatal(err)
	}
	if name != "mysql" {
		t.Errorf("client = %q, want mysql", name)
	}
	joined := strings.Join(args, " ")
	if !strings.Contains(joined, "-psecret") || !strings.HasSuffix(joined, "blog") {
		t.Errorf("unexpected mysql args %q", joined)
	}

	conn.Driver = "postgres"
	name, args, err = conn.clientCommand(true)
	if err != nil {
		t.Fatal(err)
	}
	if name != "psql" {
		t.Errorf("client = %q, want psql", name)
	}
	joined = strings.Join(args, " ")
	if strings.Contains(joined, "secret") {
		t.Errorf("psql args must not carry the password, got %q", joined)
	}

	conn.Driver = "oracle"
	if _, _, err := conn.clientCommand(false); err == nil {
		t.Error("expected error for unsupported driver")
	}
}

func TestCreateDropStatementsMatchDriver(t *testing.T) {
	conn := dbConnection{Driver: "mysql", Database: "blog"}
	stmt, err := conn.createStatement()
	if err != nil {
		t.Fatal(err)
	}
	if stmt != "CREATE DATABASE IF NOT EXISTS blog;" {
		t.Errorf("mysql create = %q", stmt)
	}

	conn.Driver = "postgres"
	stmt, err = conn.createStatement()
	if err != nil {
		t.Fatal(err)
	}
	// Postgres rejects IF NOT EXISTS on CREATE DATABASE.
	if stmt != "CREATE DATABASE blog;" {
		t.Errorf("postgres create = %q", stmt)
	}
	stmt, err = conn.dropStatement()
	if err != nil {
		t.Fatal(err)
	}
	if stmt != "DROP DATABASE IF EXISTS blog;" {
		t.Errorf("postgres drop = %q", stmt)
	}

	conn.Driver = "sqlite"
	if !conn.isFileDatabase() {
		t.Error("sqlite must be treated as a file database")
	}
	if _, err := conn.createStatement(); err == nil {
		t.Error("sqlite has no CREATE DATABASE statement")
	}
}

func TestClientEnvCarriesPostgresPassword(t *testing.T) {
	conn := dbConnection{Driver: "postgres", Password: "secret"}
	env := conn.clientEnv()
	if len(env) != 1 || env[0] != "PGPASSWORD=secret" {
		t.Errorf("clientEnv = %v, want PGPASSWORD entry", env)
	}

	conn.Password = ""
	if env := conn.clientEnv(); len(env) != 0 {
		t.Errorf("clientEnv = %v for empty password, want none", env)
	}

	conn = dbConnection{Driver: "mysql", Password: "secret"}
	if env := conn.clientEnv(); len(env) != 0 {
		t.Errorf("clientEnv = %v for mysql, want none", env)
	}
}
