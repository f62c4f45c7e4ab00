package commands

import (
	"fmt"

	"github.com/larago/larago/pkg/project"
	"github.com/spf13/viper"
)

// loadProjectConfig reads larago.toml from the project root with viper,
// applying defaults for anything the file omits. Commands that need write
// access go through pkg/config instead.
func loadProjectConfig(layout *project.Layout) (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigName("larago")
	v.SetConfigType("toml")
	v.AddConfigPath(layout.Root)

	v.SetDefault("app.name", "larago-app")
	v.SetDefault("app.env", "development")
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", 8000)
	v.SetDefault("database.driver", "mysql")
	v.SetDefault("database.host", "127.0.0.1")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.username", "root")
	v.SetDefault("queue.default", "default")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read larago.toml: %w", err)
		}
	}
	return v, nil
}

// dbConnection holds the database settings the CLI delegates with.
type dbConnection struct {
	Driver   string
	Host     string
	Port     int
	Username string
	Password string
	Database string
}

func dbConnectionFrom(v *viper.Viper) dbConnection {
	return dbConnection{
		Driver:   v.GetString("database.driver"),
		Host:     v.GetString("database.host"),
		Port:     v.GetInt("database.port"),
		Username: v.GetString("database.username"),
		Password: v.GetString("database.password"),
		Database: v.GetString("database.database"),
	}
}

// isFileDatabase reports whether the driver stores the database as a plain
// file on disk instead of behind a server.
func (c dbConnection) isFileDatabase() bool {
	switch c.Driver {
	case "sqlite", "sqlite3":
		return true
	}
	return false
}

// createStatement returns the SQL that creates the configured database in the
// driver's dialect. File-backed drivers are handled by the caller directly.
func (c dbConnection) createStatement() (string, error) {
	switch c.Driver {
	case "mysql", "mariadb":
		return fmt.Sprintf("CREATE DATABASE IF NOT EXISTS %s;", c.Database), nil
	case "postgres", "postgresql", "pgsql":
		// Postgres has no IF NOT EXISTS for CREATE DATABASE.
		return fmt.Sprintf("CREATE DATABASE %s;", c.Database), nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", c.Driver)
	}
}

// dropStatement returns the SQL that drops the configured database in the
// driver's dialect.
func (c dbConnection) dropStatement() (string, error) {
	switch c.Driver {
	case "mysql", "mariadb", "postgres", "postgresql", "pgsql":
		return fmt.Sprintf("DROP DATABASE IF EXISTS %s;", c.Database), nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", c.Driver)
	}
}

// clientEnv returns extra environment variables the client binary needs. psql
// reads the password from PGPASSWORD since stdin carries the SQL.
func (c dbConnection) clientEnv() []string {
	switch c.Driver {
	case "postgres", "postgresql", "pgsql":
		if c.Password != "" {
			return []string{"PGPASSWORD=" + c.Password}
		}
	}
	return nil
}

// clientCommand returns the database client binary and base arguments for the
// configured driver.
func (c dbConnection) clientCommand(withDatabase bool) (string, []string, error) {
	switch c.Driver {
	case "mysql", "mariadb":
		args := []string{"-h", c.Host, "-P", fmt.Sprint(c.Port), "-u", c.Username}
		if c.Password != "" {
			args = append(args, "-p"+c.Password)
		}
		if withDatabase {
			args = append(args, c.Database)
		}
		return "mysql", args, nil
	case "postgres", "postgresql", "pgsql":
		args := []string{"-h", c.Host, "-p", fmt.Sprint(c.Port), "-U", c.Username}
		if withDatabase {
			args = append(args, "-d", c.Database)
		}
		return "psql", args, nil
	case "sqlite", "sqlite3":
		return "sqlite3", []string{c.Database}, nil
	default:
		return "", nil, fmt.Errorf("unsupported database driver %q", c.Driver)
	}
}
