package config

import (
	"fmt"
	"os"
)

// Default returns the configuration written into new projects.
func Default(appName string) string {
	return fmt.Sprintf(`[app]
name = "%s"
env = "development"
debug = true
url = "http://localhost:8000"
key = ""

[server]
host = "127.0.0.1"
port = 8000

[database]
driver = "mysql"
host = "127.0.0.1"
port = 3306
database = "%s"
username = "root"
password = ""

[cache]
driver = "file"
ttl = 3600

[session]
driver = "file"
lifetime = 120

[logging]
level = "info"
channel = "file"

[queue]
driver = "file"
default = "default"
`, appName, appName)
}

// WriteDefault writes the default document to path, overwriting it.
func WriteDefault(path, appName string) error {
	if err := os.WriteFile(path, []byte(Default(appName)), 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
