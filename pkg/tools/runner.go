// Package tools runs the external programs larago delegates to: go, git,
// database clients, docker, rsync.
package tools

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// ErrDelegated wraps any failure of an external tool so callers can treat
// delegation errors uniformly.
var ErrDelegated = errors.New("delegated command failed")

// CommandExists reports whether name resolves on PATH.
func CommandExists(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// Run executes a command with inherited stdio.
func Run(ctx context.Context, name string, args ...string) error {
	return RunInDir(ctx, "", nil, name, args...)
}

// RunInDir executes a command in dir with extra environment entries and
// inherited stdio. Extra entries are KEY=VALUE strings appended to the
// current environment.
func RunInDir(ctx context.Context, dir string, extraEnv []string, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if len(extraEnv) > 0 {
		cmd.Env = append(os.Environ(), extraEnv...)
	}
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrDelegated, name, strings.Join(args, " "), err)
	}
	return nil
}

// Capture executes a command and returns its combined output. The output is
// included in the wrapped error on failure.
func Capture(ctx context.Context, dir string, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf
	if err := cmd.Run(); err != nil {
		out := strings.TrimSpace(buf.String())
		if out != "" {
			return out, fmt.Errorf("%w: %s: %s", ErrDelegated, name, out)
		}
		return out, fmt.Errorf("%w: %s %s: %v", ErrDelegated, name, strings.Join(args, " "), err)
	}
	return strings.TrimSpace(buf.String()), nil
}

// RunWithInput executes a command feeding input on stdin and returns combined
// output. Extra entries are KEY=VALUE strings appended to the current
// environment. Used to pipe SQL to database clients.
func RunWithInput(ctx context.Context, dir, input string, extraEnv []string, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdin = strings.NewReader(input)
	if len(extraEnv) > 0 {
		cmd.Env = append(os.Environ(), extraEnv...)
	}
	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf
	if err := cmd.Run(); err != nil {
		out := strings.TrimSpace(buf.String())
		if out != "" {
			return out, fmt.Errorf("%w: %s: %s", ErrDelegated, name, out)
		}
		return out, fmt.Errorf("%w: %s: %v", ErrDelegated, name, err)
	}
	return strings.TrimSpace(buf.String()), nil
}

// Start launches a long-running command with inherited stdio and returns the
// handle without waiting.
func Start(dir string, extraEnv []string, name string, args ...string) (*exec.Cmd, error) {
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if len(extraEnv) > 0 {
		cmd.Env = append(os.Environ(), extraEnv...)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDelegated, name, err)
	}
	return cmd, nil
}
