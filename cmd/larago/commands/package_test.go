package commands

import (
	"reflect"
	"testing"
)

func TestInstallCommands(t *testing.T) {
	got := installCommands([]string{"github.com/google/uuid", "github.com/spf13/cobra@v1.10.2"})
	want := [][]string{
		{"get", "github.com/google/uuid", "github.com/spf13/cobra@v1.10.2"},
		{"mod", "tidy"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("installCommands = %v, want %v", got, want)
	}
}

func TestRemoveCommandsStripsVersion(t *testing.T) {
	got := removeCommands([]string{"github.com/google/uuid@v1.6.0"})
	want := [][]string{
		{"get", "github.com/google/uuid@none"},
		{"mod", "tidy"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("removeCommands = %v, want %v", got, want)
	}
}

func TestUpdateCommands(t *testing.T) {
	got := updateCommands(nil)
	want := [][]string{
		{"get", "-u", "./..."},
		{"mod", "tidy"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("updateCommands(nil) = %v, want %v", got, want)
	}

	got = updateCommands([]string{"github.com/fatih/color"})
	want = [][]string{
		{"get", "-u", "github.com/fatih/color"},
		{"mod", "tidy"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("updateCommands = %v, want %v", got, want)
	}
}
