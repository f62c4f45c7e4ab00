package version

import "testing"

func TestGetVersion(t *testing.T) {
	if GetVersion() != Version {
		t.Errorf("GetVersion() = %q, want %q", GetVersion(), Version)
	}
}

func TestGetVersion_Modified(t *testing.T) {
	original := Version
	defer func() { Version = original }()

	Version = "v1.2.3"
	if v := GetVersion(); v != "v1.2.3" {
		t.Errorf("GetVersion() = %q, want v1.2.3", v)
	}
}
