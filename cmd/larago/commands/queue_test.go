package commands

import "testing"

func TestShortID(t *testing.T) {
	cases := []struct {
		id, want string
	}{
		{"550e8400-e29b-41d4-a716-446655440000", "550e8400"},
		{"job-1", "job-1"},
		{"", ""},
		{"12345678", "12345678"},
	}
	for _, c := range cases {
		if got := shortID(c.id); got != c.want {
			t.Errorf("shortID(%q) = %q, want %q", c.id, got, c.want)
		}
	}
}
