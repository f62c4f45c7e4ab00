package generator

import "testing"

func TestCaseConversions(t *testing.T) {
	tests := []struct {
		in     string
		snake  string
		pascal string
		camel  string
		kebab  string
	}{
		{"UserProfile", "user_profile", "UserProfile", "userProfile", "user-profile"},
		{"user_profile", "user_profile", "UserProfile", "userProfile", "user-profile"},
		{"user-profile", "user_profile", "UserProfile", "userProfile", "user-profile"},
		{"HTTPServer", "http_server", "HttpServer", "httpServer", "http-server"},
		{"order", "order", "Order", "order", "order"},
	}
	for _, tt := range tests {
		if got := ToSnake(tt.in); got != tt.snake {
			t.Errorf("ToSnake(%q) = %q, want %q", tt.in, got, tt.snake)
		}
		if got := ToPascal(tt.in); got != tt.pascal {
			t.Errorf("ToPascal(%q) = %q, want %q", tt.in, got, tt.pascal)
		}
		if got := ToCamel(tt.in); got != tt.camel {
			t.Errorf("ToCamel(%q) = %q, want %q", tt.in, got, tt.camel)
		}
		if got := ToKebab(tt.in); got != tt.kebab {
			t.Errorf("ToKebab(%q) = %q, want %q", tt.in, got, tt.kebab)
		}
	}
}

func TestPluralize(t *testing.T) {
	tests := []struct{ in, want string }{
		{"user", "users"},
		{"box", "boxes"},
		{"category", "categories"},
		{"bus", "buses"},
		{"dish", "dishes"},
		{"day", "days"},
	}
	for _, tt := range tests {
		if got := Pluralize(tt.in); got != tt.want {
			t.Errorf("Pluralize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSingularize(t *testing.T) {
	tests := []struct{ in, want string }{
		{"users", "user"},
		{"boxes", "box"},
		{"categories", "category"},
		{"dishes", "dish"},
		{"class", "class"},
	}
	for _, tt := range tests {
		if got := Singularize(tt.in); got != tt.want {
			t.Errorf("Singularize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValidIdentifier(t *testing.T) {
	valid := []string{"User", "user_profile", "_private", "Order2"}
	for _, name := range valid {
		if !ValidIdentifier(name) {
			t.Errorf("ValidIdentifier(%q) = false, want true", name)
		}
	}
	invalid := []string{"", "2fast", "user-profile", "user name", "user.name"}
	for _, name := range invalid {
		if ValidIdentifier(name) {
			t.Errorf("ValidIdentifier(%q) = true, want false", name)
		}
	}
}
