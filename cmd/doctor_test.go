package cmd

import "testing"

func TestCommandName(t *testing.T) {
	tests := []struct {
		tmpl string
		want string
	}{
		{"python3 {{file}}", "python3"},
		{"  go run {{file}}", "go"},
		{"{{env.RUBY}} {{file}}", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := commandName(tt.tmpl); got != tt.want {
			t.Errorf("commandName(%q) = %q, want %q", tt.tmpl, got, tt.want)
		}
	}
}
