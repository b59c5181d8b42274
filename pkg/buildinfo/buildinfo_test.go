package buildinfo

import (
	"strings"
	"testing"
)

func TestShortCommit(t *testing.T) {
	old := Commit
	defer func() { Commit = old }()

	tests := []struct {
		commit, want string
	}{
		{"none", "none"},
		{"0123456789abcdef0123", "0123456789ab"},
	}
	for _, tt := range tests {
		Commit = tt.commit
		if got := shortCommit(); got != tt.want {
			t.Errorf("shortCommit(%q) = %q, want %q", tt.commit, got, tt.want)
		}
	}
}

func TestTemplate(t *testing.T) {
	if got := Template(); !strings.HasPrefix(got, "{{.Name}} "+Version) {
		t.Errorf("Template() = %q", got)
	}
	if Get().GoVersion == "" {
		t.Error("Get().GoVersion is empty")
	}
}
