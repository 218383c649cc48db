package ignore

import (
	"os"
	"path/filepath"
	"testing"
)

func TestIsIgnoredSimplePattern(t *testing.T) {
	m := NewMatcher()
	m.rules = []Rule{parseRule("*.log")}

	tests := []struct {
		name string
		path string
		want bool
	}{
		{"matches extension", "debug.log", true},
		{"does not match", "debug.txt", false},
		{"matches nested", "logs/debug.log", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.IsIgnored(tt.path, false); got != tt.want {
				t.Errorf("IsIgnored(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestIsIgnoredNegation(t *testing.T) {
	m := NewMatcher()
	m.rules = []Rule{parseRule("*.log"), parseRule("!important.log")}

	if m.IsIgnored("important.log", false) {
		t.Error("important.log should be un-ignored by the negation rule")
	}
	if !m.IsIgnored("other.log", false) {
		t.Error("other.log should still be ignored")
	}
}

func TestIsIgnoredDirOnly(t *testing.T) {
	m := NewMatcher()
	m.rules = []Rule{parseRule("vendor/")}

	if !m.IsIgnored("vendor", true) {
		t.Error("vendor/ directory should be ignored")
	}
	if m.IsIgnored("vendor", false) {
		t.Error("a file literally named vendor should not match a dir-only rule")
	}
}

func TestIsIgnoredGitAlwaysIgnored(t *testing.T) {
	m := NewMatcher()
	if !m.IsIgnored(".git/config", false) {
		t.Error(".git paths must always be ignored regardless of rules")
	}
}

func TestWithInheritedLoadsChildFile(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "sub")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(sub, FileName), []byte("*.secret\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	parent := NewMatcher()
	child, err := parent.WithInherited(sub)
	if err != nil {
		t.Fatalf("WithInherited() error = %v", err)
	}
	if !child.IsIgnored("creds.secret", false) {
		t.Error("expected the child matcher to inherit the rule from sub/.pii-ignore")
	}
	if parent.IsIgnored("creds.secret", false) {
		t.Error("parent matcher must not be mutated by WithInherited")
	}
}

func TestGlobstarPattern(t *testing.T) {
	m := NewMatcher()
	m.rules = []Rule{parseRule("**/node_modules/**")}

	if !m.IsIgnored("a/b/node_modules/pkg/index.js", false) {
		t.Error("expected a deeply-nested node_modules path to be ignored via **")
	}
}
