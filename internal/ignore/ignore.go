// Package ignore implements the `.pii-ignore` gitignore-syntax matcher
// (C8a): files are loaded per-directory and inherited down the tree,
// negation patterns un-ignore a path, and `.git` is always ignored.
// Grounded on the same shape used for `.gitignore`/`.noxignore` loading
// in the teacher's retrieval pack, with `**`-aware glob matching from
// doublestar replacing the stdlib's `filepath.Match`.
package ignore

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// FileName is the ignore-file name honored during traversal.
const FileName = ".pii-ignore"

// Rule is one parsed line of a `.pii-ignore` file.
type Rule struct {
	Pattern string
	Negate  bool
	DirOnly bool
}

// Matcher accumulates rules inherited down a directory tree and
// answers IsIgnored queries against paths relative to its root.
type Matcher struct {
	rules []Rule
}

// NewMatcher returns an empty Matcher.
func NewMatcher() *Matcher {
	return &Matcher{}
}

// LoadFile reads a `.pii-ignore` file and appends its rules to m. A
// missing file is not an error (most directories have none).
func (m *Matcher) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		m.rules = append(m.rules, parseRule(line))
	}
	return scanner.Err()
}

// WithInherited returns a new Matcher carrying m's rules plus any found
// in dir/.pii-ignore, for descending one directory level during
// traversal.
func (m *Matcher) WithInherited(dir string) (*Matcher, error) {
	child := &Matcher{rules: append([]Rule(nil), m.rules...)}
	if err := child.LoadFile(filepath.Join(dir, FileName)); err != nil {
		return nil, err
	}
	return child, nil
}

func parseRule(line string) Rule {
	negate := strings.HasPrefix(line, "!")
	if negate {
		line = strings.TrimPrefix(line, "!")
	}
	dirOnly := strings.HasSuffix(line, "/")
	if dirOnly {
		line = strings.TrimSuffix(line, "/")
	}
	return Rule{Pattern: line, Negate: negate, DirOnly: dirOnly}
}

// IsIgnored reports whether relPath (slash-separated, relative to the
// traversal root) matches m's accumulated rules. `.git` is always
// ignored. isDir tells the matcher whether relPath names a directory,
// needed to honor directory-only patterns correctly.
func (m *Matcher) IsIgnored(relPath string, isDir bool) bool {
	if isGitPath(relPath) {
		return true
	}

	ignored := false
	for _, r := range m.rules {
		if r.DirOnly && !isDir && !dirOnlyMatchesAncestor(relPath, r) {
			continue
		}
		if matchRule(relPath, r) {
			ignored = !r.Negate
		}
	}
	return ignored
}

func dirOnlyMatchesAncestor(relPath string, r Rule) bool {
	parts := strings.Split(relPath, "/")
	for _, part := range parts[:len(parts)-1] {
		if ok, _ := doublestar.Match(r.Pattern, part); ok {
			return true
		}
	}
	return false
}

func matchRule(relPath string, r Rule) bool {
	if strings.Contains(r.Pattern, "/") {
		ok, _ := doublestar.Match(r.Pattern, relPath)
		return ok
	}
	for _, part := range strings.Split(relPath, "/") {
		if ok, _ := doublestar.Match(r.Pattern, part); ok {
			return true
		}
	}
	return false
}

func isGitPath(relPath string) bool {
	for _, part := range strings.Split(relPath, "/") {
		if part == ".git" {
			return true
		}
	}
	return false
}
