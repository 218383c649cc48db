// Package walker implements the deterministic file walker (C8b):
// directory traversal honoring `.pii-ignore` rules, depth/symlink/size
// limits, and a binary-content heuristic, enumerating in lexicographic
// order within each directory so scan results are reproducible.
package walker

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pii-radar/piiradar/internal/ignore"
)

// DefaultMaxFileSize is the spec's default per-file size ceiling
// (100 MiB); files larger are skipped with a recorded reason.
const DefaultMaxFileSize = 100 * 1024 * 1024

// sniffWindow is how much of a file's head is inspected for the
// binary-content heuristic.
const sniffWindow = 8 * 1024

// documentExtensions are extensions the Document Extractor Registry
// knows how to handle; the binary heuristic defers to extraction for
// these rather than skipping outright.
var documentExtensions = map[string]bool{
	".pdf":  true,
	".docx": true,
	".xlsx": true,
}

// Options configures one traversal.
type Options struct {
	MaxDepth         int   // 0 means unlimited
	FollowSymlinks   bool  // default false
	MaxFileSize      int64 // default DefaultMaxFileSize
	ExtractDocuments bool  // when true, known document extensions bypass the binary heuristic
}

// Item is one file surfaced by the walker.
type Item struct {
	Path    string // absolute path
	RelPath string // slash-separated, relative to root
	Size    int64
}

// SkipReason records why a candidate path was excluded from the scan.
type SkipReason struct {
	Path   string
	Reason string
}

// Walk enumerates root's files in deterministic (lexicographic,
// depth-first) order, honoring `.pii-ignore` inheritance and the
// configured limits.
func Walk(root string, opts Options) ([]Item, []SkipReason, error) {
	if opts.MaxFileSize <= 0 {
		opts.MaxFileSize = DefaultMaxFileSize
	}

	w := &walkState{root: root, opts: opts}
	if err := w.walkDir(root, ignore.NewMatcher(), 0); err != nil {
		return nil, nil, err
	}
	return w.items, w.skipped, nil
}

type walkState struct {
	root    string
	opts    Options
	items   []Item
	skipped []SkipReason
}

func (w *walkState) walkDir(dir string, inherited *ignore.Matcher, depth int) error {
	matcher, err := inherited.WithInherited(dir)
	if err != nil {
		return fmt.Errorf("loading %s in %s: %w", ignore.FileName, dir, err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading directory %s: %w", dir, err)
	}

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name()
	}
	sort.Strings(names)

	byName := make(map[string]os.DirEntry, len(entries))
	for _, e := range entries {
		byName[e.Name()] = e
	}

	for _, name := range names {
		entry := byName[name]
		path := filepath.Join(dir, name)
		rel, err := filepath.Rel(w.root, path)
		if err != nil {
			return fmt.Errorf("computing relative path for %s: %w", path, err)
		}
		rel = filepath.ToSlash(rel)

		isDir := entry.IsDir()
		if entry.Type()&os.ModeSymlink != 0 {
			if !w.opts.FollowSymlinks {
				continue
			}
			info, err := os.Stat(path)
			if err != nil {
				w.skipped = append(w.skipped, SkipReason{Path: rel, Reason: "unresolvable symlink: " + err.Error()})
				continue
			}
			isDir = info.IsDir()
		}

		if matcher.IsIgnored(rel, isDir) {
			continue
		}

		if isDir {
			if w.opts.MaxDepth > 0 && depth+1 >= w.opts.MaxDepth {
				continue
			}
			if err := w.walkDir(path, matcher, depth+1); err != nil {
				return err
			}
			continue
		}

		w.visitFile(path, rel, entry)
	}
	return nil
}

func (w *walkState) visitFile(path, rel string, entry os.DirEntry) {
	info, err := entry.Info()
	if err != nil {
		w.skipped = append(w.skipped, SkipReason{Path: rel, Reason: "stat failed: " + err.Error()})
		return
	}

	if info.Size() > w.opts.MaxFileSize {
		w.skipped = append(w.skipped, SkipReason{Path: rel, Reason: fmt.Sprintf("exceeds max_filesize (%d bytes)", info.Size())})
		return
	}

	ext := strings.ToLower(filepath.Ext(rel))
	if !documentExtensions[ext] || !w.opts.ExtractDocuments {
		if binary, err := looksBinary(path); err != nil {
			w.skipped = append(w.skipped, SkipReason{Path: rel, Reason: "read failed: " + err.Error()})
			return
		} else if binary {
			w.skipped = append(w.skipped, SkipReason{Path: rel, Reason: "binary content"})
			return
		}
	}

	w.items = append(w.items, Item{Path: path, RelPath: rel, Size: info.Size()})
}

// looksBinary sniffs the first 8 KiB of path for a NUL byte.
func looksBinary(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	buf := make([]byte, sniffWindow)
	n, err := f.Read(buf)
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	return bytes.IndexByte(buf[:n], 0) >= 0, nil
}
