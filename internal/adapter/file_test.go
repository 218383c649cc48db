package adapter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pii-radar/piiradar/internal/detector"
	"github.com/pii-radar/piiradar/internal/engine"
)

func TestFileAdapterYieldsEveryFileInOrder(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.txt"), []byte("hello world"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "b.txt"), []byte("second file"), 0o644); err != nil {
		t.Fatal(err)
	}

	a := NewFileAdapter(FileConfig{Root: dir})

	var sourceIDs []string
	var texts []string
	err := a.Iter(func(sourceID string, text engine.TextProvider, locate detector.LocationFactory) error {
		sourceIDs = append(sourceIDs, sourceID)
		content, terr := text()
		if terr != nil {
			t.Fatalf("text(): %v", terr)
		}
		texts = append(texts, content)
		return nil
	})
	if err != nil {
		t.Fatalf("Iter: %v", err)
	}

	wantIDs := []string{"a.txt", "b.txt"}
	for i, want := range wantIDs {
		if sourceIDs[i] != want {
			t.Errorf("sourceIDs[%d] = %q, want %q", i, sourceIDs[i], want)
		}
	}
	if texts[0] != "hello world" {
		t.Errorf("texts[0] = %q, want %q", texts[0], "hello world")
	}
}

func TestFileAdapterLocateReportsLineAndColumn(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.txt"), []byte("line one\nline two"), 0o644); err != nil {
		t.Fatal(err)
	}

	a := NewFileAdapter(FileConfig{Root: dir})

	err := a.Iter(func(sourceID string, text engine.TextProvider, locate detector.LocationFactory) error {
		if _, err := text(); err != nil {
			t.Fatalf("text(): %v", err)
		}
		loc := locate(9) // start of "line two"
		if loc.Line != 2 {
			t.Errorf("Line = %d, want 2", loc.Line)
		}
		if loc.Column != 1 {
			t.Errorf("Column = %d, want 1", loc.Column)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Iter: %v", err)
	}
}

func TestFileAdapterFullPathsReportsAbsolutePath(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	a := NewFileAdapter(FileConfig{Root: dir, FullPaths: true})

	var got string
	err := a.Iter(func(sourceID string, text engine.TextProvider, locate detector.LocationFactory) error {
		got = sourceID
		return nil
	})
	if err != nil {
		t.Fatalf("Iter: %v", err)
	}
	want := filepath.Join(dir, "a.txt")
	if got != want {
		t.Errorf("sourceID = %q, want %q", got, want)
	}
}
