package walker

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path string, content []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestWalkDeterministicOrder(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "b.txt"), []byte("b"))
	writeFile(t, filepath.Join(root, "a.txt"), []byte("a"))
	writeFile(t, filepath.Join(root, "sub", "c.txt"), []byte("c"))

	items, _, err := Walk(root, Options{})
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}
	var rel []string
	for _, it := range items {
		rel = append(rel, it.RelPath)
	}
	want := []string{"a.txt", "b.txt", "sub/c.txt"}
	if len(rel) != len(want) {
		t.Fatalf("got %v, want %v", rel, want)
	}
	for i := range want {
		if rel[i] != want[i] {
			t.Fatalf("got %v, want %v", rel, want)
		}
	}
}

func TestWalkHonorsPiiIgnore(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "keep.txt"), []byte("keep"))
	writeFile(t, filepath.Join(root, "secret.env"), []byte("secret"))
	writeFile(t, filepath.Join(root, ".pii-ignore"), []byte("*.env\n"))

	items, _, err := Walk(root, Options{})
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}
	for _, it := range items {
		if it.RelPath == "secret.env" {
			t.Fatal("secret.env should have been excluded by .pii-ignore")
		}
	}
}

func TestWalkSkipsOversizedFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "big.txt"), make([]byte, 100))

	items, skipped, err := Walk(root, Options{MaxFileSize: 10})
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected the oversized file to be skipped, got %v", items)
	}
	if len(skipped) != 1 {
		t.Fatalf("expected exactly one skip reason, got %d", len(skipped))
	}
}

func TestWalkSkipsBinaryContent(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "data.bin"), []byte{0x00, 0x01, 0x02, 'h', 'i'})
	writeFile(t, filepath.Join(root, "text.txt"), []byte("hello world"))

	items, skipped, err := Walk(root, Options{})
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}
	if len(items) != 1 || items[0].RelPath != "text.txt" {
		t.Fatalf("expected only text.txt to survive, got %v", items)
	}
	if len(skipped) != 1 || skipped[0].Path != "data.bin" {
		t.Fatalf("expected data.bin to be recorded as skipped, got %v", skipped)
	}
}

func TestWalkRespectsMaxDepth(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "top.txt"), []byte("top"))
	writeFile(t, filepath.Join(root, "a", "nested.txt"), []byte("nested"))

	items, _, err := Walk(root, Options{MaxDepth: 1})
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}
	for _, it := range items {
		if it.RelPath == "a/nested.txt" {
			t.Fatal("nested.txt should be excluded by max_depth=1")
		}
	}
}
