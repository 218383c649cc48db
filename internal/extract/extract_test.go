package extract

import (
	"errors"
	"os"
	"testing"

	"github.com/pii-radar/piiradar/internal/models"
)

func TestRegistrySupports(t *testing.T) {
	r := DefaultRegistry()
	tests := []struct {
		ext  string
		want bool
	}{
		{".pdf", true},
		{".docx", true},
		{".xlsx", true},
		{".PDF", true},
		{".rtf", false},
	}
	for _, tt := range tests {
		if got := r.Supports(tt.ext); got != tt.want {
			t.Errorf("Supports(%q) = %v, want %v", tt.ext, got, tt.want)
		}
	}
}

func TestExtractUnsupportedFormat(t *testing.T) {
	r := DefaultRegistry()
	_, err := r.Extract("notes.rtf")
	if err == nil {
		t.Fatal("expected an error for an unsupported extension")
	}
	var extErr *models.ExtractionFailedError
	if !errors.As(err, &extErr) {
		t.Fatalf("error = %v, want *models.ExtractionFailedError", err)
	}
	if extErr.Kind != models.ExtractionUnsupportedFormat {
		t.Errorf("kind = %v, want ExtractionUnsupportedFormat", extErr.Kind)
	}
}

func TestExtractCorruptedPDFReportsCorruptedFile(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/bad.pdf"
	if err := os.WriteFile(path, []byte("not a real pdf"), 0o644); err != nil {
		t.Fatal(err)
	}

	r := DefaultRegistry()
	_, err := r.Extract(path)
	if err == nil {
		t.Fatal("expected an error extracting a corrupted PDF")
	}
	var extErr *models.ExtractionFailedError
	if !errors.As(err, &extErr) {
		t.Fatalf("error = %v, want *models.ExtractionFailedError", err)
	}
	if extErr.Kind != models.ExtractionCorruptedFile {
		t.Errorf("kind = %v, want ExtractionCorruptedFile", extErr.Kind)
	}
}
