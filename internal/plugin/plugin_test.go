package plugin

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pii-radar/piiradar/internal/models"
)

func fileLocate(offset int) models.Location {
	return models.Location{Kind: models.LocationFile, Path: "test.txt", ByteOffset: offset}
}

func TestPluginContextKeywordBoost(t *testing.T) {
	desc := models.PluginDescriptor{
		ID:       "employee_id",
		Name:     "Employee ID",
		Country:  models.Universal,
		Severity: "medium",
		Patterns: []models.PluginPattern{
			{Pattern: `EMP-\d{6}`, Confidence: "medium"},
		},
		ContextKeywords: []string{"employee"},
	}
	det, err := NewDetector("inline", desc)
	if err != nil {
		t.Fatalf("NewDetector() error = %v", err)
	}

	tests := []struct {
		name string
		text string
		want models.Confidence
	}{
		{"with keyword boosts to high", "employee EMP-123456", models.ConfidenceHigh},
		{"without keyword stays medium", "badge EMP-123456", models.ConfidenceMedium},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matches := det.Detect(tt.text, fileLocate)
			if len(matches) != 1 {
				t.Fatalf("got %d matches, want 1", len(matches))
			}
			if matches[0].Confidence != tt.want {
				t.Errorf("confidence = %v, want %v", matches[0].Confidence, tt.want)
			}
		})
	}
}

func TestPluginChecksumRejection(t *testing.T) {
	desc := models.PluginDescriptor{
		ID:       "bsn_custom",
		Name:     "Custom BSN",
		Country:  "NL",
		Severity: "high",
		Patterns: []models.PluginPattern{
			{Pattern: `\d{9}`, Confidence: "medium"},
		},
		Validation: &models.PluginValidation{Checksum: "mod11"},
	}
	det, err := NewDetector("inline", desc)
	if err != nil {
		t.Fatalf("NewDetector() error = %v", err)
	}

	matches := det.Detect("id 111222333 and 111222334", fileLocate)
	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1 (only the valid BSN)", len(matches))
	}
	if matches[0].ValueRaw != "111222333" {
		t.Errorf("matched = %q, want the valid BSN", matches[0].ValueRaw)
	}
}

func TestNewDetectorRejectsInvalidRegex(t *testing.T) {
	desc := models.PluginDescriptor{
		ID:       "broken",
		Severity: "low",
		Patterns: []models.PluginPattern{
			{Pattern: `(unclosed`, Confidence: "low"},
		},
	}
	if _, err := NewDetector("inline", desc); err == nil {
		t.Fatal("expected an error for an invalid regex, got nil")
	}
}

func TestLoadDirRejectsDuplicateID(t *testing.T) {
	dir := t.TempDir()
	contents := `
id = "dup"
name = "Dup"
country = "universal"
severity = "low"

[[patterns]]
pattern = "x"
confidence = "low"
`
	if err := os.WriteFile(filepath.Join(dir, "a.detector.toml"), []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "b.detector.toml"), []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadDir(dir); err == nil {
		t.Fatal("expected a duplicate-id error, got nil")
	}
}

func TestLoadDirMissingDirectoryIsNotAnError(t *testing.T) {
	dets, err := LoadDir(filepath.Join(t.TempDir(), "does-not-exist"))
	if err != nil {
		t.Fatalf("LoadDir() error = %v, want nil for an absent plugin directory", err)
	}
	if len(dets) != 0 {
		t.Fatalf("got %d detectors, want 0", len(dets))
	}
}
