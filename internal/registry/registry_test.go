package registry

import (
	"testing"

	"github.com/pii-radar/piiradar/internal/detector"
	"github.com/pii-radar/piiradar/internal/models"
)

type stubDetector struct {
	id       string
	country  string
	category models.Category
}

func (s stubDetector) ID() string                      { return s.id }
func (s stubDetector) Country() string                 { return s.country }
func (s stubDetector) Category() models.Category       { return s.category }
func (s stubDetector) DefaultSeverity() models.Severity { return models.SeverityMedium }
func (s stubDetector) Detect(string, detector.LocationFactory) []models.Match { return nil }

func TestBuildRejectsDuplicateID(t *testing.T) {
	_, err := Build(
		stubDetector{id: "a", country: "US", category: models.CategoryPersonal},
		stubDetector{id: "a", country: "DE", category: models.CategoryPersonal},
	)
	if err == nil {
		t.Fatal("expected an error for duplicate ids, got nil")
	}
}

func TestIterEnabledPreservesInsertionOrder(t *testing.T) {
	r, err := Build(
		stubDetector{id: "first", country: "US", category: models.CategoryPersonal},
		stubDetector{id: "second", country: "DE", category: models.CategoryNationalID},
	)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	got := r.IterEnabled()
	if len(got) != 2 || got[0].ID() != "first" || got[1].ID() != "second" {
		t.Fatalf("IterEnabled() order = %v, want [first second]", got)
	}
}

func TestFilterCountriesKeepsUniversal(t *testing.T) {
	r, err := Build(
		stubDetector{id: "us_only", country: "US", category: models.CategoryPersonal},
		stubDetector{id: "de_only", country: "DE", category: models.CategoryNationalID},
		stubDetector{id: "universal", country: models.Universal, category: models.CategoryFinancial},
	)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	filtered := r.FilterCountries(map[string]bool{"US": true})
	if filtered.Len() != 2 {
		t.Fatalf("FilterCountries() kept %d detectors, want 2 (us_only + universal)", filtered.Len())
	}
}

func TestFilterCategories(t *testing.T) {
	r, err := Build(
		stubDetector{id: "a", country: "US", category: models.CategoryPersonal},
		stubDetector{id: "b", country: "US", category: models.CategorySecret},
	)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	filtered := r.FilterCategories(map[models.Category]bool{models.CategorySecret: true})
	if filtered.Len() != 1 || filtered.IterEnabled()[0].ID() != "b" {
		t.Fatalf("FilterCategories() = %v, want only %q", filtered.IterEnabled(), "b")
	}
}

func TestLayerRejectsCollisionWithBase(t *testing.T) {
	base, err := Build(stubDetector{id: "a", country: "US", category: models.CategoryPersonal})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	_, err = base.Layer(stubDetector{id: "a", country: "DE", category: models.CategoryCustom})
	if err == nil {
		t.Fatal("expected an error layering a colliding id, got nil")
	}
}

func TestIndexOfReflectsRegistrationOrder(t *testing.T) {
	r, err := Build(
		stubDetector{id: "first", country: "US", category: models.CategoryPersonal},
		stubDetector{id: "second", country: "US", category: models.CategoryPersonal},
	)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if r.IndexOf("first") != 0 || r.IndexOf("second") != 1 {
		t.Fatalf("IndexOf order mismatch: first=%d second=%d", r.IndexOf("first"), r.IndexOf("second"))
	}
	if r.IndexOf("missing") != -1 {
		t.Fatalf("IndexOf(missing) = %d, want -1", r.IndexOf("missing"))
	}
}
