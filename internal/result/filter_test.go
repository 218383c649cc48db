package result

import (
	"testing"

	"github.com/pii-radar/piiradar/internal/models"
)

func sampleResults() *models.ScanResults {
	r := models.NewScanResults()
	r.Findings = []models.FileResult{
		{
			SourceID: "a.txt",
			Matches: []models.Match{
				{DetectorID: "nl_bsn", Country: "NL", Confidence: models.ConfidenceHigh},
				{DetectorID: "email", Country: models.Universal, Confidence: models.ConfidenceMedium},
			},
		},
		{
			SourceID: "b.txt",
			Matches: []models.Match{
				{DetectorID: "generic_secret", Country: models.Universal, Confidence: models.ConfidenceLow},
			},
		},
	}
	r.Recompute()
	return r
}

func TestFilterByMinConfidenceIdempotent(t *testing.T) {
	r := sampleResults()
	once := FilterByMinConfidence(r, models.ConfidenceMedium)
	twice := FilterByMinConfidence(once, models.ConfidenceMedium)

	if once.TotalMatches != twice.TotalMatches {
		t.Fatalf("filter not idempotent: once=%d twice=%d", once.TotalMatches, twice.TotalMatches)
	}
}

func TestFilterByMinConfidenceMonotonic(t *testing.T) {
	r := sampleResults()
	high := FilterByMinConfidence(r, models.ConfidenceHigh)
	medium := FilterByMinConfidence(r, models.ConfidenceMedium)
	low := FilterByMinConfidence(r, models.ConfidenceLow)

	if high.TotalMatches > medium.TotalMatches || medium.TotalMatches > low.TotalMatches {
		t.Fatalf("expected high <= medium <= low, got %d <= %d <= %d", high.TotalMatches, medium.TotalMatches, low.TotalMatches)
	}
	if low.TotalMatches != r.TotalMatches {
		t.Fatalf("filter_by_min_confidence(Low) should equal the unfiltered set: got %d, want %d", low.TotalMatches, r.TotalMatches)
	}
}

func TestFilterDoesNotMutateSource(t *testing.T) {
	r := sampleResults()
	originalTotal := r.TotalMatches

	_ = FilterByMinConfidence(r, models.ConfidenceHigh)

	if r.TotalMatches != originalTotal {
		t.Fatalf("source ScanResults was mutated: total=%d, want %d", r.TotalMatches, originalTotal)
	}
}

func TestFilterByCountriesKeepsUniversal(t *testing.T) {
	r := sampleResults()
	filtered := FilterByCountries(r, map[string]bool{"NL": true})

	if filtered.TotalMatches != 3 {
		t.Fatalf("expected NL + universal matches (3), got %d", filtered.TotalMatches)
	}

	filteredDE := FilterByCountries(r, map[string]bool{"DE": true})
	if filteredDE.TotalMatches != 2 {
		t.Fatalf("expected only universal matches (2) for a country with no matches, got %d", filteredDE.TotalMatches)
	}
}
