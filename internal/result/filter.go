// Package result implements the ScanResults filters (C11):
// confidence and country filtering, pure functions that recompute
// counters rather than mutating the source results.
package result

import "github.com/pii-radar/piiradar/internal/models"

// FilterByMinConfidence returns a new ScanResults containing only
// matches with confidence >= level. Idempotent and monotonic per spec
// §8 invariants 3/4.
func FilterByMinConfidence(r *models.ScanResults, level models.Confidence) *models.ScanResults {
	return filterMatches(r, func(m models.Match) bool { return m.Confidence >= level })
}

// FilterByCountries returns a new ScanResults containing only matches
// whose Country is in countries or is models.Universal.
func FilterByCountries(r *models.ScanResults, countries map[string]bool) *models.ScanResults {
	if len(countries) == 0 {
		return r.Clone()
	}
	return filterMatches(r, func(m models.Match) bool {
		return countries[m.Country] || m.Country == models.Universal
	})
}

func filterMatches(r *models.ScanResults, keep func(models.Match) bool) *models.ScanResults {
	clone := r.Clone()
	for i, f := range clone.Findings {
		var kept []models.Match
		for _, m := range f.Matches {
			if keep(m) {
				kept = append(kept, m)
			}
		}
		clone.Findings[i].Matches = kept
	}
	clone.Recompute()
	return clone
}
