package engine

import (
	"sort"

	"github.com/pii-radar/piiradar/internal/models"
	"github.com/pii-radar/piiradar/internal/registry"
)

// resolveOverlaps applies the overlap resolution policy (spec §4.10):
// when two candidate matches from different detectors overlap in byte
// range, keep the one with (a) higher confidence, (b) longer span,
// (c) earlier detector_id in registry order. Matches with no usable
// byte offset (DB rows) never overlap one another and all survive.
//
// Implemented as a greedy interval selection: sort candidates by
// priority descending, then walk the list keeping any candidate that
// doesn't intersect an already-kept one.
func resolveOverlaps(candidates []models.Match, reg *registry.Registry) []models.Match {
	if len(candidates) <= 1 {
		return candidates
	}

	order := make([]int, len(candidates))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return higherPriority(candidates[order[a]], candidates[order[b]], reg)
	})

	var kept []models.Match
	for _, i := range order {
		m := candidates[i]
		conflict := false
		for _, k := range kept {
			if m.Overlaps(k) {
				conflict = true
				break
			}
		}
		if !conflict {
			kept = append(kept, m)
		}
	}
	return kept
}

// higherPriority reports whether a should be preferred over b when
// they conflict, per the §4.10 ordering.
func higherPriority(a, b models.Match, reg *registry.Registry) bool {
	if a.Confidence != b.Confidence {
		return a.Confidence > b.Confidence
	}
	aStart, aEnd := a.Range()
	bStart, bEnd := b.Range()
	aSpan, bSpan := aEnd-aStart, bEnd-bStart
	if aSpan != bSpan {
		return aSpan > bSpan
	}
	return reg.IndexOf(a.DetectorID) < reg.IndexOf(b.DetectorID)
}
