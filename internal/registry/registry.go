// Package registry implements the immutable, insertion-ordered
// Detector Registry (C6): registration rejects duplicate ids,
// country/category filters return read-only views, and iteration is
// stable-ordered for the Scan Engine.
package registry

import (
	"fmt"

	"github.com/pii-radar/piiradar/internal/detector"
	"github.com/pii-radar/piiradar/internal/models"
)

// Registry holds detectors in insertion order, keyed by id. It is
// immutable once Build returns; workers read it concurrently without
// locking.
type Registry struct {
	order []detector.Detector
	index map[string]int
}

// Build constructs a Registry from detectors in the given order,
// rejecting duplicate ids. Detectors added later (e.g. plugins layered
// atop the built-in set) come after earlier ones in iteration order.
func Build(detectors ...detector.Detector) (*Registry, error) {
	r := &Registry{index: make(map[string]int, len(detectors))}
	for _, d := range detectors {
		if err := r.register(d); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *Registry) register(d detector.Detector) error {
	if _, exists := r.index[d.ID()]; exists {
		return fmt.Errorf("registry: duplicate detector id %q", d.ID())
	}
	r.index[d.ID()] = len(r.order)
	r.order = append(r.order, d)
	return nil
}

// Layer returns a new Registry containing r's detectors followed by
// extra, rejecting any id collision between the two sets. Used to
// layer plugin detectors atop the built-in registry without mutating
// either.
func (r *Registry) Layer(extra ...detector.Detector) (*Registry, error) {
	all := make([]detector.Detector, 0, len(r.order)+len(extra))
	all = append(all, r.order...)
	all = append(all, extra...)
	return Build(all...)
}

// Len returns the number of registered detectors.
func (r *Registry) Len() int { return len(r.order) }

// IndexOf returns the registration-order index of id, used by the
// engine's overlap-resolution tie-break (earlier registry order wins).
// Returns -1 if id is not registered.
func (r *Registry) IndexOf(id string) int {
	if idx, ok := r.index[id]; ok {
		return idx
	}
	return -1
}

// IterEnabled returns detectors in stable registration order. All
// detectors built via Build/Layer are considered enabled; disabling is
// expressed by omitting a detector from a filtered view (FilterCountries
// / FilterCategories) rather than a mutable flag, keeping the registry
// immutable after construction.
func (r *Registry) IterEnabled() []detector.Detector {
	out := make([]detector.Detector, len(r.order))
	copy(out, r.order)
	return out
}

// FilterCountries returns a view containing only detectors whose
// Country() is in countries or is models.Universal. An empty set
// returns the full registry unfiltered.
func (r *Registry) FilterCountries(countries map[string]bool) *Registry {
	if len(countries) == 0 {
		return r
	}
	filtered := &Registry{index: make(map[string]int)}
	for _, d := range r.order {
		if countries[d.Country()] || d.Country() == models.Universal {
			filtered.index[d.ID()] = len(filtered.order)
			filtered.order = append(filtered.order, d)
		}
	}
	return filtered
}

// FilterCategories returns a view containing only detectors whose
// Category() is in categories. An empty set returns the full registry
// unfiltered.
func (r *Registry) FilterCategories(categories map[models.Category]bool) *Registry {
	if len(categories) == 0 {
		return r
	}
	filtered := &Registry{index: make(map[string]int)}
	for _, d := range r.order {
		if categories[d.Category()] {
			filtered.index[d.ID()] = len(filtered.order)
			filtered.order = append(filtered.order, d)
		}
	}
	return filtered
}

// Records returns a DetectorRecord snapshot for every registered
// detector, in registration order, for the `detectors` CLI verb.
func (r *Registry) Records() []models.DetectorRecord {
	out := make([]models.DetectorRecord, len(r.order))
	for i, d := range r.order {
		out[i] = models.DetectorRecord{
			ID:              d.ID(),
			Country:         d.Country(),
			Category:        d.Category(),
			DefaultSeverity: d.DefaultSeverity(),
			Enabled:         true,
		}
	}
	return out
}
