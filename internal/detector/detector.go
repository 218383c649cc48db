// Package detector implements the detector contract (C3) and the
// built-in PII detectors (C4): each composes a pattern with a
// checksum validator from internal/checksum or a masking/entropy check
// from internal/mask.
package detector

import "github.com/pii-radar/piiradar/internal/models"

// LocationFactory builds a Location for a match found at the given
// byte offset within the text a Detector was invoked on. Source
// adapters supply the concrete factory (file offset->line/column,
// DB column name, HTTP response offset); detectors never construct
// Location directly.
type LocationFactory func(byteOffset int) models.Location

// Detector finds and validates one class of PII. Implementations must
// be pure with respect to the input text (no mutation, no retained
// references beyond the returned matches) and safe for concurrent
// invocation from multiple workers.
type Detector interface {
	ID() string
	Country() string
	Category() models.Category
	DefaultSeverity() models.Severity
	Detect(text string, locate LocationFactory) []models.Match
}
