package detector

import (
	"regexp"

	"github.com/pii-radar/piiradar/internal/mask"
	"github.com/pii-radar/piiradar/internal/models"
)

// Normalizer strips formatting (spaces, dashes, casing) from a raw
// match before it is handed to a Validator.
type Normalizer func(raw string) string

// Validator is a checksum or structural check over a normalized
// candidate. A true result grants High confidence.
type Validator func(normalized string) bool

// AttributeFunc derives detector-specific extras (e.g. credit card
// brand) from a normalized candidate.
type AttributeFunc func(normalized string) map[string]string

// PatternDetector is the generic detector shape used by nearly every
// built-in detector: one primary regex, an optional normalizer, an
// optional strict validator, an optional weak structural fallback, and
// an optional masking strategy.
type PatternDetector struct {
	id       string
	name     string
	country  string
	category models.Category
	severity models.Severity

	pattern *regexp.Regexp

	normalize Normalizer
	validate  Validator // checksum/strict validator; nil means "no strict check"
	weakCheck Validator // structural fallback granting Medium when validate is nil or absent
	attrs     AttributeFunc
	maskWith  mask.Strategy

	// group selects which regex submatch is the candidate value; 0 (the
	// default) means the whole match. Used by detectors whose pattern
	// anchors on surrounding label text (e.g. "account number: 123...").
	group int
}

func (d *PatternDetector) ID() string                      { return d.id }
func (d *PatternDetector) Country() string                 { return d.country }
func (d *PatternDetector) Category() models.Category       { return d.category }
func (d *PatternDetector) DefaultSeverity() models.Severity { return d.severity }

// Detect implements C4's four-step recipe: find candidates, normalize,
// validate, emit with confidence High/Medium/none.
func (d *PatternDetector) Detect(text string, locate LocationFactory) []models.Match {
	matches := d.pattern.FindAllStringSubmatchIndex(text, -1)
	if matches == nil {
		return nil
	}

	strategy := d.maskWith
	if strategy == nil {
		strategy = mask.Default
	}

	var out []models.Match
	for _, sub := range matches {
		group := d.group * 2
		start, end := sub[group], sub[group+1]
		if start < 0 {
			continue
		}
		raw := text[start:end]
		normalized := raw
		if d.normalize != nil {
			normalized = d.normalize(raw)
		}

		confidence, ok := d.classify(normalized)
		if !ok {
			continue
		}

		m := models.Match{
			DetectorID:   d.id,
			DetectorName: d.name,
			Country:      d.country,
			Category:     d.category,
			ValueRaw:     raw,
			ValueMasked:  strategy(raw),
			Location:     locate(start),
			Confidence:   confidence,
			Severity:     d.severity,
		}
		if d.attrs != nil {
			m.Attributes = d.attrs(normalized)
		}
		out = append(out, m)
	}
	return out
}

// classify applies the validator/weak-check precedence described in
// spec §4.3. When a strict validator is configured and fails, the
// default strict mode emits no match at all (no weak-check fallback),
// matching the engine's S2 scenario (IBAN passes, unvalidated BSN
// candidate produces no match).
func (d *PatternDetector) classify(normalized string) (models.Confidence, bool) {
	if d.validate != nil {
		if d.validate(normalized) {
			return models.ConfidenceHigh, true
		}
		return 0, false
	}
	if d.weakCheck != nil {
		if d.weakCheck(normalized) {
			return models.ConfidenceMedium, true
		}
		return 0, false
	}
	// No validator and no weak check configured: pattern match alone
	// is sufficient, at Medium confidence.
	return models.ConfidenceMedium, true
}
