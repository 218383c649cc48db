// Package models holds the data types shared across the PII-Radar
// detection and scanning engine: matches, per-source results, the
// scan-wide aggregate, and the declarative plugin descriptor schema.
package models

import "github.com/google/uuid"

// Confidence reflects how strongly a candidate match is believed to be
// genuine PII. Checksum-backed detectors report High only when their
// checksum validates; the vendor-secret detectors (fixed-prefix keys
// and tokens) report High on a pattern match alone, and plugin
// patterns may declare High or be boosted to it by a context keyword.
type Confidence int

const (
	ConfidenceLow Confidence = iota
	ConfidenceMedium
	ConfidenceHigh
)

func (c Confidence) String() string {
	switch c {
	case ConfidenceLow:
		return "low"
	case ConfidenceMedium:
		return "medium"
	case ConfidenceHigh:
		return "high"
	default:
		return "unknown"
	}
}

// ParseConfidence parses the CLI/config string form of a confidence level.
func ParseConfidence(s string) (Confidence, bool) {
	switch s {
	case "low":
		return ConfidenceLow, true
	case "medium":
		return ConfidenceMedium, true
	case "high":
		return ConfidenceHigh, true
	default:
		return ConfidenceLow, false
	}
}

// Severity is the overall risk rating of a match, possibly upgraded by
// the context analyzer (see internal/contextan).
type Severity int

const (
	SeverityLow Severity = iota
	SeverityMedium
	SeverityHigh
	SeverityCritical
)

func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// Category classifies the kind of PII a detector finds.
type Category string

const (
	CategoryNationalID Category = "national_id"
	CategoryFinancial  Category = "financial"
	CategoryPersonal   Category = "personal"
	CategoryMedical    Category = "medical"
	CategorySecret     Category = "secret"
	CategoryCustom     Category = "custom"
)

// Article9Category names a GDPR Article 9 special category of personal
// data. Populated by the context analyzer only, never by a detector.
type Article9Category string

const (
	Article9Medical   Article9Category = "medical"
	Article9Biometric Article9Category = "biometric"
	Article9Genetic   Article9Category = "genetic"
	Article9Criminal  Article9Category = "criminal"
)

// Universal is the country value used by detectors with no specific
// national jurisdiction (credit cards, emails, secrets, ...).
const Universal = "universal"

// LocationKind distinguishes the three source shapes a Match's
// Location can describe.
type LocationKind int

const (
	LocationFile LocationKind = iota
	LocationRow
	LocationAPI
)

// Location pins a Match to its origin. Only the fields relevant to Kind
// are populated; the rest are zero values.
type Location struct {
	Kind LocationKind

	// LocationFile
	Path       string
	Line       int
	Column     int
	ByteOffset int

	// LocationRow
	TableOrCollection string
	RowKey            string
	ColumnOrField     string

	// LocationAPI
	URL            string
	Method         string
	ResponseOffset int
}

// Match is one detected PII occurrence.
type Match struct {
	DetectorID   string
	DetectorName string
	Country      string
	Category     Category

	ValueRaw    string // exact matched substring; never logged/serialized unmasked
	ValueMasked string

	Location Location

	Confidence Confidence
	Severity   Severity

	GDPRArticle9Category Article9Category // empty if none
	ContextSnippet       string           // bounded window, masked

	// Attributes carries detector-specific extras (e.g. credit card
	// brand) without widening the core struct for every detector kind.
	Attributes map[string]string
}

// Range returns the [start, end) byte offsets m occupies within the
// text blob it was detected in, used by the engine's overlap-resolution
// sweep and the context analyzer's window extraction. Row-located
// matches (DB sources) have no meaningful byte offset and return
// start == -1.
func (m Match) Range() (start, end int) {
	switch m.Location.Kind {
	case LocationFile:
		start = m.Location.ByteOffset
	case LocationAPI:
		start = m.Location.ResponseOffset
	default:
		return -1, -1
	}
	return start, start + len(m.ValueRaw)
}

// Overlaps reports whether m and other occupy intersecting byte ranges
// in the same source.
func (m Match) Overlaps(other Match) bool {
	aStart, aEnd := m.Range()
	bStart, bEnd := other.Range()
	return aStart < bEnd && bStart < aEnd
}

// FileResult is the per-source-item scan outcome.
type FileResult struct {
	SourceID       string
	Matches        []Match
	ExtractionUsed bool
	Error          error
}

// DetectorTally counts matches produced by one detector.
type DetectorTally struct {
	DetectorID string
	Count      int
}

// ExtractionFailure records one source that failed document extraction.
type ExtractionFailure struct {
	SourceID string
	Reason   string
}

// ScanResults is the per-invocation aggregate the engine produces.
type ScanResults struct {
	ScanID uuid.UUID

	ItemsScanned     int
	ItemsWithMatches int
	TotalMatches     int

	DetectorTally map[string]int
	SeverityTally map[Severity]int

	ExtractedOK         int
	ExtractionFailures  []ExtractionFailure
	ScanDurationSeconds float64

	Findings []FileResult
}

// NewScanResults returns a zero-valued ScanResults ready for accumulation.
func NewScanResults() *ScanResults {
	return &ScanResults{
		ScanID:        uuid.New(),
		DetectorTally: make(map[string]int),
		SeverityTally: make(map[Severity]int),
	}
}

// Recompute derives every counter from Findings. Callers that mutate
// Findings directly (e.g. a filter pass) must call this afterward so
// counters stay consistent with the match set (spec invariant 4:
// filtering recomputes counters, never fabricates).
func (r *ScanResults) Recompute() {
	r.recomputeCounters()
}

func (r *ScanResults) recomputeCounters() {
	r.ItemsScanned = len(r.Findings)
	r.ItemsWithMatches = 0
	r.TotalMatches = 0
	r.DetectorTally = make(map[string]int)
	r.SeverityTally = make(map[Severity]int)

	for _, f := range r.Findings {
		if len(f.Matches) > 0 {
			r.ItemsWithMatches++
		}
		for _, m := range f.Matches {
			r.TotalMatches++
			r.DetectorTally[m.DetectorID]++
			r.SeverityTally[m.Severity]++
		}
	}
}

// Clone returns a deep-enough copy for filters to mutate without
// touching the source ScanResults (filters must be pure).
func (r *ScanResults) Clone() *ScanResults {
	clone := &ScanResults{
		ScanID:              r.ScanID,
		ExtractedOK:         r.ExtractedOK,
		ScanDurationSeconds: r.ScanDurationSeconds,
	}
	clone.ExtractionFailures = append([]ExtractionFailure(nil), r.ExtractionFailures...)
	clone.Findings = make([]FileResult, len(r.Findings))
	for i, f := range r.Findings {
		clone.Findings[i] = FileResult{
			SourceID:       f.SourceID,
			ExtractionUsed: f.ExtractionUsed,
			Error:          f.Error,
			Matches:        append([]Match(nil), f.Matches...),
		}
	}
	clone.recomputeCounters()
	return clone
}
