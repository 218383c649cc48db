// Package plugin implements the declarative detector runtime (C5):
// a PluginDescriptor loaded from a `.detector.toml` file behaves like
// a built-in detector, dispatching to the checksum library and the
// context-keyword confidence boost described in spec §4.4.
package plugin

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pii-radar/piiradar/internal/checksum"
	"github.com/pii-radar/piiradar/internal/detector"
	"github.com/pii-radar/piiradar/internal/mask"
	"github.com/pii-radar/piiradar/internal/models"
)

type compiledPattern struct {
	re         *regexp.Regexp
	confidence models.Confidence
}

// Detector is a compiled PluginDescriptor. Regexes are compiled once at
// construction (NewDetector), never per-scan.
type Detector struct {
	descriptor models.PluginDescriptor
	patterns   []compiledPattern
	severity   models.Severity
	validate   func(normalized string) bool
}

// NewDetector compiles a PluginDescriptor into a runtime Detector. It
// returns a *models.PluginInvalidError (never a bare error) when a
// pattern fails to compile or a required field is missing, so the
// caller can make load failures fatal per spec §4.13.
func NewDetector(path string, d models.PluginDescriptor) (*Detector, error) {
	if d.ID == "" {
		return nil, &models.PluginInvalidError{Path: path, Reason: "missing required field \"id\""}
	}
	if len(d.Patterns) == 0 {
		return nil, &models.PluginInvalidError{Path: path, Reason: "descriptor defines no patterns"}
	}

	severity, ok := parseSeverity(d.Severity)
	if !ok {
		return nil, &models.PluginInvalidError{Path: path, Reason: fmt.Sprintf("invalid severity %q", d.Severity)}
	}

	patterns := make([]compiledPattern, 0, len(d.Patterns))
	for _, p := range d.Patterns {
		re, err := regexp.Compile(p.Pattern)
		if err != nil {
			return nil, &models.PluginInvalidError{Path: path, Reason: fmt.Sprintf("pattern %q: %v", p.Pattern, err)}
		}
		confidence, ok := models.ParseConfidence(p.Confidence)
		if !ok {
			return nil, &models.PluginInvalidError{Path: path, Reason: fmt.Sprintf("invalid confidence %q", p.Confidence)}
		}
		patterns = append(patterns, compiledPattern{re: re, confidence: confidence})
	}

	validate, err := buildValidator(path, d.Validation)
	if err != nil {
		return nil, err
	}

	return &Detector{descriptor: d, patterns: patterns, severity: severity, validate: validate}, nil
}

func parseSeverity(s string) (models.Severity, bool) {
	switch s {
	case "low":
		return models.SeverityLow, true
	case "medium":
		return models.SeverityMedium, true
	case "high":
		return models.SeverityHigh, true
	case "critical":
		return models.SeverityCritical, true
	default:
		return models.SeverityLow, false
	}
}

func buildValidator(path string, v *models.PluginValidation) (func(string) bool, error) {
	if v == nil {
		return func(string) bool { return true }, nil
	}

	checksumFn, err := resolveChecksum(path, v.Checksum, v.Mod11Variant)
	if err != nil {
		return nil, err
	}

	return func(normalized string) bool {
		if v.MinLength > 0 && len(normalized) < v.MinLength {
			return false
		}
		if v.MaxLength > 0 && len(normalized) > v.MaxLength {
			return false
		}
		if v.RequiredPrefix != "" && !strings.HasPrefix(normalized, v.RequiredPrefix) {
			return false
		}
		if v.RequiredSuffix != "" && !strings.HasSuffix(normalized, v.RequiredSuffix) {
			return false
		}
		if checksumFn != nil && !checksumFn(normalized) {
			return false
		}
		return true
	}, nil
}

func resolveChecksum(path, name, mod11Variant string) (func(string) bool, error) {
	switch name {
	case "", "none":
		return nil, nil
	case "luhn":
		return checksum.Luhn, nil
	case "iban":
		return checksum.IBAN, nil
	case "mod11":
		switch mod11Variant {
		case "", "bsn":
			return checksum.DutchBSN, nil
		case "nhs":
			return checksum.UKNHS, nil
		case "cpr":
			return checksum.DanishCPR, nil
		case "nif":
			return checksum.PortugueseNIF, nil
		default:
			return nil, &models.PluginInvalidError{Path: path, Reason: fmt.Sprintf("unknown mod11_variant %q", mod11Variant)}
		}
	default:
		return nil, &models.PluginInvalidError{Path: path, Reason: fmt.Sprintf("unknown checksum %q", name)}
	}
}

func (d *Detector) ID() string                      { return d.descriptor.ID }
func (d *Detector) Country() string                 { return d.descriptor.Country }
func (d *Detector) Category() models.Category       { return models.CategoryCustom }
func (d *Detector) DefaultSeverity() models.Severity { return d.severity }

// Detect implements spec §4.4's six-step plugin dispatch: match every
// pattern, apply validation, optionally boost confidence from context
// keywords, and emit with category=custom.
func (d *Detector) Detect(text string, locate detector.LocationFactory) []models.Match {
	var out []models.Match
	for _, p := range d.patterns {
		spans := p.re.FindAllStringIndex(text, -1)
		for _, span := range spans {
			raw := text[span[0]:span[1]]
			if !d.validate(raw) {
				continue
			}

			confidence := p.confidence
			if len(d.descriptor.ContextKeywords) > 0 {
				window := contextWindow(text, span[0], span[1], 120)
				if containsAnyKeyword(window, d.descriptor.ContextKeywords) {
					confidence = boostConfidence(confidence)
				}
			}

			out = append(out, models.Match{
				DetectorID:   d.descriptor.ID,
				DetectorName: d.descriptor.Name,
				Country:      d.descriptor.Country,
				Category:     models.CategoryCustom,
				ValueRaw:     raw,
				ValueMasked:  mask.Default(raw),
				Location:     locate(span[0]),
				Confidence:   confidence,
				Severity:     d.severity,
			})
		}
	}
	return out
}

func boostConfidence(c models.Confidence) models.Confidence {
	if c < models.ConfidenceHigh {
		return c + 1
	}
	return c
}

func contextWindow(text string, start, end, width int) string {
	lo := start - width
	if lo < 0 {
		lo = 0
	}
	hi := end + width
	if hi > len(text) {
		hi = len(text)
	}
	return text[lo:hi]
}

func containsAnyKeyword(window string, keywords []string) bool {
	lower := strings.ToLower(window)
	for _, kw := range keywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
