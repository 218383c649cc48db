package detector

import (
	"regexp"

	"github.com/pii-radar/piiradar/internal/mask"
	"github.com/pii-radar/piiradar/internal/models"
)

// EntropyConfig tunes the generic-secret heuristic from spec §4.3/§9
// open question 3: a reasonable default, exposed for tuning.
type EntropyConfig struct {
	MinBitsPerChar float64
	MinLength      int
}

// DefaultEntropyConfig is the spec's stated default: 3.5 bits/char,
// length >= 20.
var DefaultEntropyConfig = EntropyConfig{MinBitsPerChar: 3.5, MinLength: 20}

func entropyValidator(cfg EntropyConfig) Validator {
	return func(s string) bool {
		return mask.LooksLikeSecret(s, cfg.MinBitsPerChar, cfg.MinLength)
	}
}

// SecretDetectors returns the vendor-prefixed API-key detectors plus a
// generic high-entropy fallback, using the supplied entropy
// configuration (pass DefaultEntropyConfig absent an override).
func SecretDetectors(cfg EntropyConfig) []Detector {
	entropyOK := entropyValidator(cfg)

	return []Detector{
		&PatternDetector{
			id: "aws_access_key", name: "AWS Access Key ID", country: models.Universal, category: models.CategorySecret,
			severity: models.SeverityCritical,
			pattern:  regexp.MustCompile(`\bAKIA[0-9A-Z]{16}\b`),
			validate: func(s string) bool { return true }, // fixed-format vendor prefix is self-validating
		},
		&PatternDetector{
			id: "aws_secret_key", name: "AWS Secret Access Key", country: models.Universal, category: models.CategorySecret,
			severity: models.SeverityCritical,
			pattern:  regexp.MustCompile(`\b[A-Za-z0-9/+=]{40}\b`),
			validate: entropyOK,
		},
		&PatternDetector{
			id: "github_token", name: "GitHub Token", country: models.Universal, category: models.CategorySecret,
			severity: models.SeverityCritical,
			pattern:  regexp.MustCompile(`\bgh[pousr]_[A-Za-z0-9]{20,255}\b`),
			validate: func(s string) bool { return true },
		},
		&PatternDetector{
			id: "stripe_secret_key", name: "Stripe Secret Key", country: models.Universal, category: models.CategorySecret,
			severity: models.SeverityCritical,
			pattern:  regexp.MustCompile(`\bsk_live_[A-Za-z0-9]{16,99}\b`),
			validate: func(s string) bool { return true },
		},
		&PatternDetector{
			id: "slack_token", name: "Slack Token", country: models.Universal, category: models.CategorySecret,
			severity: models.SeverityCritical,
			pattern:  regexp.MustCompile(`\bxox[baprs]-[A-Za-z0-9\-]{10,200}\b`),
			validate: func(s string) bool { return true },
		},
		&PatternDetector{
			id: "google_api_key", name: "Google API Key", country: models.Universal, category: models.CategorySecret,
			severity: models.SeverityCritical,
			pattern:  regexp.MustCompile(`\bAIza[0-9A-Za-z\-_]{35}\b`),
			validate: func(s string) bool { return true },
		},
		&PatternDetector{
			id: "jwt", name: "JSON Web Token", country: models.Universal, category: models.CategorySecret,
			severity: models.SeverityHigh,
			pattern:  regexp.MustCompile(`\beyJ[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+\b`),
			validate: func(s string) bool { return true },
		},
		&PatternDetector{
			id: "private_key", name: "Private Key Block", country: models.Universal, category: models.CategorySecret,
			severity: models.SeverityCritical,
			pattern:  regexp.MustCompile(`-----BEGIN (?:RSA |EC |OPENSSH |DSA |)PRIVATE KEY-----`),
			validate: func(s string) bool { return true },
		},
		&PatternDetector{
			id: "generic_secret", name: "Generic High-Entropy Secret", country: models.Universal, category: models.CategorySecret,
			severity:  models.SeverityMedium,
			pattern:   regexp.MustCompile(`\b[A-Za-z0-9+/_-]{20,100}\b`),
			weakCheck: entropyOK,
		},
	}
}
