package detector

import (
	"regexp"

	"github.com/pii-radar/piiradar/internal/models"
)

var usPhoneDigits = regexp.MustCompile(`\D`)

func normalizeUSPhone(raw string) string {
	return usPhoneDigits.ReplaceAllString(raw, "")
}

// PersonalDetectors returns the email, US phone, US address, date of
// birth, and passport number detectors. None of these have a checksum
// validator, so they land at Medium confidence via a weak structural
// check, never High (spec invariant: High requires a validator).
func PersonalDetectors() []Detector {
	return []Detector{
		&PatternDetector{
			id: "email", name: "Email Address", country: models.Universal, category: models.CategoryPersonal,
			severity:  models.SeverityMedium,
			pattern:   regexp.MustCompile(`\b[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}\b`),
			weakCheck: func(s string) bool { return len(s) <= 254 },
		},
		&PatternDetector{
			id: "phone_us", name: "US Phone Number", country: "US", category: models.CategoryPersonal,
			severity:  models.SeverityMedium,
			pattern:   regexp.MustCompile(`\b(?:\+?1[ .\-]?)?\(?\d{3}\)?[ .\-]?\d{3}[ .\-]?\d{4}\b`),
			normalize: normalizeUSPhone,
			weakCheck: func(s string) bool {
				n := len(s)
				return (n == 10 || n == 11) && (n != 11 || s[0] == '1')
			},
		},
		&PatternDetector{
			id: "address_us", name: "US Street Address", country: "US", category: models.CategoryPersonal,
			severity: models.SeverityMedium,
			pattern: regexp.MustCompile(`\b\d{1,6}\s+[A-Za-z0-9.'\- ]{3,40}\s+(?:Street|St|Avenue|Ave|Boulevard|Blvd|Road|Rd|Lane|Ln|Drive|Dr|Court|Ct|Way|Place|Pl)\b\.?`),
			weakCheck: func(s string) bool { return len(s) >= 8 },
		},
		&PatternDetector{
			id: "dob", name: "Date of Birth", country: models.Universal, category: models.CategoryPersonal,
			severity:  models.SeverityMedium,
			pattern:   regexp.MustCompile(`\b(?:0[1-9]|1[0-2])[/\-](?:0[1-9]|[12]\d|3[01])[/\-](?:19|20)\d{2}\b`),
			weakCheck: func(s string) bool { return len(s) >= 8 },
		},
		&PatternDetector{
			id: "passport", name: "Passport Number", country: models.Universal, category: models.CategoryPersonal,
			severity:  models.SeverityMedium,
			pattern:   regexp.MustCompile(`\b[A-Za-z]{1,2}\d{6,9}\b`),
			normalize: stripNonAlnum,
			weakCheck: func(s string) bool { return len(s) >= 7 && len(s) <= 11 },
		},
	}
}
