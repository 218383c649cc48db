package detector

import (
	"regexp"

	"github.com/pii-radar/piiradar/internal/models"
)

// MedicalDetectors returns the medical record number, ICD-10 code, and
// National Drug Code detectors. Structural checks only; none of these
// identifiers carry a checksum.
func MedicalDetectors() []Detector {
	return []Detector{
		&PatternDetector{
			id: "mrn", name: "Medical Record Number", country: models.Universal, category: models.CategoryMedical,
			severity: models.SeverityHigh,
			pattern:  regexp.MustCompile(`\bMRN[ :#\-]?\s*(\d{6,10})\b`),
			group:    1,
			weakCheck: func(s string) bool { return len(s) >= 6 && len(s) <= 10 },
		},
		&PatternDetector{
			id: "icd_code", name: "ICD-10 Diagnosis Code", country: models.Universal, category: models.CategoryMedical,
			severity:  models.SeverityHigh,
			pattern:   regexp.MustCompile(`\b[A-TV-Z][0-9][0-9AB](?:\.[0-9A-TV-Z]{1,4})?\b`),
			weakCheck: func(s string) bool { return len(s) >= 3 },
		},
		&PatternDetector{
			id: "ndc", name: "National Drug Code", country: "US", category: models.CategoryMedical,
			severity:  models.SeverityMedium,
			pattern:   regexp.MustCompile(`\b\d{4,5}-\d{3,4}-\d{1,2}\b`),
			weakCheck: func(s string) bool { return len(s) >= 8 },
		},
	}
}
