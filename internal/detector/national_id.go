package detector

import (
	"regexp"
	"strings"

	"github.com/pii-radar/piiradar/internal/checksum"
	"github.com/pii-radar/piiradar/internal/models"
)

func stripNonAlnum(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			b.WriteRune(r)
		}
	}
	return strings.ToUpper(b.String())
}

// NationalIDDetectors returns one PatternDetector per national
// identifier checksum named in spec §4.1.
func NationalIDDetectors() []Detector {
	return []Detector{
		&PatternDetector{
			id: "nl_bsn", name: "Dutch BSN", country: "NL", category: models.CategoryNationalID,
			severity: models.SeverityHigh,
			pattern:  regexp.MustCompile(`\b\d{9}\b`),
			normalize: stripNonAlnum,
			validate:  checksum.DutchBSN,
		},
		&PatternDetector{
			id: "de_steuerid", name: "German Steuer-ID", country: "DE", category: models.CategoryNationalID,
			severity: models.SeverityHigh,
			pattern:  regexp.MustCompile(`\b\d{11}\b`),
			normalize: stripNonAlnum,
			validate:  checksum.GermanSteuerID,
		},
		&PatternDetector{
			id: "fr_nir", name: "French NIR", country: "FR", category: models.CategoryNationalID,
			severity:  models.SeverityHigh,
			pattern:   regexp.MustCompile(`\b[12]\d{2}(?:0[1-9]|1[0-2])(?:\d{2}|2[AB])\d{8}\b`),
			normalize: stripNonAlnum,
			validate:  checksum.FrenchNIR,
		},
		&PatternDetector{
			id: "it_codice_fiscale", name: "Italian Codice Fiscale", country: "IT", category: models.CategoryNationalID,
			severity:  models.SeverityHigh,
			pattern:   regexp.MustCompile(`\b[A-Za-z]{6}\d{2}[A-Za-z]\d{2}[A-Za-z]\d{3}[A-Za-z]\b`),
			normalize: stripNonAlnum,
			validate:  checksum.ItalianCodiceFiscale,
		},
		&PatternDetector{
			id: "es_dni_nie", name: "Spanish DNI/NIE", country: "ES", category: models.CategoryNationalID,
			severity:  models.SeverityHigh,
			pattern:   regexp.MustCompile(`\b[0-9XYZxyz]\d{7}[A-Za-z]\b`),
			normalize: stripNonAlnum,
			validate:  checksum.SpanishDNINIE,
		},
		&PatternDetector{
			id: "uk_nhs", name: "UK NHS Number", country: "GB", category: models.CategoryNationalID,
			severity:  models.SeverityHigh,
			pattern:   regexp.MustCompile(`\b\d{3}[ -]?\d{3}[ -]?\d{4}\b`),
			normalize: stripNonAlnum,
			validate:  checksum.UKNHS,
		},
		&PatternDetector{
			id: "be_rrn", name: "Belgian RRN", country: "BE", category: models.CategoryNationalID,
			severity:  models.SeverityHigh,
			pattern:   regexp.MustCompile(`\b\d{2}[.\-]?\d{2}[.\-]?\d{2}[.\-]?\d{3}[.\-]?\d{2}\b`),
			normalize: stripNonAlnum,
			validate:  checksum.BelgianRRN,
		},
		&PatternDetector{
			id: "pl_pesel", name: "Polish PESEL", country: "PL", category: models.CategoryNationalID,
			severity:  models.SeverityHigh,
			pattern:   regexp.MustCompile(`\b\d{11}\b`),
			normalize: stripNonAlnum,
			validate:  checksum.PolishPESEL,
		},
		&PatternDetector{
			id: "dk_cpr", name: "Danish CPR", country: "DK", category: models.CategoryNationalID,
			severity:  models.SeverityHigh,
			pattern:   regexp.MustCompile(`\b\d{6}[ -]?\d{4}\b`),
			normalize: stripNonAlnum,
			validate:  checksum.DanishCPR,
		},
		&PatternDetector{
			id: "se_personnummer", name: "Swedish Personnummer", country: "SE", category: models.CategoryNationalID,
			severity:  models.SeverityHigh,
			pattern:   regexp.MustCompile(`\b\d{6,8}[-+]?\d{4}\b`),
			normalize: stripNonAlnum,
			validate:  checksum.SwedishPersonnummer,
		},
		&PatternDetector{
			id: "no_fodselsnummer", name: "Norwegian Fødselsnummer", country: "NO", category: models.CategoryNationalID,
			severity:  models.SeverityHigh,
			pattern:   regexp.MustCompile(`\b\d{11}\b`),
			normalize: stripNonAlnum,
			validate:  checksum.NorwegianFodselsnummer,
		},
		&PatternDetector{
			id: "fi_hetu", name: "Finnish HETU", country: "FI", category: models.CategoryNationalID,
			severity:  models.SeverityHigh,
			pattern:   regexp.MustCompile(`\b\d{6}[-+A-Za-z]\d{3}[0-9A-Za-z]\b`),
			normalize: func(raw string) string { return strings.ToUpper(raw) },
			validate:  checksum.FinnishHETU,
		},
		&PatternDetector{
			id: "pt_nif", name: "Portuguese NIF", country: "PT", category: models.CategoryNationalID,
			severity:  models.SeverityHigh,
			pattern:   regexp.MustCompile(`\b\d{9}\b`),
			normalize: stripNonAlnum,
			validate:  checksum.PortugueseNIF,
		},
	}
}
