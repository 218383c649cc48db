package detector

import (
	"regexp"
	"strings"

	"github.com/pii-radar/piiradar/internal/checksum"
	"github.com/pii-radar/piiradar/internal/mask"
	"github.com/pii-radar/piiradar/internal/models"
)

func stripCardSeparators(raw string) string {
	return strings.NewReplacer(" ", "", "-", "").Replace(raw)
}

func creditCardBrand(normalized string) map[string]string {
	brand := "unknown"
	switch {
	case strings.HasPrefix(normalized, "4"):
		brand = "visa"
	case len(normalized) >= 2 && normalized[:2] >= "51" && normalized[:2] <= "55":
		brand = "mastercard"
	case strings.HasPrefix(normalized, "34") || strings.HasPrefix(normalized, "37"):
		brand = "amex"
	}
	return map[string]string{"brand": brand}
}

// FinancialDetectors returns the credit card, bank account, ABA
// routing, and IBAN detectors.
func FinancialDetectors() []Detector {
	return []Detector{
		&PatternDetector{
			id: "credit_card", name: "Credit Card Number", country: models.Universal, category: models.CategoryFinancial,
			severity:  models.SeverityHigh,
			pattern:   regexp.MustCompile(`\b(?:4\d{3}|5[1-5]\d{2}|3[47]\d{2})[ -]?\d{4}[ -]?\d{4}[ -]?\d{1,4}\b`),
			normalize: stripCardSeparators,
			validate:  checksum.Luhn,
			attrs:     creditCardBrand,
			maskWith:  mask.LastFour,
		},
		&PatternDetector{
			id: "aba_routing", name: "ABA Routing Number", country: "US", category: models.CategoryFinancial,
			severity:  models.SeverityHigh,
			pattern:   regexp.MustCompile(`\b\d{9}\b`),
			normalize: stripNonAlnum,
			validate:  checksum.ABARouting,
		},
		&PatternDetector{
			id: "iban", name: "IBAN", country: models.Universal, category: models.CategoryFinancial,
			severity: models.SeverityHigh,
			pattern: regexp.MustCompile(`\b[A-Za-z]{2}\d{2}[ ]?(?:[A-Za-z0-9]{4}[ ]?){2,7}[A-Za-z0-9]{1,4}\b`),
			normalize: func(raw string) string {
				return strings.ToUpper(strings.ReplaceAll(raw, " ", ""))
			},
			validate: checksum.IBAN,
		},
		&PatternDetector{
			id: "bank_account", name: "Bank Account Number", country: models.Universal, category: models.CategoryFinancial,
			severity:  models.SeverityMedium,
			pattern:   regexp.MustCompile(`\baccount\s*(?:number|no\.?|#)?\s*[:#]?\s*(\d{8,17})\b`),
			group:     1,
			normalize: stripNonAlnum,
			weakCheck: func(s string) bool { return len(s) >= 8 && len(s) <= 17 },
		},
	}
}
