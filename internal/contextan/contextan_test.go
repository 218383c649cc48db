package contextan

import (
	"strings"
	"testing"

	"github.com/pii-radar/piiradar/internal/models"
)

func matchIn(text, value string) models.Match {
	return models.Match{
		ValueRaw: value,
		Severity: models.SeverityHigh,
		Location: models.Location{Kind: models.LocationFile, ByteOffset: strings.Index(text, value)},
	}
}

func TestAnnotateUpgradesSeverityOnMedicalKeyword(t *testing.T) {
	text := "Patient John Doe BSN 111222333 diagnosed with diabetes."
	m := matchIn(text, "111222333")

	got := New(DefaultWindow).Annotate(text, m)
	if got.GDPRArticle9Category != models.Article9Medical {
		t.Errorf("category = %q, want Medical", got.GDPRArticle9Category)
	}
	if got.Severity != models.SeverityCritical {
		t.Errorf("severity = %v, want Critical", got.Severity)
	}
}

func TestAnnotateLeavesSeverityWhenNoKeyword(t *testing.T) {
	text := "reference number 111222333 on file"
	m := matchIn(text, "111222333")

	got := New(DefaultWindow).Annotate(text, m)
	if got.GDPRArticle9Category != "" {
		t.Errorf("category = %q, want empty", got.GDPRArticle9Category)
	}
	if got.Severity != models.SeverityHigh {
		t.Errorf("severity = %v, want unchanged High", got.Severity)
	}
}

func TestAnnotateFirstMatchOrderWins(t *testing.T) {
	text := "patient fingerprint record 111222333 for clinic intake"
	m := matchIn(text, "111222333")

	got := New(DefaultWindow).Annotate(text, m)
	if got.GDPRArticle9Category != models.Article9Medical {
		t.Errorf("category = %q, want Medical (first in listed order over Biometric)", got.GDPRArticle9Category)
	}
}

func TestAnnotateMasksValueInSnippet(t *testing.T) {
	text := "Patient BSN 111222333 diagnosed"
	m := matchIn(text, "111222333")

	got := New(DefaultWindow).Annotate(text, m)
	if got.ContextSnippet == text {
		t.Fatal("context snippet should not contain the raw unmasked value")
	}
	if strings.Contains(got.ContextSnippet, "111222333") {
		t.Errorf("context snippet %q leaks the raw value", got.ContextSnippet)
	}
}
