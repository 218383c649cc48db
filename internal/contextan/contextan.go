// Package contextan implements the GDPR Article 9 context analyzer
// (C7): a bounded window around each match is scanned case-insensitively
// for category keywords, and the first category matched (in a fixed
// order) annotates the match and upgrades its severity to Critical.
package contextan

import (
	"strings"

	"github.com/pii-radar/piiradar/internal/mask"
	"github.com/pii-radar/piiradar/internal/models"
)

// DefaultWindow is the default neighborhood width (characters on each
// side of the match) searched for Article 9 keywords.
const DefaultWindow = 120

// category pairs an Article9Category with the keywords that trigger it.
// Order matters: the FIRST category whose keywords appear in the window
// wins, per spec §4.7/§9 open question 2.
type category struct {
	name     models.Article9Category
	keywords []string
}

var categories = []category{
	{models.Article9Medical, []string{"patient", "diagnos", "treatment", "medical", "clinic", "hospital", "prescription", "disease"}},
	{models.Article9Biometric, []string{"fingerprint", "biometric", "facial recognition", "iris scan"}},
	{models.Article9Genetic, []string{"dna", "genome", "genetic test", "chromosom"}},
	{models.Article9Criminal, []string{"conviction", "criminal record", "offense", "arrest", "sentence"}},
}

// Analyzer scans match windows for Article 9 keywords.
type Analyzer struct {
	window   int
	maskWith mask.Strategy
}

// New returns an Analyzer using the given window width. A width of 0
// selects DefaultWindow.
func New(window int) *Analyzer {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Analyzer{window: window, maskWith: mask.Default}
}

// Annotate scans the neighborhood of m within text and returns an
// updated copy: gdpr_article9_category set to the first matching
// category (if any), severity upgraded to Critical on any match, and
// context_snippet populated with the matched value masked out. If m's
// location carries no usable byte offset (e.g. a DB row match), text is
// used as the whole-item window verbatim.
func (a *Analyzer) Annotate(text string, m models.Match) models.Match {
	start, end := m.Range()
	var window string
	if start < 0 {
		window = text
	} else {
		window = a.extractWindow(text, start, end)
	}

	lower := strings.ToLower(window)
	for _, c := range categories {
		if containsAny(lower, c.keywords) {
			m.GDPRArticle9Category = c.name
			m.Severity = models.SeverityCritical
			break
		}
	}

	m.ContextSnippet = mask.Context(window, m.ValueRaw, a.maskWith)
	return m
}

func (a *Analyzer) extractWindow(text string, start, end int) string {
	lo := start - a.window
	if lo < 0 {
		lo = 0
	}
	hi := end + a.window
	if hi > len(text) {
		hi = len(text)
	}
	return text[lo:hi]
}

func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}
