package mask

import (
	"strings"
	"testing"
)

func TestKeepEdges(t *testing.T) {
	tests := []struct {
		name  string
		n, m  int
		value string
		want  string
	}{
		{"long value", 3, 2, "111222333", "111****33"},
		{"short value fully masked", 3, 2, "abc", "***"},
		{"exact boundary fully masked", 2, 2, "abcd", "****"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := KeepEdges(tt.n, tt.m)(tt.value)
			if got != tt.want {
				t.Errorf("KeepEdges(%d,%d)(%q) = %q, want %q", tt.n, tt.m, tt.value, got, tt.want)
			}
		})
	}
}

func TestLastFour(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{"card number", "4532015112830366", "************0366"},
		{"short value", "123", "***"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LastFour(tt.value)
			if got != tt.want {
				t.Errorf("LastFour(%q) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestContext(t *testing.T) {
	window := "BSN 111222333 found"
	got := Context(window, "111222333", KeepEdges(3, 2))
	want := "BSN 111****33 found"
	if got != want {
		t.Errorf("Context() = %q, want %q", got, want)
	}
}

func TestShannonEntropy(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantLow bool // true if entropy should be near zero
	}{
		{"uniform repeated", "aaaaaaaaaa", true},
		{"random-looking hex", "f3a9c12e8b47d6015de9ac0bfe3812aa", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := ShannonEntropy(tt.value)
			if tt.wantLow && e > 0.01 {
				t.Errorf("ShannonEntropy(%q) = %v, want near zero", tt.value, e)
			}
			if !tt.wantLow && e < 2.0 {
				t.Errorf("ShannonEntropy(%q) = %v, want > 2.0", tt.value, e)
			}
		})
	}
}

func TestLooksLikeSecret(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  bool
	}{
		{"too short", "AKIA123", false},
		{"low entropy long string", strings.Repeat("a", 25), false},
		{"high entropy long string", "aG9F3kL9mZpQ7xT2vB8nR4cW1s", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LooksLikeSecret(tt.value, 3.5, 20)
			if got != tt.want {
				t.Errorf("LooksLikeSecret(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}
