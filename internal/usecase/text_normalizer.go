package usecase

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NormalizeText lower-cases raw product text and collapses all whitespace runs
// (including non-breaking spaces) to single spaces. Compatibility forms and accents
// are folded first so "Ｃｏｔｔｏｎ" and "crêpe" match plain dictionary words.
func NormalizeText(raw string) string {
	if raw == "" {
		return ""
	}

	// transform chains keep internal buffers, so one is built per call
	fold := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(fold, raw)
	if err != nil {
		folded = raw
	}

	return strings.Join(strings.Fields(strings.ToLower(folded)), " ")
}
