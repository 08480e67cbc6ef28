package usecase

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ecoscan/backend/internal/domain"
)

const minMaterialLength = 3

// Matches bare numbers and percentages like "100" or "45%"
var numberOnlyPattern = regexp.MustCompile(`^\d+%?$`)

// MaterialValidator decides whether a word is material-like and whether a candidate
// is a plausible material rather than marketing copy
type MaterialValidator struct {
	knownPattern      *regexp.Regexp // whole-word dictionary keys and general categories
	irrelevantPattern *regexp.Regexp
	stopWords         map[string]bool
}

// NewMaterialValidator compiles the recognition and rejection vocabularies
func NewMaterialValidator(catalog *domain.MaterialCatalog, lexicon domain.Lexicon) *MaterialValidator {
	entries := catalog.Entries()
	known := make([]string, 0, len(entries)+len(lexicon.GeneralCategories))
	for _, e := range entries {
		known = append(known, e.Name)
	}
	known = append(known, lexicon.GeneralCategories...)

	stopWords := make(map[string]bool, len(lexicon.StopWords))
	for _, w := range lexicon.StopWords {
		stopWords[strings.ToLower(strings.TrimSpace(w))] = true
	}

	return &MaterialValidator{
		knownPattern:      wholeWordPattern(known),
		irrelevantPattern: wholeWordPattern(lexicon.IrrelevantPhrases),
		stopWords:         stopWords,
	}
}

// IsRecognized reports whether any dictionary key or general category occurs in word
// as a whole word
func (v *MaterialValidator) IsRecognized(word string) bool {
	if word == "" || v.knownPattern == nil {
		return false
	}
	return v.knownPattern.MatchString(word)
}

// IsValidMaterial accepts a candidate that is recognized and is not an irrelevant
// phrase, too short, a bare number or a stop word
func (v *MaterialValidator) IsValidMaterial(candidate string) bool {
	lower := strings.ToLower(strings.TrimSpace(candidate))

	if !v.IsRecognized(lower) {
		return false
	}
	// whole words, so "linen" and "bagasse" survive "line" and "bag"
	if v.irrelevantPattern != nil && v.irrelevantPattern.MatchString(lower) {
		return false
	}
	if utf8.RuneCountInString(lower) < minMaterialLength {
		return false
	}
	if numberOnlyPattern.MatchString(lower) {
		return false
	}
	return !v.stopWords[lower]
}
