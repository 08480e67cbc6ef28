package usecase

import (
	"regexp"
	"strings"

	"github.com/ecoscan/backend/internal/domain"
)

// MaterialNormalizer canonicalizes a raw candidate span
type MaterialNormalizer struct {
	fillerPattern *regexp.Regexp
}

// NewMaterialNormalizer builds a normalizer that strips the lexicon's filler words
func NewMaterialNormalizer(lexicon domain.Lexicon) *MaterialNormalizer {
	return &MaterialNormalizer{
		fillerPattern: wholeWordPattern(lexicon.FillerWords),
	}
}

// Normalize lower-cases the candidate, removes filler words, then applies the
// compound-name rewrites that depend on the surrounding text.
// Normalize(Normalize(x, t), t) == Normalize(x, t).
func (n *MaterialNormalizer) Normalize(candidate, fullText string) string {
	name := strings.ToLower(candidate)
	if n.fillerPattern != nil {
		name = n.fillerPattern.ReplaceAllString(name, " ")
	}
	name = strings.Join(strings.Fields(name), " ")

	text := strings.ToLower(fullText)
	switch {
	case name == "steel" && strings.Contains(text, "stainless"):
		return "stainless steel"
	case name == "organic" && strings.Contains(text, "organic cotton"):
		return "organic cotton"
	case name == "recycled" && strings.Contains(text, "recycled polyester"):
		return "recycled polyester"
	case name == "recycled" && strings.Contains(text, "recycled plastic"):
		return "recycled plastic"
	}
	return name
}
