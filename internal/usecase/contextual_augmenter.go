package usecase

import (
	"strings"

	"github.com/ecoscan/backend/internal/domain"
)

// ContextualAugmenter adds materials implied by claims and phrases in the text
// that the extraction strategies did not yield
type ContextualAugmenter struct {
	claimTerms     []string
	garmentPhrases []string
}

// NewContextualAugmenter builds an augmenter from the lexicon's claim and garment lists
func NewContextualAugmenter(lexicon domain.Lexicon) *ContextualAugmenter {
	return &ContextualAugmenter{
		claimTerms:     lowerTerms(lexicon.ClaimTerms),
		garmentPhrases: lowerTerms(lexicon.CottonGarmentPhrases),
	}
}

// plasticFreeClaim is added when the text claims it and no candidate names a plastic
const plasticFreeClaim = "plastic-free"

// Augment appends, in order: "plastic-free" when claimed without any plastic
// candidate, "cotton" when a cotton garment is mentioned without it, and the claim
// terms present in the text and not yet represented by any candidate
func (a *ContextualAugmenter) Augment(candidates []domain.MaterialCandidate, text string) []domain.MaterialCandidate {
	if strings.Contains(text, plasticFreeClaim) && !represented(candidates, "plastic") {
		candidates = append(candidates, domain.MaterialCandidate{Text: plasticFreeClaim, Percentage: defaultPercentage})
	}

	if !represented(candidates, "cotton") {
		for _, phrase := range a.garmentPhrases {
			if strings.Contains(text, phrase) {
				candidates = append(candidates, domain.MaterialCandidate{Text: "cotton", Percentage: defaultPercentage})
				break
			}
		}
	}

	for _, term := range a.claimTerms {
		if strings.Contains(text, term) && !represented(candidates, term) {
			candidates = append(candidates, domain.MaterialCandidate{Text: term, Percentage: defaultPercentage})
		}
	}

	return candidates
}

// represented reports whether any candidate already contains term
func represented(candidates []domain.MaterialCandidate, term string) bool {
	for _, c := range candidates {
		if strings.Contains(strings.ToLower(c.Text), term) {
			return true
		}
	}
	return false
}

func lowerTerms(terms []string) []string {
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			out = append(out, t)
		}
	}
	return out
}
