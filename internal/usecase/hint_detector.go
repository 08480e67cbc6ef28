package usecase

import (
	"strings"

	"github.com/ecoscan/backend/internal/domain"
)

// HintDetector derives the product hints a site adapter would attach to a product
// card: detected plastic, biodegradable and recyclable terms, eco claims, and
// whether the product reads as a plastic, biodegradable or recyclable product
type HintDetector struct {
	plasticTerms          *termMatcher
	biodegradableTerms    *termMatcher
	recyclableTerms       *termMatcher
	plasticProducts       *termMatcher
	biodegradableProducts *termMatcher
	recyclableProducts    *termMatcher
	ecoClaims             *termMatcher
	bagAlternatives       *termMatcher
}

// NewHintDetector compiles the hint vocabularies
func NewHintDetector(hints domain.HintLexicon) *HintDetector {
	return &HintDetector{
		plasticTerms:          newTermMatcher(hints.PlasticTerms),
		biodegradableTerms:    newTermMatcher(hints.BiodegradableTerms),
		recyclableTerms:       newTermMatcher(hints.RecyclableTerms),
		plasticProducts:       newTermMatcher(hints.PlasticProducts),
		biodegradableProducts: newTermMatcher(hints.BiodegradableProducts),
		recyclableProducts:    newTermMatcher(hints.RecyclableProducts),
		ecoClaims:             newTermMatcher(hints.EcoClaimTerms),
		bagAlternatives:       newTermMatcher([]string{"paper", "fabric", "cotton"}),
	}
}

// Detect scans the product text and title. All term lists match whole words.
func (d *HintDetector) Detect(text, title string) domain.ProductHints {
	fullText := NormalizeText(text)
	titleText := NormalizeText(title)
	inEither := func(m *termMatcher) bool {
		return m.Any(fullText) || m.Any(titleText)
	}

	hints := domain.ProductHints{
		IsProbablyPlasticProduct:       inEither(d.plasticProducts),
		IsProbablyBiodegradableProduct: inEither(d.biodegradableProducts),
		IsProbablyRecyclableProduct:    inEither(d.recyclableProducts),
	}

	plastics := d.plasticTerms.Matches(fullText)
	biodegradables := d.biodegradableTerms.Matches(fullText)
	recyclables := d.recyclableTerms.Matches(fullText)

	// a product that reads as a plastic product without naming a plastic still counts
	if hints.IsProbablyPlasticProduct && len(plastics) == 0 {
		hints.PlasticsDetected = append(hints.PlasticsDetected, "plastic")
	}
	if hints.IsProbablyBiodegradableProduct && len(biodegradables) == 0 {
		hints.BiodegradableDetected = append(hints.BiodegradableDetected, "biodegradable")
	}
	if hints.IsProbablyRecyclableProduct && len(recyclables) == 0 {
		hints.RecyclableDetected = append(hints.RecyclableDetected, "recyclable")
	}

	hints.PlasticsDetected = appendUnique(hints.PlasticsDetected, plastics...)
	hints.BiodegradableDetected = appendUnique(hints.BiodegradableDetected, biodegradables...)
	hints.RecyclableDetected = appendUnique(hints.RecyclableDetected, recyclables...)

	// bags and storage items are plastic unless stated otherwise
	bagWithoutAlternative := strings.Contains(titleText, "bag") && !d.bagAlternatives.Any(fullText)
	zippedStorage := strings.Contains(titleText, "storage") && strings.Contains(fullText, "zipper")
	if bagWithoutAlternative || zippedStorage {
		hints.PlasticsDetected = appendUnique(hints.PlasticsDetected, "plastic")
	}

	hints.EcoFriendlyClaims = d.ecoClaims.Matches(fullText)

	return hints
}

func appendUnique(list []string, items ...string) []string {
	for _, item := range items {
		found := false
		for _, existing := range list {
			if existing == item {
				found = true
				break
			}
		}
		if !found {
			list = append(list, item)
		}
	}
	return list
}
