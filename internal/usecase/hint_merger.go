package usecase

import (
	"strings"

	"github.com/ecoscan/backend/internal/domain"
)

// Percentages given to hint-derived entries
const (
	hintPercentage            = 50.0
	claimedHintPercentage     = 80.0
	biodegradableClaimPercent = 90.0
	generalClaimPercentage    = 75.0
)

// HintMerger folds site-adapter hints into a copy of the extracted profile to form
// the scoring profile. The result may hold entries that are not dictionary keys
// ("eco-claim: ...", "biodegradable material") and is never used as an extraction result.
type HintMerger struct {
	significantClaims map[string]bool
}

// NewHintMerger creates a merger that treats the given claims as significant
func NewHintMerger(hints domain.HintLexicon) *HintMerger {
	significant := make(map[string]bool, len(hints.SignificantClaims))
	for _, c := range lowerTerms(hints.SignificantClaims) {
		significant[c] = true
	}
	return &HintMerger{significantClaims: significant}
}

// Merge appends hint-derived entries to a copy of profile. Each entry is added
// only when no existing material already contains it. The product-type flags
// and the search context only apply while the profile is still empty.
func (m *HintMerger) Merge(
	profile domain.MaterialProfile,
	hints domain.ProductHints,
	text, searchContext string,
) domain.MaterialProfile {
	out := profile.Clone()
	lowerText := NormalizeText(text)

	for _, p := range lowerTerms(hints.PlasticsDetected) {
		if out.AnyContains(p) {
			continue
		}
		if recycled := "recycled " + p; strings.Contains(lowerText, recycled) {
			out.Add(recycled, hintPercentage)
		} else {
			out.Add(p, hintPercentage)
		}
	}

	for _, b := range lowerTerms(hints.BiodegradableDetected) {
		if out.AnyContains(b) {
			continue
		}
		pct := hintPercentage
		if strings.Contains(b, "biodegradable") || strings.Contains(b, "compostable") {
			pct = claimedHintPercentage
		}
		if organic := "organic " + b; strings.Contains(lowerText, organic) {
			out.Add(organic, pct)
		} else {
			out.Add(b, pct)
		}
	}

	for _, r := range lowerTerms(hints.RecyclableDetected) {
		if !out.AnyContains(r) {
			out.Add(r, hintPercentage)
		}
	}

	m.mergeClaims(&out, lowerTerms(hints.EcoFriendlyClaims))

	if hints.IsProbablyPlasticProduct && out.IsEmpty() {
		out.Add("plastic", defaultPercentage)
	}
	if hints.IsProbablyBiodegradableProduct && out.IsEmpty() {
		out.Add("biodegradable", defaultPercentage)
	}
	if hints.IsProbablyRecyclableProduct && out.IsEmpty() {
		out.Add("recyclable", defaultPercentage)
	}

	search := strings.ToLower(searchContext)
	if out.IsEmpty() && containsAny(search, []string{"plastic", "polythene", "nylon"}) {
		out.Add("plastic", defaultPercentage)
	}
	if out.IsEmpty() && containsAny(search, []string{"biodegradable", "compostable", "eco"}) {
		out.Add("biodegradable", defaultPercentage)
	}
	if out.IsEmpty() && containsAny(search, []string{"recycl", "sustain", "reusable"}) {
		out.Add("recyclable", defaultPercentage)
	}

	return out
}

// mergeClaims records eco claims as a single "eco-claim: ..." entry. Significant
// claims weigh more, and a biodegradable claim with no biodegradable material yet
// adds one.
func (m *HintMerger) mergeClaims(out *domain.MaterialProfile, claims []string) {
	if len(claims) == 0 {
		return
	}

	var significant []string
	for _, c := range claims {
		if m.significantClaims[c] {
			significant = append(significant, c)
		}
	}

	if len(significant) == 0 {
		out.Add("eco-claim: "+strings.Join(claims, ", "), generalClaimPercentage)
		return
	}

	addBiodegradable := !out.AnyContains("biodegradable")
	out.Add("eco-claim: "+strings.Join(significant, ", "), defaultPercentage)
	for _, c := range significant {
		if c == "biodegradable" && addBiodegradable {
			out.Add("biodegradable material", biodegradableClaimPercent)
			break
		}
	}
}
