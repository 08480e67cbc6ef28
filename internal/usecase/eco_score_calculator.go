package usecase

import (
	"math"
	"strings"

	"github.com/ecoscan/backend/internal/domain"
)

// Scoring constants
const (
	neutralScore           = 0.5 // score of a profile with no materials
	naturalFiberScore      = 0.9
	claimedBiodegradeScore = 0.8 // floor raised for explicit biodegradable/compostable names
	biodegradabilityBias   = 1.2
	ecoClaimBonus          = 0.1
)

// EcoScoreCalculator derives a 0-1 sustainability score from a material profile
type EcoScoreCalculator struct {
	catalog       *domain.MaterialCatalog
	weights       domain.ScoringWeights
	minEcoScore   float64
	naturalFibers []string
	claimMarkers  []string
}

// NewEcoScoreCalculator creates a calculator with the given weights and eco threshold
func NewEcoScoreCalculator(
	catalog *domain.MaterialCatalog,
	lexicon domain.Lexicon,
	weights domain.ScoringWeights,
	minEcoScore float64,
) *EcoScoreCalculator {
	return &EcoScoreCalculator{
		catalog:       catalog,
		weights:       weights,
		minEcoScore:   minEcoScore,
		naturalFibers: lowerTerms(lexicon.NaturalFibers),
		claimMarkers:  lowerTerms(lexicon.EcoClaimMarkers),
	}
}

// materialTraits are the per-material facts that feed the score
type materialTraits struct {
	score         float64
	recyclable    bool
	biodegradable bool
}

// Score computes the weighted eco score. Each material contributes its score
// weighted by percentage; recyclable and biodegradable shares add on top, plus a
// flat bonus for eco claims. The result is clamped to [0, 1].
func (c *EcoScoreCalculator) Score(profile domain.MaterialProfile) domain.EcoScoreResult {
	if profile.IsEmpty() {
		return domain.EcoScoreResult{Score: neutralScore, IsEcoFriendly: false}
	}

	var (
		totalScore         float64
		totalWeight        float64
		recyclableCount    int
		biodegradableCount int
		hasEcoClaim        bool
	)

	for i, material := range profile.Materials {
		lower := strings.ToLower(material)
		traits := c.resolve(lower)

		if traits.recyclable {
			recyclableCount++
		}
		if traits.biodegradable {
			biodegradableCount++
		}

		weight := profilePercentage(profile, i) / 100
		totalScore += traits.score * weight * c.weights.MaterialScore
		totalWeight += weight

		if !hasEcoClaim && containsAny(lower, c.claimMarkers) {
			hasEcoClaim = true
		}
	}

	n := float64(profile.Len())
	score := totalScore / totalWeight
	score += float64(recyclableCount) / n * c.weights.Recyclability
	score += float64(biodegradableCount) / n * c.weights.Biodegradability * biodegradabilityBias
	if hasEcoClaim {
		score += ecoClaimBonus
	}

	score = math.Max(0, math.Min(1, score))

	return domain.EcoScoreResult{
		Score:         score,
		IsEcoFriendly: score >= c.minEcoScore,
	}
}

// resolve finds the first dictionary entry contained in the material, then applies
// the fiber and claim corrections. Strings matching no entry fall back to the
// natural fiber heuristic.
func (c *EcoScoreCalculator) resolve(lower string) materialTraits {
	var traits materialTraits

	entry, found := c.catalog.Resolve(lower)
	if found {
		traits = materialTraits{
			score:         entry.Score,
			recyclable:    entry.Recyclable,
			biodegradable: entry.Biodegradable,
		}
		if entry.Kind == domain.KindEcoFriendly && (strings.Contains(lower, "cotton") || strings.Contains(lower, "wood")) {
			traits.biodegradable = true
		}
	} else if containsAny(lower, c.naturalFibers) {
		traits = materialTraits{score: naturalFiberScore, recyclable: true, biodegradable: true}
	}

	if strings.Contains(lower, "biodegradable") || strings.Contains(lower, "compostable") {
		traits.biodegradable = true
		if traits.score < neutralScore {
			traits.score = claimedBiodegradeScore
		}
	}

	return traits
}

// profilePercentage returns the i-th percentage, treating missing or out-of-range
// values as 100
func profilePercentage(profile domain.MaterialProfile, i int) float64 {
	if i >= len(profile.Percentages) {
		return defaultPercentage
	}
	p := profile.Percentages[i]
	if math.IsNaN(p) || p <= 0 || p > 100 {
		return defaultPercentage
	}
	return p
}

func containsAny(s string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}
