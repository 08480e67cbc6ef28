package usecase

import (
	"regexp"
	"sort"
	"strings"

	"github.com/ecoscan/backend/internal/domain"
)

var punctuationRegex = regexp.MustCompile(`[^\w\s]`)

// Scoring weights and bonuses, all on a 0-100 scale
const (
	queryCoverageWeight = 0.60
	entryCoverageWeight = 0.20
	jaccardWeight       = 0.20
	substringBonus      = 10.0
	fuzzyWeightFactor   = 0.8 // fuzzy token matches count for 80% of an exact one
)

// MatcherConfig holds configuration for material suggestions
type MatcherConfig struct {
	MinConfidence     float64 // 0-100, matches below are dropped
	FuzzyEditDistance int
}

// MaterialMatcher ranks dictionary entries against a free-text material name,
// tolerating typos such as "bambo" or "polyster"
type MaterialMatcher struct {
	entries           []domain.MaterialEntry
	tokens            [][]string
	minConfidence     float64
	fuzzyEditDistance int
}

// NewMaterialMatcher creates a matcher over the catalog's entries
func NewMaterialMatcher(catalog *domain.MaterialCatalog, config MatcherConfig) *MaterialMatcher {
	threshold := config.MinConfidence
	if threshold <= 0 {
		threshold = 40.0
	}
	fuzzyDist := config.FuzzyEditDistance
	if fuzzyDist <= 0 {
		fuzzyDist = 1
	}

	entries := catalog.Entries()
	tokens := make([][]string, len(entries))
	for i, e := range entries {
		tokens[i] = tokenize(e.Name)
	}

	return &MaterialMatcher{
		entries:           entries,
		tokens:            tokens,
		minConfidence:     threshold,
		fuzzyEditDistance: fuzzyDist,
	}
}

// Suggest returns up to limit entries scoring at or above the confidence threshold,
// best first. Ties keep dictionary order.
func (m *MaterialMatcher) Suggest(query string, limit int) []domain.MaterialMatch {
	queryTokens := tokenize(NormalizeText(query))
	if len(queryTokens) == 0 || limit <= 0 {
		return []domain.MaterialMatch{}
	}
	queryLower := strings.Join(queryTokens, " ")

	var matches []domain.MaterialMatch
	for i, e := range m.entries {
		score, matched := m.matchScore(queryTokens, queryLower, m.tokens[i], e.Name)
		if score < m.minConfidence {
			continue
		}
		matches = append(matches, domain.MaterialMatch{Entry: e, Score: score, MatchedTokens: matched})
	}

	sort.SliceStable(matches, func(a, b int) bool {
		return matches[a].Score > matches[b].Score
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}
	if matches == nil {
		matches = []domain.MaterialMatch{}
	}
	return matches
}

// matchScore combines query coverage, entry coverage and Jaccard similarity over
// tokens, plus a bonus when one name contains the other. Returns a 0-100 score
// and the entry tokens that matched.
func (m *MaterialMatcher) matchScore(queryTokens []string, queryLower string, entryTokens []string, entryName string) (float64, []string) {
	if len(entryTokens) == 0 {
		return 0, nil
	}

	matchedWeight, matched := m.intersection(queryTokens, entryTokens)
	queryCoverage := matchedWeight / float64(len(queryTokens))
	entryCoverage := matchedWeight / float64(len(entryTokens))
	jaccard := matchedWeight / float64(findUnion(queryTokens, entryTokens))

	score := (queryCoverage*queryCoverageWeight + entryCoverage*entryCoverageWeight + jaccard*jaccardWeight) * 100

	if len(queryLower) > 3 && (strings.Contains(entryName, queryLower) || strings.Contains(queryLower, entryName)) {
		score += substringBonus
	}

	return min(score, 100), matched
}

// intersection weighs exact token matches as 1 and fuzzy ones as fuzzyWeightFactor
func (m *MaterialMatcher) intersection(queryTokens, entryTokens []string) (float64, []string) {
	var (
		weight  float64
		matched []string
	)
	for _, et := range entryTokens {
		best := 0.0
		for _, qt := range queryTokens {
			if qt == et {
				best = 1
				break
			}
			if fuzzyTokenMatch(qt, et, m.fuzzyEditDistance) {
				best = fuzzyWeightFactor
			}
		}
		if best > 0 {
			weight += best
			matched = append(matched, et)
		}
	}
	return weight, matched
}

// tokenize splits a name into lower-case tokens without punctuation or numbers
func tokenize(s string) []string {
	cleaned := punctuationRegex.ReplaceAllString(strings.ToLower(s), " ")

	var tokens []string
	for _, word := range strings.Fields(cleaned) {
		if len(word) <= 1 || isNumeric(word) {
			continue
		}
		tokens = append(tokens, word)
	}
	return tokens
}

func isNumeric(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return len(s) > 0
}

// fuzzyTokenMatch reports whether two tokens of at least four characters are
// within the edit distance threshold
func fuzzyTokenMatch(token1, token2 string, threshold int) bool {
	if token1 == token2 {
		return true
	}
	if len(token1) < 4 || len(token2) < 4 {
		return false
	}

	lenDiff := len(token1) - len(token2)
	if lenDiff < 0 {
		lenDiff = -lenDiff
	}
	if lenDiff > threshold {
		return false
	}

	return levenshteinDistance(token1, token2) <= threshold
}

// levenshteinDistance calculates the edit distance between two strings
func levenshteinDistance(s1, s2 string) int {
	r1 := []rune(s1)
	r2 := []rune(s2)
	if len(r1) == 0 {
		return len(r2)
	}
	if len(r2) == 0 {
		return len(r1)
	}

	// two rows instead of the full matrix
	prev := make([]int, len(r2)+1)
	curr := make([]int, len(r2)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(r1); i++ {
		curr[0] = i
		for j := 1; j <= len(r2); j++ {
			cost := 0
			if r1[i-1] != r2[j-1] {
				cost = 1
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[len(r2)]
}

// findUnion returns the count of unique tokens across both sets
func findUnion(tokens1, tokens2 []string) int {
	set := make(map[string]bool, len(tokens1)+len(tokens2))
	for _, t := range tokens1 {
		set[t] = true
	}
	for _, t := range tokens2 {
		set[t] = true
	}
	return len(set)
}
