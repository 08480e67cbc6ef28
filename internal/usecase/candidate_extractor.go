package usecase

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/ecoscan/backend/internal/domain"
)

// Percentage assumed when a span carries none or carries an unusable one
const defaultPercentage = 100.0

// ExtractionStrategy finds raw candidate spans in normalized text.
// Strategies run in a fixed order and each yields matches in text order.
type ExtractionStrategy struct {
	Name    string
	Extract func(text string) []domain.MaterialCandidate
}

// CandidateExtractor runs every strategy over normalized text and keeps the spans
// (or the words inside them) that name a recognized material
type CandidateExtractor struct {
	strategies []ExtractionStrategy
	normalizer *MaterialNormalizer
	validator  *MaterialValidator
	catalog    *domain.MaterialCatalog
	maxKeyLen  int // words in the longest dictionary key
}

// NewCandidateExtractor compiles the seven strategies from the lexicon
func NewCandidateExtractor(
	catalog *domain.MaterialCatalog,
	lexicon domain.Lexicon,
	normalizer *MaterialNormalizer,
	validator *MaterialValidator,
) *CandidateExtractor {
	maxKeyLen := 1
	for _, entry := range catalog.Entries() {
		if n := len(strings.Fields(entry.Name)); n > maxKeyLen {
			maxKeyLen = n
		}
	}

	return &CandidateExtractor{
		strategies: buildStrategies(lexicon),
		normalizer: normalizer,
		validator:  validator,
		catalog:    catalog,
		maxKeyLen:  maxKeyLen,
	}
}

func buildStrategies(lexicon domain.Lexicon) []ExtractionStrategy {
	indicators := regexp.MustCompile(`(?:` + quotedAlternation(lexicon.IndicatorPhrases) +
		`)(?:\s*:|\s+)?\s*([a-z][a-z\s\-/,]*[a-z])`)
	modifiers := regexp.MustCompile(`(` + quotedAlternation(lexicon.Modifiers) +
		`)\s+([a-z][a-z\s-]*[a-z])`)
	nouns := regexp.MustCompile(`\b(` + quotedAlternation(lexicon.MaterialNouns) + `)\b`)
	listItems := regexp.MustCompile(`(?:•|\*|-|,|\.|;)\s*([a-z][a-z\s-]*(?:` +
		quotedAlternation(lexicon.ListSuffixes) + `))`)
	productTypes := regexp.MustCompile(`\b(` + quotedAlternation(lexicon.ProductTypeMaterials) +
		`)\s+(` + quotedAlternation(lexicon.ProductTypeNouns) + `)\b`)

	return []ExtractionStrategy{
		{Name: "percent_before_material", Extract: percentBeforeMaterial},
		{Name: "material_before_percent", Extract: materialBeforePercent},
		{Name: "indicator_phrase", Extract: groupSpans(indicators, 1)},
		{Name: "modifier_material", Extract: modifierSpans(modifiers)},
		{Name: "material_noun", Extract: groupSpans(nouns, 1)},
		{Name: "list_item", Extract: groupSpans(listItems, 1)},
		{Name: "product_type", Extract: groupSpans(productTypes, 1)},
	}
}

// quotedAlternation joins terms into an alternation without word boundaries
func quotedAlternation(terms []string) string {
	quoted := make([]string, 0, len(terms))
	for _, t := range terms {
		t = strings.TrimSpace(strings.ToLower(t))
		if t != "" {
			quoted = append(quoted, regexp.QuoteMeta(t))
		}
	}
	return strings.Join(quoted, "|")
}

var (
	// "45% cotton"
	percentMaterialPattern = regexp.MustCompile(`(\d{1,3})\s*%\s*([a-z][a-z\s-]*[a-z])`)

	// "cotton 45%"
	materialPercentPattern = regexp.MustCompile(`([a-z][a-z\s-]*[a-z])\s*(\d{1,3})\s*%`)
)

func percentBeforeMaterial(text string) []domain.MaterialCandidate {
	var out []domain.MaterialCandidate
	for _, m := range percentMaterialPattern.FindAllStringSubmatch(text, -1) {
		out = append(out, domain.MaterialCandidate{Text: m[2], Percentage: parsePercentage(m[1])})
	}
	return out
}

func materialBeforePercent(text string) []domain.MaterialCandidate {
	var out []domain.MaterialCandidate
	for _, m := range materialPercentPattern.FindAllStringSubmatch(text, -1) {
		out = append(out, domain.MaterialCandidate{Text: m[1], Percentage: parsePercentage(m[2])})
	}
	return out
}

// groupSpans yields one candidate per match using the given capture group
func groupSpans(re *regexp.Regexp, group int) func(string) []domain.MaterialCandidate {
	return func(text string) []domain.MaterialCandidate {
		var out []domain.MaterialCandidate
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			out = append(out, domain.MaterialCandidate{Text: m[group], Percentage: defaultPercentage})
		}
		return out
	}
}

// modifierSpans keeps the modifier attached: "organic" + "cotton" -> "organic cotton"
func modifierSpans(re *regexp.Regexp) func(string) []domain.MaterialCandidate {
	return func(text string) []domain.MaterialCandidate {
		var out []domain.MaterialCandidate
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			out = append(out, domain.MaterialCandidate{Text: m[1] + " " + m[2], Percentage: defaultPercentage})
		}
		return out
	}
}

// parsePercentage reads a captured percentage; anything outside (0, 100] becomes 100
func parsePercentage(raw string) float64 {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 || n > 100 {
		return defaultPercentage
	}
	return float64(n)
}

// Strategies exposes the ordered strategy list
func (e *CandidateExtractor) Strategies() []ExtractionStrategy {
	out := make([]ExtractionStrategy, len(e.strategies))
	copy(out, e.strategies)
	return out
}

// Extract runs all strategies over normalized text and returns validated candidates in
// strategy order, then text order within a strategy. Duplicates are left for the finalizer.
func (e *CandidateExtractor) Extract(text string) []domain.MaterialCandidate {
	var out []domain.MaterialCandidate
	for _, s := range e.strategies {
		for _, raw := range s.Extract(text) {
			out = append(out, e.refine(raw, text)...)
		}
	}
	return out
}

// refine normalizes one raw span. A span that is itself a dictionary key survives whole.
// Otherwise the span is walked word by word: the longest multi-word dictionary key
// starting at a word is taken as one candidate, else the word alone is kept when it is
// a recognized material.
func (e *CandidateExtractor) refine(raw domain.MaterialCandidate, text string) []domain.MaterialCandidate {
	span := strings.TrimSpace(raw.Text)
	span = strings.TrimSpace(strings.TrimSuffix(span, ","))
	span = e.normalizer.Normalize(span, text)
	if span == "" {
		return nil
	}

	if e.isValidKey(span) {
		return []domain.MaterialCandidate{{Text: span, Percentage: raw.Percentage}}
	}

	words := strings.FieldsFunc(span, isSpanSeparator)
	var out []domain.MaterialCandidate
	for i := 0; i < len(words); i++ {
		if key, n := e.longestKeyAt(words, i); n > 0 {
			out = append(out, domain.MaterialCandidate{Text: key, Percentage: raw.Percentage})
			i += n - 1
			continue
		}
		if e.validator.IsValidMaterial(words[i]) {
			out = append(out, domain.MaterialCandidate{Text: words[i], Percentage: raw.Percentage})
		}
	}
	return out
}

// longestKeyAt finds the longest run of two or more words starting at i that is a
// valid dictionary key. It returns the key and the number of words consumed.
func (e *CandidateExtractor) longestKeyAt(words []string, i int) (string, int) {
	for n := min(e.maxKeyLen, len(words)-i); n >= 2; n-- {
		key := strings.Join(words[i:i+n], " ")
		if e.isValidKey(key) {
			return key, n
		}
	}
	return "", 0
}

func (e *CandidateExtractor) isValidKey(s string) bool {
	return e.catalog.Contains(s) && e.validator.IsValidMaterial(s)
}

// Indicator spans may list materials as "cotton,polyester" or "cotton/polyester"
func isSpanSeparator(r rune) bool {
	return unicode.IsSpace(r) || r == ',' || r == '/'
}
