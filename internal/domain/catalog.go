package domain

import (
	"fmt"
	"strings"
)

// Score bands each dictionary must stay within
const (
	minEcoFriendlyScore    = 0.7
	maxEcoFriendlyScore    = 1.0
	minNonEcoFriendlyScore = -1.0
	maxNonEcoFriendlyScore = -0.7
)

// MaterialCatalog holds the two disjoint canonical dictionaries.
// It is immutable after construction and safe for concurrent reads.
type MaterialCatalog struct {
	ecoFriendly    []MaterialEntry
	nonEcoFriendly []MaterialEntry
	index          map[string]MaterialEntry
}

// NewMaterialCatalog validates both dictionaries and builds the lookup index.
// Iteration order of each slice is preserved; it drives the fallback scan and
// the order Resolve tries keys in.
func NewMaterialCatalog(ecoFriendly, nonEcoFriendly []MaterialEntry) (*MaterialCatalog, error) {
	c := &MaterialCatalog{
		ecoFriendly:    make([]MaterialEntry, 0, len(ecoFriendly)),
		nonEcoFriendly: make([]MaterialEntry, 0, len(nonEcoFriendly)),
		index:          make(map[string]MaterialEntry, len(ecoFriendly)+len(nonEcoFriendly)),
	}

	for _, e := range ecoFriendly {
		e.Kind = KindEcoFriendly
		if err := c.add(e, minEcoFriendlyScore, maxEcoFriendlyScore); err != nil {
			return nil, err
		}
		c.ecoFriendly = append(c.ecoFriendly, e)
	}
	for _, e := range nonEcoFriendly {
		e.Kind = KindNonEcoFriendly
		if err := c.add(e, minNonEcoFriendlyScore, maxNonEcoFriendlyScore); err != nil {
			return nil, err
		}
		c.nonEcoFriendly = append(c.nonEcoFriendly, e)
	}

	if len(c.index) == 0 {
		return nil, fmt.Errorf("%w: no materials defined", ErrInvalidDictionary)
	}

	return c, nil
}

func (c *MaterialCatalog) add(e MaterialEntry, minScore, maxScore float64) error {
	if e.Name == "" {
		return fmt.Errorf("%w: %s entry with empty name", ErrInvalidDictionary, e.Kind)
	}
	if e.Name != strings.ToLower(strings.TrimSpace(e.Name)) {
		return fmt.Errorf("%w: %q must be lower-case and trimmed", ErrInvalidDictionary, e.Name)
	}
	if !e.Category.Valid() {
		return fmt.Errorf("%w: %q has unknown category %q", ErrInvalidDictionary, e.Name, e.Category)
	}
	if e.Score < minScore || e.Score > maxScore {
		return fmt.Errorf("%w: %q score %.2f outside [%.1f, %.1f]", ErrInvalidDictionary, e.Name, e.Score, minScore, maxScore)
	}
	if existing, dup := c.index[e.Name]; dup {
		return fmt.Errorf("%w: %q defined twice (%s and %s)", ErrInvalidDictionary, e.Name, existing.Kind, e.Kind)
	}
	c.index[e.Name] = e
	return nil
}

// Lookup finds an entry by exact, case-insensitive name
func (c *MaterialCatalog) Lookup(name string) (MaterialEntry, bool) {
	e, ok := c.index[strings.ToLower(name)]
	return e, ok
}

// Resolve finds the first entry whose name occurs in s, scanning the eco-friendly
// dictionary before the non-eco-friendly one in declaration order
func (c *MaterialCatalog) Resolve(s string) (MaterialEntry, bool) {
	lower := strings.ToLower(s)
	for _, e := range c.ecoFriendly {
		if strings.Contains(lower, e.Name) {
			return e, true
		}
	}
	for _, e := range c.nonEcoFriendly {
		if strings.Contains(lower, e.Name) {
			return e, true
		}
	}
	return MaterialEntry{}, false
}

// Contains reports whether name is a key of either dictionary
func (c *MaterialCatalog) Contains(name string) bool {
	_, ok := c.index[strings.ToLower(name)]
	return ok
}

// EcoFriendly returns the eco-friendly dictionary in declaration order
func (c *MaterialCatalog) EcoFriendly() []MaterialEntry {
	out := make([]MaterialEntry, len(c.ecoFriendly))
	copy(out, c.ecoFriendly)
	return out
}

// NonEcoFriendly returns the non-eco-friendly dictionary in declaration order
func (c *MaterialCatalog) NonEcoFriendly() []MaterialEntry {
	out := make([]MaterialEntry, len(c.nonEcoFriendly))
	copy(out, c.nonEcoFriendly)
	return out
}

// Entries returns eco-friendly entries followed by non-eco-friendly entries
func (c *MaterialCatalog) Entries() []MaterialEntry {
	out := make([]MaterialEntry, 0, len(c.index))
	out = append(out, c.ecoFriendly...)
	out = append(out, c.nonEcoFriendly...)
	return out
}

// Len returns the total number of dictionary materials
func (c *MaterialCatalog) Len() int {
	return len(c.index)
}

// Lexicon groups the fixed vocabularies used by extraction, validation and scoring
type Lexicon struct {
	// Extraction
	IndicatorPhrases     []string `yaml:"indicator_phrases"`
	Modifiers            []string `yaml:"modifiers"`
	MaterialNouns        []string `yaml:"material_nouns"`
	ListSuffixes         []string `yaml:"list_suffixes"`
	ProductTypeMaterials []string `yaml:"product_type_materials"`
	ProductTypeNouns     []string `yaml:"product_type_nouns"`
	FillerWords          []string `yaml:"filler_words"`
	CottonGarmentPhrases []string `yaml:"cotton_garment_phrases"`
	ClaimTerms           []string `yaml:"claim_terms"`

	// Validation
	GeneralCategories []string `yaml:"general_categories"`
	IrrelevantPhrases []string `yaml:"irrelevant_phrases"`
	StopWords         []string `yaml:"stop_words"`

	// Scoring
	NaturalFibers   []string `yaml:"natural_fibers"`
	EcoClaimMarkers []string `yaml:"eco_claim_markers"`

	Hints HintLexicon `yaml:"hints"`
}

// HintLexicon holds the site-adapter vocabularies used to detect product hints
type HintLexicon struct {
	PlasticTerms          []string `yaml:"plastic_terms"`
	BiodegradableTerms    []string `yaml:"biodegradable_terms"`
	RecyclableTerms       []string `yaml:"recyclable_terms"`
	PlasticProducts       []string `yaml:"plastic_products"`
	BiodegradableProducts []string `yaml:"biodegradable_products"`
	RecyclableProducts    []string `yaml:"recyclable_products"`
	EcoClaimTerms         []string `yaml:"eco_claim_terms"`
	SignificantClaims     []string `yaml:"significant_claims"`
}

// Validate checks that every list the engine cannot run without is present
func (l Lexicon) Validate() error {
	required := map[string][]string{
		"indicator_phrases":      l.IndicatorPhrases,
		"modifiers":              l.Modifiers,
		"material_nouns":         l.MaterialNouns,
		"list_suffixes":          l.ListSuffixes,
		"product_type_materials": l.ProductTypeMaterials,
		"product_type_nouns":     l.ProductTypeNouns,
		"filler_words":           l.FillerWords,
		"claim_terms":            l.ClaimTerms,
		"general_categories":     l.GeneralCategories,
		"natural_fibers":         l.NaturalFibers,
		"eco_claim_markers":      l.EcoClaimMarkers,
	}
	for name, list := range required {
		if len(list) == 0 {
			return fmt.Errorf("%w: vocabulary %q is empty", ErrInvalidDictionary, name)
		}
		for _, term := range list {
			if strings.TrimSpace(term) == "" {
				return fmt.Errorf("%w: vocabulary %q has a blank term", ErrInvalidDictionary, name)
			}
		}
	}
	return nil
}
