package domain

import "strings"

// Category classifies a dictionary material
type Category string

const (
	CategoryNatural     Category = "natural"
	CategoryRecycled    Category = "recycled"
	CategorySustainable Category = "sustainable"
	CategoryMetal       Category = "metal"
	CategoryMineral     Category = "mineral"
	CategoryPaper       Category = "paper"
	CategoryUtensils    Category = "utensils"
	CategoryHousehold   Category = "household"
	CategorySynthetic   Category = "synthetic"
	CategoryChemical    Category = "chemical"
)

// Valid reports whether c is one of the known categories
func (c Category) Valid() bool {
	switch c {
	case CategoryNatural, CategoryRecycled, CategorySustainable, CategoryMetal,
		CategoryMineral, CategoryPaper, CategoryUtensils, CategoryHousehold,
		CategorySynthetic, CategoryChemical:
		return true
	}
	return false
}

// MaterialKind tells which of the two dictionaries an entry belongs to
type MaterialKind string

const (
	KindEcoFriendly    MaterialKind = "eco"
	KindNonEcoFriendly MaterialKind = "non_eco"
)

// MaterialEntry is one canonical dictionary material with its sustainability metadata
type MaterialEntry struct {
	Name          string       `json:"name"`
	Kind          MaterialKind `json:"kind"`
	Score         float64      `json:"score"` // -1.0..1.0
	Category      Category     `json:"category"`
	Recyclable    bool         `json:"recyclable"`
	Biodegradable bool         `json:"biodegradable"`
}

// MaterialCandidate is a transient extraction result before normalization and validation
type MaterialCandidate struct {
	Text       string
	Percentage float64
}

// MaterialProfile holds index-aligned material names and heuristic percentage weights.
// Percentages are confidence weights, not a composition; they never sum to 100.
type MaterialProfile struct {
	Materials   []string  `json:"materials"`
	Percentages []float64 `json:"percentages"`
}

// NewMaterialProfile returns an empty profile with non-nil slices
func NewMaterialProfile() MaterialProfile {
	return MaterialProfile{
		Materials:   []string{},
		Percentages: []float64{},
	}
}

// Add appends a material with its percentage
func (p *MaterialProfile) Add(material string, percentage float64) {
	p.Materials = append(p.Materials, material)
	p.Percentages = append(p.Percentages, percentage)
}

// Len returns the number of materials
func (p MaterialProfile) Len() int {
	return len(p.Materials)
}

// IsEmpty reports whether the profile holds no materials
func (p MaterialProfile) IsEmpty() bool {
	return len(p.Materials) == 0
}

// AnyContains reports whether any material contains substr
func (p MaterialProfile) AnyContains(substr string) bool {
	for _, m := range p.Materials {
		if strings.Contains(strings.ToLower(m), substr) {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the profile
func (p MaterialProfile) Clone() MaterialProfile {
	out := MaterialProfile{
		Materials:   make([]string, len(p.Materials)),
		Percentages: make([]float64, len(p.Percentages)),
	}
	copy(out.Materials, p.Materials)
	copy(out.Percentages, p.Percentages)
	return out
}

// EcoScoreResult is the derived sustainability score for a profile
type EcoScoreResult struct {
	Score         float64 `json:"score"` // 0-1
	IsEcoFriendly bool    `json:"isEcoFriendly"`
}

// ScoringWeights controls how the score components are mixed
type ScoringWeights struct {
	MaterialScore    float64 `json:"materialScore"`
	Recyclability    float64 `json:"recyclability"`
	Biodegradability float64 `json:"biodegradability"`
}

// DefaultScoringWeights returns the stock weighting
func DefaultScoringWeights() ScoringWeights {
	return ScoringWeights{
		MaterialScore:    0.6,
		Recyclability:    0.2,
		Biodegradability: 0.2,
	}
}

// DefaultMinEcoScore is the threshold at or above which a product is eco-friendly
const DefaultMinEcoScore = 0.5

// MaterialMatch is a dictionary entry ranked against a free-text material query
type MaterialMatch struct {
	Entry         MaterialEntry `json:"entry"`
	Score         float64       `json:"score"` // 0-100
	MatchedTokens []string      `json:"matchedTokens"`
}
