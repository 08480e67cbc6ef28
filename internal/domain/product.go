package domain

import "strings"

// ProductHints are pre-detected signals a site adapter may attach to a product
type ProductHints struct {
	PlasticsDetected               []string `json:"plasticsDetected,omitempty"`
	BiodegradableDetected          []string `json:"biodegradableDetected,omitempty"`
	RecyclableDetected             []string `json:"recyclableDetected,omitempty"`
	EcoFriendlyClaims              []string `json:"ecoFriendlyClaims,omitempty"`
	IsProbablyPlasticProduct       bool     `json:"isProbablyPlasticProduct,omitempty"`
	IsProbablyBiodegradableProduct bool     `json:"isProbablyBiodegradableProduct,omitempty"`
	IsProbablyRecyclableProduct    bool     `json:"isProbablyRecyclableProduct,omitempty"`
}

// IsZero reports whether no hint is set
func (h ProductHints) IsZero() bool {
	return len(h.PlasticsDetected) == 0 &&
		len(h.BiodegradableDetected) == 0 &&
		len(h.RecyclableDetected) == 0 &&
		len(h.EcoFriendlyClaims) == 0 &&
		!h.IsProbablyPlasticProduct &&
		!h.IsProbablyBiodegradableProduct &&
		!h.IsProbablyRecyclableProduct
}

// ProductText is the text assembled from a product card
type ProductText struct {
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	Features    []string `json:"features,omitempty"`
	Materials   []string `json:"materials,omitempty"` // fragments matched by material indicators
}

// Combined joins all non-empty parts into the raw text fed to the engine
func (t ProductText) Combined() string {
	parts := make([]string, 0, 2+len(t.Features)+len(t.Materials))
	for _, p := range []string{t.Title, t.Description} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	for _, p := range t.Materials {
		if p != "" {
			parts = append(parts, p)
		}
	}
	for _, p := range t.Features {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// AnalyzeRequest represents a product analysis request from a site adapter
type AnalyzeRequest struct {
	Text          string        `json:"text"`
	HTML          string        `json:"html,omitempty"`
	Title         string        `json:"title,omitempty"`
	SearchContext string        `json:"searchContext,omitempty"` // search query or results-page URL
	Hints         *ProductHints `json:"hints,omitempty"`
}

// Verdict tells the rendering layer what to do with a product card
type Verdict string

const (
	VerdictHidden         Verdict = "hidden"
	VerdictEcoFriendly    Verdict = "eco_friendly"
	VerdictNotEcoFriendly Verdict = "not_eco_friendly"
)

// ProductAnalysis is the full result for one product
type ProductAnalysis struct {
	Profile         MaterialProfile `json:"profile"`         // dictionary-closed extraction result
	ScoredMaterials MaterialProfile `json:"scoredMaterials"` // profile merged with adapter hints
	Hints           ProductHints    `json:"hints"`
	Score           float64         `json:"score"`
	IsEcoFriendly   bool            `json:"isEcoFriendly"`
	Verdict         Verdict         `json:"verdict"`
	Source          string          `json:"source"` // "engine" or "cache"
}
