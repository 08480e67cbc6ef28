package usecase

import (
	"fmt"
	"math"

	"github.com/ecoscan/backend/internal/domain"
	"github.com/ecoscan/backend/pkg/hashutil"
)

// EngineConfig holds everything the material engine is built from
type EngineConfig struct {
	Catalog          *domain.MaterialCatalog
	Lexicon          domain.Lexicon
	Weights          domain.ScoringWeights
	MinEcoScore      float64
	DictionaryDigest string // identifies the dictionary revision for cache keys
}

// MaterialEngine extracts a material profile from product text and scores it.
// It holds no mutable state and is safe for concurrent use.
type MaterialEngine struct {
	catalog     *domain.MaterialCatalog
	lexicon     domain.Lexicon
	extractor   *CandidateExtractor
	augmenter   *ContextualAugmenter
	fallback    *FallbackScanner
	finalizer   *ProfileFinalizer
	calculator  *EcoScoreCalculator
	matcher     *MaterialMatcher
	fingerprint string
}

// NewMaterialEngine validates the configuration and wires the pipeline stages
func NewMaterialEngine(cfg EngineConfig) (*MaterialEngine, error) {
	if cfg.Catalog == nil {
		return nil, fmt.Errorf("%w: material catalog is required", domain.ErrInvalidDictionary)
	}
	if err := cfg.Lexicon.Validate(); err != nil {
		return nil, err
	}
	if err := validateWeights(cfg.Weights); err != nil {
		return nil, err
	}
	if cfg.MinEcoScore < 0 || cfg.MinEcoScore > 1 || math.IsNaN(cfg.MinEcoScore) {
		return nil, fmt.Errorf("%w: min eco score %.2f outside [0, 1]", domain.ErrInvalidRequest, cfg.MinEcoScore)
	}

	normalizer := NewMaterialNormalizer(cfg.Lexicon)
	validator := NewMaterialValidator(cfg.Catalog, cfg.Lexicon)
	fingerprint := hashutil.Digest(
		cfg.DictionaryDigest,
		fmt.Sprintf("%g/%g/%g", cfg.Weights.MaterialScore, cfg.Weights.Recyclability, cfg.Weights.Biodegradability),
		fmt.Sprintf("%g", cfg.MinEcoScore),
	)

	return &MaterialEngine{
		catalog:     cfg.Catalog,
		lexicon:     cfg.Lexicon,
		extractor:   NewCandidateExtractor(cfg.Catalog, cfg.Lexicon, normalizer, validator),
		augmenter:   NewContextualAugmenter(cfg.Lexicon),
		fallback:    NewFallbackScanner(cfg.Catalog),
		finalizer:   NewProfileFinalizer(cfg.Catalog),
		calculator:  NewEcoScoreCalculator(cfg.Catalog, cfg.Lexicon, cfg.Weights, cfg.MinEcoScore),
		matcher:     NewMaterialMatcher(cfg.Catalog, MatcherConfig{}),
		fingerprint: fingerprint,
	}, nil
}

func validateWeights(w domain.ScoringWeights) error {
	for name, v := range map[string]float64{
		"material_score":   w.MaterialScore,
		"recyclability":    w.Recyclability,
		"biodegradability": w.Biodegradability,
	} {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: weight %s must be a non-negative number", domain.ErrInvalidRequest, name)
		}
	}
	if w.MaterialScore == 0 {
		return fmt.Errorf("%w: weight material_score must be positive", domain.ErrInvalidRequest)
	}
	return nil
}

// ExtractProfile runs the full extraction pipeline over raw product text:
// normalize, extract candidates, augment from context, fall back to a plain
// dictionary scan when nothing was found, then deduplicate and validate
func (e *MaterialEngine) ExtractProfile(rawText string) domain.MaterialProfile {
	text := NormalizeText(rawText)
	if text == "" {
		return domain.NewMaterialProfile()
	}

	candidates := e.extractor.Extract(text)
	candidates = e.augmenter.Augment(candidates, text)
	if len(candidates) == 0 {
		candidates = e.fallback.Scan(text)
	}

	return e.finalizer.Finalize(candidates)
}

// Score computes the eco score of a profile
func (e *MaterialEngine) Score(profile domain.MaterialProfile) domain.EcoScoreResult {
	return e.calculator.Score(profile)
}

// Analyze extracts and scores in one call
func (e *MaterialEngine) Analyze(rawText string) (domain.MaterialProfile, domain.EcoScoreResult) {
	profile := e.ExtractProfile(rawText)
	return profile, e.Score(profile)
}

// SuggestMaterials ranks dictionary entries that resemble a possibly misspelled name
func (e *MaterialEngine) SuggestMaterials(query string, limit int) []domain.MaterialMatch {
	return e.matcher.Suggest(query, limit)
}

// Catalog returns the dictionary the engine was built with
func (e *MaterialEngine) Catalog() *domain.MaterialCatalog {
	return e.catalog
}

// Lexicon returns the vocabularies the engine was built with
func (e *MaterialEngine) Lexicon() domain.Lexicon {
	return e.lexicon
}

// Fingerprint identifies the dictionary revision and scoring settings; two engines
// with the same fingerprint produce identical results for identical input
func (e *MaterialEngine) Fingerprint() string {
	return e.fingerprint
}
