package usecase

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ecoscan/backend/internal/domain"
	"github.com/ecoscan/backend/internal/infrastructure/dictionary"
)

var (
	bundleOnce sync.Once
	bundle     *dictionary.Bundle
	bundleErr  error
)

// testBundle loads the embedded dictionary once per test binary
func testBundle(t *testing.T) *dictionary.Bundle {
	t.Helper()
	bundleOnce.Do(func() {
		bundle, bundleErr = dictionary.LoadDefault()
	})
	require.NoError(t, bundleErr)
	return bundle
}

func testCatalog(t *testing.T) *domain.MaterialCatalog {
	return testBundle(t).Catalog
}

func testLexicon(t *testing.T) domain.Lexicon {
	return testBundle(t).Lexicon
}

func newTestEngine(t *testing.T) *MaterialEngine {
	t.Helper()
	b := testBundle(t)
	engine, err := NewMaterialEngine(EngineConfig{
		Catalog:          b.Catalog,
		Lexicon:          b.Lexicon,
		Weights:          domain.DefaultScoringWeights(),
		MinEcoScore:      domain.DefaultMinEcoScore,
		DictionaryDigest: b.Digest,
	})
	require.NoError(t, err)
	return engine
}

func candidateTexts(candidates []domain.MaterialCandidate) []string {
	out := make([]string, len(candidates))
	for i, c := range candidates {
		out[i] = c.Text
	}
	return out
}
