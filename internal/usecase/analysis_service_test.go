package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecoscan/backend/internal/domain"
	"github.com/ecoscan/backend/internal/logging"
)

// MockCacheRepository is a mock implementation of domain.CacheRepository
type MockCacheRepository struct {
	mu        sync.Mutex
	data      map[string][]byte
	getError  error
	setError  error
	getCalls  int
	setCalls  int
	deletions []string
}

func NewMockCacheRepository() *MockCacheRepository {
	return &MockCacheRepository{data: make(map[string][]byte)}
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getCalls++
	if m.getError != nil {
		return nil, m.getError
	}
	if value, ok := m.data[key]; ok {
		return value, nil
	}
	return nil, domain.ErrCacheMiss
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setCalls++
	if m.setError != nil {
		return m.setError
	}
	m.data[key] = value
	return nil
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deletions = append(m.deletions, key)
	delete(m.data, key)
	return nil
}

func (m *MockCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[key]
	return ok, nil
}

// stubExtractor returns a fixed product text
type stubExtractor struct {
	product domain.ProductText
	err     error
}

func (s stubExtractor) Extract(string) (domain.ProductText, error) {
	return s.product, s.err
}

func newTestService(t *testing.T, cache domain.CacheRepository, extractor domain.ProductTextExtractor, cfg AnalysisServiceConfig) *AnalysisService {
	t.Helper()
	return NewAnalysisService(newTestEngine(t), cache, extractor, logging.Discard(), cfg)
}

func TestNewAnalysisService_Defaults(t *testing.T) {
	s := newTestService(t, nil, nil, AnalysisServiceConfig{})

	assert.Equal(t, 10*time.Minute, s.config.CacheTTL)
	assert.Equal(t, 100, s.config.BatchLimit)
	assert.Equal(t, 8, s.config.Workers)
	assert.NotNil(t, s.Engine())
}

func TestAnalysisService_Analyze(t *testing.T) {
	tests := []struct {
		name          string
		request       *domain.AnalyzeRequest
		wantErr       error
		wantMaterials []string
		wantVerdict   domain.Verdict
	}{
		{
			name:    "nil request",
			request: nil,
			wantErr: domain.ErrInvalidRequest,
		},
		{
			name:    "empty request",
			request: &domain.AnalyzeRequest{Text: "  "},
			wantErr: domain.ErrInvalidRequest,
		},
		{
			name:          "organic cotton",
			request:       &domain.AnalyzeRequest{Text: "Made from 100% organic cotton, biodegradable and recyclable"},
			wantMaterials: []string{"organic cotton"},
			wantVerdict:   domain.VerdictEcoFriendly,
		},
		{
			name:          "synthetics",
			request:       &domain.AnalyzeRequest{Text: "Polyester shell, PVC lining"},
			wantMaterials: []string{"polyester", "pvc"},
			wantVerdict:   domain.VerdictNotEcoFriendly,
		},
		{
			name:          "no material information is hidden",
			request:       &domain.AnalyzeRequest{Text: "Click here for free shipping details"},
			wantMaterials: []string{},
			wantVerdict:   domain.VerdictHidden,
		},
		{
			name:          "title only",
			request:       &domain.AnalyzeRequest{Title: "Bamboo Cutting Board"},
			wantMaterials: []string{"bamboo"},
			wantVerdict:   domain.VerdictEcoFriendly,
		},
		{
			name: "adapter hints replace detection",
			request: &domain.AnalyzeRequest{
				Text:  "Click here for free shipping details",
				Hints: &domain.ProductHints{IsProbablyPlasticProduct: true},
			},
			wantMaterials: []string{},
			wantVerdict:   domain.VerdictNotEcoFriendly,
		},
		{
			name:          "search context on unknown product",
			request:       &domain.AnalyzeRequest{Text: "Kitchen helper", SearchContext: "plastic wrap"},
			wantMaterials: []string{},
			wantVerdict:   domain.VerdictNotEcoFriendly,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestService(t, nil, nil, AnalysisServiceConfig{DetectHints: true})

			got, err := s.Analyze(context.Background(), tt.request)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantMaterials, got.Profile.Materials)
			assert.Equal(t, tt.wantVerdict, got.Verdict)
			assert.Equal(t, SourceEngine, got.Source)
			assert.GreaterOrEqual(t, got.Score, 0.0)
			assert.LessOrEqual(t, got.Score, 1.0)
		})
	}
}

func TestAnalysisService_HintsOnlyAffectScoringProfile(t *testing.T) {
	s := newTestService(t, nil, nil, AnalysisServiceConfig{DetectHints: true})

	got, err := s.Analyze(context.Background(), &domain.AnalyzeRequest{
		Text: "Made from 100% organic cotton, biodegradable and recyclable",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"organic cotton"}, got.Profile.Materials)
	assert.Contains(t, got.ScoredMaterials.Materials, "biodegradable")
	assert.Contains(t, got.ScoredMaterials.Materials, "recyclable")
	assert.Less(t, got.Score, 1.0)
	assert.True(t, got.IsEcoFriendly)
}

func TestAnalysisService_Cache(t *testing.T) {
	request := &domain.AnalyzeRequest{Text: "stainless steel water bottle"}

	t.Run("second call is served from cache", func(t *testing.T) {
		cache := NewMockCacheRepository()
		s := newTestService(t, cache, nil, AnalysisServiceConfig{CacheEnabled: true})

		first, err := s.Analyze(context.Background(), request)
		require.NoError(t, err)
		assert.Equal(t, SourceEngine, first.Source)
		assert.Equal(t, 1, cache.setCalls)

		second, err := s.Analyze(context.Background(), request)
		require.NoError(t, err)
		assert.Equal(t, SourceCache, second.Source)
		assert.Equal(t, first.Profile, second.Profile)
		assert.Equal(t, first.Score, second.Score)
		assert.Equal(t, 1, cache.setCalls)
	})

	t.Run("cache disabled", func(t *testing.T) {
		cache := NewMockCacheRepository()
		s := newTestService(t, cache, nil, AnalysisServiceConfig{CacheEnabled: false})

		_, err := s.Analyze(context.Background(), request)
		require.NoError(t, err)
		second, err := s.Analyze(context.Background(), request)
		require.NoError(t, err)

		assert.Equal(t, SourceEngine, second.Source)
		assert.Zero(t, cache.getCalls)
		assert.Zero(t, cache.setCalls)
	})

	t.Run("cache errors are not fatal", func(t *testing.T) {
		cache := NewMockCacheRepository()
		cache.getError = errors.New("cache down")
		cache.setError = errors.New("cache down")
		s := newTestService(t, cache, nil, AnalysisServiceConfig{CacheEnabled: true})

		got, err := s.Analyze(context.Background(), request)
		require.NoError(t, err)
		assert.Equal(t, []string{"stainless steel"}, got.Profile.Materials)
	})

	t.Run("unreadable entry is dropped", func(t *testing.T) {
		cache := NewMockCacheRepository()
		s := newTestService(t, cache, nil, AnalysisServiceConfig{CacheEnabled: true})
		key := s.cacheKey(request, request.Text, request.Title)
		cache.data[key] = []byte("not json")

		got, err := s.Analyze(context.Background(), request)
		require.NoError(t, err)
		assert.Equal(t, SourceEngine, got.Source)
		assert.Equal(t, []string{key}, cache.deletions)
	})
}

func TestAnalysisService_CacheKey(t *testing.T) {
	s := newTestService(t, nil, nil, AnalysisServiceConfig{DetectHints: true})
	base := &domain.AnalyzeRequest{Text: "bamboo"}

	key := s.cacheKey(base, "bamboo", "")
	assert.Regexp(t, `^analysis:[0-9a-f]+$`, key)
	assert.Equal(t, key, s.cacheKey(base, "bamboo", ""))

	withSearch := &domain.AnalyzeRequest{Text: "bamboo", SearchContext: "eco"}
	assert.NotEqual(t, key, s.cacheKey(withSearch, "bamboo", ""))

	withHints := &domain.AnalyzeRequest{Text: "bamboo", Hints: &domain.ProductHints{IsProbablyPlasticProduct: true}}
	assert.NotEqual(t, key, s.cacheKey(withHints, "bamboo", ""))

	assert.NotEqual(t, key, s.cacheKey(base, "bamboo", "Board"))
}

func TestAnalysisService_HTML(t *testing.T) {
	t.Run("extracted text is analyzed", func(t *testing.T) {
		extractor := stubExtractor{product: domain.ProductText{
			Title:     "Cutting Board",
			Materials: []string{"Material: Bamboo"},
		}}
		s := newTestService(t, nil, extractor, AnalysisServiceConfig{DetectHints: true})

		got, err := s.Analyze(context.Background(), &domain.AnalyzeRequest{HTML: "<div>card</div>"})
		require.NoError(t, err)
		assert.Equal(t, []string{"bamboo"}, got.Profile.Materials)
		assert.Equal(t, domain.VerdictEcoFriendly, got.Verdict)
	})

	t.Run("extractor errors propagate", func(t *testing.T) {
		s := newTestService(t, nil, stubExtractor{err: domain.ErrInvalidHTML}, AnalysisServiceConfig{})

		_, err := s.Analyze(context.Background(), &domain.AnalyzeRequest{HTML: "<div>"})
		assert.ErrorIs(t, err, domain.ErrInvalidHTML)
	})

	t.Run("html without extractor", func(t *testing.T) {
		s := newTestService(t, nil, nil, AnalysisServiceConfig{})

		_, err := s.Analyze(context.Background(), &domain.AnalyzeRequest{HTML: "<div>bamboo</div>"})
		assert.ErrorIs(t, err, domain.ErrInvalidRequest)
	})
}

func TestAnalysisService_CancelledContext(t *testing.T) {
	s := newTestService(t, nil, nil, AnalysisServiceConfig{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Analyze(ctx, &domain.AnalyzeRequest{Text: "bamboo"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAnalysisService_AnalyzeBatch(t *testing.T) {
	t.Run("results keep request order", func(t *testing.T) {
		s := newTestService(t, NewMockCacheRepository(), nil, AnalysisServiceConfig{CacheEnabled: true, Workers: 2})
		requests := []domain.AnalyzeRequest{
			{Text: "bamboo spoon"},
			{Text: "pvc pipe"},
			{Text: "stainless steel water bottle"},
			{Text: "click here for details"},
		}

		got, err := s.AnalyzeBatch(context.Background(), requests)
		require.NoError(t, err)
		require.Len(t, got, 4)

		assert.Equal(t, []string{"bamboo"}, got[0].Profile.Materials)
		assert.Equal(t, []string{"pvc"}, got[1].Profile.Materials)
		assert.Equal(t, []string{"stainless steel"}, got[2].Profile.Materials)
		assert.Equal(t, domain.VerdictHidden, got[3].Verdict)
	})

	t.Run("empty batch", func(t *testing.T) {
		s := newTestService(t, nil, nil, AnalysisServiceConfig{})

		got, err := s.AnalyzeBatch(context.Background(), nil)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("batch over limit", func(t *testing.T) {
		s := newTestService(t, nil, nil, AnalysisServiceConfig{BatchLimit: 2})

		_, err := s.AnalyzeBatch(context.Background(), make([]domain.AnalyzeRequest, 3))
		assert.ErrorIs(t, err, domain.ErrBatchTooLarge)
	})

	t.Run("one invalid product fails the batch", func(t *testing.T) {
		s := newTestService(t, nil, nil, AnalysisServiceConfig{})

		_, err := s.AnalyzeBatch(context.Background(), []domain.AnalyzeRequest{
			{Text: "bamboo"},
			{Text: ""},
		})
		assert.ErrorIs(t, err, domain.ErrInvalidRequest)
		assert.ErrorContains(t, err, "product 1")
	})
}
