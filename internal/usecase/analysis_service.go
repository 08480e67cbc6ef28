package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ecoscan/backend/internal/domain"
	"github.com/ecoscan/backend/pkg/hashutil"
)

// Result sources
const (
	SourceEngine = "engine"
	SourceCache  = "cache"
)

// AnalysisServiceConfig holds configuration for the analysis service
type AnalysisServiceConfig struct {
	CacheEnabled bool
	CacheTTL     time.Duration
	DetectHints  bool
	BatchLimit   int
	Workers      int
}

// AnalysisService turns product requests into scored analyses with caching
type AnalysisService struct {
	engine    *MaterialEngine
	detector  *HintDetector
	merger    *HintMerger
	cache     domain.CacheRepository
	extractor domain.ProductTextExtractor
	logger    *slog.Logger
	config    AnalysisServiceConfig
}

// NewAnalysisService creates a new analysis service. cache and extractor may be nil,
// which disables caching and HTML input respectively.
func NewAnalysisService(
	engine *MaterialEngine,
	cache domain.CacheRepository,
	extractor domain.ProductTextExtractor,
	logger *slog.Logger,
	config AnalysisServiceConfig,
) *AnalysisService {
	if logger == nil {
		logger = slog.Default()
	}
	if config.CacheTTL == 0 {
		config.CacheTTL = 10 * time.Minute
	}
	if config.BatchLimit <= 0 {
		config.BatchLimit = 100
	}
	if config.Workers <= 0 {
		config.Workers = 8
	}

	return &AnalysisService{
		engine:    engine,
		detector:  NewHintDetector(engine.Lexicon().Hints),
		merger:    NewHintMerger(engine.Lexicon().Hints),
		cache:     cache,
		extractor: extractor,
		logger:    logger.With("component", "analysis"),
		config:    config,
	}
}

// Engine returns the material engine behind the service
func (s *AnalysisService) Engine() *MaterialEngine {
	return s.engine
}

// Analyze extracts, merges hints and scores one product.
// Flow: resolve text -> check cache -> extract -> hints -> score -> cache -> return
func (s *AnalysisService) Analyze(ctx context.Context, request *domain.AnalyzeRequest) (*domain.ProductAnalysis, error) {
	if request == nil {
		return nil, domain.ErrInvalidRequest
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	text, title, err := s.resolveText(request)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" && strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("%w: text, title or html is required", domain.ErrInvalidRequest)
	}

	cacheKey := s.cacheKey(request, text, title)
	if cached, ok := s.getFromCache(ctx, cacheKey); ok {
		cached.Source = SourceCache
		return cached, nil
	}

	engineText := text
	if title != "" && !strings.Contains(text, title) {
		engineText = strings.TrimSpace(title + " " + text)
	}

	profile := s.engine.ExtractProfile(engineText)

	var hints domain.ProductHints
	switch {
	case request.Hints != nil:
		hints = *request.Hints
	case s.config.DetectHints:
		hints = s.detector.Detect(engineText, title)
	}

	scoring := s.merger.Merge(profile, hints, engineText, request.SearchContext)
	result := s.engine.Score(scoring)

	analysis := &domain.ProductAnalysis{
		Profile:         profile,
		ScoredMaterials: scoring,
		Hints:           hints,
		Score:           result.Score,
		IsEcoFriendly:   result.IsEcoFriendly,
		Verdict:         verdictFor(scoring, result),
		Source:          SourceEngine,
	}

	s.logger.Debug("product analyzed",
		"materials", profile.Materials,
		"scored_materials", scoring.Materials,
		"score", result.Score,
		"verdict", analysis.Verdict,
	)

	s.setInCache(ctx, cacheKey, analysis)

	return analysis, nil
}

// AnalyzeBatch analyzes products concurrently with a bounded worker count.
// Results keep the order of the requests; the first failure cancels the rest.
func (s *AnalysisService) AnalyzeBatch(ctx context.Context, requests []domain.AnalyzeRequest) ([]domain.ProductAnalysis, error) {
	if len(requests) == 0 {
		return []domain.ProductAnalysis{}, nil
	}
	if len(requests) > s.config.BatchLimit {
		return nil, fmt.Errorf("%w: %d products, limit %d", domain.ErrBatchTooLarge, len(requests), s.config.BatchLimit)
	}

	results := make([]domain.ProductAnalysis, len(requests))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Workers)

	for i := range requests {
		i := i
		g.Go(func() error {
			analysis, err := s.Analyze(gctx, &requests[i])
			if err != nil {
				return fmt.Errorf("product %d: %w", i, err)
			}
			results[i] = *analysis
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.logger.Info("batch analyzed", "products", len(requests))
	return results, nil
}

// resolveText combines plain text with text flattened from the HTML fragment
func (s *AnalysisService) resolveText(request *domain.AnalyzeRequest) (string, string, error) {
	text := request.Text
	title := request.Title

	if strings.TrimSpace(request.HTML) == "" {
		return text, title, nil
	}
	if s.extractor == nil {
		return "", "", fmt.Errorf("%w: html input is not supported", domain.ErrInvalidRequest)
	}

	product, err := s.extractor.Extract(request.HTML)
	if err != nil {
		return "", "", err
	}
	if title == "" {
		title = product.Title
	}
	if combined := product.Combined(); combined != "" {
		text = strings.TrimSpace(text + " " + combined)
	}
	return text, title, nil
}

// verdictFor hides products with no material information and badges the rest
func verdictFor(scoring domain.MaterialProfile, result domain.EcoScoreResult) domain.Verdict {
	switch {
	case scoring.IsEmpty():
		return domain.VerdictHidden
	case result.IsEcoFriendly:
		return domain.VerdictEcoFriendly
	default:
		return domain.VerdictNotEcoFriendly
	}
}

// cacheKey addresses a result by everything that influences it.
// Format: "analysis:{blake3 digest}"
func (s *AnalysisService) cacheKey(request *domain.AnalyzeRequest, text, title string) string {
	hints := "detect=" + strconv.FormatBool(s.config.DetectHints)
	if request.Hints != nil {
		if raw, err := json.Marshal(request.Hints); err == nil {
			hints = string(raw)
		}
	}
	return "analysis:" + hashutil.Digest(s.engine.Fingerprint(), text, title, request.SearchContext, hints)
}

// getFromCache retrieves an analysis from cache
func (s *AnalysisService) getFromCache(ctx context.Context, key string) (*domain.ProductAnalysis, bool) {
	if s.cache == nil || !s.config.CacheEnabled {
		return nil, false
	}

	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil, false
	}

	var analysis domain.ProductAnalysis
	if err := json.Unmarshal(raw, &analysis); err != nil {
		s.logger.Warn("dropping unreadable cache entry", "key", key, "error", err)
		_ = s.cache.Delete(ctx, key)
		return nil, false
	}
	return &analysis, true
}

// setInCache stores an analysis; failures are logged, never returned
func (s *AnalysisService) setInCache(ctx context.Context, key string, analysis *domain.ProductAnalysis) {
	if s.cache == nil || !s.config.CacheEnabled {
		return
	}

	raw, err := json.Marshal(analysis)
	if err != nil {
		s.logger.Warn("failed to encode analysis for cache", "error", err)
		return
	}
	if err := s.cache.Set(ctx, key, raw, s.config.CacheTTL); err != nil {
		s.logger.Warn("failed to cache analysis", "key", key, "error", err)
	}
}
