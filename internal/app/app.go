package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ecoscan/backend/config"
	httpDelivery "github.com/ecoscan/backend/internal/delivery/http"
	"github.com/ecoscan/backend/internal/domain"
	"github.com/ecoscan/backend/internal/infrastructure/cache"
	"github.com/ecoscan/backend/internal/infrastructure/dictionary"
	"github.com/ecoscan/backend/internal/infrastructure/htmltext"
	"github.com/ecoscan/backend/internal/logging"
	"github.com/ecoscan/backend/internal/usecase"
)

const shutdownTimeout = 10 * time.Second

// Application wires configuration to the engine, the analysis service and the HTTP server
type Application struct {
	cfg     *config.Config
	logger  *slog.Logger
	service *usecase.AnalysisService
	cache   *cache.MemoryCache
	router  *gin.Engine
}

// NewEngine loads the configured dictionary and builds a material engine from it
func NewEngine(cfg *config.Config) (*usecase.MaterialEngine, *dictionary.Bundle, error) {
	bundle, err := dictionary.Load(cfg.Materials.DictionaryPath)
	if err != nil {
		return nil, nil, err
	}

	engine, err := usecase.NewMaterialEngine(usecase.EngineConfig{
		Catalog: bundle.Catalog,
		Lexicon: bundle.Lexicon,
		Weights: domain.ScoringWeights{
			MaterialScore:    cfg.Materials.Weights.MaterialScore,
			Recyclability:    cfg.Materials.Weights.Recyclability,
			Biodegradability: cfg.Materials.Weights.Biodegradability,
		},
		MinEcoScore:      cfg.Materials.MinEcoScore,
		DictionaryDigest: bundle.Digest,
	})
	if err != nil {
		return nil, nil, err
	}

	return engine, bundle, nil
}

// NewService builds the analysis service. When the cache is enabled the returned
// memory cache must be closed by the caller.
func NewService(cfg *config.Config, logger *slog.Logger) (*usecase.AnalysisService, *cache.MemoryCache, error) {
	engine, bundle, err := NewEngine(cfg)
	if err != nil {
		return nil, nil, err
	}

	logger.Info("material dictionary loaded",
		"version", bundle.Version,
		"materials", bundle.Catalog.Len(),
		"eco_friendly", len(bundle.Catalog.EcoFriendly()),
		"non_eco_friendly", len(bundle.Catalog.NonEcoFriendly()),
		"digest", bundle.Digest[:12],
	)

	var (
		memoryCache *cache.MemoryCache
		repo        domain.CacheRepository
	)
	if cfg.Cache.Enabled {
		memoryCache = cache.NewMemoryCache(cfg.Cache.CleanupInterval)
		repo = memoryCache
	}

	service := usecase.NewAnalysisService(
		engine,
		repo,
		htmltext.NewExtractor(htmltext.DefaultSelectors()),
		logger,
		usecase.AnalysisServiceConfig{
			CacheEnabled: cfg.Cache.Enabled,
			CacheTTL:     cfg.Cache.TTL,
			DetectHints:  cfg.Analysis.DetectHints,
			BatchLimit:   cfg.Analysis.BatchLimit,
			Workers:      cfg.Analysis.Workers,
		},
	)

	return service, memoryCache, nil
}

// New builds a runnable application instance
func New(cfg *config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	service, memoryCache, err := NewService(cfg, baseLogger)
	if err != nil {
		return nil, err
	}

	handler := httpDelivery.NewHandler(service)
	router := httpDelivery.SetupRouter(cfg, handler, baseLogger)

	return &Application{
		cfg:     cfg,
		logger:  baseLogger,
		service: service,
		cache:   memoryCache,
		router:  router,
	}, nil
}

// Handler exposes the HTTP handler, mainly for tests
func (a *Application) Handler() http.Handler {
	return a.router
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully
func (a *Application) Run(ctx context.Context) error {
	defer a.Close()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", a.cfg.Server.Port),
		Handler:           a.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	a.logger.Info("server listening",
		"addr", server.Addr,
		"environment", a.cfg.Server.Environment,
		"cache_enabled", a.cfg.Cache.Enabled,
		"cache_ttl", a.cfg.Cache.TTL,
		"rate_limit_per_ip", a.cfg.RateLimit.PerIP,
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
	}

	a.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

// Close releases background resources
func (a *Application) Close() {
	if a.cache != nil {
		a.cache.Close()
	}
}
