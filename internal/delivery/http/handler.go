package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ecoscan/backend/internal/domain"
	"github.com/ecoscan/backend/internal/usecase"
)

// Version is reported by the health endpoint
const Version = "1.0.0"

// maxSuggestions caps the close matches returned for an unknown material
const maxSuggestions = 5

// Handler holds dependencies for HTTP handlers
type Handler struct {
	analysisService *usecase.AnalysisService
}

// NewHandler creates a new HTTP handler. A nil service makes the analysis and
// dictionary endpoints answer 503.
func NewHandler(analysisService *usecase.AnalysisService) *Handler {
	return &Handler{
		analysisService: analysisService,
	}
}

// batchRequest is the body of a batch analysis request
type batchRequest struct {
	Products []domain.AnalyzeRequest `json:"products" binding:"required"`
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	materials := 0
	if h.analysisService != nil {
		materials = h.analysisService.Engine().Catalog().Len()
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "ecoscan-backend",
		"version":   Version,
		"materials": materials,
	})
}

// Analyze handles single product analysis requests
func (h *Handler) Analyze(c *gin.Context) {
	if !h.requireService(c) {
		return
	}

	var request domain.AnalyzeRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body: " + err.Error(),
		})
		return
	}

	analysis, err := h.analysisService.Analyze(c.Request.Context(), &request)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, analysis)
}

// AnalyzeBatch handles batch analysis requests; results keep request order
func (h *Handler) AnalyzeBatch(c *gin.Context) {
	if !h.requireService(c) {
		return
	}

	var request batchRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body: " + err.Error(),
		})
		return
	}

	results, err := h.analysisService.AnalyzeBatch(c.Request.Context(), request.Products)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"results": results,
	})
}

// ListMaterials returns dictionary entries, optionally filtered by category and kind
func (h *Handler) ListMaterials(c *gin.Context) {
	if !h.requireService(c) {
		return
	}

	category := domain.Category(strings.ToLower(c.Query("category")))
	if category != "" && !category.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "unknown category: " + string(category),
		})
		return
	}

	kind := domain.MaterialKind(strings.ToLower(c.Query("kind")))
	if kind != "" && kind != domain.KindEcoFriendly && kind != domain.KindNonEcoFriendly {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "kind must be 'eco' or 'non_eco'",
		})
		return
	}

	materials := filterMaterials(h.analysisService.Engine().Catalog().Entries(), category, kind)

	c.JSON(http.StatusOK, gin.H{
		"materials": materials,
		"count":     len(materials),
	})
}

// GetMaterial returns one dictionary entry by name
func (h *Handler) GetMaterial(c *gin.Context) {
	if !h.requireService(c) {
		return
	}

	name := strings.TrimSpace(c.Param("name"))
	engine := h.analysisService.Engine()

	entry, ok := engine.Catalog().Lookup(name)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"error":       domain.ErrMaterialNotFound.Error(),
			"suggestions": engine.SuggestMaterials(name, maxSuggestions),
		})
		return
	}

	c.JSON(http.StatusOK, entry)
}

func (h *Handler) requireService(c *gin.Context) bool {
	if h.analysisService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Analysis service not configured",
		})
		return false
	}
	return true
}

// filterMaterials keeps entries matching the non-empty filters, in dictionary order
func filterMaterials(entries []domain.MaterialEntry, category domain.Category, kind domain.MaterialKind) []domain.MaterialEntry {
	out := make([]domain.MaterialEntry, 0, len(entries))
	for _, e := range entries {
		if category != "" && e.Category != category {
			continue
		}
		if kind != "" && e.Kind != kind {
			continue
		}
		out = append(out, e)
	}
	return out
}

// writeError maps domain errors to HTTP status codes
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrInvalidRequest),
		errors.Is(err, domain.ErrBatchTooLarge),
		errors.Is(err, domain.ErrInvalidHTML):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrMaterialNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrRateLimited):
		status = http.StatusTooManyRequests
	}

	c.JSON(status, gin.H{
		"error": err.Error(),
	})
}
