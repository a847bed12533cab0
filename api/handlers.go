// Package api exposes the retrieval engine over HTTP: search, corpus
// reload, corpus statistics, and a health check.
package api

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bazarlens/bazarlens/internal/engine"
	internalErrors "github.com/bazarlens/bazarlens/internal/errors"
	"github.com/bazarlens/bazarlens/services"
)

const maxRequestBodySize = 1 << 20 // 1 MiB

// API holds dependencies for API handlers, primarily the retrieval engine.
type API struct {
	engine *engine.Engine
}

// NewAPI creates a new API handler structure.
func NewAPI(eng *engine.Engine) *API {
	return &API{engine: eng}
}

// SetupRoutes defines all the API routes for the retrieval service.
func SetupRoutes(router *gin.Engine, eng *engine.Engine) {
	apiHandler := NewAPI(eng)

	router.Use(CORSMiddleware())
	router.Use(RequestIDMiddleware())
	router.Use(RequestSizeLimitMiddleware(maxRequestBodySize))

	router.GET("/health", apiHandler.HealthCheckHandler)
	router.GET("/stats", apiHandler.StatsHandler)
	router.POST("/search", apiHandler.SearchHandler)
	router.POST("/corpus/reload", apiHandler.ReloadCorpusHandler)
}

// SearchRequest defines the structure for search queries.
type SearchRequest struct {
	Query   string                  `json:"query"`
	Filters *services.SearchFilters `json:"filters,omitempty"`
}

// SearchHandler handles search requests against the current corpus
// snapshot.
// Request Body: SearchRequest
func (api *API) SearchHandler(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendError(c, http.StatusBadRequest, ErrorCodeInvalidJSON, "Invalid request body: "+err.Error())
		return
	}

	if strings.TrimSpace(req.Query) == "" {
		SendError(c, http.StatusBadRequest, ErrorCodeInvalidQuery, "Query cannot be empty")
		return
	}

	filters := services.SearchFilters{}
	if req.Filters != nil {
		filters = *req.Filters
	}

	result, err := api.engine.Search(req.Query, filters)
	if err != nil {
		if errors.Is(err, internalErrors.ErrIndexNotBuilt) {
			SendError(c, http.StatusServiceUnavailable, ErrorCodeIndexNotBuilt,
				"Index not built yet; reload the corpus first")
			return
		}
		SendError(c, http.StatusInternalServerError, ErrorCodeSearchFailed, "Search failed: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, result)
}

// ReloadCorpusHandler re-reads the corpus and rebuilds the index when
// the content changed.
func (api *API) ReloadCorpusHandler(c *gin.Context) {
	startTime := time.Now()

	if err := api.engine.Rebuild(); err != nil {
		if errors.Is(err, internalErrors.ErrEmptyCorpus) {
			SendError(c, http.StatusUnprocessableEntity, ErrorCodeCorpusEmpty,
				"Corpus yielded no records: "+err.Error())
			return
		}
		SendError(c, http.StatusInternalServerError, ErrorCodeReloadFailed, "Corpus reload failed: "+err.Error())
		return
	}

	stats, err := api.engine.Stats()
	if err != nil {
		SendError(c, http.StatusInternalServerError, ErrorCodeInternalError, "Failed to read stats after reload: "+err.Error())
		return
	}

	log.Printf("Corpus reloaded: %d documents, %d chunks (took %v)",
		stats.DocumentCount, stats.ChunkCount, time.Since(startTime))

	c.JSON(http.StatusOK, gin.H{
		"status":         "ok",
		"document_count": stats.DocumentCount,
		"chunk_count":    stats.ChunkCount,
		"fingerprint":    stats.Fingerprint,
		"took":           time.Since(startTime).Milliseconds(),
	})
}

// StatsHandler returns corpus statistics and the filter facets.
func (api *API) StatsHandler(c *gin.Context) {
	stats, err := api.engine.Stats()
	if err != nil {
		if errors.Is(err, internalErrors.ErrIndexNotBuilt) {
			SendError(c, http.StatusServiceUnavailable, ErrorCodeIndexNotBuilt,
				"Index not built yet; reload the corpus first")
			return
		}
		SendError(c, http.StatusInternalServerError, ErrorCodeInternalError, "Failed to compute stats: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, stats)
}

// HealthCheckHandler provides a simple health check endpoint
func (api *API) HealthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "bazarlens",
		"timestamp": time.Now().Unix(),
	})
}
