package handlers

import (
	"encoding/json"
	"net/http"

	"storefront-catalog-api/internal/catalog"
	"storefront-catalog-api/internal/realtime"

	"github.com/gin-gonic/gin"
)

// CacheHandler exposes cache administration to the UI layer.
type CacheHandler struct {
	Accessor *catalog.Accessor
	Hub      *realtime.Hub
}

// NewCacheHandler wires the handler to its dependencies.
func NewCacheHandler(accessor *catalog.Accessor, hub *realtime.Hub) *CacheHandler {
	return &CacheHandler{Accessor: accessor, Hub: hub}
}

// ClearCache handles POST /api/cache/clear
// Empties both caches and their durable records, then notifies clients.
func (h *CacheHandler) ClearCache(c *gin.Context) {
	h.Accessor.ClearCache()

	evt := map[string]any{
		"type":    "cache_cleared",
		"version": 1,
	}
	if bytes, err := json.Marshal(evt); err == nil {
		h.Hub.Broadcast(catalogTopic, bytes)
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cache cleared",
	})
}

// GetCacheStats handles GET /api/cache/stats
func (h *CacheHandler) GetCacheStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.Accessor.Stats())
}
