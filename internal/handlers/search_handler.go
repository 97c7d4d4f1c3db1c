package handlers

import (
	"net/http"
	"strconv"

	"storefront-catalog-api/internal/catalog"
	"storefront-catalog-api/internal/search"

	"github.com/gin-gonic/gin"
)

// SearchHandler serves catalog search, autocomplete, and popular searches
// against the in-memory index, caching result lists under query-derived keys.
type SearchHandler struct {
	Index    *search.Index
	Accessor *catalog.Accessor
}

// NewSearchHandler wires the handler to its dependencies.
func NewSearchHandler(index *search.Index, accessor *catalog.Accessor) *SearchHandler {
	return &SearchHandler{Index: index, Accessor: accessor}
}

// parseFilters reads the optional filter query params. Unparsable numeric
// or boolean values leave that filter unset, mirroring how pagination
// params fall back to defaults.
func parseFilters(c *gin.Context) *search.Filters {
	f := &search.Filters{
		Category: c.Query("category"),
		Origin:   c.Query("origin"),
		Brand:    c.Query("brand"),
	}
	if v, err := strconv.ParseFloat(c.Query("minPrice"), 64); err == nil {
		f.MinPrice = &v
	}
	if v, err := strconv.ParseFloat(c.Query("maxPrice"), 64); err == nil {
		f.MaxPrice = &v
	}
	if v, err := strconv.ParseBool(c.Query("inStock")); err == nil {
		f.InStock = &v
	}
	if v, err := strconv.ParseFloat(c.Query("minRating"), 64); err == nil {
		f.MinRating = &v
	}
	return f
}

/*
*
Search handles GET /api/search
Query params: q (the query), category, origin, brand, minPrice, maxPrice,
inStock, minRating, refresh=true to bypass the cache read.
Results carry no relevance ranking; membership order is match order.
*/
func (h *SearchHandler) Search(c *gin.Context) {
	query := c.Query("q")
	filters := parseFilters(c)
	forceRefresh := c.Query("refresh") == "true"

	key := catalog.SearchKey(query, filters)
	if !forceRefresh {
		if results, ok := h.Accessor.GetSearchResults(key); ok {
			c.JSON(http.StatusOK, gin.H{
				"results": results,
				"count":   len(results),
				"query":   query,
				"cached":  true,
			})
			return
		}
	}

	results := h.Index.Search(query, filters)
	h.Accessor.SetSearchResults(key, results, 0)

	c.JSON(http.StatusOK, gin.H{
		"results": results,
		"count":   len(results),
		"query":   query,
		"cached":  false,
	})
}

// Autocomplete handles GET /api/autocomplete
// Query params: q (min 2 chars), limit (default 5, max 20).
func (h *SearchHandler) Autocomplete(c *gin.Context) {
	query := c.Query("q")
	limitStr := c.DefaultQuery("limit", "5")

	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit < 1 {
		limit = 5
	}
	if limit > 20 {
		limit = 20
	}

	suggestions := h.Index.Autocomplete(query, limit)
	c.JSON(http.StatusOK, gin.H{
		"suggestions": suggestions,
		"count":       len(suggestions),
	})
}

// PopularSearches handles GET /api/popular-searches
func (h *SearchHandler) PopularSearches(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"popular": h.Index.PopularSearches(),
	})
}
