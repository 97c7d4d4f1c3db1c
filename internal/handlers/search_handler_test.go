package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront-catalog-api/internal/cache"
	"storefront-catalog-api/internal/catalog"
	"storefront-catalog-api/internal/models"
	"storefront-catalog-api/internal/realtime"
	"storefront-catalog-api/internal/search"
	"storefront-catalog-api/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newTestSearchHandler() *SearchHandler {
	products := cache.New[models.Product](cache.Options{MaxEntries: 10, DefaultTTL: time.Minute})
	lists := cache.New[[]models.Product](cache.Options{MaxEntries: 10, DefaultTTL: time.Minute})
	accessor := catalog.NewAccessor(products, lists)
	return NewSearchHandler(search.NewIndex(testutil.SampleCatalog()), accessor)
}

type searchResponse struct {
	Results []models.Product `json:"results"`
	Count   int              `json:"count"`
	Cached  bool             `json:"cached"`
}

func TestSearch_Endpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newTestSearchHandler()

	r := gin.New()
	r.GET("/api/search", h.Search)

	req := httptest.NewRequest(http.MethodGet, "/api/search?q=banana", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp searchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 2, resp.Count)
	require.False(t, resp.Cached)

	// identical query is served from the cache
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/search?q=banana", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 2, resp.Count)
	require.True(t, resp.Cached)

	// refresh bypasses the cached result
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/search?q=banana&refresh=true", nil))
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.False(t, resp.Cached)
}

func TestSearch_Filters(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newTestSearchHandler()

	r := gin.New()
	r.GET("/api/search", h.Search)

	req := httptest.NewRequest(http.MethodGet, "/api/search?q=banana&category=Bakery", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp searchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Count)
	require.Equal(t, "Banana Bread", resp.Results[0].Name)

	// numeric and boolean filters parse from query params
	req = httptest.NewRequest(http.MethodGet, "/api/search?inStock=true&maxPrice=2.00", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Count)
	require.Equal(t, "Organic Bananas", resp.Results[0].Name)

	// unparsable filter values are treated as unset
	req = httptest.NewRequest(http.MethodGet, "/api/search?minPrice=cheap", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 4, resp.Count)
}

func TestSearch_EmptyAndNoMatch(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newTestSearchHandler()

	r := gin.New()
	r.GET("/api/search", h.Search)

	// empty query returns the full catalog
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/search", nil))
	var resp searchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 4, resp.Count)

	// unmatched query returns an empty list
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/search?q=zzzqqqnomatch", nil))
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 0, resp.Count)
}

func TestAutocomplete_Endpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newTestSearchHandler()

	r := gin.New()
	r.GET("/api/autocomplete", h.Autocomplete)

	req := httptest.NewRequest(http.MethodGet, "/api/autocomplete?q=ban&limit=5", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Suggestions []string `json:"suggestions"`
		Count       int      `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Contains(t, resp.Suggestions, "Organic Bananas")
	require.Contains(t, resp.Suggestions, "Banana Bread")

	// short queries return an empty list, not an error
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/autocomplete?q=b", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Empty(t, resp.Suggestions)
}

func TestPopularSearches_Endpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newTestSearchHandler()

	r := gin.New()
	r.GET("/api/popular-searches", h.PopularSearches)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/popular-searches", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Popular []string `json:"popular"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, []string{"Produce", "Bakery", "Beverages"}, resp.Popular[:3])
}

func TestCacheHandlers(t *testing.T) {
	gin.SetMode(gin.TestMode)
	sh := newTestSearchHandler()
	ch := NewCacheHandler(sh.Accessor, realtime.NewHub())

	client := &fakeClient{}
	ch.Hub.Register(catalogTopic, client)

	sh.Accessor.SetProduct(models.Product{ID: "p-1"}, 0)
	sh.Accessor.SetProducts("page=1", []models.Product{{ID: "p-1"}}, 0)

	r := gin.New()
	r.POST("/api/cache/clear", ch.ClearCache)
	r.GET("/api/cache/stats", ch.GetCacheStats)

	// stats reflect the populated caches
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/cache/stats", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var stats catalog.Stats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	require.Equal(t, 1, stats.Products.Size)
	require.Equal(t, 1, stats.Lists.Size)

	// clear empties everything and notifies clients
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/cache/clear", nil))
	require.Equal(t, http.StatusOK, w.Code)

	_, ok := sh.Accessor.GetProduct("p-1")
	require.False(t, ok)

	require.Len(t, client.messages, 1)
	var evt map[string]any
	require.NoError(t, json.Unmarshal(client.messages[0], &evt))
	require.Equal(t, "cache_cleared", evt["type"])
}
