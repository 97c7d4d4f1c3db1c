package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront-catalog-api/internal/cache"
	"storefront-catalog-api/internal/catalog"
	"storefront-catalog-api/internal/database"
	"storefront-catalog-api/internal/handlers"
	"storefront-catalog-api/internal/models"
	"storefront-catalog-api/internal/realtime"
	"storefront-catalog-api/internal/search"
	"storefront-catalog-api/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	require.NoError(t, testutil.SeedProducts(db, testutil.SampleCatalog()))
	database.DB = db

	products := cache.New[models.Product](cache.Options{MaxEntries: 10, DefaultTTL: time.Minute})
	lists := cache.New[[]models.Product](cache.Options{MaxEntries: 10, DefaultTTL: time.Minute})
	accessor := catalog.NewAccessor(products, lists)
	index := search.NewIndex(testutil.SampleCatalog())
	hub := realtime.NewHub()

	return SetupRoutes(
		handlers.NewProductHandler(accessor, hub),
		handlers.NewSearchHandler(index, accessor),
		handlers.NewCacheHandler(accessor, hub),
		handlers.NewEventsHandler(hub),
	)
}

func TestHealth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := newTestRouter(t)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestRoutesAreWired(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := newTestRouter(t)

	for _, tc := range []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/products"},
		{http.MethodGet, "/api/products/p-1"},
		{http.MethodPost, "/api/products/p-1/invalidate"},
		{http.MethodGet, "/api/search?q=banana"},
		{http.MethodGet, "/api/autocomplete?q=ban"},
		{http.MethodGet, "/api/popular-searches"},
		{http.MethodPost, "/api/cache/clear"},
		{http.MethodGet, "/api/cache/stats"},
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))
		require.Equal(t, http.StatusOK, w.Code, "%s %s", tc.method, tc.path)
	}
}

func TestCORSPreflight(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := newTestRouter(t)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/api/products", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusNoContent, w.Code)
	require.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
