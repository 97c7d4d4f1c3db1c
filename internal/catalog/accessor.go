package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"storefront-catalog-api/internal/cache"
	"storefront-catalog-api/internal/models"
	"storefront-catalog-api/internal/search"
)

// Cache key prefixes. Single products live in their own cache instance;
// everything list-shaped shares the list cache.
const (
	productKeyPrefix  = "product:"
	listKeyPrefix     = "products:"
	searchKeyPrefix   = "search:"
	categoryKeyPrefix = "category:"
)

// ProductKey returns the cache key for a single product.
func ProductKey(id string) string {
	return productKeyPrefix + id
}

// ListKey returns the cache key for a product listing variant, e.g.
// "page=1&limit=20".
func ListKey(suffix string) string {
	return listKeyPrefix + suffix
}

// SearchKey derives a stable cache key from a query and its filters.
func SearchKey(query string, f *search.Filters) string {
	parts := []string{strings.ToLower(strings.TrimSpace(query))}
	if f != nil {
		if f.Category != "" {
			parts = append(parts, "category="+f.Category)
		}
		if f.Origin != "" {
			parts = append(parts, "origin="+f.Origin)
		}
		if f.Brand != "" {
			parts = append(parts, "brand="+f.Brand)
		}
		if f.MinPrice != nil {
			parts = append(parts, fmt.Sprintf("minPrice=%g", *f.MinPrice))
		}
		if f.MaxPrice != nil {
			parts = append(parts, fmt.Sprintf("maxPrice=%g", *f.MaxPrice))
		}
		if f.InStock != nil {
			parts = append(parts, fmt.Sprintf("inStock=%t", *f.InStock))
		}
		if f.MinRating != nil {
			parts = append(parts, fmt.Sprintf("minRating=%g", *f.MinRating))
		}
	}
	return searchKeyPrefix + strings.Join(parts, "&")
}

// CategoryKey returns the cache key for a category listing.
func CategoryKey(name string) string {
	return categoryKeyPrefix + name
}

// Accessor is the read-through layer between the UI-facing handlers and the
// temporal caches. It holds one typed cache per entity kind instead of a
// single untyped store, so products and product lists keep compile-time
// types.
type Accessor struct {
	products *cache.TemporalCache[models.Product]
	lists    *cache.TemporalCache[[]models.Product]
}

// NewAccessor wires the accessor to its two cache instances.
func NewAccessor(products *cache.TemporalCache[models.Product], lists *cache.TemporalCache[[]models.Product]) *Accessor {
	return &Accessor{products: products, lists: lists}
}

// GetOrLoad is the read-through contract: return the cached value unless it
// is missing, expired, or forceRefresh is set; otherwise invoke load, store
// the result under key with ttl, and return it. A load failure propagates
// to the caller and leaves the cache untouched.
func GetOrLoad[V any](ctx context.Context, c *cache.TemporalCache[V], key string, ttl time.Duration, forceRefresh bool, load func(context.Context) (V, error)) (V, error) {
	if !forceRefresh {
		if v, ok := c.Get(key); ok {
			return v, nil
		}
	}
	v, err := load(ctx)
	if err != nil {
		var zero V
		return zero, err
	}
	c.Set(key, v, ttl)
	return v, nil
}

// GetProductOrLoad reads through the product cache for a single product.
func (a *Accessor) GetProductOrLoad(ctx context.Context, id string, ttl time.Duration, forceRefresh bool, load func(context.Context) (models.Product, error)) (models.Product, error) {
	return GetOrLoad(ctx, a.products, ProductKey(id), ttl, forceRefresh, load)
}

// GetListOrLoad reads through the list cache under an arbitrary list key.
func (a *Accessor) GetListOrLoad(ctx context.Context, key string, ttl time.Duration, forceRefresh bool, load func(context.Context) ([]models.Product, error)) ([]models.Product, error) {
	return GetOrLoad(ctx, a.lists, key, ttl, forceRefresh, load)
}

// SetProduct caches a single product.
func (a *Accessor) SetProduct(p models.Product, ttl time.Duration) {
	a.products.Set(ProductKey(p.ID), p, ttl)
}

// GetProduct returns a cached product, if present and valid.
func (a *Accessor) GetProduct(id string) (models.Product, bool) {
	return a.products.Get(ProductKey(id))
}

// SetProducts caches a product listing variant.
func (a *Accessor) SetProducts(suffix string, products []models.Product, ttl time.Duration) {
	a.lists.Set(ListKey(suffix), products, ttl)
}

// GetProducts returns a cached product listing variant.
func (a *Accessor) GetProducts(suffix string) ([]models.Product, bool) {
	return a.lists.Get(ListKey(suffix))
}

// SetSearchResults caches a result list under a query-derived key.
func (a *Accessor) SetSearchResults(key string, results []models.Product, ttl time.Duration) {
	a.lists.Set(key, results, ttl)
}

// GetSearchResults returns cached search results for a query-derived key.
func (a *Accessor) GetSearchResults(key string) ([]models.Product, bool) {
	return a.lists.Get(key)
}

// SetCategoryProducts caches a category listing.
func (a *Accessor) SetCategoryProducts(category string, products []models.Product, ttl time.Duration) {
	a.lists.Set(CategoryKey(category), products, ttl)
}

// GetCategoryProducts returns a cached category listing.
func (a *Accessor) GetCategoryProducts(category string) ([]models.Product, bool) {
	return a.lists.Get(CategoryKey(category))
}

// InvalidateProduct removes the product's own entry and every currently
// held list, search, and category entry. Broad on purpose: any of those
// lists may contain the product, and dropping them all trades precision
// for correctness.
func (a *Accessor) InvalidateProduct(id string) {
	a.products.Delete(ProductKey(id))
	for _, key := range a.lists.Keys() {
		if strings.HasPrefix(key, listKeyPrefix) ||
			strings.HasPrefix(key, searchKeyPrefix) ||
			strings.HasPrefix(key, categoryKeyPrefix) {
			a.lists.Delete(key)
		}
	}
}

// ClearCache empties both caches and their durable records.
func (a *Accessor) ClearCache() {
	a.products.Clear()
	a.lists.Clear()
}

// Stats reports both cache instances.
type Stats struct {
	Products cache.Stats `json:"products"`
	Lists    cache.Stats `json:"lists"`
}

// Stats returns read-only introspection of both caches.
func (a *Accessor) Stats() Stats {
	return Stats{
		Products: a.products.Stats(),
		Lists:    a.lists.Stats(),
	}
}
