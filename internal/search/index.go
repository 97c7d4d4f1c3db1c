package search

import (
	"sort"
	"strings"
	"sync"

	"storefront-catalog-api/internal/models"
)

// Filters is an AND-chain of optional predicates applied after token
// matching. Zero-value string fields and nil pointers are not applied.
type Filters struct {
	Category  string
	Origin    string
	Brand     string
	MinPrice  *float64
	MaxPrice  *float64
	InStock   *bool
	MinRating *float64
}

// Index is an inverted token index over an immutable catalog snapshot.
// It is built lazily on first use and never mutated afterwards: a catalog
// change requires constructing a new Index. A token appearing in several
// fields of the same product is posted more than once at build time;
// query-time deduplication absorbs the duplicates.
type Index struct {
	snapshot []models.Product

	once    sync.Once
	buckets map[string][]int // token -> snapshot positions
	tokens  []string         // first-seen order, keeps substring scans deterministic
}

// NewIndex wraps a catalog snapshot. The snapshot must not be modified
// after this call.
func NewIndex(snapshot []models.Product) *Index {
	return &Index{snapshot: snapshot}
}

// tokenize lowercases, splits on whitespace, and keeps tokens longer than
// two characters. Build and query paths share it.
func tokenize(text string) []string {
	var tokens []string
	for _, t := range strings.Fields(strings.ToLower(text)) {
		if len(t) > 2 {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

func (ix *Index) build() {
	ix.buckets = make(map[string][]int)
	for i, p := range ix.snapshot {
		fields := []string{p.Name, p.Description, p.Category, p.Origin}
		fields = append(fields, p.Tags...)
		if p.Brand != "" {
			fields = append(fields, p.Brand)
		}
		for _, field := range fields {
			for _, token := range tokenize(field) {
				if _, ok := ix.buckets[token]; !ok {
					ix.tokens = append(ix.tokens, token)
				}
				ix.buckets[token] = append(ix.buckets[token], i)
			}
		}
	}
}

func (ix *Index) ensureBuilt() {
	ix.once.Do(ix.build)
}

// Search returns the products matching query, narrowed by filters. A query
// with no usable tokens matches the whole catalog. For each query token the
// candidate set unions the exact bucket and every bucket whose token
// contains, or is contained in, the query token. Results are deduplicated
// by product ID and keep first-added order; there is no relevance ranking.
func (ix *Index) Search(query string, f *Filters) []models.Product {
	ix.ensureBuilt()

	seen := make(map[string]struct{})
	var candidates []models.Product
	add := func(pos int) {
		p := ix.snapshot[pos]
		if _, ok := seen[p.ID]; ok {
			return
		}
		seen[p.ID] = struct{}{}
		candidates = append(candidates, p)
	}

	queryTokens := tokenize(query)
	if len(queryTokens) == 0 {
		for i := range ix.snapshot {
			add(i)
		}
	} else {
		for _, qt := range queryTokens {
			for _, pos := range ix.buckets[qt] {
				add(pos)
			}
			for _, token := range ix.tokens {
				if token == qt {
					continue // exact bucket already unioned
				}
				if strings.Contains(token, qt) || strings.Contains(qt, token) {
					for _, pos := range ix.buckets[token] {
						add(pos)
					}
				}
			}
		}
	}

	if f == nil {
		return candidates
	}
	results := make([]models.Product, 0, len(candidates))
	for _, p := range candidates {
		if matchesFilters(p, f) {
			results = append(results, p)
		}
	}
	return results
}

func matchesFilters(p models.Product, f *Filters) bool {
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if f.Origin != "" && p.Origin != f.Origin {
		return false
	}
	if f.Brand != "" && p.Brand != f.Brand {
		return false
	}
	if f.MinPrice != nil && p.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.Price > *f.MaxPrice {
		return false
	}
	if f.InStock != nil && p.InStock != *f.InStock {
		return false
	}
	if f.MinRating != nil && p.AverageRating < *f.MinRating {
		return false
	}
	return true
}

// Autocomplete returns up to limit distinct strings drawn from product
// names, categories, brands, and tags that contain query case-insensitively,
// in catalog-scan order. Queries shorter than two characters return nothing.
func (ix *Index) Autocomplete(query string, limit int) []string {
	suggestions := []string{}
	if len(query) < 2 || limit <= 0 {
		return suggestions
	}
	q := strings.ToLower(query)
	seen := make(map[string]struct{})
	add := func(s string) bool {
		if !strings.Contains(strings.ToLower(s), q) {
			return false
		}
		if _, ok := seen[s]; ok {
			return false
		}
		seen[s] = struct{}{}
		suggestions = append(suggestions, s)
		return len(suggestions) >= limit
	}
	for _, p := range ix.snapshot {
		if add(p.Name) {
			return suggestions
		}
		if add(p.Category) {
			return suggestions
		}
		if p.Brand != "" && add(p.Brand) {
			return suggestions
		}
		for _, tag := range p.Tags {
			if add(tag) {
				return suggestions
			}
		}
	}
	return suggestions
}

// PopularSearches returns every distinct category name in first-seen order,
// followed by the names of the five best-selling products. The two halves
// are not deduplicated against each other.
func (ix *Index) PopularSearches() []string {
	popular := []string{}
	seen := make(map[string]struct{})
	for _, p := range ix.snapshot {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		popular = append(popular, p.Category)
	}

	bySold := make([]models.Product, len(ix.snapshot))
	copy(bySold, ix.snapshot)
	sort.SliceStable(bySold, func(i, j int) bool {
		return bySold[i].TotalSold > bySold[j].TotalSold
	})
	for i := 0; i < len(bySold) && i < 5; i++ {
		popular = append(popular, bySold[i].Name)
	}
	return popular
}
