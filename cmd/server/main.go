package main

import (
	"log"
	"time"

	"storefront-catalog-api/internal/cache"
	"storefront-catalog-api/internal/catalog"
	"storefront-catalog-api/internal/database"
	"storefront-catalog-api/internal/handlers"
	"storefront-catalog-api/internal/models"
	"storefront-catalog-api/internal/realtime"
	"storefront-catalog-api/internal/routes"
	"storefront-catalog-api/internal/search"
)

func main() {
	// Init database
	database.InitDB()

	// Load the catalog once; the search index treats it as immutable
	snapshot, err := database.LoadCatalog(database.GetDB())
	if err != nil {
		log.Fatal("Failed to load catalog: ", err)
	}
	log.Printf("Catalog loaded: %d products", len(snapshot))

	// One cache instance per entity kind, both persisted to cache_records
	store := database.NewCacheStore(database.GetDB())
	productCache := cache.New[models.Product](cache.Options{
		MaxEntries: 100,
		DefaultTTL: 5 * time.Minute,
		Store:      store,
		Name:       "catalog-products",
	})
	listCache := cache.New[[]models.Product](cache.Options{
		MaxEntries: 50,
		DefaultTTL: 2 * time.Minute,
		Store:      store,
		Name:       "catalog-lists",
	})

	accessor := catalog.NewAccessor(productCache, listCache)
	index := search.NewIndex(snapshot)
	hub := realtime.NewHub()

	// Periodic expiry sweep is owned here, not by the caches
	go func() {
		ticker := time.NewTicker(60 * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			removed := productCache.PurgeExpired() + listCache.PurgeExpired()
			if removed > 0 {
				log.Printf("Cache sweep removed %d expired entries", removed)
			}
		}
	}()

	// Setup the routes
	ginRoutes := routes.SetupRoutes(
		handlers.NewProductHandler(accessor, hub),
		handlers.NewSearchHandler(index, accessor),
		handlers.NewCacheHandler(accessor, hub),
		handlers.NewEventsHandler(hub),
	)

	// Start server
	port := ":8008" // This is customizable based on the environment
	log.Printf("Server starting on port %s", port)
	log.Println("API endpoints:")
	log.Println("  GET    /api/products")
	log.Println("  GET    /api/products/:id")
	log.Println("  POST   /api/products/:id/invalidate")
	log.Println("  GET    /api/search")
	log.Println("  GET    /api/autocomplete")
	log.Println("  GET    /api/popular-searches")
	log.Println("  POST   /api/cache/clear")
	log.Println("  GET    /api/cache/stats")
	log.Println("  GET    /api/events")
	log.Println("  GET    /health")

	if err := ginRoutes.Run(port); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
