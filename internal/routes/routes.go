package routes

import (
	"storefront-catalog-api/internal/handlers"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(products *handlers.ProductHandler, search *handlers.SearchHandler, cacheAdmin *handlers.CacheHandler, events *handlers.EventsHandler) *gin.Engine {
	// Create a new GIN Router
	ginRouter := gin.Default()

	// CORS middleware (for frontend integration)
	ginRouter.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204) // This depends on the implementation of the frontend
			return
		}

		c.Next()
	})

	// Health check endpoint
	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Server Storefront Catalog API is running in Health Check Endpoint",
		})
	})

	api := ginRouter.Group("/api")
	{
		// Product endpoints (read-through cached)
		api.GET("/products", products.GetProducts)
		api.GET("/products/:id", products.GetProductByID)
		api.POST("/products/:id/invalidate", products.InvalidateProduct)

		// Search endpoints
		api.GET("/search", search.Search)
		api.GET("/autocomplete", search.Autocomplete)
		api.GET("/popular-searches", search.PopularSearches)

		// Cache administration
		api.POST("/cache/clear", cacheAdmin.ClearCache)
		api.GET("/cache/stats", cacheAdmin.GetCacheStats)

		// Catalog event stream
		api.GET("/events", events.Events)
	}

	return ginRouter
}
