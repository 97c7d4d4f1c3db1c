package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"storefront-catalog-api/internal/catalog"
	"storefront-catalog-api/internal/database"
	"storefront-catalog-api/internal/models"
	"storefront-catalog-api/internal/realtime"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// catalogTopic is the hub topic all catalog events are broadcast on.
const catalogTopic = "catalog"

// ProductHandler serves product reads through the cached accessor.
type ProductHandler struct {
	Accessor *catalog.Accessor
	Hub      *realtime.Hub
}

// NewProductHandler wires the handler to its dependencies.
func NewProductHandler(accessor *catalog.Accessor, hub *realtime.Hub) *ProductHandler {
	return &ProductHandler{Accessor: accessor, Hub: hub}
}

/*
*
GetProducts handles GET /api/products
Returns a page of the catalog, optionally filtered by category.
Query params: page (default 1), limit (default 20, max 100), category,
refresh=true to bypass the cache read.
*/
func (h *ProductHandler) GetProducts(c *gin.Context) {
	pageStr := c.DefaultQuery("page", "1")
	limitStr := c.DefaultQuery("limit", "20")
	category := c.Query("category")
	forceRefresh := c.Query("refresh") == "true"

	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	offset := (page - 1) * limit

	suffix := fmt.Sprintf("page=%d&limit=%d", page, limit)
	key := catalog.ListKey(suffix)
	if category != "" {
		key = catalog.CategoryKey(category + "&" + suffix)
	}

	products, err := h.Accessor.GetListOrLoad(c.Request.Context(), key, 0, forceRefresh,
		func(ctx context.Context) ([]models.Product, error) {
			query := database.GetDB().WithContext(ctx).Order("id asc")
			if category != "" {
				query = query.Where("category = ?", category)
			}
			var products []models.Product
			if err := query.Limit(limit).Offset(offset).Find(&products).Error; err != nil {
				return nil, err
			}
			return products, nil
		})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch products",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"count":    len(products),
		"page":     page,
		"limit":    limit,
		"category": category,
	})
}

// GetProductByID handles GET /api/products/:id
// Returns a single product, served from the cache when valid.
func (h *ProductHandler) GetProductByID(c *gin.Context) {
	productID := c.Param("id")
	if productID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Product ID is required"})
		return
	}
	forceRefresh := c.Query("refresh") == "true"

	product, err := h.Accessor.GetProductOrLoad(c.Request.Context(), productID, 0, forceRefresh,
		func(ctx context.Context) (models.Product, error) {
			var product models.Product
			err := database.GetDB().WithContext(ctx).Where("id = ?", productID).First(&product).Error
			return product, err
		})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
		}
		return
	}

	c.JSON(http.StatusOK, product)
}

// InvalidateProduct handles POST /api/products/:id/invalidate
// Drops the product's cache entry and every list/search/category entry,
// then notifies subscribed clients.
func (h *ProductHandler) InvalidateProduct(c *gin.Context) {
	productID := c.Param("id")
	if productID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Product ID is required"})
		return
	}

	h.Accessor.InvalidateProduct(productID)

	evt := map[string]any{
		"type":      "product_invalidated",
		"productId": productID,
		"version":   1,
	}
	if bytes, err := json.Marshal(evt); err == nil {
		h.Hub.Broadcast(catalogTopic, bytes)
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product cache invalidated",
		"id":      productID,
	})
}
