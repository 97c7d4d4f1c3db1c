package testutil

import (
	"storefront-catalog-api/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewInMemoryDB creates an in-memory SQLite DB and runs migrations.
func NewInMemoryDB() (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&models.Product{}, &models.CacheRecord{}); err != nil {
		return nil, err
	}
	return db, nil
}

// SampleCatalog returns a small fixed catalog covering two categories,
// overlapping tokens, and an out-of-stock item.
func SampleCatalog() []models.Product {
	return []models.Product{
		{ID: "p-1", Name: "Organic Bananas", Description: "Sweet organic bananas", Category: "Produce", Origin: "Ecuador", Tags: []string{"organic", "fruit"}, Price: 1.99, Stock: 120, InStock: true, AverageRating: 4.6, TotalSold: 980},
		{ID: "p-2", Name: "Banana Bread", Description: "Loaf made with ripe bananas", Category: "Bakery", Origin: "USA", Tags: []string{"baked", "dessert"}, Brand: "Hearth & Crumb", Price: 5.49, Stock: 24, InStock: true, AverageRating: 4.8, TotalSold: 430},
		{ID: "p-3", Name: "Cold Brew Coffee", Description: "Arabica cold brew concentrate", Category: "Beverages", Origin: "Colombia", Tags: []string{"coffee"}, Brand: "Driftwood Roasters", Price: 6.99, Stock: 60, InStock: true, AverageRating: 4.4, TotalSold: 720},
		{ID: "p-4", Name: "Heirloom Tomatoes", Description: "Mixed heirloom tomatoes", Category: "Produce", Origin: "Mexico", Tags: []string{"vegetable"}, Price: 3.49, Stock: 0, InStock: false, AverageRating: 4.2, TotalSold: 310},
	}
}

// SeedProducts inserts products into a test database.
func SeedProducts(db *gorm.DB, products []models.Product) error {
	if len(products) == 0 {
		return nil
	}
	return db.Create(&products).Error
}
