package database

import (
	"log"

	"storefront-catalog-api/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// InitDB initializes the database connection and runs migrations
func InitDB() {
	var err error

	// Open SQLite database file (will be created if it doesn't exist initially)
	// Using glebarez/sqlite which is a pure Go implementation (no CGO required)
	DB, err = gorm.Open(sqlite.Open("storefront-catalog.db"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}

	// Auto-migrate the schema (it will create tables if they don't exist)
	err = DB.AutoMigrate(
		&models.Product{},
		&models.CacheRecord{},
	)

	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	if err := SeedCatalog(DB); err != nil {
		log.Fatal("Failed to seed catalog:", err)
	}

	log.Println("Database connected and migrated successfully!!!")
}

// GetDB returns the database connection
func GetDB() *gorm.DB {
	return DB
}

// LoadCatalog returns the full product catalog as an ordered snapshot.
// It is read once per process and treated as immutable afterwards.
func LoadCatalog(db *gorm.DB) ([]models.Product, error) {
	var products []models.Product
	if err := db.Order("id asc").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// SeedCatalog inserts a starter catalog when the products table is empty,
// so a fresh checkout serves real data immediately.
func SeedCatalog(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	starter := []models.Product{
		{ID: "prod-1", Name: "Organic Bananas", Description: "Sweet organic bananas grown without pesticides", Category: "Produce", Origin: "Ecuador", Tags: []string{"organic", "fruit"}, Price: 1.99, Stock: 120, InStock: true, AverageRating: 4.6, TotalSold: 980},
		{ID: "prod-2", Name: "Banana Bread", Description: "Freshly baked loaf made with ripe bananas", Category: "Bakery", Origin: "USA", Tags: []string{"baked", "dessert"}, Brand: "Hearth & Crumb", Price: 5.49, Stock: 24, InStock: true, AverageRating: 4.8, TotalSold: 430},
		{ID: "prod-3", Name: "Cold Brew Coffee", Description: "Slow-steeped arabica cold brew concentrate", Category: "Beverages", Origin: "Colombia", Tags: []string{"coffee", "caffeine"}, Brand: "Driftwood Roasters", Price: 6.99, Stock: 60, InStock: true, AverageRating: 4.4, TotalSold: 720},
		{ID: "prod-4", Name: "Sourdough Loaf", Description: "Naturally leavened sourdough with a crisp crust", Category: "Bakery", Origin: "USA", Tags: []string{"baked", "bread"}, Brand: "Hearth & Crumb", Price: 4.99, Stock: 18, InStock: true, AverageRating: 4.7, TotalSold: 650},
		{ID: "prod-5", Name: "Heirloom Tomatoes", Description: "Mixed heirloom tomatoes picked at peak ripeness", Category: "Produce", Origin: "Mexico", Tags: []string{"vegetable", "salad"}, Price: 3.49, Stock: 0, InStock: false, AverageRating: 4.2, TotalSold: 310},
		{ID: "prod-6", Name: "Greek Yogurt", Description: "Thick strained yogurt with live cultures", Category: "Dairy", Origin: "Greece", Tags: []string{"protein", "breakfast"}, Brand: "Aegean Farms", Price: 2.99, Stock: 85, InStock: true, AverageRating: 4.5, TotalSold: 890},
		{ID: "prod-7", Name: "Dark Chocolate Bar", Description: "72% cacao single-origin dark chocolate", Category: "Snacks", Origin: "Peru", Tags: []string{"chocolate", "dessert"}, Brand: "Cocoa Atlas", Price: 3.99, Stock: 140, InStock: true, AverageRating: 4.9, TotalSold: 1040},
		{ID: "prod-8", Name: "Sparkling Water", Description: "Lightly carbonated spring water, unflavored", Category: "Beverages", Origin: "France", Tags: []string{"water", "sparkling"}, Brand: "Source Bleue", Price: 1.49, Stock: 200, InStock: true, AverageRating: 4.1, TotalSold: 560},
	}
	return db.Create(&starter).Error
}
