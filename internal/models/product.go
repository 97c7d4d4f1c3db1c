package models

import (
	"gorm.io/gorm"
)

// Product represents a catalog item. The catalog is loaded once per process
// and treated as an immutable, ordered snapshot by the search index.
type Product struct {
	ID            string   `json:"id" gorm:"primaryKey"`
	Name          string   `json:"name" gorm:"not null"`
	Description   string   `json:"description"`
	Category      string   `json:"category" gorm:"index"`
	Origin        string   `json:"origin"`
	Tags          []string `json:"tags" gorm:"serializer:json"`
	Brand         string   `json:"brand"`
	Price         float64  `json:"price"`
	Stock         int      `json:"stock"`
	InStock       bool     `json:"inStock" gorm:"column:in_stock"`
	AverageRating float64  `json:"averageRating" gorm:"column:average_rating"`
	TotalSold     int      `json:"totalSold" gorm:"column:total_sold"`
	ImageURL      string   `json:"imageUrl" gorm:"column:image_url"`
	gorm.Model
}

// TableName specifies the table name for Product Model
func (Product) TableName() string {
	return "products"
}
