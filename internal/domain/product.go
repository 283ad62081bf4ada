package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Category string

const (
	CategoryCups   Category = "cups"
	CategoryPlates Category = "plates"
	CategoryPots   Category = "pots"
	CategoryBowls  Category = "bowls"
	CategoryVases  Category = "vases"
	CategoryOther  Category = "other"
)

var Categories = []Category{CategoryCups, CategoryPlates, CategoryPots, CategoryBowls, CategoryVases, CategoryOther}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

type Product struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Description      string          `json:"description,omitempty"`
	Category         Category        `json:"category"`
	Price            decimal.Decimal `json:"price"`
	MinOrderQuantity int             `json:"min_order_quantity"`
	StockQuantity    int             `json:"stock_quantity"`
	ImageURL         string          `json:"image_url,omitempty"`
	IsFeatured       bool            `json:"is_featured"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// MinQuantity is the effective minimum order quantity, never below 1.
func (p Product) MinQuantity() int {
	if p.MinOrderQuantity < 1 {
		return 1
	}
	return p.MinOrderQuantity
}

var categoryImages = map[Category]string{
	CategoryCups:   "/static/product-cup.jpg",
	CategoryPlates: "/static/product-plate.jpg",
	CategoryPots:   "/static/product-pot.jpg",
	CategoryBowls:  "/static/product-bowl.jpg",
	CategoryVases:  "/static/product-vase.jpg",
	CategoryOther:  "/static/product-cup.jpg",
}

// DisplayImage returns the uploaded image or the stock picture of the product's category.
func (p Product) DisplayImage() string {
	if p.ImageURL != "" {
		return p.ImageURL
	}
	if img, ok := categoryImages[p.Category]; ok {
		return img
	}
	return categoryImages[CategoryCups]
}
