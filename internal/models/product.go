package models

import (
	"strings"
	"time"
)

// Category is the fixed set of catalog sections a product can belong to.
type Category string

const (
	CategoryElectronics Category = "Electronics"
	CategoryClothing    Category = "Clothing"
	CategoryBooks       Category = "Books"
	CategoryHome        Category = "Home"
	CategoryOther       Category = "Other"
)

// Categories lists every valid category in display order.
var Categories = []Category{
	CategoryElectronics,
	CategoryClothing,
	CategoryBooks,
	CategoryHome,
	CategoryOther,
}

// Product represents a catalog item.
type Product struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name        string    `json:"name" gorm:"type:varchar(100);not null" validate:"required,max=100"`
	Description string    `json:"description" gorm:"type:varchar(500);not null" validate:"required,max=500"`
	Price       float64   `json:"price" gorm:"not null" validate:"finite,gte=0"`
	Category    Category  `json:"category" gorm:"type:varchar(20);not null" validate:"required,oneof=Electronics Clothing Books Home Other"`
	CreatedAt   time.Time `json:"createdAt" gorm:"not null;index"`
}

// ProductInput holds the fields a client submitted for a create or update.
// A nil field was not submitted.
type ProductInput struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Category    *string  `json:"category"`
}

// Apply copies the submitted fields onto p. Strings are trimmed.
func (in ProductInput) Apply(p *Product) {
	if in.Name != nil {
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		p.Description = strings.TrimSpace(*in.Description)
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.Category != nil {
		p.Category = Category(strings.TrimSpace(*in.Category))
	}
}
