package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ═══════════════════════════════════════════════════════════
// Main Product Model (GORM)
// ═══════════════════════════════════════════════════════════

// Product is a catalog entry as the storefront sees it. Products are
// immutable once loaded; filtering always produces new slices.
type Product struct {
	ID          string         `json:"id" gorm:"type:uuid;primaryKey"`
	Title       string         `json:"title" gorm:"not null;index"`
	Description string         `json:"description" gorm:"not null;default:''"`
	Category    string         `json:"category" gorm:"not null;index:idx_products_category"`
	Subcategory string         `json:"subcategory" gorm:"not null;index:idx_products_subcategory"`
	Brand       string         `json:"brand" gorm:"not null;index:idx_products_brand"`
	Price       float64        `json:"price" gorm:"type:numeric(12,2);not null;check:price >= 0"`
	Rating      float64        `json:"rating" gorm:"not null;default:0;check:rating >= 0 AND rating <= 5"`
	Stock       int            `json:"stock" gorm:"not null;default:0"`
	Thumbnail   string         `json:"thumbnail" gorm:"not null;default:''"`
	Images      datatypes.JSON `json:"images,omitempty" gorm:"type:jsonb"`
	CreatedAt   time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
}

// BeforeCreate hook - auto-generate UUID v7
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.Must(uuid.NewV7()).String()
	}
	return nil
}

// TableName specifies the table name
func (Product) TableName() string {
	return "products"
}

// ProductPage is one page of a product listing plus the totals needed to
// render pagination.
type ProductPage struct {
	Data       []Product `json:"data"`
	Total      int       `json:"total"`
	Page       int       `json:"page"`
	Limit      int       `json:"limit"`
	TotalPages int       `json:"totalPages"`
}

// TotalPages rounds total/limit up. A non-positive limit yields zero pages.
func TotalPages(total, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

// ProductCount is the body of the count endpoint.
type ProductCount struct {
	Count  int    `json:"count"`
	Cached bool   `json:"cached"`
	Key    string `json:"key"`
}
