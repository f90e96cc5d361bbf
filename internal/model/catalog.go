package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Category groups storefront products (chains, anklets, rings, ...).
type Category struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	Slug      string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"slug"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Product is a storefront catalog item. Checkout itself happens over
// WhatsApp on the frontend; the backend only serves the catalog.
type Product struct {
	ID          uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SKU         string          `gorm:"type:varchar(100);uniqueIndex;not null" json:"sku"`
	Name        string          `gorm:"type:varchar(255);not null" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	CategoryID  *uuid.UUID      `gorm:"type:uuid;index" json:"category_id"`
	Category    *Category       `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Price       decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"price"`
	WeightGrams decimal.Decimal `gorm:"type:decimal(12,3);not null;default:0" json:"weight_grams"`
	ImageURL    string          `gorm:"type:text" json:"image_url"`
	IsFeatured  bool            `gorm:"default:false;index" json:"is_featured"`
	InStock     bool            `gorm:"default:true" json:"in_stock"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`
}
