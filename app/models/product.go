package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product is a catalog entry. Price is the current list price; orders
// snapshot their own price at purchase time and never read this back.
type Product struct {
	gorm.Model
	Name        string             `gorm:"size:255;not null;index" json:"name"`
	Description string             `gorm:"type:text" json:"description"`
	Price       decimal.Decimal    `gorm:"type:decimal(12,2);not null" json:"price"`
	Category    string             `gorm:"size:100;index" json:"category"`
	Brand       string             `gorm:"size:100;index" json:"brand"`
	Quantity    int                `gorm:"not null;default:0" json:"quantity"`
	Colors      []string           `gorm:"serializer:json" json:"colors"`
	Images      []ProductImage     `gorm:"constraint:OnDelete:CASCADE" json:"images,omitempty"`
	Attributes  []ProductAttribute `gorm:"constraint:OnDelete:CASCADE" json:"attributes,omitempty"`
}

// ProductImage records one stored image file. PublicID is the object key
// on the storage disk, kept so the file can be deleted with the row.
type ProductImage struct {
	gorm.Model
	ProductID uint   `gorm:"index;not null" json:"product_id"`
	Name      string `gorm:"size:255" json:"name"`
	URL       string `gorm:"size:512;not null" json:"url"`
	PublicID  string `gorm:"size:512;not null" json:"public_id"`
}

// ProductAttribute is a free-form name/value pair attached to a product,
// e.g. frame size or wheel diameter.
type ProductAttribute struct {
	gorm.Model
	ProductID uint   `gorm:"index;not null" json:"product_id"`
	Name      string `gorm:"size:100;not null" json:"name"`
	Value     string `gorm:"size:255;not null" json:"value"`
}
