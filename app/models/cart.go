package models

import "gorm.io/gorm"

// CartItem is one line in a user's cart. One row per (user, product) pair;
// adding the same product again bumps the quantity instead of duplicating.
type CartItem struct {
	gorm.Model
	UserID    uint     `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"user_id"`
	ProductID uint     `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"product_id"`
	Quantity  int      `gorm:"not null;default:1" json:"quantity"`
	Product   *Product `gorm:"constraint:OnDelete:CASCADE" json:"product,omitempty"`
}

// WishlistItem marks a product a user wants to keep an eye on.
type WishlistItem struct {
	gorm.Model
	UserID    uint     `gorm:"not null;uniqueIndex:idx_wishlist_user_product" json:"user_id"`
	ProductID uint     `gorm:"not null;uniqueIndex:idx_wishlist_user_product" json:"product_id"`
	Product   *Product `gorm:"constraint:OnDelete:CASCADE" json:"product,omitempty"`
}
