package repositories

import (
	"gorm.io/gorm"

	"github.com/pedalpoint/bikeshop/app/models"
)

// WishlistRepository handles database operations for wishlist entries.
type WishlistRepository struct {
	db *gorm.DB
}

func NewWishlistRepository(db *gorm.DB) *WishlistRepository {
	return &WishlistRepository{db: db}
}

// ByUser lists the user's wishlist with product data preloaded.
func (r *WishlistRepository) ByUser(userID uint) ([]models.WishlistItem, error) {
	var out []models.WishlistItem
	err := r.db.Where("user_id = ?", userID).
		Preload("Product").
		Order("id ASC").
		Find(&out).Error
	return out, err
}

// Exists reports whether the product is already on the user's wishlist.
func (r *WishlistRepository) Exists(userID, productID uint) (bool, error) {
	var n int64
	err := r.db.Model(&models.WishlistItem{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&n).Error
	return n > 0, err
}

func (r *WishlistRepository) Add(item *models.WishlistItem) error {
	return r.db.Create(item).Error
}

// Remove deletes the (user, product) entry.
func (r *WishlistRepository) Remove(userID, productID uint) error {
	res := r.db.Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.WishlistItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
