package repositories

import (
	"gorm.io/gorm"

	"github.com/pedalpoint/bikeshop/app/models"
)

// CartRepository handles database operations for cart lines.
type CartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) *CartRepository {
	return &CartRepository{db: db}
}

// FindLine looks up the (user, product) line.
func (r *CartRepository) FindLine(userID, productID uint) (models.CartItem, error) {
	var item models.CartItem
	err := r.db.Where("user_id = ? AND product_id = ?", userID, productID).First(&item).Error
	return item, err
}

func (r *CartRepository) Create(item *models.CartItem) error {
	return r.db.Create(item).Error
}

func (r *CartRepository) Update(item *models.CartItem) error {
	return r.db.Save(item).Error
}

// ByUser lists the user's cart with product data preloaded, oldest first.
func (r *CartRepository) ByUser(userID uint) ([]models.CartItem, error) {
	var out []models.CartItem
	err := r.db.Where("user_id = ?", userID).
		Preload("Product").
		Order("id ASC").
		Find(&out).Error
	return out, err
}

// DeleteLine removes one line from the user's cart.
func (r *CartRepository) DeleteLine(userID, productID uint) error {
	res := r.db.Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.CartItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Clear empties the user's cart.
func (r *CartRepository) Clear(userID uint) error {
	return r.db.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
}

// Replace swaps the user's whole cart for items in one transaction.
func (r *CartRepository) Replace(userID uint, items []models.CartItem) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		for i := range items {
			items[i].ID = 0
			items[i].UserID = userID
		}
		return tx.Create(&items).Error
	})
}
