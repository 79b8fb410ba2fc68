package repositories

import (
	"gorm.io/gorm"

	"github.com/pedalpoint/bikeshop/app/models"
)

// ShippingRepository handles database operations for shipping info rows.
type ShippingRepository struct {
	db *gorm.DB
}

func NewShippingRepository(db *gorm.DB) *ShippingRepository {
	return &ShippingRepository{db: db}
}

func (r *ShippingRepository) Create(s *models.ShippingInfo) error {
	return r.db.Create(s).Error
}

func (r *ShippingRepository) Update(s *models.ShippingInfo) error {
	return r.db.Save(s).Error
}

func (r *ShippingRepository) Delete(id uint) error {
	res := r.db.Delete(&models.ShippingInfo{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ShippingRepository) FindByID(id uint) (models.ShippingInfo, error) {
	var s models.ShippingInfo
	err := r.db.First(&s, id).Error
	return s, err
}

// FindByOrderID looks up the shipping info attached to an order.
func (r *ShippingRepository) FindByOrderID(orderID uint) (models.ShippingInfo, error) {
	var s models.ShippingInfo
	err := r.db.Where("order_id = ?", orderID).First(&s).Error
	return s, err
}

// All lists every shipping record, newest first.
func (r *ShippingRepository) All() ([]models.ShippingInfo, error) {
	var out []models.ShippingInfo
	err := r.db.Order("created_at DESC").Find(&out).Error
	return out, err
}
