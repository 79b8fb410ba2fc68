package repositories

import (
	"gorm.io/gorm"

	"github.com/pedalpoint/bikeshop/app/models"
)

// AttributeRepository handles database operations for product attributes.
type AttributeRepository struct {
	db *gorm.DB
}

func NewAttributeRepository(db *gorm.DB) *AttributeRepository {
	return &AttributeRepository{db: db}
}

func (r *AttributeRepository) Create(a *models.ProductAttribute) error {
	return r.db.Create(a).Error
}

func (r *AttributeRepository) Update(a *models.ProductAttribute) error {
	return r.db.Save(a).Error
}

func (r *AttributeRepository) Delete(id uint) error {
	res := r.db.Delete(&models.ProductAttribute{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *AttributeRepository) FindByID(id uint) (models.ProductAttribute, error) {
	var a models.ProductAttribute
	err := r.db.First(&a, id).Error
	return a, err
}

// ByProduct lists a product's attributes in insertion order.
func (r *AttributeRepository) ByProduct(productID uint) ([]models.ProductAttribute, error) {
	var out []models.ProductAttribute
	err := r.db.Where("product_id = ?", productID).Order("id ASC").Find(&out).Error
	return out, err
}

// DeleteByProduct removes every attribute of one product.
func (r *AttributeRepository) DeleteByProduct(productID uint) error {
	return r.db.Where("product_id = ?", productID).Delete(&models.ProductAttribute{}).Error
}
