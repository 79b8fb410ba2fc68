package repositories

import (
	"gorm.io/gorm"

	"github.com/pedalpoint/bikeshop/app/models"
)

// ImageRepository handles database operations for product image rows.
type ImageRepository struct {
	db *gorm.DB
}

func NewImageRepository(db *gorm.DB) *ImageRepository {
	return &ImageRepository{db: db}
}

func (r *ImageRepository) Create(img *models.ProductImage) error {
	return r.db.Create(img).Error
}

func (r *ImageRepository) FindByID(id uint) (models.ProductImage, error) {
	var img models.ProductImage
	err := r.db.First(&img, id).Error
	return img, err
}

// ByProduct lists a product's images in upload order.
func (r *ImageRepository) ByProduct(productID uint) ([]models.ProductImage, error) {
	var out []models.ProductImage
	err := r.db.Where("product_id = ?", productID).Order("id ASC").Find(&out).Error
	return out, err
}

func (r *ImageRepository) Delete(id uint) error {
	return r.db.Delete(&models.ProductImage{}, id).Error
}
