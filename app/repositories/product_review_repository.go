package repositories

import (
	"gorm.io/gorm"

	"github.com/pedalpoint/bikeshop/app/models"
	"github.com/pedalpoint/bikeshop/pkg/orm"
)

// ProductReviewRepository handles database operations for product reviews.
type ProductReviewRepository struct {
	db *gorm.DB
}

func NewProductReviewRepository(db *gorm.DB) *ProductReviewRepository {
	return &ProductReviewRepository{db: db}
}

func (r *ProductReviewRepository) Create(rv *models.ProductReview) error {
	return r.db.Create(rv).Error
}

func (r *ProductReviewRepository) Update(rv *models.ProductReview) error {
	return r.db.Save(rv).Error
}

func (r *ProductReviewRepository) Delete(id uint) error {
	return r.db.Delete(&models.ProductReview{}, id).Error
}

func (r *ProductReviewRepository) FindByID(id uint) (models.ProductReview, error) {
	var rv models.ProductReview
	err := r.db.Preload("User").First(&rv, id).Error
	return rv, err
}

// Paginate lists reviews, newest first.
func (r *ProductReviewRepository) Paginate(page, limit int) ([]models.ProductReview, orm.Pagination, error) {
	var out []models.ProductReview
	q := r.db.Model(&models.ProductReview{}).Preload("User").Order("created_at DESC")
	pg, err := orm.Paginate(q, page, limit, &out)
	return out, pg, err
}

// ByProduct lists all reviews for one product, newest first.
func (r *ProductReviewRepository) ByProduct(productID uint) ([]models.ProductReview, error) {
	var out []models.ProductReview
	err := r.db.Where("product_id = ?", productID).
		Preload("User").
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

// PaginateAnswered lists reviews that carry an admin answer, newest first.
func (r *ProductReviewRepository) PaginateAnswered(page, limit int) ([]models.ProductReview, orm.Pagination, error) {
	var out []models.ProductReview
	q := r.db.Model(&models.ProductReview{}).
		Where("answer IS NOT NULL").
		Preload("User").
		Order("answered_at DESC")
	pg, err := orm.Paginate(q, page, limit, &out)
	return out, pg, err
}
