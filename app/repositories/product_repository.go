package repositories

import (
	"time"

	"gorm.io/gorm"

	"github.com/pedalpoint/bikeshop/app/models"
	"github.com/pedalpoint/bikeshop/pkg/metrics"
	"github.com/pedalpoint/bikeshop/pkg/orm"
)

// ProductRepository handles database operations for products.
type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// FindByID loads a product with its images and attributes.
func (r *ProductRepository) FindByID(id uint) (models.Product, error) {
	var p models.Product
	err := r.db.Preload("Images").Preload("Attributes").First(&p, id).Error
	return p, err
}

// FindByIDs loads products by primary key without associations. The result
// may be shorter than ids when some are unknown.
func (r *ProductRepository) FindByIDs(ids []uint) ([]models.Product, error) {
	var out []models.Product
	err := r.db.Where("id IN ?", ids).Find(&out).Error
	return out, err
}

func (r *ProductRepository) Create(p *models.Product) error {
	return r.db.Create(p).Error
}

// CreateBatch inserts several products in one transaction.
func (r *ProductRepository) CreateBatch(ps []models.Product) ([]models.Product, error) {
	if err := r.db.Create(&ps).Error; err != nil {
		return nil, err
	}
	return ps, nil
}

func (r *ProductRepository) Update(p *models.Product) error {
	return r.db.Save(p).Error
}

func (r *ProductRepository) Delete(id uint) error {
	return r.db.Delete(&models.Product{}, id).Error
}

// Paginate lists products matching the given scopes, newest first.
func (r *ProductRepository) Paginate(scopes []orm.Scope, page, limit int) ([]models.Product, orm.Pagination, error) {
	defer metrics.ObserveDBQuery("products.paginate", time.Now())

	var out []models.Product
	q := orm.All(scopes...)(r.db.Model(&models.Product{})).
		Preload("Images").
		Order("created_at DESC")
	pg, err := orm.Paginate(q, page, limit, &out)
	return out, pg, err
}

func (r *ProductRepository) Count() (int64, error) {
	var n int64
	err := r.db.Model(&models.Product{}).Count(&n).Error
	return n, err
}
