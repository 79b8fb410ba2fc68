package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/pedalpoint/bikeshop/app/models"
	"github.com/pedalpoint/bikeshop/pkg/cache"
	"github.com/pedalpoint/bikeshop/pkg/orm"
)

// productListTTL bounds staleness of cached catalog pages.
const productListTTL = 2 * time.Minute

// ProductRepo is the persistence surface the product service needs.
type ProductRepo interface {
	FindByID(id uint) (models.Product, error)
	FindByIDs(ids []uint) ([]models.Product, error)
	Create(p *models.Product) error
	CreateBatch(ps []models.Product) ([]models.Product, error)
	Update(p *models.Product) error
	Delete(id uint) error
	Paginate(scopes []orm.Scope, page, limit int) ([]models.Product, orm.Pagination, error)
	Count() (int64, error)
}

// ProductInput is the payload for create and update.
type ProductInput struct {
	Name        string          `json:"name" validate:"required,max=255"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category" validate:"max=100"`
	Brand       string          `json:"brand" validate:"max=100"`
	Quantity    int             `json:"quantity" validate:"gte=0"`
	Colors      []string        `json:"colors"`
}

// ProductFilter narrows catalog listings.
type ProductFilter struct {
	Category string
	Brand    string
	MinPrice *float64
	MaxPrice *float64
	Keyword  string
}

// ProductService implements the catalog operations.
type ProductService struct {
	repo ProductRepo
}

func NewProductService(repo ProductRepo) *ProductService {
	return &ProductService{repo: repo}
}

type productPage struct {
	Items []models.Product `json:"items"`
	Pg    orm.Pagination   `json:"pg"`
}

// List returns one catalog page, served from cache when warm.
func (s *ProductService) List(page, limit int) ([]models.Product, orm.Pagination, error) {
	key := fmt.Sprintf("products:list:%d:%d", page, limit)
	var cached productPage
	if cache.Get(key, &cached) {
		return cached.Items, cached.Pg, nil
	}

	items, pg, err := s.repo.Paginate(nil, page, limit)
	if err != nil {
		return nil, pg, err
	}
	cache.Set(key, productPage{Items: items, Pg: pg}, productListTTL)
	return items, pg, nil
}

// ByCategory returns one page of a category, served from cache when warm.
func (s *ProductService) ByCategory(category string, page, limit int) ([]models.Product, orm.Pagination, error) {
	key := fmt.Sprintf("products:cat:%s:%d:%d", category, page, limit)
	var cached productPage
	if cache.Get(key, &cached) {
		return cached.Items, cached.Pg, nil
	}

	items, pg, err := s.repo.Paginate([]orm.Scope{orm.Eq("category", category)}, page, limit)
	if err != nil {
		return nil, pg, err
	}
	cache.Set(key, productPage{Items: items, Pg: pg}, productListTTL)
	return items, pg, nil
}

// Filter lists products narrowed by category, brand and price bounds.
func (s *ProductService) Filter(f ProductFilter, page, limit int) ([]models.Product, orm.Pagination, error) {
	scopes := []orm.Scope{
		orm.Eq("category", f.Category),
		orm.Eq("brand", f.Brand),
		orm.Between("price", f.MinPrice, f.MaxPrice),
	}
	return s.repo.Paginate(scopes, page, limit)
}

// Search matches the keyword against name, description, brand and category.
func (s *ProductService) Search(keyword string, page, limit int) ([]models.Product, orm.Pagination, error) {
	scopes := []orm.Scope{
		orm.Keyword(keyword, "name", "description", "brand", "category"),
	}
	return s.repo.Paginate(scopes, page, limit)
}

// Get loads one product with images and attributes.
func (s *ProductService) Get(id uint) (models.Product, error) {
	p, err := s.repo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return p, ErrNotFound
	}
	return p, err
}

// Create persists a new product and drops stale listing pages.
func (s *ProductService) Create(in ProductInput) (models.Product, error) {
	p := models.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Category:    in.Category,
		Brand:       in.Brand,
		Quantity:    in.Quantity,
		Colors:      in.Colors,
	}
	if err := s.repo.Create(&p); err != nil {
		return p, fmt.Errorf("create product: %w", err)
	}
	cache.Forget("products:*")
	return p, nil
}

// CreateBatch persists several products at once.
func (s *ProductService) CreateBatch(ins []ProductInput) ([]models.Product, error) {
	ps := make([]models.Product, len(ins))
	for i, in := range ins {
		ps[i] = models.Product{
			Name:        in.Name,
			Description: in.Description,
			Price:       in.Price,
			Category:    in.Category,
			Brand:       in.Brand,
			Quantity:    in.Quantity,
			Colors:      in.Colors,
		}
	}
	out, err := s.repo.CreateBatch(ps)
	if err != nil {
		return nil, fmt.Errorf("create products: %w", err)
	}
	cache.Forget("products:*")
	return out, nil
}

// Update overwrites the product's own fields. Images and attributes are
// managed through their own endpoints.
func (s *ProductService) Update(id uint, in ProductInput) (models.Product, error) {
	p, err := s.repo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return p, ErrNotFound
	}
	if err != nil {
		return p, err
	}

	p.Name = in.Name
	p.Description = in.Description
	p.Price = in.Price
	p.Category = in.Category
	p.Brand = in.Brand
	p.Quantity = in.Quantity
	p.Colors = in.Colors

	if err := s.repo.Update(&p); err != nil {
		return p, fmt.Errorf("update product: %w", err)
	}
	cache.Forget("products:*")
	return p, nil
}

// Delete removes the product.
func (s *ProductService) Delete(id uint) error {
	if _, err := s.repo.FindByID(id); errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	} else if err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	cache.Forget("products:*")
	return nil
}
