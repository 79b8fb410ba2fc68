package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/pedalpoint/bikeshop/app/models"
)

// AttributeRepo is the persistence surface the attribute service needs.
type AttributeRepo interface {
	Create(a *models.ProductAttribute) error
	Update(a *models.ProductAttribute) error
	Delete(id uint) error
	FindByID(id uint) (models.ProductAttribute, error)
	ByProduct(productID uint) ([]models.ProductAttribute, error)
	DeleteByProduct(productID uint) error
}

// AttributeInput is the payload for create and update.
type AttributeInput struct {
	ProductID uint   `json:"product_id" validate:"required"`
	Name      string `json:"name" validate:"required,max=100"`
	Value     string `json:"value" validate:"required,max=255"`
}

// AttributeService manages free-form product attributes.
type AttributeService struct {
	repo     AttributeRepo
	products ProductRepo
}

func NewAttributeService(repo AttributeRepo, products ProductRepo) *AttributeService {
	return &AttributeService{repo: repo, products: products}
}

// ByProduct lists a product's attributes.
func (s *AttributeService) ByProduct(productID uint) ([]models.ProductAttribute, error) {
	return s.repo.ByProduct(productID)
}

// Create attaches an attribute to an existing product.
func (s *AttributeService) Create(in AttributeInput) (models.ProductAttribute, error) {
	if _, err := s.products.FindByID(in.ProductID); errors.Is(err, gorm.ErrRecordNotFound) {
		return models.ProductAttribute{}, ErrNotFound
	} else if err != nil {
		return models.ProductAttribute{}, err
	}

	a := models.ProductAttribute{ProductID: in.ProductID, Name: in.Name, Value: in.Value}
	if err := s.repo.Create(&a); err != nil {
		return a, fmt.Errorf("create attribute: %w", err)
	}
	return a, nil
}

// Update overwrites name and value of an attribute.
func (s *AttributeService) Update(id uint, in AttributeInput) (models.ProductAttribute, error) {
	a, err := s.repo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return a, ErrNotFound
	}
	if err != nil {
		return a, err
	}

	a.Name = in.Name
	a.Value = in.Value
	if err := s.repo.Update(&a); err != nil {
		return a, fmt.Errorf("update attribute: %w", err)
	}
	return a, nil
}

// Delete removes one attribute.
func (s *AttributeService) Delete(id uint) error {
	err := s.repo.Delete(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// DeleteByProduct removes every attribute of one product.
func (s *AttributeService) DeleteByProduct(productID uint) error {
	return s.repo.DeleteByProduct(productID)
}
