package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/pedalpoint/bikeshop/app/models"
	"github.com/pedalpoint/bikeshop/pkg/collection"
)

// CartRepo is the persistence surface the cart service needs.
type CartRepo interface {
	FindLine(userID, productID uint) (models.CartItem, error)
	Create(item *models.CartItem) error
	Update(item *models.CartItem) error
	ByUser(userID uint) ([]models.CartItem, error)
	DeleteLine(userID, productID uint) error
	Clear(userID uint) error
	Replace(userID uint, items []models.CartItem) error
}

// CartLineInput adds or updates one cart line.
type CartLineInput struct {
	ProductID uint `json:"product_id" validate:"required"`
	Quantity  int  `json:"quantity" validate:"required,gte=1"`
}

// CartService implements cart operations.
type CartService struct {
	cart     CartRepo
	products ProductRepo
}

func NewCartService(cart CartRepo, products ProductRepo) *CartService {
	return &CartService{cart: cart, products: products}
}

// Add puts a product in the cart. An existing line has its quantity
// incremented rather than duplicated or overwritten.
func (s *CartService) Add(userID uint, in CartLineInput) (models.CartItem, error) {
	if _, err := s.products.FindByID(in.ProductID); errors.Is(err, gorm.ErrRecordNotFound) {
		return models.CartItem{}, ErrNotFound
	} else if err != nil {
		return models.CartItem{}, err
	}

	line, err := s.cart.FindLine(userID, in.ProductID)
	switch {
	case err == nil:
		line.Quantity += in.Quantity
		if err := s.cart.Update(&line); err != nil {
			return line, fmt.Errorf("update cart line: %w", err)
		}
		return line, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		line = models.CartItem{UserID: userID, ProductID: in.ProductID, Quantity: in.Quantity}
		if err := s.cart.Create(&line); err != nil {
			return line, fmt.Errorf("create cart line: %w", err)
		}
		return line, nil
	default:
		return line, err
	}
}

// Get returns the user's cart with product data attached.
func (s *CartService) Get(userID uint) ([]models.CartItem, error) {
	return s.cart.ByUser(userID)
}

// UpdateQuantity sets the quantity of an existing line.
func (s *CartService) UpdateQuantity(userID uint, in CartLineInput) (models.CartItem, error) {
	line, err := s.cart.FindLine(userID, in.ProductID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return line, ErrNotFound
	}
	if err != nil {
		return line, err
	}
	line.Quantity = in.Quantity
	if err := s.cart.Update(&line); err != nil {
		return line, fmt.Errorf("update cart line: %w", err)
	}
	return line, nil
}

// Remove deletes one line from the cart.
func (s *CartService) Remove(userID, productID uint) error {
	err := s.cart.DeleteLine(userID, productID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// Clear empties the cart.
func (s *CartService) Clear(userID uint) error {
	return s.cart.Clear(userID)
}

// Sync replaces the whole cart with the client's lines. Unknown products
// fail the call before anything is written.
func (s *CartService) Sync(userID uint, ins []CartLineInput) ([]models.CartItem, error) {
	for _, in := range ins {
		if _, err := s.products.FindByID(in.ProductID); errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id %d", ErrUnknownProduct, in.ProductID)
		} else if err != nil {
			return nil, err
		}
	}
	items := collection.Map(ins, func(in CartLineInput) models.CartItem {
		return models.CartItem{
			UserID:    userID,
			ProductID: in.ProductID,
			Quantity:  in.Quantity,
		}
	})
	if err := s.cart.Replace(userID, items); err != nil {
		return nil, fmt.Errorf("sync cart: %w", err)
	}
	return s.cart.ByUser(userID)
}
