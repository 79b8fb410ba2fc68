package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/pedalpoint/bikeshop/app/models"
)

// WishlistRepo is the persistence surface the wishlist service needs.
type WishlistRepo interface {
	ByUser(userID uint) ([]models.WishlistItem, error)
	Exists(userID, productID uint) (bool, error)
	Add(item *models.WishlistItem) error
	Remove(userID, productID uint) error
}

// WishlistService implements wishlist operations.
type WishlistService struct {
	wishlist WishlistRepo
	products ProductRepo
}

func NewWishlistService(wishlist WishlistRepo, products ProductRepo) *WishlistService {
	return &WishlistService{wishlist: wishlist, products: products}
}

// Get returns the user's wishlist with product data attached.
func (s *WishlistService) Get(userID uint) ([]models.WishlistItem, error) {
	return s.wishlist.ByUser(userID)
}

// Add puts a product on the wishlist. Re-adding is a conflict, not a dup.
func (s *WishlistService) Add(userID, productID uint) (models.WishlistItem, error) {
	if _, err := s.products.FindByID(productID); errors.Is(err, gorm.ErrRecordNotFound) {
		return models.WishlistItem{}, ErrNotFound
	} else if err != nil {
		return models.WishlistItem{}, err
	}

	exists, err := s.wishlist.Exists(userID, productID)
	if err != nil {
		return models.WishlistItem{}, err
	}
	if exists {
		return models.WishlistItem{}, ErrDuplicateWishlist
	}

	item := models.WishlistItem{UserID: userID, ProductID: productID}
	if err := s.wishlist.Add(&item); err != nil {
		return item, fmt.Errorf("add wishlist item: %w", err)
	}
	return item, nil
}

// Remove takes a product off the wishlist.
func (s *WishlistService) Remove(userID, productID uint) error {
	err := s.wishlist.Remove(userID, productID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
