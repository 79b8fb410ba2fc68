package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/pedalpoint/bikeshop/app/models"
	"github.com/pedalpoint/bikeshop/pkg/orm"
)

// ProductReviewRepo is the persistence surface the product review service needs.
type ProductReviewRepo interface {
	Create(rv *models.ProductReview) error
	Update(rv *models.ProductReview) error
	Delete(id uint) error
	FindByID(id uint) (models.ProductReview, error)
	Paginate(page, limit int) ([]models.ProductReview, orm.Pagination, error)
	ByProduct(productID uint) ([]models.ProductReview, error)
	PaginateAnswered(page, limit int) ([]models.ProductReview, orm.Pagination, error)
}

// ProductReviewInput is the payload for create and update.
type ProductReviewInput struct {
	ProductID uint   `json:"product_id" validate:"required"`
	Comment   string `json:"comment" validate:"required"`
}

// AnswerInput is the admin reply payload.
type AnswerInput struct {
	Answer string `json:"answer" validate:"required"`
}

// ProductReviewService implements product review and answer operations.
type ProductReviewService struct {
	reviews  ProductReviewRepo
	products ProductRepo
}

func NewProductReviewService(reviews ProductReviewRepo, products ProductRepo) *ProductReviewService {
	return &ProductReviewService{reviews: reviews, products: products}
}

// Create stores a review against an existing product.
func (s *ProductReviewService) Create(userID uint, in ProductReviewInput) (models.ProductReview, error) {
	if _, err := s.products.FindByID(in.ProductID); errors.Is(err, gorm.ErrRecordNotFound) {
		return models.ProductReview{}, ErrNotFound
	} else if err != nil {
		return models.ProductReview{}, err
	}

	rv := models.ProductReview{UserID: userID, ProductID: in.ProductID, Comment: in.Comment}
	if err := s.reviews.Create(&rv); err != nil {
		return rv, fmt.Errorf("create product review: %w", err)
	}
	return rv, nil
}

// List returns one page of reviews.
func (s *ProductReviewService) List(page, limit int) ([]models.ProductReview, orm.Pagination, error) {
	return s.reviews.Paginate(page, limit)
}

// ByProduct lists all reviews for one product.
func (s *ProductReviewService) ByProduct(productID uint) ([]models.ProductReview, error) {
	return s.reviews.ByProduct(productID)
}

// Update edits the comment. Only the owner or an admin may do so.
func (s *ProductReviewService) Update(id, actorID uint, actorRole, comment string) (models.ProductReview, error) {
	rv, err := s.reviews.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return rv, ErrNotFound
	}
	if err != nil {
		return rv, err
	}
	if rv.UserID != actorID && actorRole != models.RoleAdmin {
		return rv, ErrForbidden
	}

	rv.Comment = comment
	if err := s.reviews.Update(&rv); err != nil {
		return rv, fmt.Errorf("update product review: %w", err)
	}
	return rv, nil
}

// Delete removes a review. Only the owner or an admin may do so.
func (s *ProductReviewService) Delete(id, actorID uint, actorRole string) error {
	rv, err := s.reviews.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if rv.UserID != actorID && actorRole != models.RoleAdmin {
		return ErrForbidden
	}
	return s.reviews.Delete(id)
}

// Answer attaches or replaces the admin reply on a review.
func (s *ProductReviewService) Answer(id uint, in AnswerInput) (models.ProductReview, error) {
	rv, err := s.reviews.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return rv, ErrNotFound
	}
	if err != nil {
		return rv, err
	}

	now := time.Now()
	rv.Answer = &in.Answer
	rv.AnsweredAt = &now
	if err := s.reviews.Update(&rv); err != nil {
		return rv, fmt.Errorf("answer product review: %w", err)
	}
	return rv, nil
}

// DeleteAnswer clears the admin reply, keeping the review itself.
func (s *ProductReviewService) DeleteAnswer(id uint) (models.ProductReview, error) {
	rv, err := s.reviews.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return rv, ErrNotFound
	}
	if err != nil {
		return rv, err
	}
	if !rv.Answered() {
		return rv, ErrNotFound
	}

	rv.Answer = nil
	rv.AnsweredAt = nil
	if err := s.reviews.Update(&rv); err != nil {
		return rv, fmt.Errorf("delete answer: %w", err)
	}
	return rv, nil
}

// Answered returns one page of reviews that carry an admin reply.
func (s *ProductReviewService) Answered(page, limit int) ([]models.ProductReview, orm.Pagination, error) {
	return s.reviews.PaginateAnswered(page, limit)
}
