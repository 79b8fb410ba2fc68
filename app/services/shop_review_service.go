package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/pedalpoint/bikeshop/app/models"
	"github.com/pedalpoint/bikeshop/pkg/orm"
)

// ShopReviewRepo is the persistence surface the shop review service needs.
type ShopReviewRepo interface {
	Create(rv *models.ShopReview) error
	Update(rv *models.ShopReview) error
	Delete(id uint) error
	FindByID(id uint) (models.ShopReview, error)
	Paginate(scopes []orm.Scope, page, limit int) ([]models.ShopReview, orm.Pagination, error)
	ByUser(userID uint) ([]models.ShopReview, error)
	HasReviewed(userID uint) (bool, error)
	AverageRating() (float64, error)
	CountByRating() (map[int]int64, error)
}

// ShopReviewInput is the payload for create and update.
type ShopReviewInput struct {
	Comment string `json:"comment" validate:"required"`
	Rating  int    `json:"rating" validate:"required,gte=1,lte=5"`
}

// ShopReviewStats bundles average rating with the per-star histogram.
type ShopReviewStats struct {
	Average  float64       `json:"average"`
	ByRating map[int]int64 `json:"by_rating"`
	Total    int64         `json:"total"`
}

// ShopReviewService implements shop review operations.
type ShopReviewService struct {
	repo ShopReviewRepo
}

func NewShopReviewService(repo ShopReviewRepo) *ShopReviewService {
	return &ShopReviewService{repo: repo}
}

// Create stores a review for the authenticated user.
func (s *ShopReviewService) Create(userID uint, in ShopReviewInput) (models.ShopReview, error) {
	rv := models.ShopReview{UserID: userID, Comment: in.Comment, Rating: in.Rating}
	if err := s.repo.Create(&rv); err != nil {
		return rv, fmt.Errorf("create shop review: %w", err)
	}
	return rv, nil
}

// List returns one page of reviews, newest first.
func (s *ShopReviewService) List(page, limit int) ([]models.ShopReview, orm.Pagination, error) {
	return s.repo.Paginate(nil, page, limit)
}

// ByUser lists one user's reviews.
func (s *ShopReviewService) ByUser(userID uint) ([]models.ShopReview, error) {
	return s.repo.ByUser(userID)
}

// Update edits a review. Only the owner or an admin may do so.
func (s *ShopReviewService) Update(id, actorID uint, actorRole string, in ShopReviewInput) (models.ShopReview, error) {
	rv, err := s.repo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return rv, ErrNotFound
	}
	if err != nil {
		return rv, err
	}
	if rv.UserID != actorID && actorRole != models.RoleAdmin {
		return rv, ErrForbidden
	}

	rv.Comment = in.Comment
	rv.Rating = in.Rating
	if err := s.repo.Update(&rv); err != nil {
		return rv, fmt.Errorf("update shop review: %w", err)
	}
	return rv, nil
}

// Delete removes a review. Only the owner or an admin may do so.
func (s *ShopReviewService) Delete(id, actorID uint, actorRole string) error {
	rv, err := s.repo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if rv.UserID != actorID && actorRole != models.RoleAdmin {
		return ErrForbidden
	}
	return s.repo.Delete(id)
}

// HasReviewed reports whether the user left a review already.
func (s *ShopReviewService) HasReviewed(userID uint) (bool, error) {
	return s.repo.HasReviewed(userID)
}

// Average returns the mean rating, zero with no reviews.
func (s *ShopReviewService) Average() (float64, error) {
	return s.repo.AverageRating()
}

// Stats returns the average plus the star-count histogram.
func (s *ShopReviewService) Stats() (ShopReviewStats, error) {
	avg, err := s.repo.AverageRating()
	if err != nil {
		return ShopReviewStats{}, err
	}
	hist, err := s.repo.CountByRating()
	if err != nil {
		return ShopReviewStats{}, err
	}
	var total int64
	for _, n := range hist {
		total += n
	}
	return ShopReviewStats{Average: avg, ByRating: hist, Total: total}, nil
}

// Search narrows reviews by exact rating and a comment keyword.
func (s *ShopReviewService) Search(rating int, keyword string, page, limit int) ([]models.ShopReview, orm.Pagination, error) {
	var scopes []orm.Scope
	if rating > 0 {
		scopes = append(scopes, orm.EqInt("rating", rating))
	}
	if keyword != "" {
		scopes = append(scopes, orm.Keyword(keyword, "comment"))
	}
	return s.repo.Paginate(scopes, page, limit)
}
