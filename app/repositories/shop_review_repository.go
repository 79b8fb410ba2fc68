package repositories

import (
	"gorm.io/gorm"

	"github.com/pedalpoint/bikeshop/app/models"
	"github.com/pedalpoint/bikeshop/pkg/orm"
)

// ShopReviewRepository handles database operations for shop reviews.
type ShopReviewRepository struct {
	db *gorm.DB
}

func NewShopReviewRepository(db *gorm.DB) *ShopReviewRepository {
	return &ShopReviewRepository{db: db}
}

func (r *ShopReviewRepository) Create(rv *models.ShopReview) error {
	return r.db.Create(rv).Error
}

func (r *ShopReviewRepository) Update(rv *models.ShopReview) error {
	return r.db.Save(rv).Error
}

func (r *ShopReviewRepository) Delete(id uint) error {
	return r.db.Delete(&models.ShopReview{}, id).Error
}

func (r *ShopReviewRepository) FindByID(id uint) (models.ShopReview, error) {
	var rv models.ShopReview
	err := r.db.Preload("User").First(&rv, id).Error
	return rv, err
}

// Paginate lists reviews matching scopes, newest first.
func (r *ShopReviewRepository) Paginate(scopes []orm.Scope, page, limit int) ([]models.ShopReview, orm.Pagination, error) {
	var out []models.ShopReview
	q := orm.All(scopes...)(r.db.Model(&models.ShopReview{})).
		Preload("User").
		Order("created_at DESC")
	pg, err := orm.Paginate(q, page, limit, &out)
	return out, pg, err
}

// ByUser lists one user's reviews, newest first.
func (r *ShopReviewRepository) ByUser(userID uint) ([]models.ShopReview, error) {
	var out []models.ShopReview
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&out).Error
	return out, err
}

// HasReviewed reports whether the user has left at least one review.
func (r *ShopReviewRepository) HasReviewed(userID uint) (bool, error) {
	var n int64
	err := r.db.Model(&models.ShopReview{}).Where("user_id = ?", userID).Count(&n).Error
	return n > 0, err
}

// AverageRating returns the mean rating, zero when there are no reviews.
func (r *ShopReviewRepository) AverageRating() (float64, error) {
	var avg *float64
	err := r.db.Model(&models.ShopReview{}).Select("AVG(rating)").Scan(&avg).Error
	if err != nil || avg == nil {
		return 0, err
	}
	return *avg, nil
}

// CountByRating returns how many reviews carry each star value, keyed 1..5.
func (r *ShopReviewRepository) CountByRating() (map[int]int64, error) {
	type row struct {
		Rating int
		N      int64
	}
	var rows []row
	err := r.db.Model(&models.ShopReview{}).
		Select("rating, COUNT(*) as n").
		Group("rating").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[int]int64, 5)
	for star := 1; star <= 5; star++ {
		out[star] = 0
	}
	for _, rw := range rows {
		out[rw.Rating] = rw.N
	}
	return out, nil
}
