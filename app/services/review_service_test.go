package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pedalpoint/bikeshop/app/models"
)

func TestShopReviewOwnerOrAdminOnly(t *testing.T) {
	repo := newFakeShopReviewRepo()
	svc := NewShopReviewService(repo)

	rv, err := svc.Create(10, ShopReviewInput{Comment: "great service", Rating: 5})
	require.NoError(t, err)

	_, err = svc.Update(rv.ID, 11, models.RoleUser, ShopReviewInput{Comment: "edited", Rating: 4})
	require.ErrorIs(t, err, ErrForbidden)

	got, err := svc.Update(rv.ID, 10, models.RoleUser, ShopReviewInput{Comment: "edited", Rating: 4})
	require.NoError(t, err)
	assert.Equal(t, "edited", got.Comment)

	require.ErrorIs(t, svc.Delete(rv.ID, 11, models.RoleUser), ErrForbidden)
	require.NoError(t, svc.Delete(rv.ID, 99, models.RoleAdmin))
	require.ErrorIs(t, svc.Delete(rv.ID, 10, models.RoleUser), ErrNotFound)
}

func TestShopReviewStats(t *testing.T) {
	repo := newFakeShopReviewRepo()
	svc := NewShopReviewService(repo)

	avg, err := svc.Average()
	require.NoError(t, err)
	assert.Zero(t, avg, "no reviews must average to zero, not null")

	_, err = svc.Create(1, ShopReviewInput{Comment: "ok", Rating: 3})
	require.NoError(t, err)
	_, err = svc.Create(2, ShopReviewInput{Comment: "top", Rating: 5})
	require.NoError(t, err)

	stats, err := svc.Stats()
	require.NoError(t, err)
	assert.InDelta(t, 4.0, stats.Average, 0.001)
	assert.Equal(t, int64(2), stats.Total)
	assert.Equal(t, int64(1), stats.ByRating[5])
	assert.Equal(t, int64(0), stats.ByRating[1])

	reviewed, err := svc.HasReviewed(1)
	require.NoError(t, err)
	assert.True(t, reviewed)
	reviewed, err = svc.HasReviewed(42)
	require.NoError(t, err)
	assert.False(t, reviewed)
}

func TestProductReviewAnswerLifecycle(t *testing.T) {
	products, bike, _ := seedCatalog(t)
	repo := newFakeProductReviewRepo()
	svc := NewProductReviewService(repo, products)

	rv, err := svc.Create(10, ProductReviewInput{ProductID: bike.ID, Comment: "does it ship assembled?"})
	require.NoError(t, err)
	assert.False(t, rv.Answered())

	answered, err := svc.Answer(rv.ID, AnswerInput{Answer: "yes, fully assembled"})
	require.NoError(t, err)
	require.True(t, answered.Answered())
	assert.NotNil(t, answered.AnsweredAt)

	list, _, err := svc.Answered(1, 10)
	require.NoError(t, err)
	require.Len(t, list, 1)

	cleared, err := svc.DeleteAnswer(rv.ID)
	require.NoError(t, err)
	assert.False(t, cleared.Answered())
	assert.Nil(t, cleared.AnsweredAt)

	_, err = svc.DeleteAnswer(rv.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestProductReviewRequiresExistingProduct(t *testing.T) {
	products, _, _ := seedCatalog(t)
	svc := NewProductReviewService(newFakeProductReviewRepo(), products)

	_, err := svc.Create(10, ProductReviewInput{ProductID: 404, Comment: "?"})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestWishlistDuplicateAddConflicts(t *testing.T) {
	products, bike, _ := seedCatalog(t)
	svc := NewWishlistService(newFakeWishlistRepo(), products)

	_, err := svc.Add(5, bike.ID)
	require.NoError(t, err)

	_, err = svc.Add(5, bike.ID)
	require.ErrorIs(t, err, ErrDuplicateWishlist)

	items, err := svc.Get(5)
	require.NoError(t, err)
	require.Len(t, items, 1)

	require.NoError(t, svc.Remove(5, bike.ID))
	require.ErrorIs(t, svc.Remove(5, bike.ID), ErrNotFound)
}
