package controllers

import (
	"net/http"
	"strconv"

	"github.com/pedalpoint/bikeshop/app/services"
	"github.com/pedalpoint/bikeshop/pkg/bind"
	"github.com/pedalpoint/bikeshop/pkg/response"
)

// ShopReviewController serves shop-wide review endpoints.
type ShopReviewController struct {
	service *services.ShopReviewService
}

func NewShopReviewController(service *services.ShopReviewService) *ShopReviewController {
	return &ShopReviewController{service: service}
}

func (c *ShopReviewController) Create(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := currentUser(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	var in services.ShopReviewInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	rv, err := c.service.Create(userID, in)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Created(w, rv)
}

func (c *ShopReviewController) List(w http.ResponseWriter, r *http.Request) {
	page, limit := pageLimit(r)
	items, pg, err := c.service.List(page, limit)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Paginated(w, items, pg)
}

func (c *ShopReviewController) ByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUint(r, "userId")
	if !ok {
		response.Error(w, http.StatusBadRequest, "invalid user id")
		return
	}
	items, err := c.service.ByUser(userID)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, items)
}

func (c *ShopReviewController) Update(w http.ResponseWriter, r *http.Request) {
	actorID, actorRole, ok := currentUser(r)
	if !ok {
		response.Unauthorized(w)
		return
	}
	id, okID := pathUint(r, "id")
	if !okID {
		response.Error(w, http.StatusBadRequest, "invalid review id")
		return
	}

	var in services.ShopReviewInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	rv, err := c.service.Update(id, actorID, actorRole, in)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, rv)
}

func (c *ShopReviewController) Delete(w http.ResponseWriter, r *http.Request) {
	actorID, actorRole, ok := currentUser(r)
	if !ok {
		response.Unauthorized(w)
		return
	}
	id, okID := pathUint(r, "id")
	if !okID {
		response.Error(w, http.StatusBadRequest, "invalid review id")
		return
	}
	if err := c.service.Delete(id, actorID, actorRole); err != nil {
		fail(w, r, err)
		return
	}
	response.Message(w, "review deleted")
}

// HasReviewed reports whether the authenticated user left a review.
func (c *ShopReviewController) HasReviewed(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := currentUser(r)
	if !ok {
		response.Unauthorized(w)
		return
	}
	reviewed, err := c.service.HasReviewed(userID)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, map[string]bool{"has_reviewed": reviewed})
}

func (c *ShopReviewController) Average(w http.ResponseWriter, r *http.Request) {
	avg, err := c.service.Average()
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, map[string]float64{"average": avg})
}

func (c *ShopReviewController) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := c.service.Stats()
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, stats)
}

// Search filters by ?rating= and ?q= over comments.
func (c *ShopReviewController) Search(w http.ResponseWriter, r *http.Request) {
	page, limit := pageLimit(r)
	rating, _ := strconv.Atoi(r.URL.Query().Get("rating"))
	items, pg, err := c.service.Search(rating, r.URL.Query().Get("q"), page, limit)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Paginated(w, items, pg)
}
