package controllers

import (
	"net/http"

	"github.com/pedalpoint/bikeshop/app/services"
	"github.com/pedalpoint/bikeshop/pkg/bind"
	"github.com/pedalpoint/bikeshop/pkg/response"
)

// WishlistController serves the authenticated user's wishlist.
type WishlistController struct {
	service *services.WishlistService
}

func NewWishlistController(service *services.WishlistService) *WishlistController {
	return &WishlistController{service: service}
}

func (c *WishlistController) Get(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := currentUser(r)
	if !ok {
		response.Unauthorized(w)
		return
	}
	items, err := c.service.Get(userID)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, items)
}

func (c *WishlistController) Add(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := currentUser(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	var in struct {
		ProductID uint `json:"product_id" validate:"required"`
	}
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	item, err := c.service.Add(userID, in.ProductID)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Created(w, item)
}

func (c *WishlistController) Remove(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := currentUser(r)
	if !ok {
		response.Unauthorized(w)
		return
	}
	productID, okID := pathUint(r, "productId")
	if !okID {
		response.Error(w, http.StatusBadRequest, "invalid product id")
		return
	}
	if err := c.service.Remove(userID, productID); err != nil {
		fail(w, r, err)
		return
	}
	response.Message(w, "wishlist item removed")
}
