package controllers

import (
	"net/http"

	"github.com/pedalpoint/bikeshop/app/services"
	"github.com/pedalpoint/bikeshop/pkg/bind"
	"github.com/pedalpoint/bikeshop/pkg/response"
)

// CartController serves the authenticated user's cart.
type CartController struct {
	service *services.CartService
}

func NewCartController(service *services.CartService) *CartController {
	return &CartController{service: service}
}

func (c *CartController) Add(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := currentUser(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	var in services.CartLineInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	line, err := c.service.Add(userID, in)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, line)
}

func (c *CartController) Get(w http.ResponseWriter, r *http.Request) {
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

func (c *CartController) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := currentUser(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	var in services.CartLineInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	line, err := c.service.UpdateQuantity(userID, in)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, line)
}

func (c *CartController) Remove(w http.ResponseWriter, r *http.Request) {
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
	response.Message(w, "cart line removed")
}

func (c *CartController) Clear(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := currentUser(r)
	if !ok {
		response.Unauthorized(w)
		return
	}
	if err := c.service.Clear(userID); err != nil {
		fail(w, r, err)
		return
	}
	response.Message(w, "cart cleared")
}

// Sync replaces the server cart with the client's lines in one call.
func (c *CartController) Sync(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := currentUser(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	var in struct {
		Items []services.CartLineInput `json:"items"`
	}
	if _, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	items, err := c.service.Sync(userID, in.Items)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, items)
}
