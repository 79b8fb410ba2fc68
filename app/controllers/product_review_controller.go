package controllers

import (
	"net/http"

	"github.com/pedalpoint/bikeshop/app/services"
	"github.com/pedalpoint/bikeshop/pkg/bind"
	"github.com/pedalpoint/bikeshop/pkg/response"
)

// ProductReviewController serves per-product reviews and admin answers.
type ProductReviewController struct {
	service *services.ProductReviewService
}

func NewProductReviewController(service *services.ProductReviewService) *ProductReviewController {
	return &ProductReviewController{service: service}
}

func (c *ProductReviewController) Create(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := currentUser(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	var in services.ProductReviewInput
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

func (c *ProductReviewController) List(w http.ResponseWriter, r *http.Request) {
	page, limit := pageLimit(r)
	items, pg, err := c.service.List(page, limit)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Paginated(w, items, pg)
}

func (c *ProductReviewController) ByProduct(w http.ResponseWriter, r *http.Request) {
	productID, ok := pathUint(r, "productId")
	if !ok {
		response.Error(w, http.StatusBadRequest, "invalid product id")
		return
	}
	items, err := c.service.ByProduct(productID)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, items)
}

func (c *ProductReviewController) Update(w http.ResponseWriter, r *http.Request) {
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

	var in struct {
		Comment string `json:"comment" validate:"required"`
	}
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	rv, err := c.service.Update(id, actorID, actorRole, in.Comment)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, rv)
}

func (c *ProductReviewController) Delete(w http.ResponseWriter, r *http.Request) {
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

// Answer attaches or replaces the admin reply.
func (c *ProductReviewController) Answer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUint(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "invalid review id")
		return
	}

	var in services.AnswerInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	rv, err := c.service.Answer(id, in)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, rv)
}

func (c *ProductReviewController) DeleteAnswer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUint(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "invalid review id")
		return
	}
	rv, err := c.service.DeleteAnswer(id)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, rv)
}

func (c *ProductReviewController) Answered(w http.ResponseWriter, r *http.Request) {
	page, limit := pageLimit(r)
	items, pg, err := c.service.Answered(page, limit)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Paginated(w, items, pg)
}
