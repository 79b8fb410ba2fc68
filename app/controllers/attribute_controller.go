package controllers

import (
	"net/http"

	"github.com/pedalpoint/bikeshop/app/services"
	"github.com/pedalpoint/bikeshop/pkg/bind"
	"github.com/pedalpoint/bikeshop/pkg/response"
)

// AttributeController serves free-form product attributes.
type AttributeController struct {
	service *services.AttributeService
}

func NewAttributeController(service *services.AttributeService) *AttributeController {
	return &AttributeController{service: service}
}

func (c *AttributeController) ByProduct(w http.ResponseWriter, r *http.Request) {
	productID, ok := pathUint(r, "productId")
	if !ok {
		response.Error(w, http.StatusBadRequest, "invalid product id")
		return
	}
	attrs, err := c.service.ByProduct(productID)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, attrs)
}

func (c *AttributeController) Create(w http.ResponseWriter, r *http.Request) {
	var in services.AttributeInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	a, err := c.service.Create(in)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Created(w, a)
}

func (c *AttributeController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUint(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "invalid attribute id")
		return
	}

	var in struct {
		Name  string `json:"name" validate:"required,max=100"`
		Value string `json:"value" validate:"required,max=255"`
	}
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	a, err := c.service.Update(id, services.AttributeInput{Name: in.Name, Value: in.Value})
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, a)
}

func (c *AttributeController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUint(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "invalid attribute id")
		return
	}
	if err := c.service.Delete(id); err != nil {
		fail(w, r, err)
		return
	}
	response.Message(w, "attribute deleted")
}

func (c *AttributeController) DeleteByProduct(w http.ResponseWriter, r *http.Request) {
	productID, ok := pathUint(r, "productId")
	if !ok {
		response.Error(w, http.StatusBadRequest, "invalid product id")
		return
	}
	if err := c.service.DeleteByProduct(productID); err != nil {
		fail(w, r, err)
		return
	}
	response.Message(w, "attributes deleted")
}
