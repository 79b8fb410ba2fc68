package controllers

import (
	"net/http"

	"github.com/pedalpoint/bikeshop/app/services"
	"github.com/pedalpoint/bikeshop/pkg/bind"
	"github.com/pedalpoint/bikeshop/pkg/response"
)

// ShippingController serves standalone shipping records.
type ShippingController struct {
	service *services.ShippingService
}

func NewShippingController(service *services.ShippingService) *ShippingController {
	return &ShippingController{service: service}
}

func (c *ShippingController) Create(w http.ResponseWriter, r *http.Request) {
	var in struct {
		OrderID      *uint  `json:"order_id"`
		ReceiverName string `json:"receiver_name" validate:"required,max=255"`
		Phone        string `json:"phone" validate:"required,max=30"`
		Province     string `json:"province" validate:"max=100"`
		District     string `json:"district" validate:"max=100"`
		Address      string `json:"address" validate:"required,max=512"`
		Note         string `json:"note" validate:"max=512"`
	}
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	rec, err := c.service.Create(in.OrderID, services.ShippingInput{
		ReceiverName: in.ReceiverName,
		Phone:        in.Phone,
		Province:     in.Province,
		District:     in.District,
		Address:      in.Address,
		Note:         in.Note,
	})
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Created(w, rec)
}

func (c *ShippingController) ByOrder(w http.ResponseWriter, r *http.Request) {
	orderID, ok := pathUint(r, "orderId")
	if !ok {
		response.Error(w, http.StatusBadRequest, "invalid order id")
		return
	}
	rec, err := c.service.ByOrder(orderID)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, rec)
}

func (c *ShippingController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUint(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "invalid shipping id")
		return
	}

	var in services.ShippingInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	rec, err := c.service.Update(id, in)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, rec)
}

func (c *ShippingController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUint(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "invalid shipping id")
		return
	}
	if err := c.service.Delete(id); err != nil {
		fail(w, r, err)
		return
	}
	response.Message(w, "shipping info deleted")
}

func (c *ShippingController) All(w http.ResponseWriter, r *http.Request) {
	recs, err := c.service.All()
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, recs)
}
