package controllers

import (
	"net/http"

	"github.com/pedalpoint/bikeshop/app/services"
	"github.com/pedalpoint/bikeshop/pkg/bind"
	"github.com/pedalpoint/bikeshop/pkg/response"
)

// OrderController serves the order aggregate endpoints.
type OrderController struct {
	service *services.OrderService
}

func NewOrderController(service *services.OrderService) *OrderController {
	return &OrderController{service: service}
}

func (c *OrderController) Create(w http.ResponseWriter, r *http.Request) {
	var in services.OrderInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	// An authenticated customer owns the order they place.
	if id, _, ok := currentUser(r); ok && in.UserID == nil {
		in.UserID = &id
	}

	o, err := c.service.Create(in)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Created(w, o)
}

func (c *OrderController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUint(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "invalid order id")
		return
	}

	var in services.OrderInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	o, err := c.service.Update(id, in)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, o)
}

func (c *OrderController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUint(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "invalid order id")
		return
	}

	var in struct {
		Status string `json:"status" validate:"required"`
	}
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	o, err := c.service.UpdateStatus(id, in.Status)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, o)
}

func (c *OrderController) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUint(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "invalid order id")
		return
	}
	o, err := c.service.Get(id)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, o)
}

func (c *OrderController) List(w http.ResponseWriter, r *http.Request) {
	page, limit := pageLimit(r)
	items, pg, err := c.service.List(page, limit)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Paginated(w, items, pg)
}

func (c *OrderController) ByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUint(r, "userId")
	if !ok {
		response.Error(w, http.StatusBadRequest, "invalid user id")
		return
	}
	orders, err := c.service.ByUser(userID)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, orders)
}

// Mine lists the authenticated user's own orders.
func (c *OrderController) Mine(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := currentUser(r)
	if !ok {
		response.Unauthorized(w)
		return
	}
	orders, err := c.service.ByUser(userID)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, orders)
}

func (c *OrderController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUint(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "invalid order id")
		return
	}
	if err := c.service.Delete(id); err != nil {
		fail(w, r, err)
		return
	}
	response.Message(w, "order deleted")
}

// Search filters by ?q= (customer name or order id) and ?status=.
func (c *OrderController) Search(w http.ResponseWriter, r *http.Request) {
	page, limit := pageLimit(r)
	q := services.OrderSearch{
		Keyword: r.URL.Query().Get("q"),
		Status:  r.URL.Query().Get("status"),
	}
	items, pg, err := c.service.Search(q, page, limit)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Paginated(w, items, pg)
}

// UserStats summarises order count and delivered spend for one user.
func (c *OrderController) UserStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUint(r, "userId")
	if !ok {
		response.Error(w, http.StatusBadRequest, "invalid user id")
		return
	}
	stats, err := c.service.UserStats(userID)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, stats)
}
