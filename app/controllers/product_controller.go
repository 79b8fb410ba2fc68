package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/pedalpoint/bikeshop/app/services"
	"github.com/pedalpoint/bikeshop/pkg/bind"
	"github.com/pedalpoint/bikeshop/pkg/response"
)

// ProductController serves the catalog endpoints.
type ProductController struct {
	service *services.ProductService
}

func NewProductController(service *services.ProductService) *ProductController {
	return &ProductController{service: service}
}

func (c *ProductController) List(w http.ResponseWriter, r *http.Request) {
	page, limit := pageLimit(r)
	items, pg, err := c.service.List(page, limit)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Paginated(w, items, pg)
}

func (c *ProductController) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUint(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "invalid product id")
		return
	}
	p, err := c.service.Get(id)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, p)
}

func (c *ProductController) ByCategory(w http.ResponseWriter, r *http.Request) {
	page, limit := pageLimit(r)
	items, pg, err := c.service.ByCategory(chi.URLParam(r, "category"), page, limit)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Paginated(w, items, pg)
}

func (c *ProductController) Create(w http.ResponseWriter, r *http.Request) {
	var in services.ProductInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	p, err := c.service.Create(in)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Created(w, p)
}

func (c *ProductController) CreateBatch(w http.ResponseWriter, r *http.Request) {
	var ins []services.ProductInput
	if _, err := bind.JSON(r, &ins); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(ins) == 0 {
		response.Error(w, http.StatusBadRequest, "empty product list")
		return
	}

	ps, err := c.service.CreateBatch(ins)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Created(w, ps)
}

func (c *ProductController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUint(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "invalid product id")
		return
	}

	var in services.ProductInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	p, err := c.service.Update(id, in)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, p)
}

func (c *ProductController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUint(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "invalid product id")
		return
	}
	if err := c.service.Delete(id); err != nil {
		fail(w, r, err)
		return
	}
	response.Message(w, "product deleted")
}

// Filter narrows by ?category=&brand=&min_price=&max_price=.
func (c *ProductController) Filter(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := services.ProductFilter{
		Category: q.Get("category"),
		Brand:    q.Get("brand"),
	}
	if v, err := strconv.ParseFloat(q.Get("min_price"), 64); err == nil {
		f.MinPrice = &v
	}
	if v, err := strconv.ParseFloat(q.Get("max_price"), 64); err == nil {
		f.MaxPrice = &v
	}

	page, limit := pageLimit(r)
	items, pg, err := c.service.Filter(f, page, limit)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Paginated(w, items, pg)
}

// Search matches ?q= against name, description, brand and category.
func (c *ProductController) Search(w http.ResponseWriter, r *http.Request) {
	page, limit := pageLimit(r)
	items, pg, err := c.service.Search(r.URL.Query().Get("q"), page, limit)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Paginated(w, items, pg)
}
