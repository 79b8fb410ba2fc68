package controllers

import (
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pedalpoint/bikeshop/app/models"
	"github.com/pedalpoint/bikeshop/app/services"
	"github.com/pedalpoint/bikeshop/pkg/orm"
	"github.com/pedalpoint/bikeshop/pkg/router"
	"github.com/pedalpoint/bikeshop/pkg/testkit"
)

// memProductRepo is just enough of a ProductRepo for handler tests.
type memProductRepo struct {
	rows   map[uint]models.Product
	nextID uint
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{rows: map[uint]models.Product{}, nextID: 1}
}

func (m *memProductRepo) FindByID(id uint) (models.Product, error) {
	p, ok := m.rows[id]
	if !ok {
		return p, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (m *memProductRepo) FindByIDs(ids []uint) ([]models.Product, error) {
	var out []models.Product
	for _, id := range ids {
		if p, ok := m.rows[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memProductRepo) Create(p *models.Product) error {
	p.ID = m.nextID
	m.nextID++
	m.rows[p.ID] = *p
	return nil
}

func (m *memProductRepo) CreateBatch(ps []models.Product) ([]models.Product, error) {
	for i := range ps {
		_ = m.Create(&ps[i])
	}
	return ps, nil
}

func (m *memProductRepo) Update(p *models.Product) error {
	m.rows[p.ID] = *p
	return nil
}

func (m *memProductRepo) Delete(id uint) error {
	delete(m.rows, id)
	return nil
}

func (m *memProductRepo) Paginate(_ []orm.Scope, page, limit int) ([]models.Product, orm.Pagination, error) {
	var out []models.Product
	for _, p := range m.rows {
		out = append(out, p)
	}
	pg := orm.Pagination{Page: page, Limit: limit, Total: int64(len(out)), TotalPages: 1}
	return out, pg, nil
}

func (m *memProductRepo) Count() (int64, error) { return int64(len(m.rows)), nil }

func newProductTestRouter(repo *memProductRepo) http.Handler {
	ctrl := NewProductController(services.NewProductService(repo))
	r := router.New()
	api := r.Group("/api/all-products")
	api.Get("", "products.list", ctrl.List)
	api.Get("/{id}", "products.get", ctrl.Get)
	api.Post("", "products.create", ctrl.Create)
	api.Delete("/{id}", "products.delete", ctrl.Delete)
	return r.Handler()
}

func TestProductListEnvelope(t *testing.T) {
	repo := newMemProductRepo()
	p := models.Product{Name: "Trail 29", Price: decimal.RequireFromString("499.90")}
	require.NoError(t, repo.Create(&p))
	h := newProductTestRouter(repo)

	rec := testkit.Do(h, testkit.JSONRequest(t, http.MethodGet, "/api/all-products?page=1&limit=10", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	env := testkit.Decode(t, rec)
	assert.Equal(t, http.StatusOK, env.Status)

	var data struct {
		Items      []models.Product `json:"items"`
		Pagination orm.Pagination   `json:"pagination"`
	}
	testkit.DecodeData(t, rec, &data)
	require.Len(t, data.Items, 1)
	assert.Equal(t, "Trail 29", data.Items[0].Name)
	assert.Equal(t, int64(1), data.Pagination.Total)
}

func TestProductGetNotFound(t *testing.T) {
	h := newProductTestRouter(newMemProductRepo())

	rec := testkit.Do(h, testkit.JSONRequest(t, http.MethodGet, "/api/all-products/42", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = testkit.Do(h, testkit.JSONRequest(t, http.MethodGet, "/api/all-products/notanid", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProductCreateValidation(t *testing.T) {
	h := newProductTestRouter(newMemProductRepo())

	rec := testkit.Do(h, testkit.JSONRequest(t, http.MethodPost, "/api/all-products",
		map[string]interface{}{"name": "", "price": "10.00"}))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	env := testkit.Decode(t, rec)
	assert.Contains(t, env.Errors, "name")
}

func TestProductCreateAndDelete(t *testing.T) {
	repo := newMemProductRepo()
	h := newProductTestRouter(repo)

	rec := testkit.Do(h, testkit.JSONRequest(t, http.MethodPost, "/api/all-products",
		map[string]interface{}{
			"name":     "Gravel 700c",
			"price":    "899.00",
			"category": "gravel",
			"quantity": 4,
		}))
	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.Product
	testkit.DecodeData(t, rec, &created)
	assert.NotZero(t, created.ID)

	rec = testkit.Do(h, testkit.JSONRequest(t, http.MethodDelete, "/api/all-products/1", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, repo.rows)
}
