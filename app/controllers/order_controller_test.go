package controllers

import (
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pedalpoint/bikeshop/app/models"
	"github.com/pedalpoint/bikeshop/app/services"
	"github.com/pedalpoint/bikeshop/pkg/orm"
	"github.com/pedalpoint/bikeshop/pkg/rbac"
	"github.com/pedalpoint/bikeshop/pkg/router"
	"github.com/pedalpoint/bikeshop/pkg/testkit"
)

// memOrderRepo is just enough of an OrderRepo for handler tests.
type memOrderRepo struct {
	rows   map[uint]models.Order
	nextID uint
}

func newMemOrderRepo() *memOrderRepo {
	return &memOrderRepo{rows: map[uint]models.Order{}, nextID: 1}
}

func (m *memOrderRepo) Create(o *models.Order) error {
	o.ID = m.nextID
	m.nextID++
	m.rows[o.ID] = *o
	return nil
}

func (m *memOrderRepo) Update(o *models.Order) error {
	m.rows[o.ID] = *o
	return nil
}

func (m *memOrderRepo) FindByID(id uint) (models.Order, error) {
	o, ok := m.rows[id]
	if !ok {
		return o, gorm.ErrRecordNotFound
	}
	return o, nil
}

func (m *memOrderRepo) UpdateStatus(id uint, status string) error {
	o, ok := m.rows[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	o.Status = status
	m.rows[id] = o
	return nil
}

func (m *memOrderRepo) Delete(id uint) error {
	delete(m.rows, id)
	return nil
}

func (m *memOrderRepo) Paginate(_ []orm.Scope, page, limit int) ([]models.Order, orm.Pagination, error) {
	var out []models.Order
	for _, o := range m.rows {
		out = append(out, o)
	}
	return out, orm.Pagination{Page: page, Limit: limit, Total: int64(len(out)), TotalPages: 1}, nil
}

func (m *memOrderRepo) ByUser(userID uint) ([]models.Order, error) {
	var out []models.Order
	for _, o := range m.rows {
		if o.UserID != nil && *o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *memOrderRepo) CountByUser(userID uint) (int64, error) {
	var n int64
	for _, o := range m.rows {
		if o.UserID != nil && *o.UserID == userID && o.Status == models.OrderStatusDelivered {
			n++
		}
	}
	return n, nil
}

func (m *memOrderRepo) DeliveredRevenueByUser(userID uint) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, o := range m.rows {
		if o.UserID != nil && *o.UserID == userID && o.Status == models.OrderStatusDelivered {
			sum = sum.Add(o.TotalPrice)
		}
	}
	return sum, nil
}

func (m *memOrderRepo) Count() (int64, error) { return int64(len(m.rows)), nil }

func (m *memOrderRepo) DeliveredRevenue() (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, o := range m.rows {
		if o.Status == models.OrderStatusDelivered {
			sum = sum.Add(o.TotalPrice)
		}
	}
	return sum, nil
}

func (m *memOrderRepo) RevenueBetween(from, to time.Time) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, o := range m.rows {
		if !o.CreatedAt.Before(from) && o.CreatedAt.Before(to) {
			sum = sum.Add(o.TotalPrice)
		}
	}
	return sum, nil
}

func newOrderTestRouter(products *memProductRepo, orders *memOrderRepo) http.Handler {
	ctrl := NewOrderController(services.NewOrderService(orders, products))
	r := router.New()
	grp := r.Group("/api/orders")
	grp.Post("", "orders.create", ctrl.Create)
	grp.Get("/{id}", "orders.get", ctrl.Get)
	grp.Put("/{id}/status", "orders.update_status", ctrl.UpdateStatus)
	return r.Handler()
}

func TestOrderCreateEndToEnd(t *testing.T) {
	products := newMemProductRepo()
	bike := models.Product{Name: "Trail 29", Price: decimal.RequireFromString("499.90")}
	require.NoError(t, products.Create(&bike))
	orders := newMemOrderRepo()
	h := newOrderTestRouter(products, orders)

	rec := testkit.Do(h, testkit.JSONRequest(t, http.MethodPost, "/api/orders",
		map[string]interface{}{
			"customer_name": "Dana",
			"items":         []map[string]interface{}{{"product_id": bike.ID, "quantity": 2}},
			"shipping": map[string]interface{}{
				"receiver_name": "Dana R",
				"phone":         "0123456789",
				"address":       "12 Hill Road",
			},
		}))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created models.Order
	testkit.DecodeData(t, rec, &created)
	assert.True(t, created.TotalPrice.Equal(decimal.RequireFromString("999.80")))
	assert.Equal(t, models.OrderStatusPending, created.Status)
}

func TestOrderCreateUnknownProductIs400(t *testing.T) {
	h := newOrderTestRouter(newMemProductRepo(), newMemOrderRepo())

	rec := testkit.Do(h, testkit.JSONRequest(t, http.MethodPost, "/api/orders",
		map[string]interface{}{
			"customer_name": "Dana",
			"items":         []map[string]interface{}{{"product_id": 404, "quantity": 1}},
		}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOrderStatusUpdateRejectsUnknownValue(t *testing.T) {
	products := newMemProductRepo()
	bike := models.Product{Name: "Trail 29", Price: decimal.RequireFromString("499.90")}
	require.NoError(t, products.Create(&bike))
	orders := newMemOrderRepo()
	h := newOrderTestRouter(products, orders)

	rec := testkit.Do(h, testkit.JSONRequest(t, http.MethodPost, "/api/orders",
		map[string]interface{}{
			"customer_name": "Dana",
			"items":         []map[string]interface{}{{"product_id": bike.ID, "quantity": 1}},
		}))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = testkit.Do(h, testkit.JSONRequest(t, http.MethodPut, "/api/orders/1/status",
		map[string]string{"status": "teleported"}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = testkit.Do(h, testkit.JSONRequest(t, http.MethodPut, "/api/orders/1/status",
		map[string]string{"status": "shipping"}))
	require.Equal(t, http.StatusOK, rec.Code)

	var updated models.Order
	testkit.DecodeData(t, rec, &updated)
	assert.Equal(t, models.OrderStatusShipping, updated.Status)
}

func TestAdminGuardOnDashboard(t *testing.T) {
	orders := newMemOrderRepo()
	products := newMemProductRepo()
	svc := services.NewDashboardService(orders, products, countStub(0))
	ctrl := NewDashboardController(svc)

	r := router.New()
	admin := r.Group("/api/admin", rbac.AdminOnly)
	admin.Get("/dashboard", "admin.dashboard", ctrl.Stats)
	h := r.Handler()

	// No identity at all.
	rec := testkit.Do(h, testkit.JSONRequest(t, http.MethodGet, "/api/admin/dashboard", nil))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Plain user.
	req := testkit.AsUser(testkit.JSONRequest(t, http.MethodGet, "/api/admin/dashboard", nil), 3, models.RoleUser)
	rec = testkit.Do(h, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Admin.
	req = testkit.AsUser(testkit.JSONRequest(t, http.MethodGet, "/api/admin/dashboard", nil), 1, models.RoleAdmin)
	rec = testkit.Do(h, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var stats services.DashboardStats
	testkit.DecodeData(t, rec, &stats)
	assert.True(t, stats.TotalRevenue.IsZero())
}

func TestDashboardRevenueAcceptsPastPeriods(t *testing.T) {
	orders := newMemOrderRepo()
	march := models.Order{TotalPrice: decimal.RequireFromString("120.00")}
	march.CreatedAt = time.Date(2026, 3, 11, 10, 0, 0, 0, time.UTC)
	require.NoError(t, orders.Create(&march))

	svc := services.NewDashboardService(orders, newMemProductRepo(), countStub(0))
	ctrl := NewDashboardController(svc)

	r := router.New()
	r.Get("/api/admin/dashboard/revenue", "admin.dashboard_revenue", ctrl.Revenue)
	h := r.Handler()

	var body struct {
		Revenue decimal.Decimal `json:"revenue"`
	}

	rec := testkit.Do(h, testkit.JSONRequest(t, http.MethodGet,
		"/api/admin/dashboard/revenue?period=month&month=3&year=2026", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	testkit.DecodeData(t, rec, &body)
	assert.True(t, body.Revenue.Equal(decimal.RequireFromString("120.00")))

	rec = testkit.Do(h, testkit.JSONRequest(t, http.MethodGet,
		"/api/admin/dashboard/revenue?period=month&month=4&year=2026", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	testkit.DecodeData(t, rec, &body)
	assert.True(t, body.Revenue.IsZero())

	rec = testkit.Do(h, testkit.JSONRequest(t, http.MethodGet,
		"/api/admin/dashboard/revenue?period=month&month=13", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// countStub satisfies services.Counter with a fixed value.
type countStub int64

func (c countStub) Count() (int64, error) { return int64(c), nil }
