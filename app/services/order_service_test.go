package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pedalpoint/bikeshop/app/models"
)

func seedCatalog(t *testing.T) (*fakeProductRepo, models.Product, models.Product) {
	t.Helper()
	products := newFakeProductRepo()
	bike := products.seed(models.Product{Name: "Trail 29", Price: decimal.RequireFromString("499.90")})
	helmet := products.seed(models.Product{Name: "Helmet", Price: decimal.RequireFromString("39.50")})
	return products, bike, helmet
}

func TestOrderCreateComputesTotalFromSnapshots(t *testing.T) {
	products, bike, helmet := seedCatalog(t)
	orders := newFakeOrderRepo()
	svc := NewOrderService(orders, products)

	o, err := svc.Create(OrderInput{
		CustomerName: "Dana",
		Items: []OrderItemInput{
			{ProductID: bike.ID, Quantity: 2},
			{ProductID: helmet.ID, Quantity: 1},
		},
	})
	require.NoError(t, err)

	want := decimal.RequireFromString("1039.30") // 2*499.90 + 39.50
	assert.True(t, o.TotalPrice.Equal(want), "total %s, want %s", o.TotalPrice, want)
	assert.Equal(t, models.OrderStatusPending, o.Status)
	require.Len(t, o.Items, 2)
	assert.True(t, o.Items[0].PriceAtOrder.Equal(bike.Price))
}

func TestOrderTotalSurvivesLaterPriceChange(t *testing.T) {
	products, bike, _ := seedCatalog(t)
	orders := newFakeOrderRepo()
	svc := NewOrderService(orders, products)

	o, err := svc.Create(OrderInput{
		CustomerName: "Dana",
		Items:        []OrderItemInput{{ProductID: bike.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	bike.Price = decimal.RequireFromString("999.99")
	require.NoError(t, products.Update(&bike))

	got, err := svc.Get(o.ID)
	require.NoError(t, err)
	assert.True(t, got.TotalPrice.Equal(decimal.RequireFromString("499.90")))
}

func TestOrderCreateUnknownProductPersistsNothing(t *testing.T) {
	products, bike, _ := seedCatalog(t)
	orders := newFakeOrderRepo()
	svc := NewOrderService(orders, products)

	_, err := svc.Create(OrderInput{
		CustomerName: "Dana",
		Items: []OrderItemInput{
			{ProductID: bike.ID, Quantity: 1},
			{ProductID: 9999, Quantity: 1},
		},
	})
	require.ErrorIs(t, err, ErrUnknownProduct)
	assert.Empty(t, orders.rows)
}

func TestOrderCreateRejectsEmptyItemList(t *testing.T) {
	products, _, _ := seedCatalog(t)
	svc := NewOrderService(newFakeOrderRepo(), products)

	_, err := svc.Create(OrderInput{CustomerName: "Dana"})
	require.ErrorIs(t, err, ErrEmptyOrder)
}

func TestOrderUpdateReplacesItemSet(t *testing.T) {
	products, bike, helmet := seedCatalog(t)
	orders := newFakeOrderRepo()
	svc := NewOrderService(orders, products)

	o, err := svc.Create(OrderInput{
		CustomerName: "Dana",
		Items:        []OrderItemInput{{ProductID: bike.ID, Quantity: 2}},
	})
	require.NoError(t, err)

	updated, err := svc.Update(o.ID, OrderInput{
		CustomerName: "Dana R.",
		Items:        []OrderItemInput{{ProductID: helmet.ID, Quantity: 3}},
	})
	require.NoError(t, err)

	require.Len(t, updated.Items, 1)
	assert.Equal(t, helmet.ID, updated.Items[0].ProductID)
	assert.True(t, updated.TotalPrice.Equal(decimal.RequireFromString("118.50")))
	assert.Equal(t, "Dana R.", updated.CustomerName)
}

func TestOrderStatusTransitions(t *testing.T) {
	products, bike, _ := seedCatalog(t)
	orders := newFakeOrderRepo()
	svc := NewOrderService(orders, products)

	o, err := svc.Create(OrderInput{
		CustomerName: "Dana",
		Items:        []OrderItemInput{{ProductID: bike.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	got, err := svc.UpdateStatus(o.ID, models.OrderStatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusDelivered, got.Status)

	_, err = svc.UpdateStatus(o.ID, "misplaced")
	require.ErrorIs(t, err, ErrInvalidStatus)

	_, err = svc.UpdateStatus(4242, models.OrderStatusShipping)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestOrderSearchRejectsUnknownStatus(t *testing.T) {
	products, _, _ := seedCatalog(t)
	svc := NewOrderService(newFakeOrderRepo(), products)

	_, _, err := svc.Search(OrderSearch{Status: "limbo"}, 1, 10)
	require.ErrorIs(t, err, ErrInvalidStatus)
}

func TestUserStatsCountsDeliveredOrdersOnly(t *testing.T) {
	products, bike, _ := seedCatalog(t)
	orders := newFakeOrderRepo()
	svc := NewOrderService(orders, products)

	userID := uint(7)
	first, err := svc.Create(OrderInput{
		CustomerName: "Dana", UserID: &userID,
		Items: []OrderItemInput{{ProductID: bike.ID, Quantity: 1}},
	})
	require.NoError(t, err)
	_, err = svc.Create(OrderInput{
		CustomerName: "Dana", UserID: &userID,
		Items: []OrderItemInput{{ProductID: bike.ID, Quantity: 2}},
	})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(first.ID, models.OrderStatusDelivered)
	require.NoError(t, err)

	stats, err := svc.UserStats(userID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.OrderCount)
	assert.True(t, stats.DeliveredTotal.Equal(decimal.RequireFromString("499.90")))
}
