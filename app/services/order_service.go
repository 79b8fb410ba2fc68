package services

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/pedalpoint/bikeshop/app/models"
	"github.com/pedalpoint/bikeshop/pkg/collection"
	"github.com/pedalpoint/bikeshop/pkg/metrics"
	"github.com/pedalpoint/bikeshop/pkg/orm"
)

// OrderRepo is the persistence surface the order service needs.
type OrderRepo interface {
	Create(o *models.Order) error
	Update(o *models.Order) error
	FindByID(id uint) (models.Order, error)
	UpdateStatus(id uint, status string) error
	Delete(id uint) error
	Paginate(scopes []orm.Scope, page, limit int) ([]models.Order, orm.Pagination, error)
	ByUser(userID uint) ([]models.Order, error)
	CountByUser(userID uint) (int64, error)
	DeliveredRevenueByUser(userID uint) (decimal.Decimal, error)
}

// OrderItemInput is one (product, quantity) pair in a create or update.
type OrderItemInput struct {
	ProductID uint `json:"product_id" validate:"required"`
	Quantity  int  `json:"quantity" validate:"required,gte=1"`
}

// ShippingInput carries delivery details.
type ShippingInput struct {
	ReceiverName string `json:"receiver_name" validate:"required,max=255"`
	Phone        string `json:"phone" validate:"required,max=30"`
	Province     string `json:"province" validate:"max=100"`
	District     string `json:"district" validate:"max=100"`
	Address      string `json:"address" validate:"required,max=512"`
	Note         string `json:"note" validate:"max=512"`
}

// OrderInput is the payload for creating or replacing an order.
type OrderInput struct {
	CustomerName string           `json:"customer_name" validate:"required,max=255"`
	UserID       *uint            `json:"user_id"`
	Items        []OrderItemInput `json:"items"`
	Shipping     *ShippingInput   `json:"shipping"`
}

// OrderSearch narrows order listings.
type OrderSearch struct {
	Keyword string
	Status  string
}

// UserOrderStats summarises one customer's delivered purchase history.
type UserOrderStats struct {
	OrderCount     int64           `json:"order_count"`
	DeliveredTotal decimal.Decimal `json:"delivered_total"`
}

// OrderService implements the order aggregate operations.
type OrderService struct {
	orders   OrderRepo
	products ProductRepo
}

func NewOrderService(orders OrderRepo, products ProductRepo) *OrderService {
	return &OrderService{orders: orders, products: products}
}

// buildItems resolves every referenced product and snapshots its current
// price. Any unknown product id fails the whole call.
func (s *OrderService) buildItems(ins []OrderItemInput) ([]models.OrderItem, decimal.Decimal, error) {
	if len(ins) == 0 {
		return nil, decimal.Zero, ErrEmptyOrder
	}

	ids := collection.Map(ins, func(in OrderItemInput) uint { return in.ProductID })
	found, err := s.products.FindByIDs(ids)
	if err != nil {
		return nil, decimal.Zero, fmt.Errorf("resolve products: %w", err)
	}
	byID := make(map[uint]models.Product, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}

	items := make([]models.OrderItem, len(ins))
	for i, in := range ins {
		p, ok := byID[in.ProductID]
		if !ok {
			return nil, decimal.Zero, fmt.Errorf("%w: id %d", ErrUnknownProduct, in.ProductID)
		}
		items[i] = models.OrderItem{
			ProductID:    p.ID,
			Quantity:     in.Quantity,
			PriceAtOrder: p.Price,
		}
	}
	total := collection.Reduce(items, decimal.Zero, func(sum decimal.Decimal, it models.OrderItem) decimal.Decimal {
		return sum.Add(it.Subtotal())
	})
	return items, total, nil
}

// Create builds and persists the order atomically with status pending.
func (s *OrderService) Create(in OrderInput) (models.Order, error) {
	items, total, err := s.buildItems(in.Items)
	if err != nil {
		return models.Order{}, err
	}

	o := models.Order{
		CustomerName: in.CustomerName,
		UserID:       in.UserID,
		Status:       models.OrderStatusPending,
		TotalPrice:   total,
		Items:        items,
	}
	if in.Shipping != nil {
		o.ShippingInfo = &models.ShippingInfo{
			ReceiverName: in.Shipping.ReceiverName,
			Phone:        in.Shipping.Phone,
			Province:     in.Shipping.Province,
			District:     in.Shipping.District,
			Address:      in.Shipping.Address,
			Note:         in.Shipping.Note,
		}
	}

	if err := s.orders.Create(&o); err != nil {
		return o, fmt.Errorf("create order: %w", err)
	}
	metrics.OrdersCreated.Inc()
	return o, nil
}

// Update replaces the item set wholesale and recomputes the total. Status
// is left untouched; it moves through UpdateStatus only.
func (s *OrderService) Update(id uint, in OrderInput) (models.Order, error) {
	o, err := s.orders.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return o, ErrNotFound
	}
	if err != nil {
		return o, err
	}

	items, total, err := s.buildItems(in.Items)
	if err != nil {
		return o, err
	}

	o.CustomerName = in.CustomerName
	o.Items = items
	o.TotalPrice = total
	if in.Shipping != nil {
		if o.ShippingInfo == nil {
			o.ShippingInfo = &models.ShippingInfo{}
		}
		o.ShippingInfo.ReceiverName = in.Shipping.ReceiverName
		o.ShippingInfo.Phone = in.Shipping.Phone
		o.ShippingInfo.Province = in.Shipping.Province
		o.ShippingInfo.District = in.Shipping.District
		o.ShippingInfo.Address = in.Shipping.Address
		o.ShippingInfo.Note = in.Shipping.Note
	}

	if err := s.orders.Update(&o); err != nil {
		return o, fmt.Errorf("update order: %w", err)
	}
	return s.orders.FindByID(id)
}

// UpdateStatus moves an order to any of the known statuses.
func (s *OrderService) UpdateStatus(id uint, status string) (models.Order, error) {
	if !models.ValidOrderStatus(status) {
		return models.Order{}, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	err := s.orders.UpdateStatus(id, status)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Order{}, ErrNotFound
	}
	if err != nil {
		return models.Order{}, fmt.Errorf("update status: %w", err)
	}
	return s.orders.FindByID(id)
}

// Get loads one order with items and shipping info.
func (s *OrderService) Get(id uint) (models.Order, error) {
	o, err := s.orders.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return o, ErrNotFound
	}
	return o, err
}

// List returns one page of all orders.
func (s *OrderService) List(page, limit int) ([]models.Order, orm.Pagination, error) {
	return s.orders.Paginate(nil, page, limit)
}

// ByUser lists every order placed by one user.
func (s *OrderService) ByUser(userID uint) ([]models.Order, error) {
	return s.orders.ByUser(userID)
}

// Delete removes the order and everything hanging off it.
func (s *OrderService) Delete(id uint) error {
	if _, err := s.orders.FindByID(id); errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	} else if err != nil {
		return err
	}
	return s.orders.Delete(id)
}

// Search matches the keyword against customer name and, when it parses as a
// number, against the order id as well. An optional status narrows further.
func (s *OrderService) Search(q OrderSearch, page, limit int) ([]models.Order, orm.Pagination, error) {
	scopes := []orm.Scope{orm.IDOrKeyword(q.Keyword, "customer_name")}
	if q.Status != "" {
		if !models.ValidOrderStatus(q.Status) {
			return nil, orm.Pagination{}, fmt.Errorf("%w: %q", ErrInvalidStatus, q.Status)
		}
		scopes = append(scopes, orm.Eq("status", q.Status))
	}
	return s.orders.Paginate(scopes, page, limit)
}

// UserStats returns delivered order count and delivered spend for one user.
func (s *OrderService) UserStats(userID uint) (UserOrderStats, error) {
	count, err := s.orders.CountByUser(userID)
	if err != nil {
		return UserOrderStats{}, err
	}
	total, err := s.orders.DeliveredRevenueByUser(userID)
	if err != nil {
		return UserOrderStats{}, err
	}
	return UserOrderStats{OrderCount: count, DeliveredTotal: total}, nil
}
