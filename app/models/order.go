package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Order statuses. Transitions are not constrained; admins may set any of
// these at any time, but nothing outside this set is accepted.
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusShipping  = "shipping"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
	OrderStatusReturned  = "returned"
)

var orderStatuses = map[string]bool{
	OrderStatusPending:   true,
	OrderStatusConfirmed: true,
	OrderStatusShipping:  true,
	OrderStatusDelivered: true,
	OrderStatusCancelled: true,
	OrderStatusReturned:  true,
}

// ValidOrderStatus reports whether s is one of the known statuses.
func ValidOrderStatus(s string) bool { return orderStatuses[s] }

// Order is the purchase aggregate. TotalPrice is persisted as the sum of
// item PriceAtOrder times Quantity at write time.
type Order struct {
	gorm.Model
	CustomerName string          `gorm:"size:255;not null" json:"customer_name"`
	UserID       *uint           `gorm:"index" json:"user_id,omitempty"`
	Status       string          `gorm:"size:20;not null;default:pending;index" json:"status"`
	TotalPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_price"`
	Items        []OrderItem     `gorm:"constraint:OnDelete:CASCADE" json:"items,omitempty"`
	ShippingInfo *ShippingInfo   `gorm:"constraint:OnDelete:CASCADE" json:"shipping_info,omitempty"`
}

// OrderItem is one order line. PriceAtOrder snapshots the product price at
// the moment the order was created or last edited.
type OrderItem struct {
	gorm.Model
	OrderID      uint            `gorm:"index;not null" json:"order_id"`
	ProductID    uint            `gorm:"index;not null" json:"product_id"`
	Quantity     int             `gorm:"not null" json:"quantity"`
	PriceAtOrder decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price_at_order"`
}

// Subtotal is PriceAtOrder multiplied by Quantity.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.PriceAtOrder.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// ShippingInfo holds the delivery address for one order.
type ShippingInfo struct {
	gorm.Model
	OrderID      *uint  `gorm:"uniqueIndex" json:"order_id,omitempty"`
	ReceiverName string `gorm:"size:255;not null" json:"receiver_name"`
	Phone        string `gorm:"size:30;not null" json:"phone"`
	Province     string `gorm:"size:100" json:"province"`
	District     string `gorm:"size:100" json:"district"`
	Address      string `gorm:"size:512;not null" json:"address"`
	Note         string `gorm:"size:512" json:"note"`
}
