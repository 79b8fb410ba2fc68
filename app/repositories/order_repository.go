package repositories

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/pedalpoint/bikeshop/app/models"
	"github.com/pedalpoint/bikeshop/pkg/metrics"
	"github.com/pedalpoint/bikeshop/pkg/orm"
)

// OrderRepository handles database operations for the order aggregate.
// Writes that touch the order together with its items or shipping info run
// in a single transaction so a failure persists nothing.
type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create persists the order with its items and shipping info atomically.
func (r *OrderRepository) Create(o *models.Order) error {
	defer metrics.ObserveDBQuery("orders.create", time.Now())

	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(o).Error
	})
}

// Update saves the order's own fields and replaces its item set with
// o.Items. Shipping info, when present, is saved in the same transaction.
func (r *OrderRepository) Update(o *models.Order) error {
	defer metrics.ObserveDBQuery("orders.update", time.Now())

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", o.ID).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		for i := range o.Items {
			o.Items[i].ID = 0
			o.Items[i].OrderID = o.ID
		}
		if len(o.Items) > 0 {
			if err := tx.Create(&o.Items).Error; err != nil {
				return err
			}
		}
		if o.ShippingInfo != nil {
			o.ShippingInfo.OrderID = &o.ID
			if err := tx.Save(o.ShippingInfo).Error; err != nil {
				return err
			}
		}
		return tx.Omit("Items", "ShippingInfo").Save(o).Error
	})
}

// FindByID loads an order with items and shipping info.
func (r *OrderRepository) FindByID(id uint) (models.Order, error) {
	var o models.Order
	err := r.db.Preload("Items").Preload("ShippingInfo").First(&o, id).Error
	return o, err
}

// UpdateStatus sets the status column only.
func (r *OrderRepository) UpdateStatus(id uint, status string) error {
	res := r.db.Model(&models.Order{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes the order and its dependent rows.
func (r *OrderRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("order_id = ?", id).Delete(&models.ShippingInfo{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Order{}, id).Error
	})
}

// Paginate lists orders matching scopes, newest first.
func (r *OrderRepository) Paginate(scopes []orm.Scope, page, limit int) ([]models.Order, orm.Pagination, error) {
	defer metrics.ObserveDBQuery("orders.paginate", time.Now())

	var out []models.Order
	q := orm.All(scopes...)(r.db.Model(&models.Order{})).
		Preload("Items").
		Preload("ShippingInfo").
		Order("created_at DESC")
	pg, err := orm.Paginate(q, page, limit, &out)
	return out, pg, err
}

// ByUser lists every order placed by one user, newest first.
func (r *OrderRepository) ByUser(userID uint) ([]models.Order, error) {
	var out []models.Order
	err := r.db.Where("user_id = ?", userID).
		Preload("Items").
		Preload("ShippingInfo").
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

func (r *OrderRepository) Count() (int64, error) {
	var n int64
	err := r.db.Model(&models.Order{}).Count(&n).Error
	return n, err
}

// CountByUser returns how many delivered orders a user has. Pending and
// cancelled orders are excluded, matching DeliveredRevenueByUser.
func (r *OrderRepository) CountByUser(userID uint) (int64, error) {
	var n int64
	err := r.db.Model(&models.Order{}).
		Where("user_id = ? AND status = ?", userID, models.OrderStatusDelivered).
		Count(&n).Error
	return n, err
}

// DeliveredRevenue sums totals over delivered orders, zero when none.
func (r *OrderRepository) DeliveredRevenue() (decimal.Decimal, error) {
	defer metrics.ObserveDBQuery("orders.delivered_revenue", time.Now())

	var sum decimal.NullDecimal
	err := r.db.Model(&models.Order{}).
		Where("status = ?", models.OrderStatusDelivered).
		Select("SUM(total_price)").
		Scan(&sum).Error
	if err != nil || !sum.Valid {
		return decimal.Zero, err
	}
	return sum.Decimal, nil
}

// DeliveredRevenueByUser sums delivered totals for one user, zero when none.
func (r *OrderRepository) DeliveredRevenueByUser(userID uint) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	err := r.db.Model(&models.Order{}).
		Where("user_id = ? AND status = ?", userID, models.OrderStatusDelivered).
		Select("SUM(total_price)").
		Scan(&sum).Error
	if err != nil || !sum.Valid {
		return decimal.Zero, err
	}
	return sum.Decimal, nil
}

// RevenueBetween sums order totals created in the half-open range
// [from, to). Period boundaries are computed by the caller so the query
// stays portable across drivers.
func (r *OrderRepository) RevenueBetween(from, to time.Time) (decimal.Decimal, error) {
	defer metrics.ObserveDBQuery("orders.revenue_between", time.Now())

	var sum decimal.NullDecimal
	err := r.db.Model(&models.Order{}).
		Where("created_at >= ? AND created_at < ?", from, to).
		Select("SUM(total_price)").
		Scan(&sum).Error
	if err != nil || !sum.Valid {
		return decimal.Zero, err
	}
	return sum.Decimal, nil
}
