package services

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// DashboardOrderRepo exposes the order aggregates the dashboard reads.
type DashboardOrderRepo interface {
	Count() (int64, error)
	DeliveredRevenue() (decimal.Decimal, error)
	RevenueBetween(from, to time.Time) (decimal.Decimal, error)
}

// Counter is any repository that can count its rows.
type Counter interface {
	Count() (int64, error)
}

// DashboardStats is the admin landing-page summary. All figures are zero,
// never null, on an empty shop.
type DashboardStats struct {
	TotalProducts int64           `json:"total_products"`
	TotalOrders   int64           `json:"total_orders"`
	TotalUsers    int64           `json:"total_users"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
}

// DashboardService aggregates shop-wide figures for admins.
type DashboardService struct {
	orders   DashboardOrderRepo
	products Counter
	users    Counter
	now      func() time.Time
}

func NewDashboardService(orders DashboardOrderRepo, products, users Counter) *DashboardService {
	return &DashboardService{orders: orders, products: products, users: users, now: time.Now}
}

// Stats returns entity counts plus revenue over delivered orders.
func (s *DashboardService) Stats() (DashboardStats, error) {
	var (
		st  DashboardStats
		err error
	)
	if st.TotalProducts, err = s.products.Count(); err != nil {
		return st, fmt.Errorf("count products: %w", err)
	}
	if st.TotalOrders, err = s.orders.Count(); err != nil {
		return st, fmt.Errorf("count orders: %w", err)
	}
	if st.TotalUsers, err = s.users.Count(); err != nil {
		return st, fmt.Errorf("count users: %w", err)
	}
	if st.TotalRevenue, err = s.orders.DeliveredRevenue(); err != nil {
		return st, fmt.Errorf("sum revenue: %w", err)
	}
	return st, nil
}

// RevenueQuery names a revenue window. Period selects the window length
// (week, month or year); the numeric fields pin a specific past window and
// fall back to the one containing the current time when zero. Week is an
// ISO 8601 week number.
type RevenueQuery struct {
	Period string
	Week   int
	Month  int
	Year   int
}

// Revenue sums order totals created within the queried week, month or
// year. Unknown periods and out-of-range week or month numbers are
// rejected.
func (s *DashboardService) Revenue(q RevenueQuery) (decimal.Decimal, error) {
	from, to, ok := revenueRange(q, s.now())
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidPeriod, q.Period)
	}
	return s.orders.RevenueBetween(from, to)
}

// revenueRange resolves a query to the half-open [from, to) window,
// filling unset fields from now.
func revenueRange(q RevenueQuery, now time.Time) (time.Time, time.Time, bool) {
	loc := now.Location()
	switch q.Period {
	case "week":
		if q.Week < 0 || q.Week > 53 {
			return time.Time{}, time.Time{}, false
		}
		year, week := now.ISOWeek()
		if q.Year != 0 {
			year = q.Year
		}
		if q.Week != 0 {
			week = q.Week
		}
		from := isoWeekStart(year, week, loc)
		return from, from.AddDate(0, 0, 7), true
	case "month":
		if q.Month < 0 || q.Month > 12 {
			return time.Time{}, time.Time{}, false
		}
		year, month := now.Year(), now.Month()
		if q.Year != 0 {
			year = q.Year
		}
		if q.Month != 0 {
			month = time.Month(q.Month)
		}
		from := time.Date(year, month, 1, 0, 0, 0, 0, loc)
		return from, from.AddDate(0, 1, 0), true
	case "year":
		year := now.Year()
		if q.Year != 0 {
			year = q.Year
		}
		from := time.Date(year, 1, 1, 0, 0, 0, 0, loc)
		return from, from.AddDate(1, 0, 0), true
	}
	return time.Time{}, time.Time{}, false
}

// isoWeekStart returns the Monday opening ISO week number week of year.
// January 4th always falls in week 1.
func isoWeekStart(year, week int, loc *time.Location) time.Time {
	jan4 := time.Date(year, 1, 4, 0, 0, 0, 0, loc)
	monday := jan4.AddDate(0, 0, -((int(jan4.Weekday()) + 6) % 7))
	return monday.AddDate(0, 0, (week-1)*7)
}
