package controllers

import (
	"net/http"
	"strconv"

	"github.com/pedalpoint/bikeshop/app/services"
	"github.com/pedalpoint/bikeshop/pkg/response"
)

// DashboardController serves the admin landing-page figures.
type DashboardController struct {
	service *services.DashboardService
}

func NewDashboardController(service *services.DashboardService) *DashboardController {
	return &DashboardController{service: service}
}

func (c *DashboardController) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := c.service.Stats()
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, stats)
}

// Revenue sums order totals created within ?period=week|month|year.
// Optional ?week=, ?month= and ?year= pin a past window; the window
// containing the current time is used when they are absent.
func (c *DashboardController) Revenue(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	week, _ := strconv.Atoi(q.Get("week"))
	month, _ := strconv.Atoi(q.Get("month"))
	year, _ := strconv.Atoi(q.Get("year"))
	total, err := c.service.Revenue(services.RevenueQuery{
		Period: q.Get("period"),
		Week:   week,
		Month:  month,
		Year:   year,
	})
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, map[string]interface{}{"revenue": total})
}
