// Package metrics provides Prometheus instrumentation for the bikeshop API.
//
// Wire it up once in internal/server:
//
//	r.Use(metrics.Middleware())
//	r.HandleFunc("/metrics", metrics.Handler())
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "bikeshop"

// DefaultRegistry is the Prometheus registry used by the application.
var DefaultRegistry = prometheus.NewRegistry()

func histogramVec(subsystem, name, help string, buckets []float64, labels ...string) *prometheus.HistogramVec {
	return prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace, Subsystem: subsystem, Name: name, Help: help, Buckets: buckets,
	}, labels)
}

func counterVec(subsystem, name, help string, labels ...string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Subsystem: subsystem, Name: name, Help: help,
	}, labels)
}

var (
	// RequestDuration tracks request latency by method, path and status.
	RequestDuration = histogramVec("http", "request_duration_seconds",
		"Duration of HTTP requests in seconds.", prometheus.DefBuckets,
		"method", "path", "status")

	// RequestTotal counts all HTTP requests.
	RequestTotal = counterVec("http", "requests_total",
		"Total number of HTTP requests.", "method", "path", "status")

	// RequestInFlight gauges requests currently being served.
	RequestInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace, Subsystem: "http", Name: "requests_in_flight",
		Help: "Number of HTTP requests currently being served.",
	})

	// DBQueryDuration tracks repository query latency per operation.
	DBQueryDuration = histogramVec("db", "query_duration_seconds",
		"Duration of database queries in seconds.",
		[]float64{.001, .005, .01, .025, .05, .1, .5, 1},
		"operation")

	// OrdersCreated counts orders accepted through the order endpoint.
	OrdersCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace, Subsystem: "orders", Name: "created_total",
		Help: "Total orders created.",
	})

	// CacheHits and CacheMisses track listing-cache effectiveness.
	CacheHits   = counterVec("cache", "hits_total", "Total cache hits.", "driver")
	CacheMisses = counterVec("cache", "misses_total", "Total cache misses.", "driver")
)

func init() {
	DefaultRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		RequestDuration,
		RequestTotal,
		RequestInFlight,
		DBQueryDuration,
		OrdersCreated,
		CacheHits,
		CacheMisses,
	)
}

// MustRegister adds custom collectors to the application registry.
func MustRegister(c ...prometheus.Collector) {
	DefaultRegistry.MustRegister(c...)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Middleware observes every request: duration histogram, total counter and
// in-flight gauge.
func Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			RequestInFlight.Inc()
			defer RequestInFlight.Dec()

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			// Raw path; fine at this API's cardinality.
			labels := []string{r.Method, r.URL.Path, strconv.Itoa(rec.status)}
			RequestDuration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
			RequestTotal.WithLabelValues(labels...).Inc()
		})
	}
}

// Handler exposes the Prometheus metrics page. Mount on GET /metrics.
func Handler() http.HandlerFunc {
	return promhttp.HandlerFor(DefaultRegistry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	}).ServeHTTP
}

// ObserveDBQuery records one repository query duration:
//
//	defer metrics.ObserveDBQuery("orders.paginate", time.Now())
func ObserveDBQuery(operation string, start time.Time) {
	DBQueryDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
