package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"

	"hospital-schemes-server/internal/store"
)

// Metrics owns a private registry with the HTTP and store collectors.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal     *prometheus.CounterVec
	HTTPRequestDuration   *prometheus.HistogramVec
	HTTPActiveConnections prometheus.Gauge
	StoreOperationsTotal  *prometheus.CounterVec
	ClaimedAmountTotal    prometheus.Counter
}

// New registers every collector on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint", "status"},
		),
		HTTPActiveConnections: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_active_connections",
				Help: "Number of in-flight HTTP requests",
			},
		),
		StoreOperationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "store_operations_total",
				Help: "Store operations by outcome",
			},
			[]string{"operation", "result"},
		),
		ClaimedAmountTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "enrollment_claimed_amount_total",
				Help: "Sum of amounts claimed by newly created enrollments",
			},
		),
	}

	m.registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.HTTPActiveConnections,
		m.StoreOperationsTotal,
		m.ClaimedAmountTotal,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry returns the registry backing m.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordHTTPRequest records metrics for an HTTP request
func (m *Metrics) RecordHTTPRequest(method, endpoint string, statusCode int, duration time.Duration) {
	status := strconv.Itoa(statusCode)
	m.HTTPRequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, endpoint, status).Observe(duration.Seconds())
}

// ObserveOperation counts a store operation under its error class.
func (m *Metrics) ObserveOperation(operation string, err error) {
	m.StoreOperationsTotal.WithLabelValues(operation, Result(err)).Inc()
}

// AddClaimed adds a newly claimed amount.
func (m *Metrics) AddClaimed(amount decimal.Decimal) {
	m.ClaimedAmountTotal.Add(amount.InexactFloat64())
}

// Result names the store error class of err.
func Result(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, store.ErrNotFound):
		return "not_found"
	case errors.Is(err, store.ErrDuplicateName):
		return "duplicate_name"
	case errors.Is(err, store.ErrForeignKey):
		return "foreign_key"
	case errors.Is(err, store.ErrValidation):
		return "validation"
	default:
		return "storage_unavailable"
	}
}
