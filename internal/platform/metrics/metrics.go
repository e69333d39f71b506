package metrics

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for patient operations.
const (
	OutcomeOK       = "ok"
	OutcomeNotFound = "not_found"
	OutcomeConflict = "conflict"
	OutcomeError    = "error"
)

// Metrics holds the Prometheus collectors for the service.
type Metrics struct {
	Operations   *prometheus.CounterVec
	Returned     prometheus.Histogram
	HTTPDuration *prometheus.HistogramVec
	gatherer     prometheus.Gatherer
}

// New creates and registers all collectors on reg. A nil reg uses a fresh
// private registry, which keeps tests independent of the global one.
func New(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	f := promauto.With(reg)
	return &Metrics{
		Operations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "patient_operations_total",
			Help: "Patient operations by operation and outcome",
		}, []string{"operation", "outcome"}),
		Returned: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "patient_list_returned",
			Help:    "Number of patients returned per list request",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100},
		}),
		HTTPDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by method, route and status",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		gatherer: reg,
	}
}

// Observe increments the operation counter. Safe on a nil receiver.
func (m *Metrics) Observe(operation, outcome string) {
	if m == nil {
		return
	}
	m.Operations.WithLabelValues(operation, outcome).Inc()
}

// ObserveReturned records the page size of a list call. Safe on a nil receiver.
func (m *Metrics) ObserveReturned(n int) {
	if m == nil {
		return
	}
	m.Returned.Observe(float64(n))
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{}))
}

// Middleware records request latency labelled with the route pattern, not the
// raw path, so patient IDs do not become label values. Handler errors are
// rendered here so the recorded status matches the response.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			if err := next(c); err != nil {
				c.Error(err)
			}

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			m.HTTPDuration.WithLabelValues(c.Request().Method, route, strconv.Itoa(c.Response().Status)).
				Observe(time.Since(start).Seconds())
			return nil
		}
	}
}
