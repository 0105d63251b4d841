// Package metrics holds the Prometheus metrics of the receipt server.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics owns a private registry, so several instances (one per test) do
// not collide on registration.
type Metrics struct {
	// Registry is exposed for the /metrics endpoint.
	Registry *prometheus.Registry

	requestDuration    *prometheus.HistogramVec
	receiptsSaved      prometheus.Counter
	validationFailures prometheus.Counter
	storageErrors      *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "receipts_http_request_duration_seconds",
				Help:    "Duration of HTTP requests by route and status.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
		receiptsSaved: factory.NewCounter(prometheus.CounterOpts{
			Name: "receipts_saved_total",
			Help: "Receipts committed to storage.",
		}),
		validationFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "receipts_validation_failures_total",
			Help: "Submitted receipts rejected by validation.",
		}),
		storageErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "receipts_storage_errors_total",
				Help: "Requests that failed on storage, by operation.",
			},
			[]string{"operation"},
		),
	}
}

// ObserveRequest records one finished HTTP request. route must come from a
// fixed set (route patterns plus a catch-all), never the raw path.
func (m *Metrics) ObserveRequest(method, route string, status int, d time.Duration) {
	m.requestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(d.Seconds())
}

func (m *Metrics) IncReceiptSaved() {
	m.receiptsSaved.Inc()
}

func (m *Metrics) IncValidationFailure() {
	m.validationFailures.Inc()
}

func (m *Metrics) IncStorageError(operation string) {
	m.storageErrors.WithLabelValues(operation).Inc()
}
