package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// total requests per endpoint, method and status code
	RequestCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "openinapp_requests_total",
			Help: "Total API requests received",
		},
		[]string{"endpoint", "method", "status"},
	)

	// request latency in seconds per endpoint/method
	RequestLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "openinapp_request_duration_seconds",
			Help:    "Histogram of request latencies",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method"},
	)

	// banner decisions by platform, reason and uasurfer device type
	DecisionCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "openinapp_decisions_total",
			Help: "Banner decisions evaluated",
		},
		[]string{"platform", "reason", "device"},
	)

	DismissalCount = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "openinapp_dismissals_total",
			Help: "Banner dismissals persisted",
		},
	)

	// store link activations; mode is "navigate" or "handler"
	StoreOpenCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "openinapp_store_opens_total",
			Help: "Store link activations",
		},
		[]string{"platform", "mode"},
	)

	StoreErrorCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "openinapp_store_errors_total",
			Help: "Dismissal store failures",
		},
		[]string{"backend", "op"},
	)
)

func init() {
	prometheus.MustRegister(
		RequestCount,
		RequestLatency,
		DecisionCount,
		DismissalCount,
		StoreOpenCount,
		StoreErrorCount,
	)
}
