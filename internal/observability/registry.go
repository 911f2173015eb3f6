package observability

import "time"

// MetricsRegistry provides an interface for recording application metrics
// so handlers do not touch the global Prometheus vectors directly.
type MetricsRegistry interface {
	IncrementRequests(endpoint, method, status string)
	RecordRequestLatency(endpoint, method string, duration time.Duration)

	IncrementDecision(platform, reason, device string)
	IncrementDismissals()
	IncrementStoreOpens(platform, mode string)
	IncrementStoreErrors(backend, op string)
}

// PrometheusRegistry implements MetricsRegistry using the global Prometheus metrics.
type PrometheusRegistry struct{}

// NewPrometheusRegistry creates a new PrometheusRegistry
func NewPrometheusRegistry() *PrometheusRegistry {
	return &PrometheusRegistry{}
}

func (r *PrometheusRegistry) IncrementRequests(endpoint, method, status string) {
	RequestCount.WithLabelValues(endpoint, method, status).Inc()
}

func (r *PrometheusRegistry) RecordRequestLatency(endpoint, method string, duration time.Duration) {
	RequestLatency.WithLabelValues(endpoint, method).Observe(duration.Seconds())
}

func (r *PrometheusRegistry) IncrementDecision(platform, reason, device string) {
	DecisionCount.WithLabelValues(platform, reason, device).Inc()
}

func (r *PrometheusRegistry) IncrementDismissals() {
	DismissalCount.Inc()
}

func (r *PrometheusRegistry) IncrementStoreOpens(platform, mode string) {
	StoreOpenCount.WithLabelValues(platform, mode).Inc()
}

func (r *PrometheusRegistry) IncrementStoreErrors(backend, op string) {
	StoreErrorCount.WithLabelValues(backend, op).Inc()
}

// NoOpRegistry implements MetricsRegistry with no-op methods.
type NoOpRegistry struct{}

// NewNoOpRegistry creates a new NoOpRegistry
func NewNoOpRegistry() *NoOpRegistry {
	return &NoOpRegistry{}
}

func (r *NoOpRegistry) IncrementRequests(endpoint, method, status string)                    {}
func (r *NoOpRegistry) RecordRequestLatency(endpoint, method string, duration time.Duration) {}
func (r *NoOpRegistry) IncrementDecision(platform, reason, device string)                   {}
func (r *NoOpRegistry) IncrementDismissals()                                                {}
func (r *NoOpRegistry) IncrementStoreOpens(platform, mode string)                           {}
func (r *NoOpRegistry) IncrementStoreErrors(backend, op string)                             {}
