package observability

import (
	"sync"
	"time"
)

// MockMetricsRegistry records calls so tests can assert on them.
type MockMetricsRegistry struct {
	mu         sync.Mutex
	Requests   map[string]int // "endpoint method status"
	Decisions  map[string]int // "platform reason"
	Dismissals int
	StoreOpens map[string]int // "platform mode"
	Errors     map[string]int // "backend op"
}

// NewMockMetricsRegistry returns an empty recorder.
func NewMockMetricsRegistry() *MockMetricsRegistry {
	return &MockMetricsRegistry{
		Requests:   map[string]int{},
		Decisions:  map[string]int{},
		StoreOpens: map[string]int{},
		Errors:     map[string]int{},
	}
}

func (m *MockMetricsRegistry) IncrementRequests(endpoint, method, status string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Requests[endpoint+" "+method+" "+status]++
}

func (m *MockMetricsRegistry) RecordRequestLatency(endpoint, method string, duration time.Duration) {}

func (m *MockMetricsRegistry) IncrementDecision(platform, reason, device string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Decisions[platform+" "+reason]++
}

func (m *MockMetricsRegistry) IncrementDismissals() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Dismissals++
}

func (m *MockMetricsRegistry) IncrementStoreOpens(platform, mode string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StoreOpens[platform+" "+mode]++
}

func (m *MockMetricsRegistry) IncrementStoreErrors(backend, op string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Errors[backend+" "+op]++
}
