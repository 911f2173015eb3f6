package observability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestLogLevel(t *testing.T) {
	t.Setenv("ENV", "dev")
	t.Setenv("LOG_LEVEL", "")
	assert.Equal(t, zap.DebugLevel, LogLevel())

	t.Setenv("LOG_LEVEL", "warn")
	assert.Equal(t, zap.WarnLevel, LogLevel())

	t.Setenv("LOG_LEVEL", "verbose")
	assert.Equal(t, zap.InfoLevel, LogLevel())

	t.Setenv("ENV", "production")
	t.Setenv("LOG_LEVEL", "")
	assert.Equal(t, zap.InfoLevel, LogLevel())
}

func TestShouldSample(t *testing.T) {
	assert.True(t, ShouldSample(1))
	assert.False(t, ShouldSample(0))
}

func TestSamplerFor(t *testing.T) {
	assert.Contains(t, samplerFor(1).Description(), "AlwaysOn")
	assert.Contains(t, samplerFor(0).Description(), "AlwaysOff")
	assert.Contains(t, samplerFor(0.25).Description(), "TraceIDRatioBased")
}

func TestMockMetricsRegistry(t *testing.T) {
	m := NewMockMetricsRegistry()
	var r MetricsRegistry = m
	r.IncrementDecision("ios", "platform", "mobile")
	r.IncrementDecision("ios", "platform", "tablet")
	r.IncrementDismissals()
	r.IncrementStoreOpens("android", "navigate")
	assert.Equal(t, 2, m.Decisions["ios platform"])
	assert.Equal(t, 1, m.Dismissals)
	assert.Equal(t, 1, m.StoreOpens["android navigate"])
}
