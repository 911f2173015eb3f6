package main

import (
	"context"
	"testing"

	"github.com/patrickwarner/openinapp/internal/banner"
	"github.com/patrickwarner/openinapp/internal/config"
	"github.com/patrickwarner/openinapp/internal/dismissal"
	"github.com/patrickwarner/openinapp/internal/observability"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newTestBannerServer() *BannerServer {
	return &BannerServer{
		engine: banner.NewEngine(banner.StandardDefaults()),
		base: banner.Config{
			PlayStoreAppID:  "1234",
			AppStoreAppID:   "1234",
			AppStoreAppName: "1234",
		},
		backend:     dismissal.NewMemoryBackend(),
		backendName: dismissal.BackendMemory,
		metrics:     observability.NewNoOpRegistry(),
		logger:      zap.NewNop(),
	}
}

func TestEvaluateTool(t *testing.T) {
	bs := newTestBannerServer()
	ctx := context.Background()

	_, out, err := bs.Evaluate(ctx, nil, EvaluateInput{UserAgent: "somethingAndroid"})
	require.NoError(t, err)
	assert.True(t, out.Visible)
	assert.Equal(t, "https://play.google.com/store/apps/details?id=1234", out.StoreLink)

	show := true
	_, out, err = bs.Evaluate(ctx, nil, EvaluateInput{UserAgent: "test", ShowOnWeb: &show})
	require.NoError(t, err)
	assert.True(t, out.Visible)
	assert.Empty(t, out.StoreLink)

	_, out, err = bs.Evaluate(ctx, nil, EvaluateInput{UserAgent: "iPhone", AppStoreAppName: "demo", AppStoreAppID: "99"})
	require.NoError(t, err)
	assert.Equal(t, "http://itunes.apple.com/app/demo/id99?mt-8", out.StoreLink)
}

func TestDismissTool(t *testing.T) {
	bs := newTestBannerServer()
	ctx := context.Background()

	_, _, err := bs.Dismiss(ctx, nil, DismissInput{})
	assert.Error(t, err)

	_, out, err := bs.Dismiss(ctx, nil, DismissInput{ClientID: "abc"})
	require.NoError(t, err)
	assert.Equal(t, "yes", out.Value)

	_, dec, err := bs.Evaluate(ctx, nil, EvaluateInput{UserAgent: "iPhone", ClientID: "abc"})
	require.NoError(t, err)
	assert.False(t, dec.Visible)
	assert.Equal(t, banner.ReasonDismissed, dec.Reason)

	_, dec, err = bs.Evaluate(ctx, nil, EvaluateInput{UserAgent: "iPhone", ClientID: "other"})
	require.NoError(t, err)
	assert.True(t, dec.Visible)
}

func TestToolMetrics(t *testing.T) {
	bs := newTestBannerServer()
	metrics := observability.NewMockMetricsRegistry()
	bs.metrics = metrics
	ctx := context.Background()

	_, _, err := bs.Evaluate(ctx, nil, EvaluateInput{UserAgent: "iPhone"})
	require.NoError(t, err)
	_, _, err = bs.Evaluate(ctx, nil, EvaluateInput{UserAgent: "desktop"})
	require.NoError(t, err)
	_, _, err = bs.Dismiss(ctx, nil, DismissInput{ClientID: "abc"})
	require.NoError(t, err)

	assert.Equal(t, 1, metrics.Decisions["ios platform"])
	assert.Equal(t, 1, metrics.Decisions["web web_hidden"])
	assert.Equal(t, 1, metrics.Dismissals)
}

func TestOpenToolBackend(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	logger := zap.New(core)

	backend, name, closeFn, err := openToolBackend(config.Config{DismissalBackend: dismissal.BackendCookie}, logger)
	require.NoError(t, err)
	defer closeFn()
	assert.IsType(t, &dismissal.MemoryBackend{}, backend)
	assert.Equal(t, dismissal.BackendMemory, name)
	assert.Equal(t, 1, logs.Len())

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	backend, name, closeFn, err = openToolBackend(config.Config{DismissalBackend: dismissal.BackendRedis, RedisAddr: mr.Addr()}, logger)
	require.NoError(t, err)
	defer closeFn()
	assert.IsType(t, &dismissal.RedisBackend{}, backend)
	assert.Equal(t, dismissal.BackendRedis, name)
	assert.Equal(t, 1, logs.Len())

	_, _, _, err = openToolBackend(config.Config{DismissalBackend: "localstorage"}, logger)
	assert.Error(t, err)
}

func TestNewMCPServer(t *testing.T) {
	assert.NotNil(t, newMCPServer(newTestBannerServer()))
}
