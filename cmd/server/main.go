package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/patrickwarner/openinapp/internal/api"
	"github.com/patrickwarner/openinapp/internal/banner"
	"github.com/patrickwarner/openinapp/internal/config"
	"github.com/patrickwarner/openinapp/internal/dismissal"
	"github.com/patrickwarner/openinapp/internal/observability"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	logger, err := observability.InitLogger(cfg.ServiceName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}

	defer func() {
		if err := logger.Sync(); err != nil {
			fmt.Fprintf(os.Stderr, "failed to sync logger: %v\n", err)
		}
	}()

	if err := run(logger, cfg); err != nil {
		logger.Error("server error", zap.Error(err))
		os.Exit(1)
	}
}

func run(logger *zap.Logger, cfg config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := dismissal.ValidateBackend(cfg.DismissalBackend); err != nil {
		return err
	}

	if cfg.TracingEnabled {
		shutdown, err := observability.InitTracing(ctx, logger, cfg.ServiceName, cfg.TempoEndpoint, cfg.TracingSampleRate)
		if err != nil {
			return fmt.Errorf("init tracing: %w", err)
		}
		defer shutdown()
	}

	backend, closeBackend, err := dismissal.Open(cfg)
	if err != nil {
		return err
	}
	defer closeBackend()

	engine := banner.NewEngine(cfg.BannerDefaults())
	metricsRegistry := observability.NewPrometheusRegistry()
	srvDeps := api.NewServer(logger, engine, backend, metricsRegistry, cfg)

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:         addr,
		Handler:      otelhttp.NewHandler(srvDeps.Router(), cfg.ServiceName),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	logger.Info("Open-in-app banner service running",
		zap.String("addr", addr),
		zap.String("dismissal_backend", cfg.DismissalBackend),
		zap.Bool("show_on_web", cfg.ShowOnWeb),
		zap.Strings("webview_markers", engine.Defaults().WebviewMarkers),
		zap.String("webview_pattern", engine.WebviewPattern()))

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("listen: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	return nil
}
