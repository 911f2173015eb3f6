package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/patrickwarner/openinapp/internal/middleware"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// BannerHandler handles GET /banner and returns the decision for the caller.
func (s *Server) BannerHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "BannerHandler",
		trace.WithAttributes(
			attribute.String("http.method", "GET"),
			attribute.String("http.route", "/banner"),
		))
	defer span.End()
	r = r.WithContext(ctx)

	logger := middleware.LoggerFromRequest(r, s.Logger)

	start := time.Now()
	const endpoint = "/banner"
	const method = "GET"

	d := s.observe(r, s.session(w, r), logger)
	span.SetAttributes(
		attribute.Bool("banner.visible", d.Visible),
		attribute.String("banner.platform", string(d.Platform)),
		attribute.String("banner.reason", d.Reason),
	)

	w.Header().Set("Cache-Control", "no-store")
	if err := writeJSON(w, http.StatusOK, d); err != nil {
		logger.Error("encode decision", zap.Error(err))
	}
	s.Metrics.IncrementRequests(endpoint, method, strconv.Itoa(http.StatusOK))
	s.Metrics.RecordRequestLatency(endpoint, method, time.Since(start))
}
