package api

import (
	"net/http"
	"time"

	"github.com/patrickwarner/openinapp/internal/middleware"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// DismissHandler handles POST /banner/dismiss. It persists the dismissal
// flag and returns the now hidden decision. Repeating it is harmless.
func (s *Server) DismissHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "DismissHandler",
		trace.WithAttributes(
			attribute.String("http.method", "POST"),
			attribute.String("http.route", "/banner/dismiss"),
		))
	defer span.End()
	r = r.WithContext(ctx)

	logger := middleware.LoggerFromRequest(r, s.Logger)

	start := time.Now()
	const endpoint = "/banner/dismiss"
	const method = "POST"

	sess := s.session(w, r)
	s.observe(r, sess, logger)

	if err := sess.Dismiss(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "dismiss failed")
		logger.Error("dismiss banner", zap.Error(err))
		s.Metrics.IncrementStoreErrors(s.BackendName, "set")
		s.Metrics.IncrementRequests(endpoint, method, "500")
		s.Metrics.RecordRequestLatency(endpoint, method, time.Since(start))
		http.Error(w, "could not dismiss banner", http.StatusInternalServerError)
		return
	}

	logger.Debug("banner dismissed")
	s.Metrics.IncrementDismissals()
	w.Header().Set("Cache-Control", "no-store")
	if err := writeJSON(w, http.StatusOK, sess.Decision()); err != nil {
		logger.Error("encode decision", zap.Error(err))
	}
	s.Metrics.IncrementRequests(endpoint, method, "200")
	s.Metrics.RecordRequestLatency(endpoint, method, time.Since(start))
}
