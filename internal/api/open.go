package api

import (
	"net/http"
	"time"

	"github.com/patrickwarner/openinapp/internal/middleware"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type openResponse struct {
	StoreLink string `json:"store_link"`
}

// OpenHandler handles GET /banner/open. By default it redirects to the store
// link. With handler=json the caller handles navigation itself and receives
// the link instead. The link is not validated and may be empty.
func (s *Server) OpenHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "OpenHandler",
		trace.WithAttributes(
			attribute.String("http.method", "GET"),
			attribute.String("http.route", "/banner/open"),
		))
	defer span.End()
	r = r.WithContext(ctx)

	logger := middleware.LoggerFromRequest(r, s.Logger)

	start := time.Now()
	const endpoint = "/banner/open"
	const method = "GET"

	sess := s.session(w, r)
	d := s.observe(r, sess, logger)
	span.SetAttributes(attribute.String("banner.store_link", d.StoreLink))
	w.Header().Set("Cache-Control", "no-store")

	if r.URL.Query().Get("handler") == "json" {
		sess.ActivateStoreLink(func(link string) {
			if err := writeJSON(w, http.StatusOK, openResponse{StoreLink: link}); err != nil {
				logger.Error("encode store link", zap.Error(err))
			}
		})
		s.Metrics.IncrementStoreOpens(platformLabel(d.Platform), "handler")
		s.Metrics.IncrementRequests(endpoint, method, "200")
		s.Metrics.RecordRequestLatency(endpoint, method, time.Since(start))
		return
	}

	logger.Debug("redirecting to store", zap.String("url", d.StoreLink))
	sess.ActivateStoreLink(nil)
	s.Metrics.IncrementStoreOpens(platformLabel(d.Platform), "navigate")
	s.Metrics.IncrementRequests(endpoint, method, "302")
	s.Metrics.RecordRequestLatency(endpoint, method, time.Since(start))
}
