package api

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/patrickwarner/openinapp/internal/banner"
	"github.com/patrickwarner/openinapp/internal/config"
	"github.com/patrickwarner/openinapp/internal/dismissal"
	"github.com/patrickwarner/openinapp/internal/middleware"
	"github.com/patrickwarner/openinapp/internal/observability"
	"github.com/patrickwarner/openinapp/internal/useragent"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("openinapp")

// Server groups dependencies for HTTP handlers.
type Server struct {
	Logger  *zap.Logger
	Engine  *banner.Engine
	Banner  banner.Config
	Metrics observability.MetricsRegistry
	Config  config.Config

	// Backend holds client-scoped state. When nil the dismissal flag lives
	// in a cookie on the client.
	Backend     dismissal.Backend
	BackendName string
	Cookies     dismissal.CookieOptions
}

// NewServer constructs a Server. A nil backend selects cookie storage.
func NewServer(logger *zap.Logger, engine *banner.Engine, backend dismissal.Backend, metrics observability.MetricsRegistry, cfg config.Config) *Server {
	name := cfg.DismissalBackend
	if backend == nil {
		name = dismissal.BackendCookie
	}
	return &Server{
		Logger:      logger,
		Engine:      engine,
		Banner:      cfg.BannerConfig(),
		Metrics:     metrics,
		Config:      cfg,
		Backend:     backend,
		BackendName: name,
		Cookies: dismissal.CookieOptions{
			Path:   "/",
			MaxAge: cfg.CookieMaxAge,
			Secure: cfg.CookieSecure,
		},
	}
}

// Router wires the routes. Banner routes get the client-id cookie and the
// request logger; /health and /metrics do not.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", s.HealthHandler).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	b := r.NewRoute().Subrouter()
	cookie := s.Config.ClientIDCookie
	if cookie == "" {
		cookie = "openinapp_cid"
	}
	b.Use(middleware.WithClientID(cookie, s.Config.CookieMaxAge, s.Config.CookieSecure))
	b.Use(middleware.WithTraceLogger(s.Logger))
	b.HandleFunc("/banner", s.BannerHandler).Methods(http.MethodGet)
	b.HandleFunc("/banner/dismiss", s.DismissHandler).Methods(http.MethodPost)
	b.HandleFunc("/banner/open", s.OpenHandler).Methods(http.MethodGet)
	return r
}

// session builds the per-request banner.Session.
func (s *Server) session(w http.ResponseWriter, r *http.Request) *banner.Session {
	var store banner.KeyValueStore
	if s.Backend != nil {
		store = s.Backend.For(middleware.ClientIDFromContext(r.Context()))
	} else {
		store = dismissal.NewCookieStore(w, r, s.Cookies)
	}
	return banner.NewSession(s.Engine, s.Banner, store, &redirectNavigator{w: w, r: r})
}

// observe evaluates the decision for the request's user agent. Store read
// failures are logged and counted; the decision then assumes no dismissal.
func (s *Server) observe(r *http.Request, sess *banner.Session, logger *zap.Logger) banner.Decision {
	ua := r.Header.Get("User-Agent")
	d, err := sess.Observe(r.Context(), ua)
	if err != nil {
		s.Metrics.IncrementStoreErrors(s.BackendName, "get")
		logger.Warn("dismissal lookup failed, assuming not dismissed", zap.Error(err))
	}

	device := useragent.Describe(ua)
	s.Metrics.IncrementDecision(platformLabel(d.Platform), d.Reason, device.Type)
	if observability.ShouldSample(observability.GetSamplingRate()) {
		logger.Info("banner decision",
			zap.Bool("visible", d.Visible),
			zap.String("platform", string(d.Platform)),
			zap.String("reason", d.Reason),
			zap.String("device", device.Type),
			zap.String("os", device.OS),
			zap.Bool("bot", device.IsBot))
	}
	return d
}

func platformLabel(p banner.Platform) string {
	if p == "" {
		return "none"
	}
	return string(p)
}

// redirectNavigator turns a navigation into a 302. An empty target sends the
// client back to where it came from, like reloading the page.
type redirectNavigator struct {
	w http.ResponseWriter
	r *http.Request
}

func (n *redirectNavigator) Navigate(target string) {
	if target == "" {
		target = returnTarget(n.r)
	}
	http.Redirect(n.w, n.r, target, http.StatusFound)
}

// returnTarget prefers a same-site return_to path, then the Referer, then "/".
func returnTarget(r *http.Request) string {
	if rt := r.URL.Query().Get("return_to"); sameSitePath(rt) {
		return rt
	}
	if ref := r.Referer(); ref != "" {
		return ref
	}
	return "/"
}

// sameSitePath accepts only a local absolute path. Browsers treat a backslash
// as "/" and drop control characters, so both are rejected outright.
func sameSitePath(p string) bool {
	if !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") {
		return false
	}
	for i := 0; i < len(p); i++ {
		if c := p[i]; c == '\\' || c < 0x20 || c == 0x7f {
			return false
		}
	}
	u, err := url.Parse(p)
	if err != nil {
		return false
	}
	return u.Scheme == "" && u.Host == "" && strings.HasPrefix(u.Path, "/") && !strings.HasPrefix(u.Path, "//")
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}
