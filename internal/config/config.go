package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/patrickwarner/openinapp/internal/banner"
)

// Config holds application configuration derived from environment variables.
type Config struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	ServiceName  string
	RedisAddr    string
	PostgresDSN  string
	// Database connection pooling configuration
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration
	DBConnMaxIdleTime time.Duration
	// Tracing configuration
	TracingEnabled    bool
	TempoEndpoint     string
	TracingSampleRate float64
	// Client state
	DismissalBackend string
	DismissalTTL     time.Duration
	CookieMaxAge     time.Duration
	CookieSecure     bool
	ClientIDCookie   string
	// Banner
	ShowOnWeb                bool
	PlayStoreAppID           string
	PlayStoreBaseHref        string
	AppStoreAppID            string
	AppStoreAppName          string
	AppStoreBaseHref         string
	DefaultPlayStoreBaseHref string
	DefaultAppStoreBaseHref  string
	WebviewMarkers           []string
}

// Load parses environment variables and returns a Config populated with
// defaults when variables are absent.
func Load() Config {
	cfg := Config{}

	cfg.Port = getenv("PORT", "8787")
	cfg.ReadTimeout = envDuration("READ_TIMEOUT", 5*time.Second)
	cfg.WriteTimeout = envDuration("WRITE_TIMEOUT", 10*time.Second)
	cfg.ServiceName = getenv("SERVICE_NAME", "openinapp")
	cfg.RedisAddr = getenv("REDIS_ADDR", "localhost:6379")
	cfg.PostgresDSN = getenv("POSTGRES_DSN", "postgres://postgres@127.0.0.1:5432/postgres?sslmode=disable")

	cfg.DBMaxOpenConns = envInt("DB_MAX_OPEN_CONNS", 10)
	cfg.DBMaxIdleConns = envInt("DB_MAX_IDLE_CONNS", 5)
	cfg.DBConnMaxLifetime = envDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute)
	cfg.DBConnMaxIdleTime = envDuration("DB_CONN_MAX_IDLE_TIME", 1*time.Minute)

	cfg.TracingEnabled = envBool("TRACING_ENABLED", false)
	cfg.TempoEndpoint = getenv("TEMPO_ENDPOINT", "tempo:4317")
	cfg.TracingSampleRate = envFloat("TRACING_SAMPLE_RATE", 1.0)

	cfg.DismissalBackend = strings.ToLower(getenv("DISMISSAL_BACKEND", "cookie"))
	// zero means the flag never expires
	cfg.DismissalTTL = envDuration("DISMISSAL_TTL", 0)
	cfg.CookieMaxAge = envDuration("COOKIE_MAX_AGE", 365*24*time.Hour)
	cfg.CookieSecure = envBool("COOKIE_SECURE", false)
	cfg.ClientIDCookie = getenv("CLIENT_ID_COOKIE", "openinapp_cid")

	cfg.ShowOnWeb = envBool("SHOW_ON_WEB", false)
	cfg.PlayStoreAppID = os.Getenv("PLAY_STORE_APP_ID")
	cfg.PlayStoreBaseHref = os.Getenv("PLAY_STORE_BASE_HREF")
	cfg.AppStoreAppID = os.Getenv("APP_STORE_APP_ID")
	cfg.AppStoreAppName = os.Getenv("APP_STORE_APP_NAME")
	cfg.AppStoreBaseHref = os.Getenv("APP_STORE_BASE_HREF")
	cfg.DefaultPlayStoreBaseHref = getenv("DEFAULT_PLAY_STORE_BASE_HREF", banner.DefaultPlayStoreBaseHref)
	cfg.DefaultAppStoreBaseHref = getenv("DEFAULT_APP_STORE_BASE_HREF", banner.DefaultAppStoreBaseHref)
	cfg.WebviewMarkers = envList("WEBVIEW_MARKERS", banner.DefaultWebviewMarkers)

	return cfg
}

// BannerConfig projects the app identifiers into a banner.Config.
func (c Config) BannerConfig() banner.Config {
	return banner.Config{
		ShowOnWeb:         c.ShowOnWeb,
		PlayStoreAppID:    c.PlayStoreAppID,
		PlayStoreBaseHref: c.PlayStoreBaseHref,
		AppStoreAppID:     c.AppStoreAppID,
		AppStoreAppName:   c.AppStoreAppName,
		AppStoreBaseHref:  c.AppStoreBaseHref,
	}
}

// BannerDefaults projects the configuration constants into banner.Defaults.
func (c Config) BannerDefaults() banner.Defaults {
	markers := make([]string, len(c.WebviewMarkers))
	copy(markers, c.WebviewMarkers)
	return banner.Defaults{
		AppStoreBaseHref:  c.DefaultAppStoreBaseHref,
		PlayStoreBaseHref: c.DefaultPlayStoreBaseHref,
		WebviewMarkers:    markers,
	}
}

// getenv returns the value of the environment variable if set, otherwise def.
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// envDuration parses an environment variable into a time.Duration.
// The value can be a duration string (e.g. "5s") or a number of seconds.
// If the variable is unset or invalid, def is returned.
func envDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	return def
}

// envBool parses a boolean environment variable. Accepted values are those
// supported by strconv.ParseBool. When unset or invalid, def is returned.
func envBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if b, err := strconv.ParseBool(v); err == nil {
		return b
	}
	return def
}

// envInt parses an integer environment variable. When unset or invalid, def is returned.
func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if i, err := strconv.Atoi(v); err == nil {
		return i
	}
	return def
}

// envFloat parses a float64 environment variable. When unset or invalid, def is returned.
func envFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return f
	}
	return def
}

// envList splits a comma separated variable, trimming blanks. An unset
// variable yields def; a variable set to "-" yields an empty list.
func envList(key string, def []string) []string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	if v == "-" {
		return []string{}
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
