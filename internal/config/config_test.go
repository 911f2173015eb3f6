package config

import (
	"testing"
	"time"

	"github.com/patrickwarner/openinapp/internal/banner"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()
	assert.Equal(t, "8787", cfg.Port)
	assert.Equal(t, "cookie", cfg.DismissalBackend)
	assert.Equal(t, "openinapp_cid", cfg.ClientIDCookie)
	assert.Equal(t, banner.DefaultWebviewMarkers, cfg.WebviewMarkers)

	d := cfg.BannerDefaults()
	assert.Equal(t, banner.DefaultAppStoreBaseHref, d.AppStoreBaseHref)
	assert.Equal(t, banner.DefaultPlayStoreBaseHref, d.PlayStoreBaseHref)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("READ_TIMEOUT", "7")
	t.Setenv("DISMISSAL_BACKEND", "Redis")
	t.Setenv("DISMISSAL_TTL", "720h")
	t.Setenv("SHOW_ON_WEB", "true")
	t.Setenv("PLAY_STORE_APP_ID", "com.example.app")
	t.Setenv("APP_STORE_APP_ID", "1234")
	t.Setenv("APP_STORE_APP_NAME", "example")
	t.Setenv("WEBVIEW_MARKERS", " wv, ,FBAN ")

	cfg := Load()
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, 7*time.Second, cfg.ReadTimeout)
	assert.Equal(t, "redis", cfg.DismissalBackend)
	assert.Equal(t, 720*time.Hour, cfg.DismissalTTL)
	assert.Equal(t, []string{"wv", "FBAN"}, cfg.WebviewMarkers)

	bc := cfg.BannerConfig()
	assert.True(t, bc.ShowOnWeb)
	assert.Equal(t, "com.example.app", bc.PlayStoreAppID)
	assert.Equal(t, "1234", bc.AppStoreAppID)
	assert.Equal(t, "example", bc.AppStoreAppName)
	assert.Equal(t, "", bc.AppStoreBaseHref)
}

func TestLoad_DisableWebviewMarkers(t *testing.T) {
	t.Setenv("WEBVIEW_MARKERS", "-")
	assert.Empty(t, Load().WebviewMarkers)
}

func TestEnvHelpers_Invalid(t *testing.T) {
	t.Setenv("X_BOOL", "maybe")
	t.Setenv("X_INT", "ten")
	t.Setenv("X_DUR", "soon")
	assert.True(t, envBool("X_BOOL", true))
	assert.Equal(t, 3, envInt("X_INT", 3))
	assert.Equal(t, time.Second, envDuration("X_DUR", time.Second))
}
