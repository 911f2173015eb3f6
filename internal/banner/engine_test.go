package banner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testConfig() Config {
	return Config{
		PlayStoreAppID:  "1234",
		AppStoreAppID:   "1234",
		AppStoreAppName: "1234",
	}
}

func TestEvaluate(t *testing.T) {
	engine := NewEngine(StandardDefaults())

	tests := []struct {
		name      string
		ua        string
		showOnWeb bool
		dismissed bool
		visible   bool
		link      string
		platform  Platform
		reason    string
	}{
		{
			name:     "android",
			ua:       "somethingAndroid",
			visible:  true,
			link:     "https://play.google.com/store/apps/details?id=1234",
			platform: PlatformAndroid,
			reason:   ReasonPlatform,
		},
		{
			name:     "ipad",
			ua:       "somethingiPadsandSafari",
			visible:  true,
			link:     "http://itunes.apple.com/app/1234/id1234?mt-8",
			platform: PlatformIOS,
			reason:   ReasonPlatform,
		},
		{
			name:     "iphone",
			ua:       "Mozilla/5.0 (iPhone; CPU iPhone OS 15_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/15.0 Mobile/15E148 Safari/605.1.15",
			visible:  true,
			link:     "http://itunes.apple.com/app/1234/id1234?mt-8",
			platform: PlatformIOS,
			reason:   ReasonPlatform,
		},
		{
			name:     "ipod",
			ua:       "Mozilla/5.0 (iPod touch; CPU iPhone OS 12_0 like Mac OS X)",
			visible:  true,
			link:     "http://itunes.apple.com/app/1234/id1234?mt-8",
			platform: PlatformIOS,
			reason:   ReasonPlatform,
		},
		{
			name:     "android chrome",
			ua:       "Mozilla/5.0 (Linux; Android 11; SM-G975F) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/100.0.4896.58 Mobile Safari/537.36",
			visible:  true,
			link:     "https://play.google.com/store/apps/details?id=1234",
			platform: PlatformAndroid,
			reason:   ReasonPlatform,
		},
		{
			name:   "android webview",
			ua:     "fooAndroidwvfoo",
			reason: ReasonWebview,
		},
		{
			name:   "webview marker is case-insensitive",
			ua:     "Mozilla/5.0 (iPhone) WEBVIEW",
			reason: ReasonWebview,
		},
		{
			name:      "web shown",
			ua:        "test",
			showOnWeb: true,
			visible:   true,
			platform:  PlatformWeb,
			reason:    ReasonShowOnWeb,
		},
		{
			name:     "web hidden",
			ua:       "test",
			platform: PlatformWeb,
			reason:   ReasonWebHidden,
		},
		{
			name:      "platform markers are case-sensitive",
			ua:        "iphone android",
			showOnWeb: true,
			visible:   true,
			platform:  PlatformWeb,
			reason:    ReasonShowOnWeb,
		},
		{
			name:     "ios wins over android",
			ua:       "Android iPhone",
			visible:  true,
			link:     "http://itunes.apple.com/app/1234/id1234?mt-8",
			platform: PlatformIOS,
			reason:   ReasonPlatform,
		},
		{
			name:      "dismissed overrides platform",
			ua:        "somethingAndroid",
			dismissed: true,
			reason:    ReasonDismissed,
		},
		{
			name:      "dismissed overrides show on web",
			ua:        "test",
			showOnWeb: true,
			dismissed: true,
			reason:    ReasonDismissed,
		},
		{
			name:     "empty user agent",
			ua:       "",
			platform: PlatformWeb,
			reason:   ReasonWebHidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.ShowOnWeb = tt.showOnWeb
			got := engine.Evaluate(cfg, ClientContext{UserAgent: tt.ua, PersistedDismissal: tt.dismissed})
			assert.Equal(t, tt.visible, got.Visible)
			assert.Equal(t, tt.link, got.StoreLink)
			assert.Equal(t, tt.platform, got.Platform)
			assert.Equal(t, tt.reason, got.Reason)
		})
	}
}

func TestEvaluate_BaseHrefOverrides(t *testing.T) {
	engine := NewEngine(StandardDefaults())
	cfg := testConfig()
	cfg.AppStoreBaseHref = "https://apps.apple.com/us/app"
	cfg.PlayStoreBaseHref = "market://"

	ios := engine.Evaluate(cfg, ClientContext{UserAgent: "iPhone"})
	assert.Equal(t, "https://apps.apple.com/us/app/1234/id1234?mt-8", ios.StoreLink)

	android := engine.Evaluate(cfg, ClientContext{UserAgent: "Android"})
	assert.Equal(t, "market:///details?id=1234", android.StoreLink)
}

func TestEvaluate_CustomDefaults(t *testing.T) {
	engine := NewEngine(Defaults{
		AppStoreBaseHref:  "https://example.test/apple",
		PlayStoreBaseHref: "https://example.test/play",
		WebviewMarkers:    []string{"MyShell"},
	})
	cfg := testConfig()

	assert.Equal(t, "https://example.test/apple/1234/id1234?mt-8",
		engine.Evaluate(cfg, ClientContext{UserAgent: "iPad"}).StoreLink)
	assert.Equal(t, "https://example.test/play/details?id=1234",
		engine.Evaluate(cfg, ClientContext{UserAgent: "Android"}).StoreLink)

	// "wv" is not configured here
	assert.True(t, engine.Evaluate(cfg, ClientContext{UserAgent: "Android wv"}).Visible)
	assert.False(t, engine.Evaluate(cfg, ClientContext{UserAgent: "Android myshell/2.0"}).Visible)
}

func TestEvaluate_LinkOnlyForMobilePlatforms(t *testing.T) {
	engine := NewEngine(StandardDefaults())
	cfg := testConfig()
	cfg.ShowOnWeb = true

	for _, ua := range []string{"iPhone", "Android", "Windows NT", "", "iPhone wv", "Android"} {
		for _, dismissed := range []bool{false, true} {
			d := engine.Evaluate(cfg, ClientContext{UserAgent: ua, PersistedDismissal: dismissed})
			mobile := d.Platform == PlatformIOS || d.Platform == PlatformAndroid
			assert.Equal(t, mobile, d.StoreLink != "", "ua=%q dismissed=%v", ua, dismissed)
			if dismissed {
				assert.False(t, d.Visible, "ua=%q", ua)
			}
		}
	}
}

func TestDetectPlatform(t *testing.T) {
	assert.Equal(t, PlatformIOS, DetectPlatform("iPod"))
	assert.Equal(t, PlatformIOS, DetectPlatform("xxiPadxx"))
	assert.Equal(t, PlatformAndroid, DetectPlatform("Linux; Android 14"))
	assert.Equal(t, PlatformWeb, DetectPlatform("Macintosh; Intel Mac OS X"))
	assert.Equal(t, PlatformWeb, DetectPlatform("ANDROID"))
}

func TestWebviewMatcher(t *testing.T) {
	m := NewWebviewMatcher([]string{"wv", " ", "Line/", "a.b"})
	assert.True(t, m.Match("Android; WV)"))
	assert.True(t, m.Match("line/10.2"))
	assert.True(t, m.Match("xa.bx"))
	// markers are literals, not expressions
	assert.False(t, m.Match("axb"))
	assert.False(t, m.Match("Chrome Mobile"))

	empty := NewWebviewMatcher(nil)
	assert.False(t, empty.Match("anything wv"))
	assert.Equal(t, "", empty.Pattern())

	var nilMatcher *WebviewMatcher
	assert.False(t, nilMatcher.Match("wv"))
}

func TestEngineExposesDefaults(t *testing.T) {
	d := Defaults{
		AppStoreBaseHref:  "https://apps.example/app",
		PlayStoreBaseHref: "https://play.example/store",
		WebviewMarkers:    []string{"FBAN", "a.b"},
	}
	e := NewEngine(d)
	assert.Equal(t, d, e.Defaults())
	assert.Equal(t, `(?i)(FBAN|a\.b)`, e.WebviewPattern())

	assert.Equal(t, "", NewEngine(Defaults{}).WebviewPattern())
}

func TestStandardDefaultsCopiesMarkers(t *testing.T) {
	d := StandardDefaults()
	d.WebviewMarkers[0] = "changed"
	assert.Equal(t, "wv", DefaultWebviewMarkers[0])
}
