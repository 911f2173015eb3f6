package banner

import (
	"fmt"
	"strings"
)

// Platform identifies which store a user agent maps to.
type Platform string

const (
	PlatformIOS     Platform = "ios"
	PlatformAndroid Platform = "android"
	PlatformWeb     Platform = "web"
)

// Reasons attached to a Decision.
const (
	ReasonDismissed = "dismissed"
	ReasonWebview   = "webview"
	ReasonPlatform  = "platform"
	ReasonShowOnWeb = "show_on_web"
	ReasonWebHidden = "web_hidden"
)

// Config is supplied by the embedding application and never mutated.
type Config struct {
	// ShowOnWeb shows the banner on desktop browsers too (without a store link).
	ShowOnWeb bool `json:"show_on_web"`

	// PlayStoreBaseHref overrides the Google Play base href when set.
	PlayStoreBaseHref string `json:"play_store_base_href,omitempty"`
	PlayStoreAppID    string `json:"play_store_app_id"`

	// AppStoreBaseHref overrides the Apple App Store base href when set.
	AppStoreBaseHref string `json:"app_store_base_href,omitempty"`
	AppStoreAppID    string `json:"app_store_app_id"`
	AppStoreAppName  string `json:"app_store_app_name"`
}

// ClientContext is what the engine knows about the visiting client.
type ClientContext struct {
	UserAgent          string
	PersistedDismissal bool
}

// Decision is the read model handed to the presentation layer.
// StoreLink is empty unless Platform is iOS or Android.
type Decision struct {
	Visible   bool     `json:"visible"`
	StoreLink string   `json:"store_link"`
	Platform  Platform `json:"platform,omitempty"`
	Reason    string   `json:"reason"`
}

// Engine evaluates banner decisions. It is safe for concurrent use.
type Engine struct {
	defaults Defaults
	webview  *WebviewMatcher
}

// NewEngine builds an Engine, compiling the webview pattern once.
func NewEngine(d Defaults) *Engine {
	return &Engine{
		defaults: d,
		webview:  NewWebviewMatcher(d.WebviewMarkers),
	}
}

// Defaults returns the constants the engine was built with.
func (e *Engine) Defaults() Defaults {
	return e.defaults
}

// WebviewPattern returns the compiled exclusion expression, or "" when
// exclusion is disabled.
func (e *Engine) WebviewPattern() string {
	return e.webview.Pattern()
}

// Evaluate decides visibility and the store link for one client.
func (e *Engine) Evaluate(cfg Config, cctx ClientContext) Decision {
	if cctx.PersistedDismissal {
		return Decision{Visible: false, Reason: ReasonDismissed}
	}
	// exclusion is case-insensitive, platform checks below are not
	if e.webview.Match(cctx.UserAgent) {
		return Decision{Visible: false, Reason: ReasonWebview}
	}

	switch DetectPlatform(cctx.UserAgent) {
	case PlatformIOS:
		return Decision{
			Visible:   true,
			StoreLink: e.AppStoreLink(cfg),
			Platform:  PlatformIOS,
			Reason:    ReasonPlatform,
		}
	case PlatformAndroid:
		return Decision{
			Visible:   true,
			StoreLink: e.PlayStoreLink(cfg),
			Platform:  PlatformAndroid,
			Reason:    ReasonPlatform,
		}
	}

	if cfg.ShowOnWeb {
		return Decision{Visible: true, Platform: PlatformWeb, Reason: ReasonShowOnWeb}
	}
	return Decision{Visible: false, Platform: PlatformWeb, Reason: ReasonWebHidden}
}

// AppStoreLink builds the Apple listing URL.
func (e *Engine) AppStoreLink(cfg Config) string {
	base := cfg.AppStoreBaseHref
	if base == "" {
		base = e.defaults.AppStoreBaseHref
	}
	return fmt.Sprintf("%s/%s/id%s?mt-8", base, cfg.AppStoreAppName, cfg.AppStoreAppID)
}

// PlayStoreLink builds the Google Play listing URL.
func (e *Engine) PlayStoreLink(cfg Config) string {
	base := cfg.PlayStoreBaseHref
	if base == "" {
		base = e.defaults.PlayStoreBaseHref
	}
	return fmt.Sprintf("%s/details?id=%s", base, cfg.PlayStoreAppID)
}

// DetectPlatform checks iOS markers before Android, so a user agent
// carrying both resolves to iOS. Matching is case-sensitive.
func DetectPlatform(userAgent string) Platform {
	if strings.Contains(userAgent, "iPad") ||
		strings.Contains(userAgent, "iPhone") ||
		strings.Contains(userAgent, "iPod") {
		return PlatformIOS
	}
	if strings.Contains(userAgent, "Android") {
		return PlatformAndroid
	}
	return PlatformWeb
}
