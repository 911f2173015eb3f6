package banner

// Store base hrefs used when a Config leaves its override empty.
const (
	DefaultAppStoreBaseHref  = "http://itunes.apple.com/app"
	DefaultPlayStoreBaseHref = "https://play.google.com/store/apps"
)

// DefaultWebviewMarkers lists user-agent fragments that identify in-app
// browsers and embedded webviews. They are matched case-insensitively.
var DefaultWebviewMarkers = []string{
	"wv",
	"WebView",
	"FBAN",
	"FBAV",
	"Instagram",
	"Twitter",
	"Line/",
	"MicroMessenger",
	"GSA/",
}

// Defaults carries the embedding application's configuration constants.
type Defaults struct {
	AppStoreBaseHref  string
	PlayStoreBaseHref string
	WebviewMarkers    []string
}

// StandardDefaults returns the built-in hrefs and marker list.
func StandardDefaults() Defaults {
	markers := make([]string, len(DefaultWebviewMarkers))
	copy(markers, DefaultWebviewMarkers)
	return Defaults{
		AppStoreBaseHref:  DefaultAppStoreBaseHref,
		PlayStoreBaseHref: DefaultPlayStoreBaseHref,
		WebviewMarkers:    markers,
	}
}
