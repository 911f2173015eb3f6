package banner

import (
	"regexp"
	"strings"
)

// WebviewMatcher reports whether a user agent belongs to an embedded browser.
// The zero value matches nothing.
type WebviewMatcher struct {
	re *regexp.Regexp
}

// NewWebviewMatcher compiles markers into a single case-insensitive
// alternation. Markers are literal substrings; blank ones are skipped.
func NewWebviewMatcher(markers []string) *WebviewMatcher {
	parts := make([]string, 0, len(markers))
	for _, m := range markers {
		if strings.TrimSpace(m) == "" {
			continue
		}
		parts = append(parts, regexp.QuoteMeta(m))
	}
	if len(parts) == 0 {
		return &WebviewMatcher{}
	}
	return &WebviewMatcher{
		re: regexp.MustCompile("(?i)(" + strings.Join(parts, "|") + ")"),
	}
}

// Match returns true if userAgent contains any configured marker.
func (m *WebviewMatcher) Match(userAgent string) bool {
	if m == nil || m.re == nil {
		return false
	}
	return m.re.MatchString(userAgent)
}

// Pattern exposes the compiled expression, or "" when exclusion is disabled.
func (m *WebviewMatcher) Pattern() string {
	if m == nil || m.re == nil {
		return ""
	}
	return m.re.String()
}
