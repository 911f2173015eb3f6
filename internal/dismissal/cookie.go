package dismissal

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// CookieOptions controls the cookies written by CookieStore.
type CookieOptions struct {
	Path   string
	MaxAge time.Duration
	Secure bool
}

// CookieStore keeps values in cookies on the current request and response,
// much like browser localStorage. It is bound to one request.
type CookieStore struct {
	w    http.ResponseWriter
	r    *http.Request
	opts CookieOptions
	// values written during this request, visible to later Gets
	written map[string]string
}

// NewCookieStore binds a CookieStore to one request/response pair.
func NewCookieStore(w http.ResponseWriter, r *http.Request, opts CookieOptions) *CookieStore {
	if opts.Path == "" {
		opts.Path = "/"
	}
	return &CookieStore{w: w, r: r, opts: opts, written: make(map[string]string)}
}

func (s *CookieStore) Get(_ context.Context, key string) (string, bool, error) {
	if v, ok := s.written[key]; ok {
		return v, true, nil
	}
	c, err := s.r.Cookie(key)
	if err == http.ErrNoCookie {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	v, err := url.QueryUnescape(c.Value)
	if err != nil {
		return c.Value, true, nil
	}
	return v, true, nil
}

func (s *CookieStore) Set(_ context.Context, key, value string) error {
	http.SetCookie(s.w, &http.Cookie{
		Name:     key,
		Value:    url.QueryEscape(value),
		Path:     s.opts.Path,
		MaxAge:   int(s.opts.MaxAge / time.Second),
		HttpOnly: true,
		Secure:   s.opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	s.written[key] = value
	return nil
}
