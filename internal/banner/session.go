package banner

import (
	"context"
	"errors"
	"fmt"
)

// DismissalKey is the key-value store key holding the dismissal flag.
const DismissalKey = "hideOpenInAppBanner"

// DismissedValue is written by Dismiss. Any non-empty value counts as dismissed.
const DismissedValue = "yes"

// ErrNoStore is returned when a Session has no KeyValueStore.
var ErrNoStore = errors.New("banner: key-value store is nil")

// KeyValueStore persists client state across sessions.
type KeyValueStore interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Navigator receives the store link when the client should be sent there.
type Navigator interface {
	Navigate(target string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(target string)

func (f NavigatorFunc) Navigate(target string) { f(target) }

// OpenHandler replaces navigation when supplied to ActivateStoreLink.
type OpenHandler func(storeLink string)

// Session binds one client's state to an Engine and Config. It caches the
// last Decision and only re-evaluates when the user agent or the dismissal
// flag change. A Session is not safe for concurrent use.
type Session struct {
	engine *Engine
	cfg    Config
	store  KeyValueStore
	nav    Navigator

	observed  ClientContext
	evaluated bool
	decision  Decision
}

// NewSession returns a Session. nav may be nil if ActivateStoreLink is
// always called with a handler.
func NewSession(engine *Engine, cfg Config, store KeyValueStore, nav Navigator) *Session {
	return &Session{engine: engine, cfg: cfg, store: store, nav: nav}
}

// Observe reads the persisted flag and re-evaluates if anything changed.
// When the store read fails the decision is made as if not dismissed and
// the error is returned alongside it.
func (s *Session) Observe(ctx context.Context, userAgent string) (Decision, error) {
	dismissed, err := s.dismissed(ctx)
	s.refresh(ClientContext{UserAgent: userAgent, PersistedDismissal: dismissed})
	return s.decision, err
}

func (s *Session) refresh(cctx ClientContext) {
	if s.evaluated && s.observed == cctx {
		return
	}
	s.observed = cctx
	s.decision = s.engine.Evaluate(s.cfg, cctx)
	s.evaluated = true
}

func (s *Session) dismissed(ctx context.Context) (bool, error) {
	if s.store == nil {
		return false, ErrNoStore
	}
	v, ok, err := s.store.Get(ctx, DismissalKey)
	if err != nil {
		return false, fmt.Errorf("read dismissal flag: %w", err)
	}
	return ok && v != "", nil
}

// Decision returns the cached read model.
func (s *Session) Decision() Decision {
	return s.decision
}

// Dismiss persists the flag and hides the banner. Calling it again is harmless.
// The store link is kept so an in-flight ActivateStoreLink still sees it.
func (s *Session) Dismiss(ctx context.Context) error {
	if s.store == nil {
		return ErrNoStore
	}
	if err := s.store.Set(ctx, DismissalKey, DismissedValue); err != nil {
		return fmt.Errorf("persist dismissal flag: %w", err)
	}
	s.observed.PersistedDismissal = true
	s.decision.Visible = false
	s.decision.Reason = ReasonDismissed
	s.evaluated = true
	return nil
}

// ActivateStoreLink hands the current store link to handler, or navigates
// to it when handler is nil. An empty link is passed through unchanged.
func (s *Session) ActivateStoreLink(handler OpenHandler) {
	if handler != nil {
		handler(s.decision.StoreLink)
		return
	}
	if s.nav != nil {
		s.nav.Navigate(s.decision.StoreLink)
	}
}
