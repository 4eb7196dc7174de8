package session

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/andreeesz17/inmobiliaria-service/internal/auth"
)

// Manager derives the logical principal from the token slot on demand.
// Nothing is cached: every read recomputes from storage, so the derived
// principal can never diverge from the stored token.
type Manager struct {
	store  Store
	logger *zap.Logger
	now    func() time.Time
}

// ManagerOption customizes a Manager.
type ManagerOption func(*Manager)

// WithClock injects a clock, useful in expiry tests.
func WithClock(now func() time.Time) ManagerOption {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// NewManager builds a Manager over the given store.
func NewManager(store Store, logger *zap.Logger, opts ...ManagerOption) *Manager {
	m := &Manager{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Current derives the principal from the stored token. A missing,
// undecodable, or expired token yields the unauthenticated principal;
// corrupt and expired tokens are also evicted from the store so they
// cannot linger.
func (m *Manager) Current(ctx context.Context) auth.Principal {
	token, err := m.store.Get(ctx)
	if err != nil {
		m.logger.Warn("session slot read failed", zap.Error(err))
		return auth.Principal{}
	}
	if token == "" {
		return auth.Principal{}
	}

	claims, err := auth.DecodeClaims(token)
	if err != nil {
		m.logger.Info("evicting undecodable session token", zap.Error(err))
		m.evict(ctx)
		return auth.Principal{}
	}

	if claims.Expired(m.now()) {
		m.logger.Info("evicting expired session token")
		m.evict(ctx)
		return auth.Principal{}
	}

	username := claims.Username
	if username == "" {
		username = claims.Subject
	}

	return auth.Principal{
		Authenticated: true,
		Role:          claims.EffectiveRole(),
		Username:      username,
		Subject:       claims.Subject,
	}
}

// Establish stores the token for subsequent derivations.
func (m *Manager) Establish(ctx context.Context, token string) error {
	return m.store.Set(ctx, token)
}

// Destroy resets the session to the unauthenticated state.
func (m *Manager) Destroy(ctx context.Context) error {
	return m.store.Clear(ctx)
}

func (m *Manager) evict(ctx context.Context) {
	if err := m.store.Clear(ctx); err != nil {
		m.logger.Warn("session slot clear failed", zap.Error(err))
	}
}
