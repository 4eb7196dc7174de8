package session_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/andreeesz17/inmobiliaria-service/internal/session"
)

func makeToken(t *testing.T, payload map[string]any) string {
	t.Helper()
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	return header + "." + base64.RawURLEncoding.EncodeToString(body) + ".sig"
}

func newManager(t *testing.T, store session.Store, now time.Time) *session.Manager {
	t.Helper()
	return session.NewManager(store, zap.NewNop(), session.WithClock(func() time.Time { return now }))
}

func TestManager_Current(t *testing.T) {
	ctx := context.Background()
	now := time.Unix(1700000000, 0)

	t.Run("empty slot yields unauthenticated principal", func(t *testing.T) {
		m := newManager(t, session.NewMemoryStore(), now)
		p := m.Current(ctx)
		assert.False(t, p.Authenticated)
		assert.Empty(t, p.Role)
	})

	t.Run("valid token yields principal with role and username", func(t *testing.T) {
		store := session.NewMemoryStore()
		m := newManager(t, store, now)
		token := makeToken(t, map[string]any{
			"sub":      "user-1",
			"username": "maria",
			"role":     "agent",
			"exp":      now.Add(time.Hour).Unix(),
		})
		require.NoError(t, m.Establish(ctx, token))

		p := m.Current(ctx)
		assert.True(t, p.Authenticated)
		assert.Equal(t, "agent", p.Role)
		assert.Equal(t, "maria", p.Username)
		assert.Equal(t, "user-1", p.Subject)
	})

	t.Run("username falls back to subject", func(t *testing.T) {
		store := session.NewMemoryStore()
		m := newManager(t, store, now)
		require.NoError(t, m.Establish(ctx, makeToken(t, map[string]any{
			"sub":  "user-2",
			"role": "user",
		})))

		p := m.Current(ctx)
		assert.Equal(t, "user-2", p.Username)
	})

	t.Run("role falls back to roles list", func(t *testing.T) {
		store := session.NewMemoryStore()
		m := newManager(t, store, now)
		require.NoError(t, m.Establish(ctx, makeToken(t, map[string]any{
			"sub":   "user-3",
			"roles": []string{"admin", "agent"},
		})))

		p := m.Current(ctx)
		assert.True(t, p.Authenticated)
		assert.Equal(t, "admin", p.Role)
	})

	t.Run("undecodable token is evicted", func(t *testing.T) {
		store := session.NewMemoryStore()
		m := newManager(t, store, now)
		require.NoError(t, m.Establish(ctx, "garbage-token"))

		p := m.Current(ctx)
		assert.False(t, p.Authenticated)

		stored, err := store.Get(ctx)
		require.NoError(t, err)
		assert.Empty(t, stored, "corrupt token should be cleared")
	})

	t.Run("expired token is evicted", func(t *testing.T) {
		store := session.NewMemoryStore()
		m := newManager(t, store, now)
		require.NoError(t, m.Establish(ctx, makeToken(t, map[string]any{
			"sub":  "user-4",
			"role": "admin",
			"exp":  now.Add(-time.Minute).Unix(),
		})))

		p := m.Current(ctx)
		assert.False(t, p.Authenticated)

		stored, err := store.Get(ctx)
		require.NoError(t, err)
		assert.Empty(t, stored, "expired token should be cleared")
	})

	t.Run("token without exp stays live", func(t *testing.T) {
		store := session.NewMemoryStore()
		m := newManager(t, store, now)
		require.NoError(t, m.Establish(ctx, makeToken(t, map[string]any{
			"sub":  "user-5",
			"role": "user",
		})))

		assert.True(t, m.Current(ctx).Authenticated)
	})

	t.Run("derivation is recomputed on every read", func(t *testing.T) {
		store := session.NewMemoryStore()
		m := newManager(t, store, now)
		require.NoError(t, m.Establish(ctx, makeToken(t, map[string]any{
			"sub": "user-6", "role": "user",
		})))
		assert.Equal(t, "user", m.Current(ctx).Role)

		// Swapping the stored token changes the derived principal with
		// no extra invalidation step.
		require.NoError(t, m.Establish(ctx, makeToken(t, map[string]any{
			"sub": "user-6", "role": "admin",
		})))
		assert.Equal(t, "admin", m.Current(ctx).Role)
	})
}

func TestManager_Destroy(t *testing.T) {
	ctx := context.Background()
	store := session.NewMemoryStore()
	m := newManager(t, store, time.Now())

	require.NoError(t, m.Establish(ctx, makeToken(t, map[string]any{
		"sub": "user-7", "role": "agent",
	})))
	require.True(t, m.Current(ctx).Authenticated)

	require.NoError(t, m.Destroy(ctx))
	assert.False(t, m.Current(ctx).Authenticated)
}
