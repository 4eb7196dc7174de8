package auth

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/andreeesz17/inmobiliaria-service/pkg/util/errorutil"
)

const principalKey = "auth_principal"

// PrincipalSource derives the current principal from session storage.
// Implemented by session.Manager.
type PrincipalSource interface {
	Current(ctx context.Context) Principal
}

// Middleware resolves the caller's principal on every request. A bearer
// header, when present, is verified against the signing key and wins
// over the session slot; the slot path only decodes claims, so the role
// it yields is advisory until the header path confirms it.
type Middleware struct {
	tokens   *TokenManager
	sessions PrincipalSource
}

// NewMiddleware constructs middleware.
func NewMiddleware(tokens *TokenManager, sessions PrincipalSource) *Middleware {
	return &Middleware{tokens: tokens, sessions: sessions}
}

// Handle resolves and stores the principal. It never rejects by itself;
// admission is decided per-route by RequireArea.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	c.Locals(principalKey, m.resolve(c))
	return c.Next()
}

func (m *Middleware) resolve(c *fiber.Ctx) Principal {
	header := c.Get("Authorization")
	if header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return Principal{}
		}
		claims, err := m.tokens.ParseToken(parts[1])
		if err != nil {
			// Invalid credentials resolve to logged-out, not an error
			// surface; the guard turns that into a login redirect.
			return Principal{}
		}
		username := claims.Username
		if username == "" {
			username = claims.Subject
		}
		return Principal{Authenticated: true, Role: claims.Role, Username: username, Subject: claims.Subject}
	}

	if m.sessions == nil {
		return Principal{}
	}
	return m.sessions.Current(c.UserContext())
}

// RequireArea gates a route group on the capability table entry for the
// area, mapping guard decisions to transport outcomes.
func RequireArea(area Area) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal := PrincipalFromContext(c)
		switch EvaluateArea(principal, area) {
		case DecisionAdmit:
			return c.Next()
		case DecisionRedirectLogin:
			return c.Redirect(LoginPath, fiber.StatusFound)
		case DecisionRedirectHome:
			return c.Redirect(HomePath, fiber.StatusFound)
		case DecisionPending:
			return apperrors.NewForbidden("authorization pending, retry")
		default:
			return apperrors.NewForbidden("access denied")
		}
	}
}

// PrincipalFromContext retrieves the resolved principal. Requests that
// never passed Middleware.Handle read as unauthenticated.
func PrincipalFromContext(c *fiber.Ctx) Principal {
	val := c.Locals(principalKey)
	if val == nil {
		return Principal{}
	}
	principal, ok := val.(Principal)
	if !ok {
		return Principal{}
	}
	return principal
}
