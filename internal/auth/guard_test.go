package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andreeesz17/inmobiliaria-service/internal/auth"
	"github.com/andreeesz17/inmobiliaria-service/internal/domain"
)

func TestEvaluate(t *testing.T) {
	allowed := []domain.Role{domain.RoleAdmin, domain.RoleAgent}

	t.Run("unauthenticated principals go to login", func(t *testing.T) {
		decision := auth.Evaluate(auth.Principal{}, allowed)
		assert.Equal(t, auth.DecisionRedirectLogin, decision)
	})

	t.Run("authentication is checked before role", func(t *testing.T) {
		// Even a principal carrying an entitled role is sent to login
		// when not authenticated.
		p := auth.Principal{Authenticated: false, Role: "admin"}
		assert.Equal(t, auth.DecisionRedirectLogin, auth.Evaluate(p, allowed))
	})

	t.Run("authenticated without role is pending", func(t *testing.T) {
		p := auth.Principal{Authenticated: true}
		assert.Equal(t, auth.DecisionPending, auth.Evaluate(p, allowed))
	})

	t.Run("authenticated with wrong role goes home, not to login", func(t *testing.T) {
		p := auth.Principal{Authenticated: true, Role: "user"}
		assert.Equal(t, auth.DecisionRedirectHome, auth.Evaluate(p, allowed))
	})

	t.Run("entitled principal is admitted", func(t *testing.T) {
		p := auth.Principal{Authenticated: true, Role: "agent"}
		assert.Equal(t, auth.DecisionAdmit, auth.Evaluate(p, allowed))
	})

	t.Run("unknown role is a home redirect", func(t *testing.T) {
		p := auth.Principal{Authenticated: true, Role: "superuser"}
		assert.Equal(t, auth.DecisionRedirectHome, auth.Evaluate(p, allowed))
	})
}

func TestEvaluateArea(t *testing.T) {
	admin := auth.Principal{Authenticated: true, Role: "admin"}
	user := auth.Principal{Authenticated: true, Role: "user"}

	assert.Equal(t, auth.DecisionAdmit, auth.EvaluateArea(admin, auth.AreaRequestDecisions))
	assert.Equal(t, auth.DecisionRedirectHome, auth.EvaluateArea(user, auth.AreaRequestDecisions))
	assert.Equal(t, auth.DecisionAdmit, auth.EvaluateArea(user, auth.AreaRequests))
}

func TestDecision_String(t *testing.T) {
	assert.Equal(t, "admit", auth.DecisionAdmit.String())
	assert.Equal(t, "redirect_login", auth.DecisionRedirectLogin.String())
	assert.Equal(t, "redirect_home", auth.DecisionRedirectHome.String())
	assert.Equal(t, "pending", auth.DecisionPending.String())
	assert.Equal(t, "unknown", auth.Decision(42).String())
}
