package auth

import (
	"github.com/andreeesz17/inmobiliaria-service/internal/domain"
)

// LoginPath is the unauthenticated entry point guards redirect to.
const LoginPath = "/auth/login"

// HomePath is the generic authenticated landing area for principals
// denied on role grounds. A valid principal lands here, not on login.
const HomePath = "/home"

// Principal is the identity derived from the current session.
type Principal struct {
	Authenticated bool
	Role          string
	Username      string
	Subject       string
}

// Decision is the outcome of evaluating a navigation attempt. Guards
// never fail; every attempt resolves to exactly one decision.
type Decision int

const (
	// DecisionAdmit renders the target.
	DecisionAdmit Decision = iota
	// DecisionRedirectLogin denies on authentication grounds.
	DecisionRedirectLogin
	// DecisionRedirectHome denies on role grounds; the principal is
	// valid, just not entitled.
	DecisionRedirectHome
	// DecisionPending means the principal is authenticated but its role
	// is not yet derivable; not a hard deny, recheck on next attempt.
	DecisionPending
)

func (d Decision) String() string {
	switch d {
	case DecisionAdmit:
		return "admit"
	case DecisionRedirectLogin:
		return "redirect_login"
	case DecisionRedirectHome:
		return "redirect_home"
	case DecisionPending:
		return "pending"
	default:
		return "unknown"
	}
}

// Evaluate runs the two-stage gate: authentication first, then role
// membership against the allowed set.
func Evaluate(p Principal, allowed []domain.Role) Decision {
	if !p.Authenticated {
		return DecisionRedirectLogin
	}
	if p.Role == "" {
		return DecisionPending
	}
	if !IsRoleAllowed(p.Role, allowed) {
		return DecisionRedirectHome
	}
	return DecisionAdmit
}

// EvaluateArea is Evaluate against the capability table entry for area.
func EvaluateArea(p Principal, area Area) Decision {
	return Evaluate(p, AllowedRoles(area))
}
