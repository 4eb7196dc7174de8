package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andreeesz17/inmobiliaria-service/internal/domain"
)

func TestRequestStatus_IsValid(t *testing.T) {
	assert.True(t, domain.RequestStatusPending.IsValid())
	assert.True(t, domain.RequestStatusApproved.IsValid())
	assert.True(t, domain.RequestStatusDeclined.IsValid())
	assert.False(t, domain.RequestStatus("cancelled").IsValid())
	assert.False(t, domain.RequestStatus("").IsValid())
}

func TestRequestStatus_Transitions(t *testing.T) {
	t.Run("pending may be approved or declined", func(t *testing.T) {
		assert.True(t, domain.RequestStatusPending.CanTransition(domain.RequestStatusApproved))
		assert.True(t, domain.RequestStatusPending.CanTransition(domain.RequestStatusDeclined))
	})

	t.Run("terminal states admit no transition", func(t *testing.T) {
		for _, from := range []domain.RequestStatus{domain.RequestStatusApproved, domain.RequestStatusDeclined} {
			assert.True(t, from.IsTerminal())
			for _, to := range []domain.RequestStatus{domain.RequestStatusPending, domain.RequestStatusApproved, domain.RequestStatusDeclined} {
				assert.False(t, from.CanTransition(to), "%s -> %s", from, to)
			}
		}
	})

	t.Run("pending cannot re-enter pending", func(t *testing.T) {
		assert.False(t, domain.RequestStatusPending.CanTransition(domain.RequestStatusPending))
	})
}

func TestParseRole(t *testing.T) {
	tests := []struct {
		raw  string
		role domain.Role
		ok   bool
	}{
		{"admin", domain.RoleAdmin, true},
		{"ADMIN", domain.RoleAdmin, true},
		{" agent ", domain.RoleAgent, true},
		{"User", domain.RoleUser, true},
		{"", "", false},
		{"root", "root", false},
	}

	for _, tc := range tests {
		role, ok := domain.ParseRole(tc.raw)
		assert.Equal(t, tc.ok, ok, "raw %q", tc.raw)
		if tc.ok {
			assert.Equal(t, tc.role, role)
		}
	}
}
