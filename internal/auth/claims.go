package auth

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrDecodeFailure marks tokens whose payload could not be read. Callers
// must treat such tokens as absent, never as partially trusted.
var ErrDecodeFailure = errors.New("unable to decode token claims")

// Claims are the fields read out of a bearer token payload without
// verifying its signature. Used only for session derivation; every
// protected API call re-verifies the signature via TokenManager.
type Claims struct {
	Subject   string   `json:"sub"`
	Username  string   `json:"username"`
	Role      string   `json:"role"`
	Roles     []string `json:"roles"`
	ExpiresAt int64    `json:"exp"`
}

// DecodeClaims extracts the payload of a three-segment signed token.
// Pure and deterministic; no network, no side effects.
func DecodeClaims(token string) (*Claims, error) {
	segments := strings.Split(token, ".")
	if len(segments) != 3 {
		return nil, fmt.Errorf("%w: expected 3 segments, got %d", ErrDecodeFailure, len(segments))
	}

	payload, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(segments[1], "="))
	if err != nil {
		return nil, fmt.Errorf("%w: payload is not base64url: %v", ErrDecodeFailure, err)
	}

	var claims Claims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return nil, fmt.Errorf("%w: payload is not JSON: %v", ErrDecodeFailure, err)
	}
	return &claims, nil
}

// EffectiveRole returns the role claim, falling back to the first entry
// of the roles list when the singular claim is absent.
func (c *Claims) EffectiveRole() string {
	if c.Role != "" {
		return c.Role
	}
	if len(c.Roles) > 0 {
		return c.Roles[0]
	}
	return ""
}

// Expired reports whether the exp claim, when present, has passed.
func (c *Claims) Expired(now time.Time) bool {
	return c.ExpiresAt > 0 && now.Unix() >= c.ExpiresAt
}
