package jwtx

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultSessionTTL is the default lifetime for session tokens minted by the
// identity collaborator. Only used when this package signs tokens itself
// (dev mode, tests).
const DefaultSessionTTL = 12 * time.Hour

var (
	ErrTokenInvalid = errors.New("jwtx: token invalid")
	ErrTokenExpired = errors.New("jwtx: token expired")
)

// Claims are the session-token claims the portal consumes. The subject is
// the portal user ID; everything else is advisory display data carried by
// the identity provider.
type Claims struct {
	jwt.RegisteredClaims

	// Email the session was established with.
	Email string `json:"email,omitempty"`

	// DisplayName for the authenticated user.
	DisplayName string `json:"name,omitempty"`
}

// NewSessionClaims builds minimally-correct session claims.
func NewSessionClaims(subject, email, displayName, issuer string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Email:       email,
		DisplayName: displayName,
	}
}

// ValidateExpiry ensures the token hasn't expired (exp) and isn't used
// before nbf.
func (c *Claims) ValidateExpiry() error {
	now := time.Now().UTC()

	if c.ExpiresAt == nil || !now.Before(c.ExpiresAt.Time) {
		return ErrTokenExpired
	}
	if c.NotBefore != nil && now.Before(c.NotBefore.Time) {
		return ErrTokenInvalid
	}
	return nil
}
