package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/hibritu/hirehub/pkg/role"
)

// Default token lifetimes. Services override them through configuration.
const (
	// DefaultAccessTokenTTL is the lifetime of an access token.
	DefaultAccessTokenTTL = time.Hour

	// DefaultRefreshTokenTTL is the lifetime of a refresh token.
	DefaultRefreshTokenTTL = 7 * 24 * time.Hour
)

// TokenType separates access tokens from refresh tokens so one can never be
// presented in place of the other.
type TokenType string

const (
	TypeAccess  TokenType = "access"
	TypeRefresh TokenType = "refresh"
)

// Claims are the claims carried by every token this service mints. They are
// enough for a downstream app to authorize a request without calling back.
type Claims struct {
	jwt.RegisteredClaims

	Role          role.Role `json:"role"`
	Email         string    `json:"email,omitempty"`
	EmailVerified bool      `json:"email_verified"`
	Type          TokenType `json:"typ"`
}

// Subject groups the identity fields that go into a token.
type Subject struct {
	ID            string
	Role          role.Role
	Email         string
	EmailVerified bool
}

// NewClaims builds claims for sub valid from now for ttl.
func NewClaims(sub Subject, typ TokenType, issuer string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   sub.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		Role:          sub.Role,
		Email:         sub.Email,
		EmailVerified: sub.EmailVerified,
		Type:          typ,
	}
}

// NewJTI returns a random identifier for the "jti" claim.
func NewJTI() string {
	return uuid.NewString()
}

// ValidateIssuer checks the issuer when one is expected.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil
	}
	if c.Issuer != expected {
		return ErrIssuer
	}
	return nil
}
