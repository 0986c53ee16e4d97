// Package jwtx issues and checks the HS256 tokens handed to the HireHub
// applications. Access and refresh tokens share one secret and are told
// apart by the typ claim.
package jwtx

import (
	"errors"
	"fmt"
	"time"
)

// Signer produces compact JWS strings for claims.
type Signer interface {
	Alg() string
	Sign(Claims) (string, error)
}

// Verifier checks signature, issuer, type and time claims and returns the
// claims of a token that passes.
type Verifier interface {
	Verify(token string) (Claims, error)
}

// VerifyOptions captures common expectations used by verifiers.
type VerifyOptions struct {
	// Issuer the token must have (claims.iss). Empty means "don't care".
	Issuer string

	// Type the token must carry (claims.typ). Empty means "don't care".
	Type TokenType

	// Leeway allows small clock skew when validating exp/nbf.
	Leeway time.Duration
}

// Verification outcomes. Every failure other than expiry wraps ErrInvalid, so
// callers only need to tell the two apart.
var (
	ErrInvalid = errors.New("jwtx: invalid token")
	ErrExpired = errors.New("jwtx: token expired")

	ErrMalformed   = fmt.Errorf("%w: malformed", ErrInvalid)
	ErrInvalidSig  = fmt.Errorf("%w: signature", ErrInvalid)
	ErrIssuer      = fmt.Errorf("%w: issuer mismatch", ErrInvalid)
	ErrWrongType   = fmt.Errorf("%w: wrong token type", ErrInvalid)
	ErrNotYetValid = fmt.Errorf("%w: not yet valid", ErrInvalid)
	ErrMissingSub  = fmt.Errorf("%w: missing subject", ErrInvalid)
)
