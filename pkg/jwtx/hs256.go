package jwtx

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// MinSecretLength is the shortest HMAC secret accepted, in bytes.
const MinSecretLength = 32

// ErrWeakSecret is returned for secrets shorter than MinSecretLength.
var ErrWeakSecret = fmt.Errorf("jwtx: secret must be at least %d bytes", MinSecretLength)

// HS256Signer signs tokens with a shared server secret.
type HS256Signer struct {
	secret []byte
}

// NewHS256Signer copies secret so later mutation by the caller has no effect.
func NewHS256Signer(secret []byte) (*HS256Signer, error) {
	if len(secret) < MinSecretLength {
		return nil, ErrWeakSecret
	}
	return &HS256Signer{secret: append([]byte(nil), secret...)}, nil
}

func (s *HS256Signer) Alg() string { return jwt.SigningMethodHS256.Alg() }

// Sign takes your claims and turns them into a signed JWT string.
func (s *HS256Signer) Sign(claims Claims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// HS256Verifier validates tokens signed by an HS256Signer holding the same
// secret.
type HS256Verifier struct {
	secret []byte
	opts   VerifyOptions
	parser *jwt.Parser
}

// NewHS256Verifier builds a verifier. Only HS256 is accepted, so "none" and
// algorithm-confusion tokens fail before the key is used.
func NewHS256Verifier(secret []byte, opts VerifyOptions) (*HS256Verifier, error) {
	if len(secret) < MinSecretLength {
		return nil, ErrWeakSecret
	}
	return &HS256Verifier{
		secret: append([]byte(nil), secret...),
		opts:   opts,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
			jwt.WithLeeway(opts.Leeway),
		),
	}, nil
}

// WithType returns a copy of v that only accepts tokens of type typ.
func (v *HS256Verifier) WithType(typ TokenType) *HS256Verifier {
	cp := *v
	cp.opts.Type = typ
	return &cp
}

// Verify checks the signature first and the time claims second, so a forged
// token is always reported as ErrInvalid even when it is also past its expiry.
func (v *HS256Verifier) Verify(tokenStr string) (Claims, error) {
	if tokenStr == "" {
		return Claims{}, ErrMalformed
	}

	var claims Claims
	token, err := v.parser.ParseWithClaims(tokenStr, &claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil {
		return Claims{}, mapParseError(err)
	}
	if !token.Valid {
		return Claims{}, ErrInvalid
	}

	if claims.Subject == "" {
		return Claims{}, ErrMissingSub
	}
	if err := claims.ValidateIssuer(v.opts.Issuer); err != nil {
		return Claims{}, err
	}
	if v.opts.Type != "" && claims.Type != v.opts.Type {
		return Claims{}, ErrWrongType
	}

	return claims, nil
}

func mapParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return ErrNotYetValid
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return fmt.Errorf("%w: %v", ErrInvalidSig, err)
	case errors.Is(err, jwt.ErrTokenMalformed):
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	default:
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
}
