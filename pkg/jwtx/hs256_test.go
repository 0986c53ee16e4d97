package jwtx_test

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/hibritu/hirehub/pkg/jwtx"
	"github.com/hibritu/hirehub/pkg/role"
	"github.com/stretchr/testify/require"
)

var (
	testSecret    = []byte("0123456789abcdef0123456789abcdef")
	foreignSecret = []byte("fedcba9876543210fedcba9876543210")
)

func newPair(t *testing.T, secret []byte, opts jwtx.VerifyOptions) (*jwtx.HS256Signer, *jwtx.HS256Verifier) {
	t.Helper()
	s, err := jwtx.NewHS256Signer(secret)
	require.NoError(t, err)
	v, err := jwtx.NewHS256Verifier(secret, opts)
	require.NoError(t, err)
	return s, v
}

func sign(t *testing.T, s jwtx.Signer, typ jwtx.TokenType, ttl time.Duration, now time.Time) string {
	t.Helper()
	c := jwtx.NewClaims(jwtx.Subject{ID: "user-1", Role: role.JobSeeker, Email: "alice@x.com"}, typ, "hirehub-auth", ttl, now)
	tok, err := s.Sign(c)
	require.NoError(t, err)
	return tok
}

func TestNewHS256_WeakSecret(t *testing.T) {
	_, err := jwtx.NewHS256Signer([]byte("short"))
	require.ErrorIs(t, err, jwtx.ErrWeakSecret)

	_, err = jwtx.NewHS256Verifier([]byte("short"), jwtx.VerifyOptions{})
	require.ErrorIs(t, err, jwtx.ErrWeakSecret)
}

func TestHS256_RoundTrip(t *testing.T) {
	s, v := newPair(t, testSecret, jwtx.VerifyOptions{Issuer: "hirehub-auth", Type: jwtx.TypeAccess})
	require.Equal(t, "HS256", s.Alg())

	tok := sign(t, s, jwtx.TypeAccess, time.Hour, time.Now())

	claims, err := v.Verify(tok)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.Subject)
	require.Equal(t, role.JobSeeker, claims.Role)
	require.Equal(t, "alice@x.com", claims.Email)
	require.False(t, claims.EmailVerified)
}

func TestHS256_Rejections(t *testing.T) {
	s, v := newPair(t, testSecret, jwtx.VerifyOptions{Issuer: "hirehub-auth", Type: jwtx.TypeAccess})
	foreign, _ := newPair(t, foreignSecret, jwtx.VerifyOptions{})
	now := time.Now()

	tests := []struct {
		name  string
		token string
		want  error
	}{
		{"empty", "", jwtx.ErrInvalid},
		{"garbage", "not.a.jwt", jwtx.ErrInvalid},
		{"foreign secret", sign(t, foreign, jwtx.TypeAccess, time.Hour, now), jwtx.ErrInvalid},
		{"foreign secret and expired", sign(t, foreign, jwtx.TypeAccess, time.Minute, now.Add(-time.Hour)), jwtx.ErrInvalid},
		{"expired", sign(t, s, jwtx.TypeAccess, time.Minute, now.Add(-time.Hour)), jwtx.ErrExpired},
		{"refresh as access", sign(t, s, jwtx.TypeRefresh, time.Hour, now), jwtx.ErrWrongType},
		{"tampered payload", tamper(sign(t, s, jwtx.TypeAccess, time.Hour, now)), jwtx.ErrInvalid},
		{"alg none", unsignedToken(t, now), jwtx.ErrInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.Verify(tt.token)
			require.ErrorIs(t, err, tt.want)
			if tt.want != jwtx.ErrExpired {
				require.NotErrorIs(t, err, jwtx.ErrExpired)
			}
		})
	}
}

func TestHS256_IssuerMismatch(t *testing.T) {
	s, _ := newPair(t, testSecret, jwtx.VerifyOptions{})
	_, v := newPair(t, testSecret, jwtx.VerifyOptions{Issuer: "other-issuer"})

	_, err := v.Verify(sign(t, s, jwtx.TypeAccess, time.Hour, time.Now()))
	require.ErrorIs(t, err, jwtx.ErrIssuer)
}

func TestHS256_Leeway(t *testing.T) {
	s, strict := newPair(t, testSecret, jwtx.VerifyOptions{})
	_, lenient := newPair(t, testSecret, jwtx.VerifyOptions{Leeway: 30 * time.Second})

	// Expired ten seconds ago.
	tok := sign(t, s, jwtx.TypeAccess, time.Minute, time.Now().Add(-70*time.Second))

	_, err := strict.Verify(tok)
	require.ErrorIs(t, err, jwtx.ErrExpired)

	_, err = lenient.Verify(tok)
	require.NoError(t, err)
}

func TestHS256_WithType(t *testing.T) {
	s, v := newPair(t, testSecret, jwtx.VerifyOptions{Type: jwtx.TypeAccess})
	refresh := sign(t, s, jwtx.TypeRefresh, time.Hour, time.Now())

	_, err := v.Verify(refresh)
	require.ErrorIs(t, err, jwtx.ErrWrongType)

	claims, err := v.WithType(jwtx.TypeRefresh).Verify(refresh)
	require.NoError(t, err)
	require.Equal(t, jwtx.TypeRefresh, claims.Type)
}

func tamper(tok string) string {
	parts := strings.Split(tok, ".")
	payload := []byte(parts[1])
	if payload[0] == 'e' {
		payload[0] = 'f'
	} else {
		payload[0] = 'e'
	}
	parts[1] = string(payload)
	return strings.Join(parts, ".")
}

func unsignedToken(t *testing.T, now time.Time) string {
	t.Helper()
	c := jwtx.NewClaims(jwtx.Subject{ID: "user-1", Role: role.Admin}, jwtx.TypeAccess, "hirehub-auth", time.Hour, now)
	tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, c).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	return tok
}
