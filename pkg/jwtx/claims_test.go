package jwtx_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/hibritu/hirehub/pkg/jwtx"
	"github.com/hibritu/hirehub/pkg/role"
	"github.com/stretchr/testify/require"
)

func TestNewClaims(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	sub := jwtx.Subject{ID: "01HX", Role: role.Employer, Email: "boss@x.com", EmailVerified: true}

	c := jwtx.NewClaims(sub, jwtx.TypeAccess, "hirehub-auth", time.Hour, now)

	require.Equal(t, "01HX", c.Subject)
	require.Equal(t, role.Employer, c.Role)
	require.Equal(t, "boss@x.com", c.Email)
	require.True(t, c.EmailVerified)
	require.Equal(t, jwtx.TypeAccess, c.Type)
	require.Equal(t, "hirehub-auth", c.Issuer)
	require.Equal(t, now.Add(time.Hour), c.ExpiresAt.Time)
	require.NotEmpty(t, c.ID)

	other := jwtx.NewClaims(sub, jwtx.TypeAccess, "hirehub-auth", time.Hour, now)
	require.NotEqual(t, c.ID, other.ID, "jti must be unique per token")
}

func TestValidateIssuer(t *testing.T) {
	c := &jwtx.Claims{RegisteredClaims: jwt.RegisteredClaims{Issuer: "hirehub-auth"}}

	require.NoError(t, c.ValidateIssuer("hirehub-auth"))
	require.NoError(t, c.ValidateIssuer(""))
	require.ErrorIs(t, c.ValidateIssuer("someone-else"), jwtx.ErrIssuer)
	require.ErrorIs(t, c.ValidateIssuer("someone-else"), jwtx.ErrInvalid)
}
