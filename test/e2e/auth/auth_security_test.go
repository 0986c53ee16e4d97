package auth_test

import (
	"net/http"
	"testing"

	"github.com/hibritu/hirehub/pkg/authsdk"
	"github.com/stretchr/testify/require"
)

// TestInvalidCredentials verifies a wrong password and an unknown email get
// the same answer.
func TestInvalidCredentials(t *testing.T) {
	svc := setupAuthContainer(t)
	bootstrapService(t, svc)

	_, err := svc.Client.Login(t.Context(), authsdk.LoginRequest{Email: adminEmail, Password: "wrong-password"})
	assertStatus(t, err, http.StatusUnauthorized, "invalid_credentials")

	_, err = svc.Client.Login(t.Context(), authsdk.LoginRequest{Email: "ghost@hirehub.test", Password: "wrong-password"})
	assertStatus(t, err, http.StatusUnauthorized, "invalid_credentials")
}

// TestInvalidAccessToken verifies protected endpoints reject bad tokens.
func TestInvalidAccessToken(t *testing.T) {
	svc := setupAuthContainer(t)

	_, err := svc.Client.Me(t.Context(), "invalid-token-12345")
	assertStatus(t, err, http.StatusUnauthorized, "invalid_token")

	_, err = svc.Client.Me(t.Context(), "")
	assertStatus(t, err, http.StatusUnauthorized, "invalid_token")
}

// TestRoleGates verifies role allow-lists and the verified-email requirement.
func TestRoleGates(t *testing.T) {
	svc := setupAuthContainer(t)
	ctx := t.Context()

	_, err := svc.Client.Register(ctx, authsdk.RegisterRequest{
		Email: "employer@hirehub.test", Password: "secret1", Name: "Acme", Role: "employer",
	})
	require.NoError(t, err)

	session, err := svc.Client.AuthenticateWithPassword(ctx, "employer@hirehub.test", "secret1")
	require.NoError(t, err)

	ping := func(path string) *http.Response {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, svc.BaseURL+path, nil)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+session.AccessToken())
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		t.Cleanup(func() { _ = resp.Body.Close() })
		return resp
	}

	require.Equal(t, http.StatusForbidden, ping("/v1/admin/ping").StatusCode)
	require.Equal(t, http.StatusForbidden, ping("/v1/employer/ping").StatusCode, "unverified employers are refused")

	_, err = svc.Client.VerifyEmail(ctx, "employer@hirehub.test", svc.latestOTP(t, "employer@hirehub.test"))
	require.NoError(t, err)

	session, err = svc.Client.AuthenticateWithRefreshToken(ctx, session.RefreshToken())
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, ping("/v1/employer/ping").StatusCode)
}
