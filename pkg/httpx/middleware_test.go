package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/hibritu/hirehub/pkg/httpx"
	"github.com/hibritu/hirehub/pkg/jwtx"
	"github.com/hibritu/hirehub/pkg/role"
	"github.com/stretchr/testify/require"
)

const testIssuer = "https://auth.test"

var (
	testSecret    = []byte("0123456789abcdef0123456789abcdef")
	foreignSecret = []byte("fedcba9876543210fedcba9876543210")
)

func signToken(t *testing.T, secret []byte, sub jwtx.Subject, ttl time.Duration, now time.Time) string {
	t.Helper()
	s, err := jwtx.NewHS256Signer(secret)
	require.NoError(t, err)
	tok, err := s.Sign(jwtx.NewClaims(sub, jwtx.TypeAccess, testIssuer, ttl, now))
	require.NoError(t, err)
	return tok
}

func newVerifier(t *testing.T) jwtx.Verifier {
	t.Helper()
	v, err := jwtx.NewHS256Verifier(testSecret, jwtx.VerifyOptions{Issuer: testIssuer, Type: jwtx.TypeAccess})
	require.NoError(t, err)
	return v
}

// whoami echoes the subject seen by the handler, or "anonymous".
func whoami() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := httpx.UserIDFromContext(r.Context())
		if id == "" {
			id = "anonymous"
		}
		_, _ = w.Write([]byte(id))
	})
}

func serve(h http.Handler, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

var seeker = jwtx.Subject{ID: "u-1", Role: role.JobSeeker, Email: "alice@x.com", EmailVerified: true}

func TestAuthnMiddleware(t *testing.T) {
	h := httpx.AuthnMiddleware(newVerifier(t))(whoami())
	now := time.Now()

	t.Run("valid token", func(t *testing.T) {
		rec := serve(h, signToken(t, testSecret, seeker, time.Hour, now))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "u-1", rec.Body.String())
	})

	tests := []struct {
		name  string
		token string
		desc  string
	}{
		{"missing", "", "missing bearer token"},
		{"garbage", "not-a-jwt", "token verification failed"},
		{"foreign secret", signToken(t, foreignSecret, seeker, time.Hour, now), "token verification failed"},
		{"expired", signToken(t, testSecret, seeker, time.Minute, now.Add(-2*time.Hour)), "token expired"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(h, tt.token)
			require.Equal(t, http.StatusUnauthorized, rec.Code)
			require.Contains(t, rec.Header().Get("WWW-Authenticate"), `error="invalid_token"`)
			require.Contains(t, rec.Body.String(), tt.desc)
		})
	}

	t.Run("non bearer scheme", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestOptionalAuthn(t *testing.T) {
	h := httpx.OptionalAuthn(newVerifier(t))(whoami())

	rec := serve(h, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "anonymous", rec.Body.String())

	rec = serve(h, signToken(t, testSecret, seeker, time.Hour, time.Now()))
	require.Equal(t, "u-1", rec.Body.String())

	rec = serve(h, "bogus")
	require.Equal(t, http.StatusUnauthorized, rec.Code, "a bad token is not silently downgraded")
}

func TestRequireRoles(t *testing.T) {
	v := newVerifier(t)
	adminOnly := httpx.Chain(whoami(), httpx.AuthnMiddleware(v), httpx.RequireRoles(role.Admin))
	now := time.Now()

	t.Run("allowed", func(t *testing.T) {
		admin := jwtx.Subject{ID: "a-1", Role: role.Admin, EmailVerified: true}
		rec := serve(adminOnly, signToken(t, testSecret, admin, time.Hour, now))
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("wrong role", func(t *testing.T) {
		rec := serve(adminOnly, signToken(t, testSecret, seeker, time.Hour, now))
		require.Equal(t, http.StatusForbidden, rec.Code)
		require.Contains(t, rec.Body.String(), "insufficient_role")
	})

	t.Run("anonymous", func(t *testing.T) {
		h := httpx.Chain(whoami(), httpx.OptionalAuthn(v), httpx.RequireRoles(role.Admin))
		rec := serve(h, "")
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("multiple allowed", func(t *testing.T) {
		h := httpx.Chain(whoami(), httpx.AuthnMiddleware(v), httpx.RequireRoles(role.Employer, role.JobSeeker))
		rec := serve(h, signToken(t, testSecret, seeker, time.Hour, now))
		require.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRequireVerified(t *testing.T) {
	h := httpx.Chain(whoami(), httpx.AuthnMiddleware(newVerifier(t)), httpx.RequireVerified())

	unverified := seeker
	unverified.EmailVerified = false

	rec := serve(h, signToken(t, testSecret, unverified, time.Hour, time.Now()))
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Contains(t, rec.Body.String(), "email_not_verified")

	rec = serve(h, signToken(t, testSecret, seeker, time.Hour, time.Now()))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestChainOrder(t *testing.T) {
	var order []string
	mark := func(name string) httpx.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := httpx.Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		order = append(order, "handler")
	}), mark("first"), mark("second"))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, []string{"first", "second", "handler"}, order)
}

func TestCORS(t *testing.T) {
	h := httpx.CORS([]string{"https://jobs.example.com"})(whoami())

	t.Run("allowed origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "https://jobs.example.com")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		require.Equal(t, "https://jobs.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
		require.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("other origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		require.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/", nil)
		req.Header.Set("Origin", "https://jobs.example.com")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		require.Equal(t, http.StatusNoContent, rec.Code)
		require.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Authorization")
	})
}

func TestDecodeJSON(t *testing.T) {
	type body struct {
		Email string `json:"email"`
	}

	tests := []struct {
		name    string
		in      string
		wantErr bool
	}{
		{"ok", `{"email":"a@x.com"}`, false},
		{"malformed", `{"email":`, true},
		{"trailing data", `{"email":"a"} {"email":"b"}`, true},
		{"empty", ``, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.in))
			var b body
			err := httpx.DecodeJSON(httptest.NewRecorder(), req, &b)
			if tt.wantErr {
				require.ErrorIs(t, err, httpx.ErrBadJSON)
				return
			}
			require.NoError(t, err)
			require.Equal(t, "a@x.com", b.Email)
		})
	}
}
