package httpx_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/hibritu/hirehub/pkg/httpx"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func requestFrom(ip string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = ip + ":12345"
	return req
}

func TestIPKeyExtractor(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{"remote addr", nil, "192.168.1.1"},
		{"forwarded for wins", map[string]string{"X-Forwarded-For": "203.0.113.1, 192.168.1.1"}, "203.0.113.1"},
		{"real ip fallback", map[string]string{"X-Real-IP": "203.0.113.2"}, "203.0.113.2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := requestFrom("192.168.1.1")
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			require.Equal(t, tt.want, httpx.IPKeyExtractor(req))
		})
	}
}

func TestJSONFieldKeyExtractor(t *testing.T) {
	t.Run("reads field and restores body", func(t *testing.T) {
		body := `{"email":"  Alice@Example.com ","password":"x"}`
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))

		require.Equal(t, "alice@example.com", httpx.JSONFieldKeyExtractor("email")(req))

		rest, err := io.ReadAll(req.Body)
		require.NoError(t, err)
		require.Equal(t, body, string(rest))
	})

	t.Run("empty for malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("not json"))
		require.Empty(t, httpx.JSONFieldKeyExtractor("email")(req))
	})

	t.Run("empty for non-string field", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":42}`))
		require.Empty(t, httpx.JSONFieldKeyExtractor("email")(req))
	})
}

func TestCompositeKeyExtractor(t *testing.T) {
	extractor := httpx.CompositeKeyExtractor(":",
		httpx.IPKeyExtractor,
		httpx.FormFieldKeyExtractor("token"),
	)

	req := httptest.NewRequest(http.MethodGet, "/?token=abc", nil)
	req.RemoteAddr = "192.168.1.1:12345"
	require.Equal(t, "192.168.1.1:abc", extractor(req))

	require.Equal(t, "192.168.1.1", extractor(requestFrom("192.168.1.1")), "empty parts are skipped")
}

func TestRateLimitMiddleware(t *testing.T) {
	t.Run("blocks over burst", func(t *testing.T) {
		h := httpx.RateLimitByIP(httpx.RateLimitConfig{RequestsPerWindow: 3, Window: time.Minute, Burst: 3})(okHandler())

		for i := range 3 {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, requestFrom("192.168.1.1"))
			require.Equal(t, http.StatusOK, rec.Code, "request %d", i+1)
		}

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, requestFrom("192.168.1.1"))
		require.Equal(t, http.StatusTooManyRequests, rec.Code)

		rec = httptest.NewRecorder()
		h.ServeHTTP(rec, requestFrom("192.168.1.2"))
		require.Equal(t, http.StatusOK, rec.Code, "other keys are unaffected")
	})

	t.Run("empty key is not limited", func(t *testing.T) {
		cfg := httpx.RateLimitConfig{RequestsPerWindow: 1, Window: time.Minute, Burst: 1}
		h := httpx.RateLimitMiddleware(cfg, func(*http.Request) string { return "" })(okHandler())

		for range 3 {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, requestFrom("192.168.1.1"))
			require.Equal(t, http.StatusOK, rec.Code)
		}
	})

	t.Run("headers and body on 429", func(t *testing.T) {
		h := httpx.RateLimitByIP(httpx.RateLimitConfig{RequestsPerWindow: 1, Window: time.Minute, Burst: 1})(okHandler())

		h.ServeHTTP(httptest.NewRecorder(), requestFrom("10.0.0.1"))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, requestFrom("10.0.0.1"))

		require.Equal(t, http.StatusTooManyRequests, rec.Code)
		require.NotEmpty(t, rec.Header().Get("Retry-After"))
		require.Equal(t, "1", rec.Header().Get("X-RateLimit-Limit"))
		require.Equal(t, "1m0s", rec.Header().Get("X-RateLimit-Window"))
		require.Contains(t, rec.Body.String(), "rate_limit_exceeded")
	})
}

func TestRateLimitByIPAndJSONField(t *testing.T) {
	var seen []string
	h := httpx.RateLimitByIPAndJSONField(
		httpx.RateLimitConfig{RequestsPerWindow: 2, Window: time.Minute, Burst: 2}, "email",
	)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		seen = append(seen, string(b))
		w.WriteHeader(http.StatusOK)
	}))

	post := func(email string) int {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"`+email+`"}`))
		req.RemoteAddr = "192.168.1.1:12345"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	require.Equal(t, http.StatusOK, post("a@x.com"))
	require.Equal(t, http.StatusOK, post("A@X.com"))
	require.Equal(t, http.StatusTooManyRequests, post("a@x.com"))
	require.Equal(t, http.StatusOK, post("b@x.com"))

	require.Len(t, seen, 3)
	require.Equal(t, `{"email":"a@x.com"}`, seen[0], "handler sees the full body")
}

func TestParseRateLimitFromEnv(t *testing.T) {
	def := httpx.RateLimitConfig{RequestsPerWindow: 5, Window: time.Minute, Burst: 5}

	t.Run("defaults when unset", func(t *testing.T) {
		require.Equal(t, def, httpx.ParseRateLimitFromEnv("TESTUNSET", def))
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("RATELIMIT_TESTX_REQUESTS", "50")
		t.Setenv("RATELIMIT_TESTX_WINDOW_SEC", "10")
		t.Setenv("RATELIMIT_TESTX_BURST", "7")

		got := httpx.ParseRateLimitFromEnv("TESTX", def)
		require.Equal(t, httpx.RateLimitConfig{RequestsPerWindow: 50, Window: 10 * time.Second, Burst: 7}, got)
	})

	t.Run("garbage keeps defaults", func(t *testing.T) {
		t.Setenv("RATELIMIT_TESTY_REQUESTS", "lots")
		require.Equal(t, def, httpx.ParseRateLimitFromEnv("TESTY", def))
	})

	t.Run("non-positive keeps default", func(t *testing.T) {
		t.Setenv("RATELIMIT_TESTZ_BURST", "0")
		require.Equal(t, def, httpx.ParseRateLimitFromEnv("TESTZ", def))
	})
}

func TestRateLimitProfiles(t *testing.T) {
	require.Less(t, httpx.StrictLimit.RequestsPerWindow, httpx.ModerateLimit.RequestsPerWindow)
	require.Less(t, httpx.ModerateLimit.RequestsPerWindow, httpx.LenientLimit.RequestsPerWindow)
	require.Less(t, httpx.LenientLimit.RequestsPerWindow, httpx.PublicLimit.RequestsPerWindow)

	for _, cfg := range []httpx.RateLimitConfig{httpx.StrictLimit, httpx.ModerateLimit, httpx.LenientLimit, httpx.PublicLimit} {
		require.Positive(t, cfg.Burst)
		require.Positive(t, cfg.Window)
	}
}

func BenchmarkRateLimitMiddleware(b *testing.B) {
	h := httpx.RateLimitByIP(httpx.RateLimitConfig{RequestsPerWindow: 1_000_000, Window: time.Minute, Burst: 1000})(okHandler())
	req := requestFrom("192.168.1.1")

	b.ResetTimer()
	for b.Loop() {
		h.ServeHTTP(httptest.NewRecorder(), req)
	}
}
