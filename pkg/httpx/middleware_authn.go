package httpx

import (
	"errors"
	"net/http"
	"strings"

	"github.com/hibritu/hirehub/pkg/jwtx"
	"github.com/hibritu/hirehub/pkg/slogx"
)

var errNoBearer = errors.New("httpx: no bearer token")

// AuthnMiddleware rejects the request with 401 unless it carries a valid
// bearer token. The verified claims are put in the request context.
func AuthnMiddleware(v jwtx.Verifier) Middleware {
	return authn(v, false)
}

// OptionalAuthn lets requests without an Authorization header through as
// anonymous. A header that is present but fails verification is still a 401:
// a caller that tried to authenticate and failed is told so.
func OptionalAuthn(v jwtx.Verifier) Middleware {
	return authn(v, true)
}

func authn(v jwtx.Verifier, optional bool) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			raw, err := BearerToken(r)
			if err != nil {
				if optional && r.Header.Get("Authorization") == "" {
					next.ServeHTTP(w, r)
					return
				}
				writeBearerError(w, "missing bearer token")
				return
			}

			claims, err := v.Verify(raw)
			if err != nil {
				if errors.Is(err, jwtx.ErrExpired) {
					writeBearerError(w, "token expired")
					return
				}
				log.Warn("jwt verify failed", "err", err)
				writeBearerError(w, "token verification failed")
				return
			}

			ctx = contextWithAuth(ctx, claims)
			ctx = slogx.With(ctx, "user_id", claims.Subject, "role", claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BearerToken extracts the token from "Authorization: Bearer <token>". The
// scheme is matched case-insensitively.
func BearerToken(r *http.Request) (string, error) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(r.Header.Get("Authorization")), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", errNoBearer
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", errNoBearer
	}
	return token, nil
}

// RFC 6750-compliant error response for bearer auth.
func writeBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	WriteError(w, http.StatusUnauthorized, "invalid_token", desc)
}
