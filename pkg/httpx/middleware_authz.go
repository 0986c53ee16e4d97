package httpx

import (
	"net/http"
	"slices"
	"strings"

	"github.com/hibritu/hirehub/pkg/role"
)

// RequireRoles admits callers whose role is in allowed. It must run after
// AuthnMiddleware or OptionalAuthn; anonymous callers get 401, callers with
// another role get 403. Only token claims are consulted.
func RequireRoles(allowed ...role.Role) Middleware {
	names := make([]string, len(allowed))
	for i, r := range allowed {
		names[i] = r.String()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			have, ok := RoleFromContext(r.Context())
			if !ok {
				writeBearerError(w, "authentication required")
				return
			}

			if !slices.Contains(allowed, have) {
				w.Header().Set("WWW-Authenticate",
					`Bearer error="insufficient_role", roles="`+strings.Join(names, " ")+`"`)
				WriteError(w, http.StatusForbidden, "insufficient_role", "role not permitted for this operation")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireVerified admits callers whose token says their email is verified.
func RequireVerified() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				writeBearerError(w, "authentication required")
				return
			}
			if !claims.EmailVerified {
				WriteError(w, http.StatusForbidden, "email_not_verified", "verify your email address first")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
