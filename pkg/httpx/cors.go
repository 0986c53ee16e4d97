package httpx

import (
	"net/http"
	"slices"
	"strings"
)

// CORS lets the separately hosted front-ends call the API from the browser.
// Only origins in allowed are echoed back; "*" allows any origin but then
// credentials are not advertised.
func CORS(allowed []string) Middleware {
	wildcard := slices.Contains(allowed, "*")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" {
				h := w.Header()
				h.Add("Vary", "Origin")

				switch {
				case slices.Contains(allowed, origin):
					h.Set("Access-Control-Allow-Origin", origin)
					h.Set("Access-Control-Allow-Credentials", "true")
				case wildcard:
					h.Set("Access-Control-Allow-Origin", "*")
				}

				if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
					h.Set("Access-Control-Allow-Methods", strings.Join([]string{
						http.MethodGet, http.MethodPost, http.MethodOptions,
					}, ", "))
					h.Set("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Request-ID")
					h.Set("Access-Control-Max-Age", "600")
					w.WriteHeader(http.StatusNoContent)
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}
