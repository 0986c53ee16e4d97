package authsdk

import (
	"net/http"
	"net/url"
	"time"
)

// Query parameters of a hand-off URL.
const (
	HandoffParamFrom  = "from"
	HandoffParamToken = "token"
	HandoffFromAuth   = "auth"
)

// StripHandoff extracts the access token from a hand-off URL and returns
// the URL without the token and from parameters. ok is false when u is not
// a hand-off (no from=auth or an empty token); clean is then u unchanged.
func StripHandoff(u *url.URL) (token string, clean *url.URL, ok bool) {
	q := u.Query()
	token = q.Get(HandoffParamToken)
	if q.Get(HandoffParamFrom) != HandoffFromAuth || token == "" {
		return "", u, false
	}

	q.Del(HandoffParamToken)
	q.Del(HandoffParamFrom)

	cp := *u
	cp.RawQuery = q.Encode()
	return token, &cp, true
}

// TokenStore keeps the access token a browser brought in through a hand-off.
type TokenStore interface {
	Save(w http.ResponseWriter, r *http.Request, token string) error
	Load(r *http.Request) (string, bool)
}

// CookieTokenStore keeps the token in an HttpOnly cookie.
type CookieTokenStore struct {
	// Name of the cookie. Defaults to "hirehub_access_token".
	Name   string
	Path   string
	Domain string
	MaxAge time.Duration
	// Insecure drops the Secure attribute; only for plain-http development.
	Insecure bool
}

func (s CookieTokenStore) name() string {
	if s.Name == "" {
		return "hirehub_access_token"
	}
	return s.Name
}

func (s CookieTokenStore) Save(w http.ResponseWriter, _ *http.Request, token string) error {
	path := s.Path
	if path == "" {
		path = "/"
	}
	c := &http.Cookie{
		Name:     s.name(),
		Value:    token,
		Path:     path,
		Domain:   s.Domain,
		HttpOnly: true,
		Secure:   !s.Insecure,
		SameSite: http.SameSiteLaxMode,
	}
	if s.MaxAge > 0 {
		c.MaxAge = int(s.MaxAge / time.Second)
	}
	http.SetCookie(w, c)
	return nil
}

func (s CookieTokenStore) Load(r *http.Request) (string, bool) {
	c, err := r.Cookie(s.name())
	if err != nil || c.Value == "" {
		return "", false
	}
	return c.Value, true
}

// HandoffMiddleware is installed by the receiving application. A request
// arriving through a hand-off URL has its token saved to store and is
// answered with 303 See Other to the same URL minus token and from, so the
// token does not linger in the address bar or history. Other requests pass
// through.
func HandoffMiddleware(store TokenStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, clean, ok := StripHandoff(r.URL)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			if err := store.Save(w, r, token); err != nil {
				ErrServerError.WriteError(w)
				return
			}

			w.Header().Set("Cache-Control", "no-store")
			w.Header().Set("Referrer-Policy", "no-referrer")
			http.Redirect(w, r, clean.RequestURI(), http.StatusSeeOther)
		})
	}
}
