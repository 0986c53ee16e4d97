// Package redirect decides where a signed-in user is sent and builds the
// hand-off URL that carries their access token to that application.
package redirect

import (
	"net/url"
	"strings"

	"github.com/hibritu/hirehub/pkg/role"
)

// Query parameters of a hand-off URL. The receiving app reads and then
// strips both (see authsdk.StripHandoff).
const (
	ParamFrom  = "from"
	ParamToken = "token"
	FromAuth   = "auth"
)

// Router maps roles to application base URLs.
type Router struct {
	dest role.Map[string]
}

// NewRouter keeps only destinations that parse as absolute http(s) URLs.
// Roles left empty get no redirect.
func NewRouter(dest role.Map[string]) *Router {
	clean := func(s string) string {
		s = strings.TrimSpace(s)
		u, err := url.Parse(s)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return ""
		}
		return s
	}
	return &Router{dest: role.Map[string]{
		JobSeeker: clean(dest.JobSeeker),
		Employer:  clean(dest.Employer),
		Admin:     clean(dest.Admin),
	}}
}

// ResolveDestination returns the base URL for r. ok is false for unknown
// roles and roles without a configured destination; that is a policy
// outcome, not an error.
func (rt *Router) ResolveDestination(r role.Role) (string, bool) {
	if rt == nil {
		return "", false
	}
	base, ok := rt.dest.Lookup(r)
	if !ok || base == "" {
		return "", false
	}
	return base, true
}

// BuildHandoffURL returns <base>?from=auth&token=<token>. Query parameters
// already on the base URL are kept; an existing from or token is replaced.
func (rt *Router) BuildHandoffURL(r role.Role, token string) (string, bool) {
	base, ok := rt.ResolveDestination(r)
	if !ok || token == "" {
		return "", false
	}

	u, err := url.Parse(base)
	if err != nil {
		return "", false
	}
	q := u.Query()
	q.Set(ParamFrom, FromAuth)
	q.Set(ParamToken, token)
	u.RawQuery = q.Encode()
	return u.String(), true
}
