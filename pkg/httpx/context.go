package httpx

import (
	"context"

	"github.com/hibritu/hirehub/pkg/jwtx"
	"github.com/hibritu/hirehub/pkg/role"
)

type ctxKey string

const (
	CtxKeyUserID ctxKey = "user_id"
	CtxKeyRole   ctxKey = "role"
	CtxKeyClaims ctxKey = "claims"
)

func contextWithAuth(ctx context.Context, c jwtx.Claims) context.Context {
	ctx = context.WithValue(ctx, CtxKeyUserID, c.Subject)
	ctx = context.WithValue(ctx, CtxKeyRole, c.Role)
	ctx = context.WithValue(ctx, CtxKeyClaims, c)
	return ctx
}

// ClaimsFromContext returns the verified claims of the caller. ok is false
// for anonymous requests.
func ClaimsFromContext(ctx context.Context) (jwtx.Claims, bool) {
	c, ok := ctx.Value(CtxKeyClaims).(jwtx.Claims)
	return c, ok
}

// UserIDFromContext returns the caller's subject, or "" when anonymous.
func UserIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(CtxKeyUserID).(string)
	return id
}

// RoleFromContext returns the caller's role. ok is false when anonymous.
func RoleFromContext(ctx context.Context) (role.Role, bool) {
	r, ok := ctx.Value(CtxKeyRole).(role.Role)
	return r, ok
}
