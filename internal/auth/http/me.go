package http

import (
	"errors"
	"net/http"

	"github.com/hibritu/hirehub/internal/auth/service"
	"github.com/hibritu/hirehub/internal/auth/store"
	"github.com/hibritu/hirehub/pkg/authsdk"
	"github.com/hibritu/hirehub/pkg/httpx"
	"github.com/hibritu/hirehub/pkg/slogx"
)

type MeHandler struct {
	Accounts *service.AccountService
}

// ServeHTTP returns the authenticated user.
//
//	@Summary		Current user
//	@Description	Returns the account behind the access token.
//	@Tags			Account
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	authsdk.UserInfo		"User"
//	@Failure		401	{object}	authsdk.ErrorResponse	"Invalid or missing access token"
//	@Failure		500	{object}	authsdk.ErrorResponse	"Internal server error"
//	@Router			/v1/me [get]
func (h *MeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID := httpx.UserIDFromContext(ctx)
	if userID == "" {
		authsdk.ErrInvalidToken.WriteError(w)
		return
	}

	id, err := h.Accounts.Me(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Token outlived its account.
			authsdk.ErrInvalidToken.WriteError(w)
			return
		}
		log.Warn("failed to load user", "user_id", userID, "err", err)
		authsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, userInfo(id))
}

// PingHandler answers role-gated probes so front-ends can check access.
//
//	@Summary		Role-gated ping
//	@Description	/v1/admin/ping admits admins; /v1/employer/ping admits employers with a verified email.
//	@Tags			Access
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	authsdk.PingResponse	"Allowed"
//	@Failure		401	{object}	authsdk.ErrorResponse	"Invalid or missing access token"
//	@Failure		403	{object}	authsdk.ErrorResponse	"insufficient_role or email_not_verified"
//	@Router			/v1/admin/ping [get]
//	@Router			/v1/employer/ping [get]
func PingHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		rl, _ := httpx.RoleFromContext(ctx)
		httpx.WriteJSON(w, http.StatusOK, authsdk.PingResponse{
			Status: "ok",
			UserID: httpx.UserIDFromContext(ctx),
			Role:   rl.String(),
		})
	}
}
