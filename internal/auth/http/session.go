package http

import (
	"net/http"

	"github.com/hibritu/hirehub/internal/auth/service"
	"github.com/hibritu/hirehub/pkg/authsdk"
	"github.com/hibritu/hirehub/pkg/httpx"
)

// SessionHandler serves token refresh and the hand-off lookup.
type SessionHandler struct {
	Accounts *service.AccountService
}

// HandleRefresh exchanges a refresh token for a new pair.
//
//	@Summary		Refresh tokens
//	@Description	Exchanges a refresh token for a new access/refresh pair. The user is re-read, so a verification since login shows up in the new tokens.
//	@Tags			Session
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.RefreshRequest	true	"Refresh token"
//	@Success		200		{object}	authsdk.LoginResponse	"New tokens"
//	@Failure		400		{object}	authsdk.ErrorResponse	"Validation failed"
//	@Failure		401		{object}	authsdk.ErrorResponse	"Invalid or expired refresh token"
//	@Failure		429		{object}	authsdk.ErrorResponse	"Rate limit exceeded"
//	@Router			/v1/auth/refresh [post]
func (h *SessionHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	var req authsdk.RefreshRequest
	if !decode(w, r, &req) {
		return
	}

	pair, id, err := h.Accounts.Tokens.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	redirectURL, _ := h.Accounts.Redirects.BuildHandoffURL(id.Role, pair.AccessToken)
	httpx.WriteJSON(w, http.StatusOK, authsdk.LoginResponse{
		TokenResponse: tokenResponse(pair),
		User:          userInfo(id),
		RedirectURL:   redirectURL,
	})
}

// HandleHandoff tells a front-end where its user belongs.
//
//	@Summary		Hand-off destination
//	@Description	For a signed-in caller, returns the hand-off URL of the application for their role, carrying the presented access token.
//	@Description	Anonymous callers get authenticated=false. A token that is present but invalid is rejected with 401.
//	@Tags			Session
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	authsdk.HandoffResponse	"Destination"
//	@Failure		401	{object}	authsdk.ErrorResponse	"Invalid or expired access token"
//	@Router			/v1/auth/handoff [get]
func (h *SessionHandler) HandleHandoff(w http.ResponseWriter, r *http.Request) {
	claims, ok := httpx.ClaimsFromContext(r.Context())
	if !ok {
		httpx.WriteJSON(w, http.StatusOK, authsdk.HandoffResponse{Authenticated: false})
		return
	}

	token, err := httpx.BearerToken(r)
	if err != nil {
		authsdk.ErrInvalidToken.WriteError(w)
		return
	}

	redirectURL, _ := h.Accounts.Redirects.BuildHandoffURL(claims.Role, token)
	httpx.WriteJSON(w, http.StatusOK, authsdk.HandoffResponse{
		Authenticated: true,
		Role:          claims.Role.String(),
		RedirectURL:   redirectURL,
	})
}
