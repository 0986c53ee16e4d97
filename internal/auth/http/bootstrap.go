package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/hibritu/hirehub/internal/auth/domain"
	"github.com/hibritu/hirehub/internal/auth/service"
	"github.com/hibritu/hirehub/pkg/authsdk"
	"github.com/hibritu/hirehub/pkg/httpx"
	"github.com/hibritu/hirehub/pkg/slogx"
)

type BootstrapHandler struct {
	BootstrapService *service.BootstrapService
}

// ServeHTTP handles the bootstrap endpoint for initial system setup.
//
//	@Summary		Bootstrap the authentication system
//	@Description	Creates the first admin account, already verified. Admins cannot self-register, so this is how one comes to exist.
//	@Description	Only available when a bootstrap token is configured, and only while no admin exists.
//	@Tags			Bootstrap
//	@Accept			json
//	@Produce		json
//	@Param			X-Bootstrap-Token	header		string						true	"Bootstrap token for authorization"
//	@Param			request				body		authsdk.BootstrapRequest	true	"Admin account"
//	@Success		201					{object}	authsdk.BootstrapResponse	"Admin created"
//	@Failure		400					{object}	authsdk.ErrorResponse		"Invalid request body or validation failed"
//	@Failure		401					{object}	authsdk.ErrorResponse		"Missing or invalid bootstrap token"
//	@Failure		404					{object}	authsdk.ErrorResponse		"Bootstrap not enabled (no token configured)"
//	@Failure		409					{object}	authsdk.ErrorResponse		"An admin already exists or the email is taken"
//	@Failure		500					{object}	authsdk.ErrorResponse		"Internal server error"
//	@Router			/v1/bootstrap [post]
func (h *BootstrapHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	l := slogx.FromContext(r.Context())
	l.Info("Starting to bootstrap")

	// 1. Check if enabled
	if h.BootstrapService == nil || h.BootstrapService.Token == "" {
		authsdk.ErrNotFound.WithDescription("Bootstrap endpoint is not enabled").WriteError(w)
		return
	}

	// 2. Require bootstrap token header
	token := r.Header.Get("X-Bootstrap-Token")
	if token == "" {
		authsdk.NewAPIError(http.StatusUnauthorized, authsdk.ErrorCodeUnauthorized,
			"Bootstrap token is required in X-Bootstrap-Token header").WriteError(w)
		return
	}

	// 3. Parse request body and validate
	var req authsdk.BootstrapRequest
	if !decode(w, r, &req) {
		return
	}

	// 4. Perform bootstrap
	adminID, err := h.BootstrapService.Bootstrap(r.Context(), token, domain.BootstrapData{
		AdminEmail:    strings.TrimSpace(req.AdminEmail),
		AdminName:     strings.TrimSpace(req.AdminName),
		AdminPassword: req.AdminPassword,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBootstrapDisabled):
			authsdk.ErrNotFound.WithDescription("Bootstrap endpoint is not enabled").WriteError(w)
		case errors.Is(err, service.ErrBootstrapUnauthorized):
			authsdk.NewAPIError(http.StatusUnauthorized, authsdk.ErrorCodeUnauthorized,
				"Invalid bootstrap token").WriteError(w)
		case errors.Is(err, service.ErrBootstrapAlready):
			authsdk.NewAPIError(http.StatusConflict, authsdk.ErrorCodeConflict,
				"System has already been bootstrapped").WriteError(w)
		default:
			writeServiceError(w, r, err)
		}
		return
	}

	// 5. Respond with the created admin
	httpx.WriteJSON(w, http.StatusCreated, authsdk.BootstrapResponse{AdminUserID: adminID})
}
