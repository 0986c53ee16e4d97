package http

import (
	"errors"
	"net/http"

	"github.com/hibritu/hirehub/internal/auth/domain"
	"github.com/hibritu/hirehub/internal/auth/service"
	"github.com/hibritu/hirehub/internal/auth/store"
	"github.com/hibritu/hirehub/pkg/authsdk"
	"github.com/hibritu/hirehub/pkg/slogx"
)

// apiError maps a service error to the response the caller sees. Unknown
// errors become a bare 500; their detail only goes to the log.
func apiError(r *http.Request, err error) *authsdk.APIError {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		return authsdk.NewValidationError(ve.Fields)
	case errors.Is(err, service.ErrConflict):
		return authsdk.ErrEmailTaken
	case errors.Is(err, service.ErrInvalidCredentials):
		return authsdk.ErrInvalidCredentials
	case errors.Is(err, service.ErrUnknownEmail):
		return authsdk.ErrUnknownEmail
	case errors.Is(err, service.ErrAlreadyVerified):
		return authsdk.ErrAlreadyVerified
	case errors.Is(err, service.ErrOTPExpired):
		return authsdk.ErrOTPExpired
	case errors.Is(err, service.ErrOTPMismatch):
		return authsdk.ErrInvalidOTP
	case errors.Is(err, service.ErrResetExpired):
		return authsdk.ErrResetTokenExpired
	case errors.Is(err, service.ErrResetInvalid):
		return authsdk.ErrInvalidResetToken
	case errors.Is(err, service.ErrInvalidRefresh):
		return authsdk.ErrInvalidRefresh
	case errors.Is(err, store.ErrNotFound):
		return authsdk.ErrNotFound
	default:
		slogx.FromContext(r.Context()).Error("request failed", "err", err)
		return authsdk.ErrServerError
	}
}

func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	apiError(r, err).WriteError(w)
}

func userInfo(id domain.Identity) authsdk.UserInfo {
	return authsdk.UserInfo{
		ID:            id.ID,
		Email:         id.Email,
		Name:          id.Name,
		Role:          id.Role.String(),
		EmailVerified: id.IsVerified(),
	}
}

func tokenResponse(p domain.TokenPair) authsdk.TokenResponse {
	return authsdk.TokenResponse{
		AccessToken:  p.AccessToken,
		RefreshToken: p.RefreshToken,
		TokenType:    p.TokenType,
		ExpiresIn:    int(p.ExpiresIn),
	}
}
