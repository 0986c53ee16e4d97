package http

import (
	"embed"
	"errors"
	"html/template"
	"mime"
	"net/http"

	"github.com/hibritu/hirehub/internal/auth/mail"
	"github.com/hibritu/hirehub/internal/auth/service"
	"github.com/hibritu/hirehub/pkg/authsdk"
	"github.com/hibritu/hirehub/pkg/httpx"
)

//go:embed templates/*.html
var pageFS embed.FS

var resetPage = template.Must(template.ParseFS(pageFS, "templates/reset_password.html"))

type resetPageData struct {
	Product string
	Token   string
	Error   string
	Done    bool
}

// PasswordHandler serves the forgot/reset password flow, both as a JSON API
// and as the HTML form the reset email links to.
type PasswordHandler struct {
	Accounts *service.AccountService
}

// HandleForgot starts a password reset.
//
//	@Summary		Request a password reset
//	@Description	Emails a reset link valid for one hour when the address belongs to an account.
//	@Description	The response is identical whether or not the account exists, and the mail is sent in the background.
//	@Tags			Password
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.ForgotPasswordRequest	true	"Email"
//	@Success		200		{object}	authsdk.MessageResponse			"Accepted"
//	@Failure		400		{object}	authsdk.ErrorResponse			"Validation failed"
//	@Failure		429		{object}	authsdk.ErrorResponse			"Rate limit exceeded"
//	@Router			/v1/auth/forgot-password [post]
func (h *PasswordHandler) HandleForgot(w http.ResponseWriter, r *http.Request) {
	var req authsdk.ForgotPasswordRequest
	if !decode(w, r, &req) {
		return
	}

	if err := h.Accounts.ForgotPassword(r.Context(), req.Email); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.MessageResponse{
		Message:  "If an account exists for that email, a password reset link has been sent.",
		Delivery: service.DeliveryAsync,
	})
}

// HandleResetForm renders the page the reset link opens.
//
//	@Summary		Password reset form
//	@Description	HTML form for choosing a new password. The token comes from the emailed link.
//	@Tags			Password
//	@Produce		html
//	@Param			token	query		string	true	"Reset token from the email"
//	@Success		200		{string}	string	"HTML form"
//	@Failure		400		{string}	string	"HTML page explaining the link is invalid"
//	@Router			/v1/auth/reset-password [get]
func (h *PasswordHandler) HandleResetForm(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		renderResetPage(w, http.StatusBadRequest, resetPageData{
			Error: "This reset link is incomplete. Request a new one.",
		})
		return
	}
	renderResetPage(w, http.StatusOK, resetPageData{Token: token})
}

// HandleReset sets a new password.
//
//	@Summary		Reset password
//	@Description	Sets a new password using the token from the reset email. Accepts JSON (API clients) or a form post (the HTML form); form posts are answered with HTML.
//	@Description	A token works once. invalid_reset_token covers unknown and already used tokens.
//	@Tags			Password
//	@Accept			json
//	@Accept			x-www-form-urlencoded
//	@Produce		json
//	@Produce		html
//	@Param			request	body		authsdk.ResetPasswordRequest	true	"Token and new password"
//	@Success		200		{object}	authsdk.MessageResponse			"Password updated"
//	@Failure		400		{object}	authsdk.ErrorResponse			"Validation failed, invalid_reset_token or reset_token_expired"
//	@Failure		429		{object}	authsdk.ErrorResponse			"Rate limit exceeded"
//	@Router			/v1/auth/reset-password [post]
func (h *PasswordHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	if isFormPost(r) {
		h.handleResetForm(w, r)
		return
	}

	var req authsdk.ResetPasswordRequest
	if !decode(w, r, &req) {
		return
	}

	if err := h.Accounts.ResetPassword(r.Context(), req.Token, req.NewPassword); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.MessageResponse{
		Message: "Password has been reset. You can now log in with your new password.",
	})
}

func (h *PasswordHandler) handleResetForm(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, httpx.DefaultMaxBodyBytes)
	if err := r.ParseForm(); err != nil {
		renderResetPage(w, http.StatusBadRequest, resetPageData{Error: "The form could not be read. Try again."})
		return
	}

	token := r.PostForm.Get("token")
	pw := r.PostForm.Get("new_password")
	if confirm := r.PostForm.Get("confirm_password"); confirm != "" && confirm != pw {
		renderResetPage(w, http.StatusBadRequest, resetPageData{Token: token, Error: "The passwords do not match."})
		return
	}

	err := h.Accounts.ResetPassword(r.Context(), token, pw)
	if err == nil {
		renderResetPage(w, http.StatusOK, resetPageData{Done: true})
		return
	}

	apiErr := apiError(r, err)
	data := resetPageData{Error: resetFailureText(err)}
	var ve *service.ValidationError
	if errors.As(err, &ve) {
		// Let the user try another password with the same link.
		data.Token = token
	}
	renderResetPage(w, apiErr.StatusCode, data)
}

func resetFailureText(err error) string {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		return "Password must be between 6 and 128 characters."
	case errors.Is(err, service.ErrResetExpired):
		return "This reset link has expired. Request a new one."
	case errors.Is(err, service.ErrResetInvalid):
		return "This reset link is invalid or has already been used."
	default:
		return "Something went wrong. Try again later."
	}
}

func isFormPost(r *http.Request) bool {
	ct, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && ct == "application/x-www-form-urlencoded"
}

func renderResetPage(w http.ResponseWriter, code int, data resetPageData) {
	data.Product = mail.Product
	httpx.NoCache(w)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Referrer-Policy", "no-referrer")
	w.Header().Set("X-Frame-Options", "DENY")
	w.WriteHeader(code)
	_ = resetPage.Execute(w, data)
}
