package http

import (
	"net/http"

	"github.com/hibritu/hirehub/internal/auth/service"
	"github.com/hibritu/hirehub/pkg/authsdk"
	"github.com/hibritu/hirehub/pkg/httpx"
	"github.com/hibritu/hirehub/pkg/role"
)

// AccountHandler serves registration, login and email verification.
type AccountHandler struct {
	Accounts *service.AccountService
}

// decode reads a JSON body into v and runs its validation. It writes the
// error response itself and reports whether the handler should go on.
func decode(w http.ResponseWriter, r *http.Request, v interface{ Validate() map[string]string }) bool {
	if err := httpx.DecodeJSON(w, r, v); err != nil {
		authsdk.ErrInvalidJSON.WriteError(w)
		return false
	}
	if errs := v.Validate(); errs != nil {
		authsdk.NewValidationError(errs).WriteError(w)
		return false
	}
	return true
}

// HandleRegister creates a job seeker or employer account.
//
//	@Summary		Register an account
//	@Description	Creates an unverified job seeker or employer account and emails a six digit verification code.
//	@Description	Delivery is attempted up to three times before the response is sent; emailSent=false means the account exists but the code did not go out, and the client should offer a resend.
//	@Description	Admin accounts cannot be registered here.
//	@Tags			Account
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.RegisterRequest		true	"Registration details"
//	@Success		201		{object}	authsdk.RegisterResponse	"Account created"
//	@Failure		400		{object}	authsdk.ErrorResponse		"Validation failed"
//	@Failure		409		{object}	authsdk.ErrorResponse		"Email already registered"
//	@Failure		429		{object}	authsdk.ErrorResponse		"Rate limit exceeded"
//	@Failure		500		{object}	authsdk.ErrorResponse		"Internal server error"
//	@Router			/v1/auth/register [post]
func (h *AccountHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req authsdk.RegisterRequest
	if !decode(w, r, &req) {
		return
	}

	rl, err := role.Parse(req.Role)
	if err != nil {
		authsdk.NewValidationError(map[string]string{"role": "must be job_seeker or employer"}).WriteError(w)
		return
	}

	res, err := h.Accounts.Register(r.Context(), service.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Role:     rl,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	msg := "Registration successful. Check your email for the verification code."
	if !res.EmailSent {
		msg = "Registration successful, but the verification email could not be sent. Request a new code."
	}
	httpx.WriteJSON(w, http.StatusCreated, authsdk.RegisterResponse{
		Message:   msg,
		User:      userInfo(res.Identity),
		EmailSent: res.EmailSent,
		Delivery:  res.Delivery,
	})
}

// HandleLogin exchanges credentials for tokens.
//
//	@Summary		Log in
//	@Description	Checks email and password and returns an access/refresh token pair.
//	@Description	Accounts with an unverified email may log in; their tokens carry email_verified=false.
//	@Description	When an application is configured for the user's role, redirect_url is the hand-off URL carrying the access token.
//	@Tags			Account
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.LoginRequest	true	"Credentials"
//	@Success		200		{object}	authsdk.LoginResponse	"Tokens and user"
//	@Failure		400		{object}	authsdk.ErrorResponse	"Validation failed"
//	@Failure		401		{object}	authsdk.ErrorResponse	"Invalid email or password"
//	@Failure		429		{object}	authsdk.ErrorResponse	"Rate limit exceeded"
//	@Router			/v1/auth/login [post]
func (h *AccountHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req authsdk.LoginRequest
	if !decode(w, r, &req) {
		return
	}

	res, err := h.Accounts.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.LoginResponse{
		TokenResponse: tokenResponse(res.Tokens),
		User:          userInfo(res.Identity),
		RedirectURL:   res.RedirectURL,
	})
}

// HandleVerifyEmail confirms the emailed code.
//
//	@Summary		Verify email address
//	@Description	Marks the account verified when the code matches the latest one sent and has not expired.
//	@Tags			Account
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.VerifyEmailRequest	true	"Email and code"
//	@Success		200		{object}	authsdk.VerifyEmailResponse	"Email verified"
//	@Failure		400		{object}	authsdk.ErrorResponse		"Validation failed, wrong code (invalid_otp) or expired code (otp_expired)"
//	@Failure		404		{object}	authsdk.ErrorResponse		"No account with this email"
//	@Failure		409		{object}	authsdk.ErrorResponse		"Already verified"
//	@Failure		429		{object}	authsdk.ErrorResponse		"Rate limit exceeded"
//	@Router			/v1/auth/verify-email [post]
func (h *AccountHandler) HandleVerifyEmail(w http.ResponseWriter, r *http.Request) {
	var req authsdk.VerifyEmailRequest
	if !decode(w, r, &req) {
		return
	}

	id, err := h.Accounts.VerifyEmail(r.Context(), req.Email, req.OTP)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.VerifyEmailResponse{
		Message: "Email verified successfully.",
		User:    userInfo(id),
	})
}

// HandleResendOTP sends a fresh verification code.
//
//	@Summary		Resend verification code
//	@Description	Replaces the pending code with a new one and emails it. Earlier codes stop working.
//	@Tags			Account
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.ResendOTPRequest	true	"Email"
//	@Success		200		{object}	authsdk.ResendOTPResponse	"Code reissued"
//	@Failure		400		{object}	authsdk.ErrorResponse		"Validation failed"
//	@Failure		404		{object}	authsdk.ErrorResponse		"No account with this email"
//	@Failure		409		{object}	authsdk.ErrorResponse		"Already verified"
//	@Failure		429		{object}	authsdk.ErrorResponse		"Rate limit exceeded"
//	@Router			/v1/auth/resend-otp [post]
func (h *AccountHandler) HandleResendOTP(w http.ResponseWriter, r *http.Request) {
	var req authsdk.ResendOTPRequest
	if !decode(w, r, &req) {
		return
	}

	sent, err := h.Accounts.ResendOTP(r.Context(), req.Email)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	msg := "A new verification code has been sent."
	if !sent {
		msg = "A new code was issued but the email could not be sent. Try again shortly."
	}
	httpx.WriteJSON(w, http.StatusOK, authsdk.ResendOTPResponse{
		Message:   msg,
		EmailSent: sent,
		Delivery:  service.DeliverySync,
	})
}
