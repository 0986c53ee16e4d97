package authsdk

import (
	"context"
	"net/http"
)

// Register creates a job seeker or employer account. The account exists
// once this returns without error, even when EmailSent is false.
func (c *SDKClient) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	var out RegisterResponse
	if err := c.postJSON(ctx, "/v1/auth/register", req, &out, http.StatusCreated, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login exchanges credentials for a token pair.
func (c *SDKClient) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	var out LoginResponse
	if err := c.postJSON(ctx, "/v1/auth/login", req, &out, http.StatusOK, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifyEmail submits the emailed verification code.
func (c *SDKClient) VerifyEmail(ctx context.Context, email, otp string) (*VerifyEmailResponse, error) {
	var out VerifyEmailResponse
	req := VerifyEmailRequest{Email: email, OTP: otp}
	if err := c.postJSON(ctx, "/v1/auth/verify-email", req, &out, http.StatusOK, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// ResendOTP asks for a new verification code; earlier codes stop working.
func (c *SDKClient) ResendOTP(ctx context.Context, email string) (*ResendOTPResponse, error) {
	var out ResendOTPResponse
	if err := c.postJSON(ctx, "/v1/auth/resend-otp", ResendOTPRequest{Email: email}, &out, http.StatusOK, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// ForgotPassword starts a password reset. The answer is the same whether or
// not the email is registered.
func (c *SDKClient) ForgotPassword(ctx context.Context, email string) (*MessageResponse, error) {
	var out MessageResponse
	if err := c.postJSON(ctx, "/v1/auth/forgot-password", ForgotPasswordRequest{Email: email}, &out, http.StatusOK, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// ResetPassword sets a new password using the token from a reset link.
func (c *SDKClient) ResetPassword(ctx context.Context, token, newPassword string) (*MessageResponse, error) {
	var out MessageResponse
	req := ResetPasswordRequest{Token: token, NewPassword: newPassword}
	if err := c.postJSON(ctx, "/v1/auth/reset-password", req, &out, http.StatusOK, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// Refresh exchanges a refresh token for a new pair.
func (c *SDKClient) Refresh(ctx context.Context, refreshToken string) (*LoginResponse, error) {
	var out LoginResponse
	if err := c.postJSON(ctx, "/v1/auth/refresh", RefreshRequest{RefreshToken: refreshToken}, &out, http.StatusOK, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// Me returns the identity behind accessToken.
func (c *SDKClient) Me(ctx context.Context, accessToken string) (*UserInfo, error) {
	var out UserInfo
	if err := c.getJSON(ctx, "/v1/me", accessToken, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Handoff asks where the holder of accessToken should be sent. An empty
// token asks anonymously and yields Authenticated=false.
func (c *SDKClient) Handoff(ctx context.Context, accessToken string) (*HandoffResponse, error) {
	var out HandoffResponse
	if err := c.getJSON(ctx, "/v1/auth/handoff", accessToken, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
