package authsdk

// ============================================================================
// Error Types
// ============================================================================

// ErrorResponse is the JSON body of every error returned by the service.
// Client code should use the APIError type from errors.go instead.
type ErrorResponse struct {
	// Error is the error code (e.g., "invalid_credentials", "validation_error")
	Error string `json:"error"`

	// ErrorDescription is a human-readable description of the error
	ErrorDescription string `json:"error_description"`

	// Details contains field-specific validation errors (field name: error message)
	Details map[string]string `json:"details,omitempty"`
}

// ============================================================================
// Account Types
// ============================================================================

// RegisterRequest is the body of POST /v1/auth/register.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`

	// Role is "job_seeker" or "employer". Admins cannot self-register.
	Role string `json:"role"`
}

// RegisterResponse is returned from a successful registration.
type RegisterResponse struct {
	Message string   `json:"message"`
	User    UserInfo `json:"user"`

	// EmailSent reports whether the verification code reached the mail relay.
	// False means the account exists but the caller should offer a resend.
	EmailSent bool `json:"emailSent"`

	// Delivery is "sync" for verification codes.
	Delivery string `json:"delivery"`
}

// LoginRequest is the body of POST /v1/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse carries a token pair. ExpiresIn is the lifetime of the
// access token in seconds.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
}

// LoginResponse is returned from a successful login or refresh.
type LoginResponse struct {
	TokenResponse

	User UserInfo `json:"user"`

	// RedirectURL is the hand-off URL of the application for the user's
	// role, when one is configured.
	RedirectURL string `json:"redirect_url,omitempty"`
}

// UserInfo describes an identity. Secrets are never included.
type UserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	Name          string `json:"name,omitempty"`
	Role          string `json:"role"`
	EmailVerified bool   `json:"email_verified"`
}

// VerifyEmailRequest is the body of POST /v1/auth/verify-email.
type VerifyEmailRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// VerifyEmailResponse is returned once the email address is verified.
type VerifyEmailResponse struct {
	Message string   `json:"message"`
	User    UserInfo `json:"user"`
}

// ResendOTPRequest is the body of POST /v1/auth/resend-otp.
type ResendOTPRequest struct {
	Email string `json:"email"`
}

// ResendOTPResponse reports the outcome of a resend.
type ResendOTPResponse struct {
	Message   string `json:"message"`
	EmailSent bool   `json:"emailSent"`
	Delivery  string `json:"delivery"`
}

// ForgotPasswordRequest is the body of POST /v1/auth/forgot-password.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// MessageResponse is a plain acknowledgement.
type MessageResponse struct {
	Message  string `json:"message"`
	Delivery string `json:"delivery,omitempty"`
}

// ResetPasswordRequest is the body of POST /v1/auth/reset-password.
type ResetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// RefreshRequest is the body of POST /v1/auth/refresh.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// HandoffResponse is returned from GET /v1/auth/handoff.
type HandoffResponse struct {
	Authenticated bool   `json:"authenticated"`
	Role          string `json:"role,omitempty"`
	RedirectURL   string `json:"redirect_url,omitempty"`
}

// PingResponse is returned by the role-gated ping endpoints.
type PingResponse struct {
	Status string `json:"status"`
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

// ============================================================================
// Bootstrap Types
// ============================================================================

// BootstrapRequest creates the first administrator.
type BootstrapRequest struct {
	AdminEmail    string `json:"admin_email"`
	AdminName     string `json:"admin_name,omitempty"`
	AdminPassword string `json:"admin_password"`
}

// BootstrapResponse carries the id of the created administrator.
type BootstrapResponse struct {
	AdminUserID string `json:"admin_user_id"`
}

// ============================================================================
// Health Types
// ============================================================================

// HealthResponse represents the response structure for health check endpoints.
// Used by both /livez and /readyz endpoints (readyz includes additional Checks field).
type HealthResponse struct {
	// Status indicates the overall health status (e.g., "ok")
	Status string `json:"status"`

	// Uptime is the service uptime duration as a string (e.g., "1h23m45s")
	Uptime string `json:"uptime,omitempty"`

	// Version is the service version string
	Version string `json:"version,omitempty"`

	// Checks contains readiness check results for critical dependencies (only for /readyz)
	Checks *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks represents the status of critical service dependencies.
type HealthChecks struct {
	// Database indicates the database connection status
	Database string `json:"database"`

	// Signer indicates the JWT signing capability status
	Signer string `json:"signer"`
}
