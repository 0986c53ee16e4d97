package authsdk

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/hibritu/hirehub/pkg/httpx"
)

// Error codes carried in the "error" field of API error responses.
const (
	ErrorCodeInvalidRequest     = "invalid_request"
	ErrorCodeValidation         = "validation_error"
	ErrorCodeInvalidCredentials = "invalid_credentials"
	ErrorCodeEmailTaken         = "email_taken"
	ErrorCodeUnknownEmail       = "unknown_email"
	ErrorCodeAlreadyVerified    = "already_verified"
	ErrorCodeInvalidOTP         = "invalid_otp"
	ErrorCodeOTPExpired         = "otp_expired"
	ErrorCodeInvalidResetToken  = "invalid_reset_token"
	ErrorCodeResetTokenExpired  = "reset_token_expired"
	ErrorCodeInvalidToken       = "invalid_token"
	ErrorCodeInvalidRefresh     = "invalid_refresh_token"
	ErrorCodeInsufficientRole   = "insufficient_role"
	ErrorCodeEmailNotVerified   = "email_not_verified"
	ErrorCodeRateLimited        = "rate_limit_exceeded"
	ErrorCodeNotFound           = "not_found"
	ErrorCodeUnauthorized       = "unauthorized"
	ErrorCodeConflict           = "conflict"
	ErrorCodeServerError        = "server_error"
)

// APIError is the error body returned by the auth service. The server uses
// it to write responses and the SDK returns it to callers, so errors.As
// works on both sides.
type APIError struct {
	// StatusCode is the HTTP status code for this error
	StatusCode int `json:"-"`

	// Code is the machine readable error code (e.g., "invalid_otp")
	Code string `json:"error"`

	// Description is a human-readable description of the error
	Description string `json:"error_description"`

	// Details holds per-field messages for validation errors.
	Details map[string]string `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// Is matches on status and code, so a returned error can be compared with
// the predefined values below using errors.Is.
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	if !ok {
		return false
	}
	return e.StatusCode == t.StatusCode && e.Code == t.Code
}

// WriteError writes e to w.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode)
	_ = json.NewEncoder(w).Encode(e)
}

// WithDescription returns a copy of e with another description.
func (e *APIError) WithDescription(desc string) *APIError {
	cp := *e
	cp.Description = desc
	return &cp
}

// NewAPIError creates an APIError.
func NewAPIError(statusCode int, code, description string) *APIError {
	return &APIError{
		StatusCode:  statusCode,
		Code:        code,
		Description: description,
	}
}

// NewValidationError creates a 400 carrying per-field details.
func NewValidationError(details map[string]string) *APIError {
	return &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeValidation,
		Description: "validation failed for some fields",
		Details:     details,
	}
}

var (
	ErrInvalidRequest = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "the request is malformed or missing required parameters",
	}

	ErrInvalidJSON = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "request body must be valid JSON",
	}

	ErrInvalidCredentials = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidCredentials,
		Description: "invalid email or password",
	}

	ErrEmailTaken = &APIError{
		StatusCode:  http.StatusConflict,
		Code:        ErrorCodeEmailTaken,
		Description: "an account with this email already exists",
	}

	ErrUnknownEmail = &APIError{
		StatusCode:  http.StatusNotFound,
		Code:        ErrorCodeUnknownEmail,
		Description: "no account with this email",
	}

	ErrAlreadyVerified = &APIError{
		StatusCode:  http.StatusConflict,
		Code:        ErrorCodeAlreadyVerified,
		Description: "email address is already verified",
	}

	ErrInvalidOTP = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidOTP,
		Description: "verification code is incorrect",
	}

	ErrOTPExpired = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeOTPExpired,
		Description: "verification code has expired, request a new one",
	}

	ErrInvalidResetToken = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidResetToken,
		Description: "reset link is invalid or has already been used",
	}

	ErrResetTokenExpired = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeResetTokenExpired,
		Description: "reset link has expired, request a new one",
	}

	ErrInvalidToken = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidToken,
		Description: "the access token is missing, invalid or expired",
	}

	ErrInvalidRefresh = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidRefresh,
		Description: "the refresh token is invalid or expired",
	}

	ErrInsufficientRole = &APIError{
		StatusCode:  http.StatusForbidden,
		Code:        ErrorCodeInsufficientRole,
		Description: "role not permitted for this operation",
	}

	ErrNotFound = &APIError{
		StatusCode:  http.StatusNotFound,
		Code:        ErrorCodeNotFound,
		Description: "resource not found",
	}

	ErrServerError = &APIError{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeServerError,
		Description: "internal server error",
	}
)

// parseErrorResponse turns a non-2xx response into an *APIError.
// Returns nil for 2xx responses.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        errResp.Error,
			Description: errResp.ErrorDescription,
			Details:     errResp.Details,
		}
	}

	// Fallback: create generic error from status code
	return &APIError{
		StatusCode:  resp.StatusCode,
		Code:        ErrorCodeServerError,
		Description: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
