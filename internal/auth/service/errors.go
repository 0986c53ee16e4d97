package service

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrConflict           = errors.New("email_taken")
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrUnknownEmail       = errors.New("unknown_email")
	ErrOTPExpired         = errors.New("otp_expired")
	ErrOTPMismatch        = errors.New("invalid_otp")
	ErrAlreadyVerified    = errors.New("already_verified")
	ErrResetInvalid       = errors.New("invalid_reset_token")
	ErrResetExpired       = errors.New("reset_token_expired")
	ErrInvalidRefresh     = errors.New("invalid_refresh_token")
)

// ValidationError reports bad input per field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + e.Fields[k]
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

func invalid(field, reason string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: reason}}
}
