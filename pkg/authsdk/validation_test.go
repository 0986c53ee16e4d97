package authsdk

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegisterRequestValidate(t *testing.T) {
	valid := RegisterRequest{Email: "alice@x.com", Password: "secret1", Role: "job_seeker"}
	require.Nil(t, valid.Validate())

	tests := []struct {
		name  string
		mod   func(*RegisterRequest)
		field string
	}{
		{"missing email", func(r *RegisterRequest) { r.Email = "" }, "email"},
		{"bad email", func(r *RegisterRequest) { r.Email = "alice" }, "email"},
		{"display name email", func(r *RegisterRequest) { r.Email = "Alice <alice@x.com>" }, "email"},
		{"dotless domain", func(r *RegisterRequest) { r.Email = "a@localhost" }, "email"},
		{"short password", func(r *RegisterRequest) { r.Password = "12345" }, "password"},
		{"admin role", func(r *RegisterRequest) { r.Role = "admin" }, "role"},
		{"missing role", func(r *RegisterRequest) { r.Role = "" }, "role"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mod(&req)
			require.Contains(t, req.Validate(), tt.field)
		})
	}
}

func TestValidEmail(t *testing.T) {
	require.True(t, ValidEmail("alice@x.com"))
	require.True(t, ValidEmail("first.last@mail.example.org"))
	require.False(t, ValidEmail("a@localhost"))
	require.False(t, ValidEmail("a.b@localhost"))
	require.False(t, ValidEmail("Alice <alice@x.com>"))
	require.False(t, ValidEmail("alice"))
}

func TestVerifyEmailRequestValidate(t *testing.T) {
	require.Nil(t, VerifyEmailRequest{Email: "a@x.com", OTP: "012345"}.Validate())
	require.Contains(t, VerifyEmailRequest{Email: "a@x.com", OTP: "12345"}.Validate(), "otp")
	require.Contains(t, VerifyEmailRequest{Email: "a@x.com", OTP: "12345a"}.Validate(), "otp")
	require.Contains(t, VerifyEmailRequest{OTP: "123456"}.Validate(), "email")
}

func TestResetPasswordRequestValidate(t *testing.T) {
	require.Nil(t, ResetPasswordRequest{Token: "t", NewPassword: "secret1"}.Validate())

	errs := ResetPasswordRequest{}.Validate()
	require.Equal(t, "required", errs["token"])
	require.Equal(t, "required", errs["new_password"])
}

func TestBootstrapRequestValidate(t *testing.T) {
	require.Nil(t, BootstrapRequest{AdminEmail: "root@x.com", AdminPassword: "secret1"}.Validate())

	errs := BootstrapRequest{AdminEmail: "root", AdminPassword: "1"}.Validate()
	require.Contains(t, errs, "admin_email")
	require.Contains(t, errs, "admin_password")
}
