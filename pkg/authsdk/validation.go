package authsdk

import (
	"net/mail"
	"strings"
	"unicode/utf8"
)

const (
	reasonRequired = "required"
	reasonEmail    = "must be a valid email address"

	minPasswordLength = 6
	maxPasswordLength = 128
)

// ValidEmail reports whether email is a bare address whose domain has a dot.
// The server applies the same rule.
func ValidEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return false
	}
	at := strings.LastIndexByte(email, '@')
	return strings.Contains(email[at+1:], ".")
}

func validateEmail(errs map[string]string, field, email string) {
	email = strings.TrimSpace(email)
	if email == "" {
		errs[field] = reasonRequired
		return
	}
	if !ValidEmail(email) {
		errs[field] = reasonEmail
	}
}

func validatePassword(errs map[string]string, field, pw string) {
	switch n := utf8.RuneCountInString(pw); {
	case n == 0:
		errs[field] = reasonRequired
	case n < minPasswordLength:
		errs[field] = "must be at least 6 characters"
	case n > maxPasswordLength:
		errs[field] = "must be at most 128 characters"
	}
}

func result(errs map[string]string) map[string]string {
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Validate checks the request fields. Returns a map of field names to error
// messages, or nil if all fields are valid.
func (r RegisterRequest) Validate() map[string]string {
	errs := make(map[string]string)
	validateEmail(errs, "email", r.Email)
	validatePassword(errs, "password", r.Password)
	if utf8.RuneCountInString(r.Name) > 100 {
		errs["name"] = "must be at most 100 characters"
	}
	switch strings.ToLower(strings.TrimSpace(r.Role)) {
	case "job_seeker", "employer":
	case "":
		errs["role"] = reasonRequired
	default:
		errs["role"] = "must be job_seeker or employer"
	}
	return result(errs)
}

func (r LoginRequest) Validate() map[string]string {
	errs := make(map[string]string)
	if strings.TrimSpace(r.Email) == "" {
		errs["email"] = reasonRequired
	}
	if r.Password == "" {
		errs["password"] = reasonRequired
	}
	return result(errs)
}

func (r VerifyEmailRequest) Validate() map[string]string {
	errs := make(map[string]string)
	validateEmail(errs, "email", r.Email)
	otp := strings.TrimSpace(r.OTP)
	switch {
	case otp == "":
		errs["otp"] = reasonRequired
	case len(otp) != 6 || strings.Trim(otp, "0123456789") != "":
		errs["otp"] = "must be 6 digits"
	}
	return result(errs)
}

func (r ResendOTPRequest) Validate() map[string]string {
	errs := make(map[string]string)
	validateEmail(errs, "email", r.Email)
	return result(errs)
}

func (r ForgotPasswordRequest) Validate() map[string]string {
	errs := make(map[string]string)
	validateEmail(errs, "email", r.Email)
	return result(errs)
}

func (r ResetPasswordRequest) Validate() map[string]string {
	errs := make(map[string]string)
	if strings.TrimSpace(r.Token) == "" {
		errs["token"] = reasonRequired
	}
	validatePassword(errs, "new_password", r.NewPassword)
	return result(errs)
}

func (r RefreshRequest) Validate() map[string]string {
	if strings.TrimSpace(r.RefreshToken) == "" {
		return map[string]string{"refresh_token": reasonRequired}
	}
	return nil
}

func (r BootstrapRequest) Validate() map[string]string {
	errs := make(map[string]string)
	validateEmail(errs, "admin_email", r.AdminEmail)
	validatePassword(errs, "admin_password", r.AdminPassword)
	if utf8.RuneCountInString(r.AdminName) > 100 {
		errs["admin_name"] = "must be at most 100 characters"
	}
	return result(errs)
}
