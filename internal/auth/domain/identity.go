package domain

import (
	"strings"
	"time"

	"github.com/hibritu/hirehub/pkg/role"
)

// Identity is an account holder. Role is fixed at creation.
type Identity struct {
	ID           string
	Email        string // lower-cased, trimmed, unique
	Name         string
	PasswordHash string // argon2id PHC string
	Role         role.Role
	VerifiedAt   *time.Time // nil until the email OTP is confirmed

	PendingOTP   *PendingSecret
	PendingReset *PendingSecret

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PendingSecret is a one-time value waiting to be presented. Only the
// fingerprint of the value is kept.
type PendingSecret struct {
	Hash      string // base64url SHA-256 fingerprint
	ExpiresAt time.Time
}

// Expired reports whether the secret can no longer be redeemed at now.
// A nil secret is treated as expired.
func (p *PendingSecret) Expired(now time.Time) bool {
	return p == nil || now.After(p.ExpiresAt)
}

func (i Identity) IsVerified() bool { return i.VerifiedAt != nil }

// MarkVerified sets VerifiedAt if it is not set yet and drops the pending OTP.
// Verification never moves backwards.
func (i *Identity) MarkVerified(now time.Time) {
	if i.VerifiedAt == nil {
		t := now
		i.VerifiedAt = &t
	}
	i.PendingOTP = nil
}

// NormalizeEmail is the canonical form emails are stored and looked up in.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
