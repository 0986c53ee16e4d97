package service

import (
	"context"
	"crypto/rand"
	"encoding/base32"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibritu/hirehub/internal/auth/domain"
	"github.com/hibritu/hirehub/internal/auth/mail"
	"github.com/hibritu/hirehub/internal/auth/store"
	"github.com/hibritu/hirehub/pkg/cryptox"
	"github.com/hibritu/hirehub/pkg/slogx"
	"github.com/pquerna/otp"
	"github.com/pquerna/otp/hotp"
)

const (
	// DefaultOTPTTL is how long an emailed verification code is valid.
	DefaultOTPTTL = 30 * time.Minute

	// DeliverySync and DeliveryAsync describe how a mail was handled.
	DeliverySync  = "sync"
	DeliveryAsync = "async"
)

// VerificationService issues, mails and checks email verification codes.
type VerificationService struct {
	Store      store.Store
	Dispatcher *mail.Dispatcher
	Templates  *mail.Templates
	Policy     mail.RetryPolicy
	TTL        time.Duration
	Clock      Clock
}

func (s *VerificationService) ttl() time.Duration {
	if s.TTL <= 0 {
		return DefaultOTPTTL
	}
	return s.TTL
}

func policyOr(p, def mail.RetryPolicy) mail.RetryPolicy {
	if p.MaxAttempts <= 0 {
		return def
	}
	return p
}

// NewCode returns a six-digit code derived with HOTP from a fresh random
// secret, so every call is independent of the previous ones.
func NewCode() (string, error) {
	raw := make([]byte, 20)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("otp secret: %w", err)
	}
	secret := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(raw)

	return hotp.GenerateCodeCustom(secret, 0, hotp.ValidateOpts{
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
}

// Issue puts a new pending code on id, replacing any earlier one, and
// returns the updated identity with the plain code. Nothing is persisted.
func (s *VerificationService) Issue(id domain.Identity) (domain.Identity, string, error) {
	code, err := NewCode()
	if err != nil {
		return id, "", err
	}
	now := s.Clock.now()
	id.PendingOTP = &domain.PendingSecret{
		Hash:      cryptox.FingerprintToken(code),
		ExpiresAt: now.Add(s.ttl()),
	}
	id.UpdatedAt = now
	return id, code, nil
}

// Deliver mails code to id synchronously under the retry policy and reports
// whether it went out. The request context only lends its values: a client
// hanging up does not cut the delivery short.
func (s *VerificationService) Deliver(ctx context.Context, id domain.Identity, code string) bool {
	l := slogx.FromContext(ctx)

	msg, err := s.Templates.OTP(id.Email, id.Name, code, s.ttl())
	if err != nil {
		l.Error("render otp mail", "err", err)
		return false
	}

	ctx = context.WithoutCancel(ctx)
	if err := s.Dispatcher.Deliver(ctx, msg, policyOr(s.Policy, mail.OTPPolicy)); err != nil {
		l.Warn("otp mail not delivered", slog.String("user_id", id.ID), "err", err)
		return false
	}
	return true
}

// Verify checks code against the pending OTP of email. On success the
// identity becomes verified and the code is consumed. Failures leave the
// stored state as it was.
func (s *VerificationService) Verify(ctx context.Context, email, code string) (domain.Identity, error) {
	email = domain.NormalizeEmail(email)
	var out domain.Identity

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		id, err := tx.Identities().GetIdentityByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrUnknownEmail
			}
			return err
		}

		now := s.Clock.now()
		switch {
		case id.IsVerified():
			return ErrAlreadyVerified
		case id.PendingOTP.Expired(now):
			return ErrOTPExpired
		case !cryptox.MatchFingerprint(code, id.PendingOTP.Hash):
			return ErrOTPMismatch
		}

		id.MarkVerified(now)
		id.UpdatedAt = now
		if err := tx.Identities().SaveIdentity(ctx, id); err != nil {
			return err
		}
		out = id
		return nil
	})
	if err != nil {
		return domain.Identity{}, err
	}

	slogx.FromContext(ctx).Info("email verified", slog.String("user_id", out.ID))
	return out, nil
}

// Resend replaces the pending code of email with a new one and mails it.
// The new code is committed before delivery starts.
func (s *VerificationService) Resend(ctx context.Context, email string) (bool, error) {
	email = domain.NormalizeEmail(email)
	var (
		id   domain.Identity
		code string
	)

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		cur, err := tx.Identities().GetIdentityByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrUnknownEmail
			}
			return err
		}
		if cur.IsVerified() {
			return ErrAlreadyVerified
		}

		id, code, err = s.Issue(cur)
		if err != nil {
			return err
		}
		return tx.Identities().SaveIdentity(ctx, id)
	})
	if err != nil {
		return false, err
	}

	return s.Deliver(ctx, id, code), nil
}
