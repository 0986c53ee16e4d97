package service

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/hibritu/hirehub/internal/auth/domain"
	authmail "github.com/hibritu/hirehub/internal/auth/mail"
	"github.com/hibritu/hirehub/internal/auth/redirect"
	"github.com/hibritu/hirehub/internal/auth/store"
	"github.com/hibritu/hirehub/pkg/authsdk"
	"github.com/hibritu/hirehub/pkg/cryptox"
	"github.com/hibritu/hirehub/pkg/idx"
	"github.com/hibritu/hirehub/pkg/role"
	"github.com/hibritu/hirehub/pkg/slogx"
)

const (
	// DefaultResetTTL is how long a password reset link works.
	DefaultResetTTL = time.Hour

	MinPasswordLength = 6
	MaxPasswordLength = 128
	MaxNameLength     = 100
)

// AccountService drives the identity lifecycle: registration, login and
// password reset. Email verification is delegated to Verification.
type AccountService struct {
	Store        store.Store
	Tokens       *TokenService
	Verification *VerificationService
	Redirects    *redirect.Router
	Dispatcher   *authmail.Dispatcher
	Templates    *authmail.Templates

	// PublicBaseURL is where this service is reachable from a browser; reset
	// links point at <PublicBaseURL>/v1/auth/reset-password.
	PublicBaseURL string
	ResetTTL      time.Duration
	ResetPolicy   authmail.RetryPolicy
	Clock         Clock
}

type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Role     role.Role
}

type RegisterResult struct {
	Identity  domain.Identity
	EmailSent bool
	Delivery  string
}

type LoginResult struct {
	Identity    domain.Identity
	Tokens      domain.TokenPair
	RedirectURL string // empty when the role has no destination
}

func (s *AccountService) resetTTL() time.Duration {
	if s.ResetTTL <= 0 {
		return DefaultResetTTL
	}
	return s.ResetTTL
}

// ValidateEmail accepts a bare address (no display name).
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return invalid("email", "required")
	}
	if !authsdk.ValidEmail(email) {
		return invalid("email", "must be a valid email address")
	}
	return nil
}

// ValidatePassword enforces the length bounds on a new password.
func ValidatePassword(pw string) error {
	switch n := utf8.RuneCountInString(pw); {
	case n < MinPasswordLength:
		return invalid("password", "must be at least 6 characters")
	case n > MaxPasswordLength:
		return invalid("password", "must be at most 128 characters")
	}
	return nil
}

func validateRegistration(in RegisterInput) error {
	fields := map[string]string{}
	var ve *ValidationError

	if err := ValidateEmail(in.Email); errors.As(err, &ve) {
		fields["email"] = ve.Fields["email"]
	}
	if err := ValidatePassword(in.Password); errors.As(err, &ve) {
		fields["password"] = ve.Fields["password"]
	}
	if utf8.RuneCountInString(in.Name) > MaxNameLength {
		fields["name"] = "must be at most 100 characters"
	}
	if !in.Role.IsSelfService() {
		fields["role"] = "must be job_seeker or employer"
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// Register creates an unverified identity and mails it a verification
// code. A mail failure does not fail the registration; it shows up as
// EmailSent=false.
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (RegisterResult, error) {
	l := slogx.FromContext(ctx)

	if err := validateRegistration(in); err != nil {
		return RegisterResult{}, err
	}

	hash, err := cryptox.HashPassword(in.Password)
	if err != nil {
		return RegisterResult{}, err
	}

	now := s.Clock.now()
	id := domain.Identity{
		ID:           idx.NewAt(now).String(),
		Email:        domain.NormalizeEmail(in.Email),
		Name:         strings.TrimSpace(in.Name),
		PasswordHash: hash,
		Role:         in.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	id, code, err := s.Verification.Issue(id)
	if err != nil {
		return RegisterResult{}, err
	}

	if err := s.Store.Identities().CreateIdentity(ctx, id); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return RegisterResult{}, ErrConflict
		}
		return RegisterResult{}, err
	}

	l.Info("identity registered",
		slog.String("user_id", id.ID),
		slog.String("role", id.Role.String()),
	)

	sent := s.Verification.Deliver(ctx, id, code)
	return RegisterResult{Identity: id, EmailSent: sent, Delivery: DeliverySync}, nil
}

// Login checks credentials and issues a token pair. Unknown email and wrong
// password are indistinguishable to the caller, in the error and in timing.
// Unverified identities may log in; their tokens say email_verified=false.
func (s *AccountService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	l := slogx.FromContext(ctx)

	id, err := s.Store.Identities().GetIdentityByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			cryptox.BurnPasswordCheck(password)
			l.Info("login failed", slog.String("reason", "unknown_email"))
			return LoginResult{}, ErrInvalidCredentials
		}
		return LoginResult{}, err
	}

	if err := cryptox.VerifyPassword(password, id.PasswordHash); err != nil {
		if !errors.Is(err, cryptox.ErrPasswordMismatch) {
			l.Error("stored password hash unusable", slog.String("user_id", id.ID), "err", err)
		}
		l.Info("login failed", slog.String("reason", "bad_password"), slog.String("user_id", id.ID))
		return LoginResult{}, ErrInvalidCredentials
	}

	pair, err := s.Tokens.Issue(id)
	if err != nil {
		return LoginResult{}, err
	}

	redirectURL, _ := s.Redirects.BuildHandoffURL(id.Role, pair.AccessToken)

	l.Info("login succeeded", slog.String("user_id", id.ID), slog.String("role", id.Role.String()))
	return LoginResult{Identity: id, Tokens: pair, RedirectURL: redirectURL}, nil
}

// ForgotPassword starts a reset for email. The caller sees the same outcome
// whether or not the address is registered; for registered addresses a
// reset link is mailed in the background.
func (s *AccountService) ForgotPassword(ctx context.Context, email string) error {
	l := slogx.FromContext(ctx)
	email = domain.NormalizeEmail(email)

	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return err
	}

	var (
		id    domain.Identity
		found bool
	)
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		cur, err := tx.Identities().GetIdentityByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil
			}
			return err
		}

		now := s.Clock.now()
		cur.PendingReset = &domain.PendingSecret{
			Hash:      cryptox.FingerprintToken(token),
			ExpiresAt: now.Add(s.resetTTL()),
		}
		cur.UpdatedAt = now
		if err := tx.Identities().SaveIdentity(ctx, cur); err != nil {
			return err
		}
		id, found = cur, true
		return nil
	})
	if err != nil {
		return err
	}

	if !found {
		l.Debug("password reset for unknown email", slogx.Email(email))
		return nil
	}

	msg, err := s.Templates.Reset(id.Email, id.Name, s.ResetLink(token), s.resetTTL())
	if err != nil {
		l.Error("render reset mail", "err", err)
		return nil
	}

	userID := id.ID
	s.Dispatcher.DeliverAsync(ctx, msg, policyOr(s.ResetPolicy, authmail.ResetPolicy), func(err error) {
		if err != nil {
			l.Warn("reset mail not delivered", slog.String("user_id", userID), "err", err)
			return
		}
		l.Info("reset mail delivered", slog.String("user_id", userID))
	})
	return nil
}

// ResetLink is the browser URL of the reset form for token.
func (s *AccountService) ResetLink(token string) string {
	return strings.TrimRight(s.PublicBaseURL, "/") + "/v1/auth/reset-password?token=" + url.QueryEscape(token)
}

// ResetPassword swaps the password of the identity holding token and
// consumes the token. An unknown or expired token changes nothing.
func (s *AccountService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if err := ValidatePassword(newPassword); err != nil {
		return err
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrResetInvalid
	}

	hash, err := cryptox.HashPassword(newPassword)
	if err != nil {
		return err
	}

	var userID string
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		id, err := tx.Identities().GetIdentityByResetTokenHash(ctx, cryptox.FingerprintToken(token))
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrResetInvalid
			}
			return err
		}

		now := s.Clock.now()
		if id.PendingReset == nil || !cryptox.MatchFingerprint(token, id.PendingReset.Hash) {
			return ErrResetInvalid
		}
		if id.PendingReset.Expired(now) {
			return ErrResetExpired
		}

		id.PasswordHash = hash
		id.PendingReset = nil
		id.UpdatedAt = now
		userID = id.ID
		return tx.Identities().SaveIdentity(ctx, id)
	})
	if err != nil {
		return err
	}

	slogx.FromContext(ctx).Info("password reset", slog.String("user_id", userID))
	return nil
}

// VerifyEmail confirms the emailed code. See VerificationService.Verify.
func (s *AccountService) VerifyEmail(ctx context.Context, email, code string) (domain.Identity, error) {
	return s.Verification.Verify(ctx, email, code)
}

// ResendOTP mails a new code. See VerificationService.Resend.
func (s *AccountService) ResendOTP(ctx context.Context, email string) (bool, error) {
	return s.Verification.Resend(ctx, email)
}

// Me returns the identity behind an authenticated request.
func (s *AccountService) Me(ctx context.Context, userID string) (domain.Identity, error) {
	return s.Store.Identities().GetIdentityByID(ctx, userID)
}
