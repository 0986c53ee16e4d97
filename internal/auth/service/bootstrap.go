package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"
	"strings"

	"github.com/hibritu/hirehub/internal/auth/domain"
	"github.com/hibritu/hirehub/internal/auth/store"
	"github.com/hibritu/hirehub/pkg/cryptox"
	"github.com/hibritu/hirehub/pkg/idx"
	"github.com/hibritu/hirehub/pkg/role"
	"github.com/hibritu/hirehub/pkg/slogx"
)

var (
	ErrBootstrapAlready      = errors.New("system already bootstrapped")
	ErrBootstrapUnauthorized = errors.New("unauthorized bootstrap attempt")
	ErrBootstrapDisabled     = errors.New("bootstrap disabled")
)

// BootstrapService creates the first administrator. Admins cannot
// self-register, so this is the only way one comes to exist.
type BootstrapService struct {
	Store store.Store
	Token string // Pre-configured bootstrap token; empty disables bootstrap
	Clock Clock
}

// IsBootstrapped reports whether an admin exists.
func (s *BootstrapService) IsBootstrapped(ctx context.Context) (bool, error) {
	n, err := s.Store.Identities().CountByRole(ctx, role.Admin)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func validateBootstrap(req domain.BootstrapData) error {
	fields := map[string]string{}
	var ve *ValidationError

	if err := ValidateEmail(req.AdminEmail); errors.As(err, &ve) {
		fields["admin_email"] = ve.Fields["email"]
	}
	if err := ValidatePassword(req.AdminPassword); errors.As(err, &ve) {
		fields["admin_password"] = ve.Fields["password"]
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// Bootstrap creates a verified admin identity and returns its id.
func (s *BootstrapService) Bootstrap(ctx context.Context, token string, req domain.BootstrapData) (string, error) {
	l := slogx.FromContext(ctx)

	// 1. Bootstrap must be switched on and the token must match
	if s.Token == "" {
		return "", ErrBootstrapDisabled
	}
	if subtle.ConstantTimeCompare([]byte(token), []byte(s.Token)) != 1 {
		l.Warn("unauthorized bootstrap attempt")
		return "", ErrBootstrapUnauthorized
	}

	// 2. Validate input
	if err := validateBootstrap(req); err != nil {
		return "", err
	}

	// 3. Hash password
	passHash, err := cryptox.HashPassword(req.AdminPassword)
	if err != nil {
		l.Error("failed to hash admin password", slog.Any("error", err))
		return "", err
	}

	// 4. Create the admin, unless one already exists
	now := s.Clock.now()
	adminID := idx.NewAt(now).String()
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		n, err := tx.Identities().CountByRole(ctx, role.Admin)
		if err != nil {
			return err
		}
		if n > 0 {
			l.Warn("attempted bootstrap on already-bootstrapped system")
			return ErrBootstrapAlready
		}

		err = tx.Identities().CreateIdentity(ctx, domain.Identity{
			ID:           adminID,
			Email:        domain.NormalizeEmail(req.AdminEmail),
			Name:         strings.TrimSpace(req.AdminName),
			PasswordHash: passHash,
			Role:         role.Admin,
			VerifiedAt:   &now,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
		if errors.Is(err, store.ErrAlreadyExists) {
			return ErrConflict
		}
		return err
	})
	if errors.Is(err, ErrConflict) {
		// A concurrent bootstrap may have won the single admin slot.
		if done, cerr := s.IsBootstrapped(ctx); cerr == nil && done {
			return "", ErrBootstrapAlready
		}
	}
	if err != nil {
		return "", err
	}

	l.Info("successfully bootstrapped system", slog.String("admin_user_id", adminID))
	return adminID, nil
}
