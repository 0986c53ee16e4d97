package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/hibritu/hirehub/internal/auth/domain"
	"github.com/hibritu/hirehub/internal/auth/store"
	"github.com/hibritu/hirehub/internal/auth/store/drivers/sqlite/gen"
	"github.com/hibritu/hirehub/pkg/role"
	sqlitedrv "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

type identitiesRepo struct {
	q *gen.Queries
}

func (r *identitiesRepo) GetIdentityByID(ctx context.Context, id string) (domain.Identity, error) {
	row, err := r.q.GetIdentityByID(ctx, id)
	if err != nil {
		return domain.Identity{}, mapNotFound(err)
	}
	return mapIdentity(row), nil
}

func (r *identitiesRepo) GetIdentityByEmail(ctx context.Context, email string) (domain.Identity, error) {
	row, err := r.q.GetIdentityByEmail(ctx, email)
	if err != nil {
		return domain.Identity{}, mapNotFound(err)
	}
	return mapIdentity(row), nil
}

func (r *identitiesRepo) GetIdentityByResetTokenHash(ctx context.Context, hash string) (domain.Identity, error) {
	if hash == "" {
		return domain.Identity{}, store.ErrNotFound
	}
	row, err := r.q.GetIdentityByResetHash(ctx, sql.NullString{String: hash, Valid: true})
	if err != nil {
		return domain.Identity{}, mapNotFound(err)
	}
	return mapIdentity(row), nil
}

func (r *identitiesRepo) CreateIdentity(ctx context.Context, id domain.Identity) error {
	otpHash, otpExp := splitPending(id.PendingOTP)
	resetHash, resetExp := splitPending(id.PendingReset)

	err := r.q.CreateIdentity(ctx, gen.CreateIdentityParams{
		ID:             id.ID,
		Email:          id.Email,
		Name:           id.Name,
		PasswordHash:   id.PasswordHash,
		Role:           id.Role.String(),
		VerifiedAt:     mapOptionalTime(id.VerifiedAt),
		OtpHash:        otpHash,
		OtpExpiresAt:   otpExp,
		ResetHash:      resetHash,
		ResetExpiresAt: resetExp,
		CreatedAt:      id.CreatedAt.UTC(),
		UpdatedAt:      id.UpdatedAt.UTC(),
	})
	if isUniqueViolation(err) {
		return store.ErrAlreadyExists
	}
	return err
}

func (r *identitiesRepo) SaveIdentity(ctx context.Context, id domain.Identity) error {
	otpHash, otpExp := splitPending(id.PendingOTP)
	resetHash, resetExp := splitPending(id.PendingReset)

	n, err := r.q.SaveIdentity(ctx, gen.SaveIdentityParams{
		Name:           id.Name,
		PasswordHash:   id.PasswordHash,
		VerifiedAt:     mapOptionalTime(id.VerifiedAt),
		OtpHash:        otpHash,
		OtpExpiresAt:   otpExp,
		ResetHash:      resetHash,
		ResetExpiresAt: resetExp,
		UpdatedAt:      id.UpdatedAt.UTC(),
		ID:             id.ID,
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *identitiesRepo) CountByRole(ctx context.Context, rl role.Role) (int64, error) {
	return r.q.CountIdentitiesByRole(ctx, rl.String())
}

func (r *identitiesRepo) ClearExpiredPending(ctx context.Context, cutoff time.Time) (int64, int64, error) {
	otps, err := r.q.ClearExpiredOTPs(ctx, cutoff.UTC())
	if err != nil {
		return 0, 0, fmt.Errorf("clear otps: %w", err)
	}
	resets, err := r.q.ClearExpiredResets(ctx, cutoff.UTC())
	if err != nil {
		return otps, 0, fmt.Errorf("clear resets: %w", err)
	}
	return otps, resets, nil
}

func isUniqueViolation(err error) bool {
	var serr *sqlitedrv.Error
	if !errors.As(err, &serr) {
		return false
	}
	code := serr.Code()
	return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
}
