package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/hibritu/hirehub/internal/auth/domain"
	"github.com/hibritu/hirehub/internal/auth/store"
	"github.com/hibritu/hirehub/pkg/role"
)

const identityColumns = `id, email, name, password_hash, role, verified_at,
		otp_hash, otp_expires_at, reset_hash, reset_expires_at,
		created_at, updated_at`

type identitiesRepo struct {
	db DBTX
	// forUpdate locks selected rows until the surrounding transaction ends.
	forUpdate bool
}

func (r *identitiesRepo) getBy(ctx context.Context, column string, value any) (domain.Identity, error) {
	query := `SELECT ` + identityColumns + `
		FROM identities
		WHERE ` + column + ` = $1`
	if r.forUpdate {
		query += `
		FOR UPDATE`
	}

	var row identityRow
	err := r.db.QueryRowContext(ctx, query, value).Scan(row.dest()...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Identity{}, store.ErrNotFound
		}
		return domain.Identity{}, fmt.Errorf("db error: %w", err)
	}
	return row.identity(), nil
}

func (r *identitiesRepo) GetIdentityByID(ctx context.Context, id string) (domain.Identity, error) {
	return r.getBy(ctx, "id", id)
}

func (r *identitiesRepo) GetIdentityByEmail(ctx context.Context, email string) (domain.Identity, error) {
	return r.getBy(ctx, "email", email)
}

func (r *identitiesRepo) GetIdentityByResetTokenHash(ctx context.Context, hash string) (domain.Identity, error) {
	if hash == "" {
		return domain.Identity{}, store.ErrNotFound
	}
	return r.getBy(ctx, "reset_hash", hash)
}

func (r *identitiesRepo) CreateIdentity(ctx context.Context, id domain.Identity) error {
	query :=
		`INSERT INTO identities (` + identityColumns + `)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	otpHash, otpExp := pendingArgs(id.PendingOTP)
	resetHash, resetExp := pendingArgs(id.PendingReset)

	_, err := r.db.ExecContext(ctx, query,
		id.ID, id.Email, id.Name, id.PasswordHash, id.Role.String(), nullTime(id.VerifiedAt),
		otpHash, otpExp, resetHash, resetExp,
		id.CreatedAt.UTC(), id.UpdatedAt.UTC(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *identitiesRepo) SaveIdentity(ctx context.Context, id domain.Identity) error {
	query :=
		`UPDATE identities
		 SET name = $1,
		     password_hash = $2,
		     verified_at = COALESCE(verified_at, $3),
		     otp_hash = $4,
		     otp_expires_at = $5,
		     reset_hash = $6,
		     reset_expires_at = $7,
		     updated_at = $8
		 WHERE id = $9`

	otpHash, otpExp := pendingArgs(id.PendingOTP)
	resetHash, resetExp := pendingArgs(id.PendingReset)

	res, err := r.db.ExecContext(ctx, query,
		id.Name, id.PasswordHash, nullTime(id.VerifiedAt),
		otpHash, otpExp, resetHash, resetExp,
		id.UpdatedAt.UTC(), id.ID,
	)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *identitiesRepo) CountByRole(ctx context.Context, rl role.Role) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM identities WHERE role = $1`, rl.String()).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *identitiesRepo) ClearExpiredPending(ctx context.Context, cutoff time.Time) (int64, int64, error) {
	otps, err := r.execRows(ctx,
		`UPDATE identities SET otp_hash = NULL, otp_expires_at = NULL
		 WHERE otp_expires_at < $1`, cutoff.UTC())
	if err != nil {
		return 0, 0, err
	}

	resets, err := r.execRows(ctx,
		`UPDATE identities SET reset_hash = NULL, reset_expires_at = NULL
		 WHERE reset_expires_at < $1`, cutoff.UTC())
	if err != nil {
		return otps, 0, err
	}
	return otps, resets, nil
}

func (r *identitiesRepo) execRows(ctx context.Context, query string, args ...any) (int64, error) {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
