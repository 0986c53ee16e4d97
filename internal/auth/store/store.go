package store

import (
	"context"
	"errors"
	"time"

	"github.com/hibritu/hirehub/internal/auth/domain"
	"github.com/hibritu/hirehub/pkg/role"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")

	// ErrNestedTx is returned by Tx and WithTx on a store that is already a
	// transaction.
	ErrNestedTx = errors.New("store: nested transactions are not supported")
)

// Store is the root data access interface. Concrete drivers (sqlite, postgres)
// implement this. Repositories hang off the store so that a transaction can
// hand out the same repositories bound to itself, and nobody opens a
// transaction inside another one by accident.
type Store interface {
	Identities() Identities

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed.
	//
	// Lifecycle changes (verify, resend, reset) read, check and save an
	// identity inside WithTx so concurrent requests cannot interleave.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Identities interface {
	// GetIdentityByID returns ErrNotFound for unknown ids.
	GetIdentityByID(ctx context.Context, id string) (domain.Identity, error)

	// GetIdentityByEmail expects an already normalized email.
	GetIdentityByEmail(ctx context.Context, email string) (domain.Identity, error)

	// GetIdentityByResetTokenHash finds the identity holding a pending reset
	// with this fingerprint.
	GetIdentityByResetTokenHash(ctx context.Context, hash string) (domain.Identity, error)

	// CreateIdentity inserts a new identity. ErrAlreadyExists when the email
	// is taken.
	CreateIdentity(ctx context.Context, id domain.Identity) error

	// SaveIdentity writes every mutable field of id in a single UPDATE. A set
	// verified_at is never cleared.
	SaveIdentity(ctx context.Context, id domain.Identity) error

	// CountByRole is used by bootstrap to tell whether an admin exists.
	CountByRole(ctx context.Context, r role.Role) (int64, error)

	// ClearExpiredPending drops pending OTPs and resets that expired before
	// cutoff and reports how many of each were cleared.
	ClearExpiredPending(ctx context.Context, cutoff time.Time) (otps, resets int64, err error)
}
