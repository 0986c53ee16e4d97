package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/hibritu/hirehub/internal/auth/domain"
	"github.com/hibritu/hirehub/internal/auth/store"
	"github.com/hibritu/hirehub/internal/auth/store/drivers/sqlite/gen"
	"github.com/hibritu/hirehub/pkg/role"
	_ "modernc.org/sqlite"
)

// connParams are appended to every DSN. Times are written in a format the
// sqlite date functions understand, transactions take the write lock up front
// and a busy writer is waited on instead of failing.
const connParams = "_time_format=sqlite&_txlock=immediate&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"

type Store struct {
	db  *sql.DB
	q   *gen.Queries
	dsn string
}

// NewStore opens a sqlite database. dsn is a file path or ":memory:".
func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", withParams(dsn))
	if err != nil {
		return nil, err
	}

	// sqlite has a single writer. One connection serialises transactions in
	// the pool and keeps a ":memory:" database alive between calls.
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{
		db:  db,
		q:   gen.New(db),
		dsn: dsn,
	}, nil
}

func withParams(dsn string) string {
	if strings.Contains(dsn, "?") {
		return dsn + "&" + connParams
	}
	return dsn + "?" + connParams
}

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Tx starts a read/write transaction and returns a Tx-scoped Store.
func (s *Store) Tx(ctx context.Context) (store.Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return newTx(tx), nil
}

// WithTx executes fn within a transaction, automatically handling commit/rollback.
func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.Tx(ctx)
	if err != nil {
		return err
	}

	defer func() {
		_ = tx.Rollback() // safe to call even after commit
	}()

	if err := fn(tx); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *Store) Identities() store.Identities { return &identitiesRepo{q: s.q} }

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

func mapNullTimePtr(nt sql.NullTime) *time.Time {
	if nt.Valid {
		val := nt.Time.UTC()
		return &val
	}
	return nil
}

func mapOptionalTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{Valid: false}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

func mapPending(hash sql.NullString, expires sql.NullTime) *domain.PendingSecret {
	if !hash.Valid || !expires.Valid {
		return nil
	}
	return &domain.PendingSecret{Hash: hash.String, ExpiresAt: expires.Time.UTC()}
}

// splitPending is the inverse of mapPending.
func splitPending(p *domain.PendingSecret) (sql.NullString, sql.NullTime) {
	if p == nil {
		return sql.NullString{}, sql.NullTime{}
	}
	return sql.NullString{String: p.Hash, Valid: true}, sql.NullTime{Time: p.ExpiresAt.UTC(), Valid: true}
}

func mapIdentity(row gen.Identity) domain.Identity {
	return domain.Identity{
		ID:           row.ID,
		Email:        row.Email,
		Name:         row.Name,
		PasswordHash: row.PasswordHash,
		Role:         role.Role(row.Role),
		VerifiedAt:   mapNullTimePtr(row.VerifiedAt),
		PendingOTP:   mapPending(row.OtpHash, row.OtpExpiresAt),
		PendingReset: mapPending(row.ResetHash, row.ResetExpiresAt),
		CreatedAt:    row.CreatedAt.UTC(),
		UpdatedAt:    row.UpdatedAt.UTC(),
	}
}
