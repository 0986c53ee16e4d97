// Package postgres is the PostgreSQL credential store, for deployments that
// run more than one auth replica against a shared database.
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
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Store struct {
	db *sql.DB
}

// NewStore opens a connection pool for dsn, e.g.
// "postgres://auth:secret@db:5432/auth?sslmode=disable".
func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return &Store{db: db}, nil
}

// NewStoreFromDB wraps an existing pool.
func NewStoreFromDB(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

// Tx starts a read/write transaction. Reads through the returned store take
// row locks (SELECT ... FOR UPDATE).
func (s *Store) Tx(ctx context.Context) (store.Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &txStore{tx: tx}, nil
}

func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.Tx(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) Identities() store.Identities { return &identitiesRepo{db: s.db} }

type txStore struct {
	tx *sql.Tx
}

func (t *txStore) Identities() store.Identities {
	return &identitiesRepo{db: t.tx, forUpdate: true}
}

func (t *txStore) Commit() error                  { return t.tx.Commit() }
func (t *txStore) Rollback() error                { return t.tx.Rollback() }
func (t *txStore) Close() error                   { return nil }
func (t *txStore) Ping(ctx context.Context) error { return nil }
func (t *txStore) ApplyMigrations() error         { return nil }

func (t *txStore) Tx(context.Context) (store.Tx, error) { return nil, store.ErrNestedTx }

func (t *txStore) WithTx(context.Context, func(store.Tx) error) error { return store.ErrNestedTx }

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

func pendingArgs(p *domain.PendingSecret) (sql.NullString, sql.NullTime) {
	if p == nil {
		return sql.NullString{}, sql.NullTime{}
	}
	return sql.NullString{String: p.Hash, Valid: true}, sql.NullTime{Time: p.ExpiresAt.UTC(), Valid: true}
}

// identityRow mirrors the identities columns in select order.
type identityRow struct {
	id, email, name, passwordHash, role string
	verifiedAt                          sql.NullTime
	otpHash                             sql.NullString
	otpExpiresAt                        sql.NullTime
	resetHash                           sql.NullString
	resetExpiresAt                      sql.NullTime
	createdAt, updatedAt                time.Time
}

func (r *identityRow) dest() []any {
	return []any{
		&r.id, &r.email, &r.name, &r.passwordHash, &r.role, &r.verifiedAt,
		&r.otpHash, &r.otpExpiresAt, &r.resetHash, &r.resetExpiresAt,
		&r.createdAt, &r.updatedAt,
	}
}

func (r *identityRow) identity() domain.Identity {
	out := domain.Identity{
		ID:           r.id,
		Email:        r.email,
		Name:         r.name,
		PasswordHash: r.passwordHash,
		Role:         role.Role(r.role),
		CreatedAt:    r.createdAt.UTC(),
		UpdatedAt:    r.updatedAt.UTC(),
	}
	if r.verifiedAt.Valid {
		t := r.verifiedAt.Time.UTC()
		out.VerifiedAt = &t
	}
	if r.otpHash.Valid && r.otpExpiresAt.Valid {
		out.PendingOTP = &domain.PendingSecret{Hash: r.otpHash.String, ExpiresAt: r.otpExpiresAt.Time.UTC()}
	}
	if r.resetHash.Valid && r.resetExpiresAt.Valid {
		out.PendingReset = &domain.PendingSecret{Hash: r.resetHash.String, ExpiresAt: r.resetExpiresAt.Time.UTC()}
	}
	return out
}
