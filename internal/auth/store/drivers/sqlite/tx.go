package sqlite

import (
	"context"
	"database/sql"

	"github.com/hibritu/hirehub/internal/auth/store"
	"github.com/hibritu/hirehub/internal/auth/store/drivers/sqlite/gen"
)

// txStore binds the generated queries to one immediate transaction. The
// write lock is taken at BEGIN, so a read-check-save inside WithTx cannot
// interleave with another writer.
type txStore struct {
	tx *sql.Tx
	q  *gen.Queries
}

func newTx(tx *sql.Tx) *txStore {
	return &txStore{tx: tx, q: gen.New(tx)}
}

func (t *txStore) Identities() store.Identities { return &identitiesRepo{q: t.q} }

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

func (t *txStore) Tx(context.Context) (store.Tx, error) { return nil, store.ErrNestedTx }

func (t *txStore) WithTx(context.Context, func(store.Tx) error) error { return store.ErrNestedTx }

// The remaining methods belong to the owning Store.
func (t *txStore) ApplyMigrations() error         { return nil }
func (t *txStore) Close() error                   { return nil }
func (t *txStore) Ping(ctx context.Context) error { return nil }
