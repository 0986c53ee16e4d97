package postgres

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/hibritu/hirehub/internal/auth/store/drivers/postgres/migrations"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"
)

func stubGoose(t *testing.T, fn func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error) {
	t.Helper()
	orig := gooseUpContext
	gooseUpContext = fn
	t.Cleanup(func() { gooseUpContext = orig })
}

func TestApplyMigrations_Success(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	var gotDir string
	stubGoose(t, func(_ context.Context, _ *sql.DB, dir string, _ ...goose.OptionsFunc) error {
		gotDir = dir
		return nil
	})

	require.NoError(t, NewStoreFromDB(db).ApplyMigrations())
	require.Equal(t, ".", gotDir)
}

func TestApplyMigrations_Error(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	stubGoose(t, func(context.Context, *sql.DB, string, ...goose.OptionsFunc) error {
		return errors.New("bad migration")
	})

	err = NewStoreFromDB(db).ApplyMigrations()
	require.ErrorContains(t, err, "migrate: bad migration")
}

func TestEmbeddedMigrationsAreGooseAnnotated(t *testing.T) {
	entries, err := fs.ReadDir(migrations.Migrations, ".")
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	for _, e := range entries {
		body, err := fs.ReadFile(migrations.Migrations, e.Name())
		require.NoError(t, err)
		require.Contains(t, string(body), "-- +goose Up", e.Name())
		require.Contains(t, string(body), "-- +goose Down", e.Name())
	}
}
