package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hibritu/hirehub/internal/auth/store/drivers/postgres/migrations"
	"github.com/pressly/goose/v3"
)

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// ApplyMigrations runs the embedded goose migrations.
func (s *Store) ApplyMigrations() error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	if err := gooseUpContext(context.Background(), s.db, "."); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
