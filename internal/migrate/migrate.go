// Package migrate brings the catalog schema up to date on startup.
package migrate

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // database/sql driver goose runs on
	"github.com/pressly/goose/v3"

	"github.com/kpetrakis/catsnatch/migrations"
)

// Up applies all pending SQL migrations embedded in the migrations
// package. It opens its own short-lived database/sql handle; the pgx
// pool used by repositories is created separately after this succeeds.
func Up(ctx context.Context, dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("open migration connection: %w", err)
	}
	defer db.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
