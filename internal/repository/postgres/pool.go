// Package postgres contains PostgreSQL implementations of repository interfaces.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier is the slice of pgxpool.Pool the cat repositories rely on:
// plain reads for the query side plus the transaction entry point an
// ingestion run stages into. pgxmock.PgxPoolIface implements it too,
// which keeps repository tests off a live database.
type Querier interface {
	// Query runs a SELECT returning any number of rows.
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	// QueryRow runs a query expected to return at most one row.
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	// BeginTx opens the transaction ingestion staging happens in.
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	// Close releases the pool.
	Close()
}

var _ Querier = (*pgxpool.Pool)(nil)

// DB bundles the shared connection pool behind the Querier seam.
type DB struct{ Pool Querier }

// New connects a pool for the given DSN and wraps it for the repositories.
func New(ctx context.Context, dsn string) (*DB, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return &DB{Pool: pool}, nil
}

// Close releases the wrapped pool.
func (db *DB) Close() { db.Pool.Close() }

// isUniqueViolation reports whether err is Postgres error 23505, raised
// when a staged row collides with the cats.cat_id or tags.name constraint.
func isUniqueViolation(err error) bool {
	var pg *pgconn.PgError
	return errors.As(err, &pg) && pg.Code == "23505"
}
