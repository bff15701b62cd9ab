package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/kpetrakis/catsnatch/internal/errs"
	"github.com/kpetrakis/catsnatch/internal/model"
	"github.com/kpetrakis/catsnatch/internal/repository"
)

// IngestRepo opens transactional staging sessions for ingestion runs.
type IngestRepo struct{ db *DB }

// NewIngestRepo constructs an ingest repository.
func NewIngestRepo(db *DB) *IngestRepo { return &IngestRepo{db: db} }

// Begin starts a staging transaction.
func (r *IngestRepo) Begin(ctx context.Context) (repository.IngestTx, error) {
	tx, err := r.db.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("%w: begin: %w", errs.ErrPersistence, err)
	}
	return &ingestTx{tx: tx}, nil
}

// ingestTx stages cats and tags inside one pgx transaction. Reads through
// the transaction see rows staged earlier in the same run; nothing is
// visible to other connections until Commit.
type ingestTx struct{ tx pgx.Tx }

const (
	qExistsBySourceID = `SELECT EXISTS (SELECT 1 FROM cats WHERE cat_id = $1)`

	qTagByName = `SELECT id, name, created FROM tags WHERE name = $1`

	qInsertTag = `INSERT INTO tags (name, created) VALUES ($1, $2) RETURNING id`

	qInsertCat = `
INSERT INTO cats (cat_id, width, height, image, created)
VALUES ($1, $2, $3, $4, $5) RETURNING id`

	qInsertCatTag = `INSERT INTO cat_tags (cat_id, tag_id) VALUES ($1, $2)`
)

// ExistsBySourceID reports whether a cat with the external id exists,
// staged rows of this transaction included.
func (t *ingestTx) ExistsBySourceID(ctx context.Context, sourceID string) (bool, error) {
	var exists bool
	if err := t.tx.QueryRow(ctx, qExistsBySourceID, sourceID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// TagByName returns the tag with the exact display name, or ErrNotFound.
func (t *ingestTx) TagByName(ctx context.Context, name string) (*model.Tag, error) {
	var tag model.Tag
	row := t.tx.QueryRow(ctx, qTagByName, name)
	if err := row.Scan(&tag.ID, &tag.Name, &tag.Created); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &tag, nil
}

// AddTag stages a new tag and assigns its id.
func (t *ingestTx) AddTag(ctx context.Context, tag *model.Tag) error {
	err := t.tx.QueryRow(ctx, qInsertTag, tag.Name, tag.Created).Scan(&tag.ID)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: tag %q already exists: %w", errs.ErrPersistence, tag.Name, err)
	}
	return err
}

// AddCat stages a new cat and its tag associations, assigning its id.
func (t *ingestTx) AddCat(ctx context.Context, cat *model.Cat) error {
	err := t.tx.QueryRow(ctx, qInsertCat,
		cat.SourceID, cat.Width, cat.Height, cat.Image, cat.Created).Scan(&cat.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: cat %q already exists: %w", errs.ErrPersistence, cat.SourceID, err)
		}
		return err
	}
	for i := range cat.Tags {
		if _, err = t.tx.Exec(ctx, qInsertCatTag, cat.ID, cat.Tags[i].ID); err != nil {
			return err
		}
	}
	return nil
}

// Commit makes all staged rows visible atomically.
func (t *ingestTx) Commit(ctx context.Context) error {
	if err := t.tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: commit: %w", errs.ErrPersistence, err)
	}
	return nil
}

// Rollback discards all staged rows. Calling it after Commit is a no-op.
func (t *ingestTx) Rollback(ctx context.Context) error {
	if err := t.tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return err
	}
	return nil
}
