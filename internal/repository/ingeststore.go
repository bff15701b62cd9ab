// Package repository declares the persistence contracts consumed by services.
package repository

import (
	"context"

	"github.com/kpetrakis/catsnatch/internal/model"
)

// IngestStore opens transactional staging sessions for ingestion runs.
type IngestStore interface {
	// Begin starts a staging transaction. The caller must Commit or Rollback.
	Begin(ctx context.Context) (IngestTx, error)
}

// IngestTx stages cats and tags inside a single transaction. Nothing
// staged becomes visible to readers until Commit; reads through the
// transaction do see rows staged earlier in the same run.
type IngestTx interface {
	// ExistsBySourceID reports whether a cat with the external catalog id
	// is already stored.
	ExistsBySourceID(ctx context.Context, sourceID string) (bool, error)

	// TagByName returns the tag with the exact display name, or ErrNotFound.
	TagByName(ctx context.Context, name string) (*model.Tag, error)

	// AddTag stages a new tag and assigns its id.
	AddTag(ctx context.Context, tag *model.Tag) error

	// AddCat stages a new cat and its tag associations, assigning its id.
	AddCat(ctx context.Context, cat *model.Cat) error

	// Commit makes all staged rows visible atomically.
	Commit(ctx context.Context) error

	// Rollback discards all staged rows. A no-op after Commit.
	Rollback(ctx context.Context) error
}
