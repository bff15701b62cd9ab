// Package service contains application services for ingestion and queries.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"

	"github.com/kpetrakis/catsnatch/internal/catapi"
	"github.com/kpetrakis/catsnatch/internal/errs"
	"github.com/kpetrakis/catsnatch/internal/model"
	"github.com/kpetrakis/catsnatch/internal/repository"
	"github.com/kpetrakis/catsnatch/internal/tags"
)

// CatFetcher is the external catalog boundary consumed by ingestion.
type CatFetcher interface {
	// FetchBatch returns up to limit catalog records.
	FetchBatch(ctx context.Context, limit int) ([]catapi.SearchResult, error)
	// FetchBytes downloads an image payload by URL.
	FetchBytes(ctx context.Context, url string) ([]byte, error)
}

// Tripper receives the post-commit cache invalidation signal.
type Tripper interface {
	Trip()
}

// IngestService pulls batches from the external catalog into the store.
type IngestService interface {
	// Run ingests up to count new cats in a single transaction.
	Run(ctx context.Context, count int) error
}

type IngestServiceImpl struct {
	store   repository.IngestStore
	fetcher CatFetcher
	tripper Tripper
	log     *zap.Logger
	now     func() time.Time
}

// NewIngestService constructs IngestService with its collaborators.
func NewIngestService(store repository.IngestStore, fetcher CatFetcher, tripper Tripper, log *zap.Logger) *IngestServiceImpl {
	return &IngestServiceImpl{
		store:   store,
		fetcher: fetcher,
		tripper: tripper,
		log:     log,
		now:     time.Now,
	}
}

// Run fetches up to count records and commits the new ones atomically.
//
// Per-record skip conditions (missing external id, already stored, no
// breed information) are logged and continue the run. A failed image
// download aborts the whole run: nothing is committed. On a successful
// commit that staged at least one cat, the invalidation token is tripped
// so list-query cache entries are rebuilt from fresh state.
func (s *IngestServiceImpl) Run(ctx context.Context, count int) error {
	if count <= 0 {
		return fmt.Errorf("%w: validation: count must be positive", errs.ErrIngestion)
	}
	runID, _ := uuid.NewV4()
	log := s.log.With(zap.String("run", runID.String()))

	if err := s.run(ctx, log, count); err != nil {
		log.Error("ingestion run failed", zap.Error(err))
		return fmt.Errorf("%w: %w", errs.ErrIngestion, err)
	}
	return nil
}

func (s *IngestServiceImpl) run(ctx context.Context, log *zap.Logger, count int) error {
	batch, err := s.fetcher.FetchBatch(ctx, count)
	if err != nil {
		return err
	}
	if len(batch) == 0 {
		log.Warn("external catalog returned no records")
		return nil
	}

	tx, err := s.store.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// Tags resolved earlier in this run, keyed by normalized name. Staged
	// tags are invisible to store lookups from outside the transaction and
	// a display-name lookup misses case variants, so the run tracks its
	// own resolutions and consults them before any store query.
	resolved := make(map[string]*model.Tag)

	added := 0
	for _, item := range batch {
		if item.ID == "" {
			log.Warn("catalog record has empty id, skipping")
			continue
		}
		exists, err := tx.ExistsBySourceID(ctx, item.ID)
		if err != nil {
			return err
		}
		if exists {
			log.Debug("cat already stored, skipping", zap.String("catId", item.ID))
			continue
		}
		if len(item.Breeds) == 0 {
			log.Debug("cat has no breeds, skipping", zap.String("catId", item.ID))
			continue
		}

		image, err := s.fetcher.FetchBytes(ctx, item.URL)
		if err != nil {
			return err
		}

		cat := &model.Cat{
			SourceID: item.ID,
			Width:    item.Width,
			Height:   item.Height,
			Image:    image,
			Created:  s.now().UTC(),
		}
		for _, breed := range item.Breeds {
			for _, name := range tags.SplitTemperament(breed.Temperament) {
				tag, err := s.resolveTag(ctx, tx, resolved, name)
				if err != nil {
					return err
				}
				if !hasTag(cat.Tags, tag.ID) {
					cat.Tags = append(cat.Tags, *tag)
				}
			}
		}

		if err := tx.AddCat(ctx, cat); err != nil {
			return err
		}
		added++
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}
	if added > 0 {
		s.tripper.Trip()
	}
	log.Info("ingestion complete", zap.Int("fetched", len(batch)), zap.Int("added", added))
	return nil
}

// resolveTag returns the tag for a candidate name, creating and staging it
// on first encounter. The run-local map is checked before any store query
// so case/whitespace variants within one run resolve to a single tag.
func (s *IngestServiceImpl) resolveTag(ctx context.Context, tx repository.IngestTx, resolved map[string]*model.Tag, name string) (*model.Tag, error) {
	key := tags.Normalize(name)
	if tag, ok := resolved[key]; ok {
		return tag, nil
	}
	tag, err := tx.TagByName(ctx, name)
	switch {
	case err == nil:
	case errors.Is(err, errs.ErrNotFound):
		tag = &model.Tag{Name: name, Created: s.now().UTC()}
		if err := tx.AddTag(ctx, tag); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}
	resolved[key] = tag
	return tag, nil
}

func hasTag(list []model.Tag, id int64) bool {
	for i := range list {
		if list[i].ID == id {
			return true
		}
	}
	return false
}
