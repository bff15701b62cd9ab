package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/kpetrakis/catsnatch/internal/errs"
	"github.com/kpetrakis/catsnatch/internal/model"
)

// CatRepo implements CatRepository using PostgreSQL.
type CatRepo struct{ db *DB }

// NewCatRepo constructs a cat repository.
func NewCatRepo(db *DB) *CatRepo { return &CatRepo{db: db} }

const (
	qCountAll = `SELECT COUNT(*) FROM cats`

	qCountByTag = `
SELECT COUNT(*) FROM cats c
WHERE EXISTS (
  SELECT 1 FROM cat_tags ct JOIN tags t ON t.id = ct.tag_id
  WHERE ct.cat_id = c.id AND t.name = $1)`

	qPageAll = `
SELECT id, cat_id, width, height, image, created
FROM cats
ORDER BY created DESC, id ASC
OFFSET $1 LIMIT $2`

	qPageByTag = `
SELECT c.id, c.cat_id, c.width, c.height, c.image, c.created
FROM cats c
WHERE EXISTS (
  SELECT 1 FROM cat_tags ct JOIN tags t ON t.id = ct.tag_id
  WHERE ct.cat_id = c.id AND t.name = $1)
ORDER BY c.created DESC, c.id ASC
OFFSET $2 LIMIT $3`

	qCatByID = `
SELECT id, cat_id, width, height, image, created
FROM cats WHERE id = $1`

	qTagsForCats = `
SELECT ct.cat_id, t.id, t.name, t.created
FROM cat_tags ct JOIN tags t ON t.id = ct.tag_id
WHERE ct.cat_id = ANY($1)
ORDER BY ct.cat_id ASC, t.id ASC`
)

// GetCatsPaged returns one page of cats ordered newest-first (ties by id
// ascending) and the total count of the filtered set. The tag filter
// matches stored display names exactly, including case.
func (r *CatRepo) GetCatsPaged(ctx context.Context, page, pageSize int, tagFilter string) ([]model.Cat, int, error) {
	var (
		total  int
		rows   pgx.Rows
		err    error
		offset = (page - 1) * pageSize
	)
	if tagFilter == "" {
		if err = r.db.Pool.QueryRow(ctx, qCountAll).Scan(&total); err != nil {
			return nil, 0, err
		}
		rows, err = r.db.Pool.Query(ctx, qPageAll, offset, pageSize)
	} else {
		if err = r.db.Pool.QueryRow(ctx, qCountByTag, tagFilter).Scan(&total); err != nil {
			return nil, 0, err
		}
		rows, err = r.db.Pool.Query(ctx, qPageByTag, tagFilter, offset, pageSize)
	}
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	cats := make([]model.Cat, 0, pageSize)
	ids := make([]int64, 0, pageSize)
	for rows.Next() {
		var c model.Cat
		if err = rows.Scan(&c.ID, &c.SourceID, &c.Width, &c.Height, &c.Image, &c.Created); err != nil {
			return nil, 0, err
		}
		cats = append(cats, c)
		ids = append(ids, c.ID)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, err
	}

	if len(ids) > 0 {
		byCat, err := r.loadTags(ctx, ids)
		if err != nil {
			return nil, 0, err
		}
		for i := range cats {
			cats[i].Tags = byCat[cats[i].ID]
		}
	}
	return cats, total, nil
}

// GetCatByID returns a single cat with its tags, or ErrNotFound.
func (r *CatRepo) GetCatByID(ctx context.Context, id int64) (*model.Cat, error) {
	var c model.Cat
	row := r.db.Pool.QueryRow(ctx, qCatByID, id)
	if err := row.Scan(&c.ID, &c.SourceID, &c.Width, &c.Height, &c.Image, &c.Created); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	byCat, err := r.loadTags(ctx, []int64{c.ID})
	if err != nil {
		return nil, err
	}
	c.Tags = byCat[c.ID]
	return &c, nil
}

// loadTags fetches tag associations for the given cat ids in one query.
func (r *CatRepo) loadTags(ctx context.Context, ids []int64) (map[int64][]model.Tag, error) {
	rows, err := r.db.Pool.Query(ctx, qTagsForCats, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[int64][]model.Tag, len(ids))
	for rows.Next() {
		var (
			catID   int64
			tagID   int64
			name    string
			created time.Time
		)
		if err = rows.Scan(&catID, &tagID, &name, &created); err != nil {
			return nil, err
		}
		out[catID] = append(out[catID], model.Tag{ID: tagID, Name: name, Created: created})
	}
	return out, rows.Err()
}
