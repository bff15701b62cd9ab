package repository

import (
	"context"

	"github.com/kpetrakis/catsnatch/internal/model"
)

// CatRepository provides read access to stored cats.
type CatRepository interface {
	// GetCatsPaged returns one page ordered by creation time descending,
	// ties broken by id ascending, plus the total count of the filtered
	// set. tagFilter is matched against stored tag display names exactly;
	// empty means no filter. Out-of-range pages yield an empty page, not
	// an error.
	GetCatsPaged(ctx context.Context, page, pageSize int, tagFilter string) ([]model.Cat, int, error)

	// GetCatByID returns a single cat with its tags, or ErrNotFound.
	GetCatByID(ctx context.Context, id int64) (*model.Cat, error)
}
