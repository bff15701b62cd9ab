package service

import (
	"context"
	"fmt"

	"github.com/kpetrakis/catsnatch/internal/errs"
	"github.com/kpetrakis/catsnatch/internal/model"
	"github.com/kpetrakis/catsnatch/internal/repository"
)

// CatQueries is the read contract served to the API layer. The cached
// decorator implements the same interface over this one.
type CatQueries interface {
	// GetCats returns one page of cats, newest first, optionally filtered
	// by exact tag display name (empty tag means no filter).
	GetCats(ctx context.Context, page, pageSize int, tag string) (*model.PagedCats, error)
	// GetCatByID returns a single cat, or ErrNotFound.
	GetCatByID(ctx context.Context, id int64) (*model.Cat, error)
}

type CatQueryService struct {
	repo repository.CatRepository
}

// NewCatQueryService constructs the plain (uncached) query service.
func NewCatQueryService(repo repository.CatRepository) *CatQueryService {
	return &CatQueryService{repo: repo}
}

// GetCats validates paging parameters and shapes the repository result
// into a page. Pages past the end of the set come back empty with the
// correct total, not as an error.
func (s *CatQueryService) GetCats(ctx context.Context, page, pageSize int, tag string) (*model.PagedCats, error) {
	if page < 1 {
		return nil, fmt.Errorf("%w: page must be >= 1, got %d", errs.ErrValidation, page)
	}
	if pageSize < 1 {
		return nil, fmt.Errorf("%w: pageSize must be >= 1, got %d", errs.ErrValidation, pageSize)
	}
	items, total, err := s.repo.GetCatsPaged(ctx, page, pageSize, tag)
	if err != nil {
		return nil, err
	}
	return &model.PagedCats{
		Items:      items,
		Page:       page,
		PageSize:   pageSize,
		TotalCount: total,
		TotalPages: (total + pageSize - 1) / pageSize,
	}, nil
}

// GetCatByID fetches a single cat by its internal id.
func (s *CatQueryService) GetCatByID(ctx context.Context, id int64) (*model.Cat, error) {
	if id < 1 {
		return nil, fmt.Errorf("cat %d: %w", id, errs.ErrNotFound)
	}
	return s.repo.GetCatByID(ctx, id)
}
