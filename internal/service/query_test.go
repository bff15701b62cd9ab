package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kpetrakis/catsnatch/internal/errs"
	"github.com/kpetrakis/catsnatch/internal/model"
	"github.com/kpetrakis/catsnatch/internal/repository"
)

type fakeCatRepo struct {
	pagedIn struct {
		page, pageSize int
		tag            string
	}
	pagedItems []model.Cat
	pagedTotal int
	pagedErr   error

	byIDIn  int64
	byIDOut *model.Cat
	byIDErr error
}

var _ repository.CatRepository = (*fakeCatRepo)(nil)

func (f *fakeCatRepo) GetCatsPaged(_ context.Context, page, pageSize int, tag string) ([]model.Cat, int, error) {
	f.pagedIn.page, f.pagedIn.pageSize, f.pagedIn.tag = page, pageSize, tag
	return append([]model.Cat(nil), f.pagedItems...), f.pagedTotal, f.pagedErr
}

func (f *fakeCatRepo) GetCatByID(_ context.Context, id int64) (*model.Cat, error) {
	f.byIDIn = id
	return f.byIDOut, f.byIDErr
}

func TestQuery_GetCats_PaginationArithmetic(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	cases := []struct {
		name      string
		total     int
		pageSize  int
		wantPages int
	}{
		{"empty set", 0, 10, 0},
		{"partial last page", 25, 10, 3},
		{"exact fit", 30, 10, 3},
		{"single item", 1, 10, 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			repo := &fakeCatRepo{pagedTotal: c.total}
			s := NewCatQueryService(repo)
			res, err := s.GetCats(ctx, 1, c.pageSize, "")
			if err != nil {
				t.Fatalf("GetCats: %v", err)
			}
			if res.TotalPages != c.wantPages {
				t.Fatalf("total=%d size=%d: want %d pages, got %d", c.total, c.pageSize, c.wantPages, res.TotalPages)
			}
		})
	}
}

func TestQuery_GetCats_OutOfRangePage(t *testing.T) {
	t.Parallel()
	repo := &fakeCatRepo{pagedTotal: 3} // repo returns no items for page 100
	s := NewCatQueryService(repo)

	res, err := s.GetCats(context.Background(), 100, 10, "")
	if err != nil {
		t.Fatalf("out-of-range page must not error: %v", err)
	}
	if len(res.Items) != 0 || res.TotalCount != 3 {
		t.Fatalf("want empty page with total 3, got %d items total %d", len(res.Items), res.TotalCount)
	}
	if repo.pagedIn.page != 100 {
		t.Fatalf("page must be forwarded, got %d", repo.pagedIn.page)
	}
}

func TestQuery_GetCats_Validation(t *testing.T) {
	t.Parallel()
	s := NewCatQueryService(&fakeCatRepo{})
	_, err := s.GetCats(context.Background(), 0, 10, "")
	if !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("want ErrValidation on page 0, got %v", err)
	}
	_, err = s.GetCats(context.Background(), 1, 0, "")
	if !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("want ErrValidation on pageSize 0, got %v", err)
	}
}

func TestQuery_GetCats_ForwardsTagFilter(t *testing.T) {
	t.Parallel()
	repo := &fakeCatRepo{}
	s := NewCatQueryService(repo)
	if _, err := s.GetCats(context.Background(), 2, 5, "Active"); err != nil {
		t.Fatalf("GetCats: %v", err)
	}
	if repo.pagedIn.page != 2 || repo.pagedIn.pageSize != 5 || repo.pagedIn.tag != "Active" {
		t.Fatalf("args not forwarded: %+v", repo.pagedIn)
	}
}

func TestQuery_GetCatByID(t *testing.T) {
	t.Parallel()
	want := &model.Cat{ID: 42, SourceID: "abc", Created: time.Now()}
	repo := &fakeCatRepo{byIDOut: want}
	s := NewCatQueryService(repo)

	got, err := s.GetCatByID(context.Background(), 42)
	if err != nil || got != want {
		t.Fatalf("GetCatByID: got=%v err=%v", got, err)
	}
	if repo.byIDIn != 42 {
		t.Fatalf("id not forwarded, got %d", repo.byIDIn)
	}

	if _, err := s.GetCatByID(context.Background(), 0); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("non-positive id must map to ErrNotFound, got %v", err)
	}
}
