package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"

	"github.com/kpetrakis/catsnatch/internal/errs"
)

func newDB(t *testing.T) (*DB, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	return &DB{Pool: mock}, mock
}

func catColumns() []string {
	return []string{"id", "cat_id", "width", "height", "image", "created"}
}

func TestCatRepo_GetCatsPaged_NoFilter(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewCatRepo(db)

	ctx := context.Background()
	now := time.Now().UTC()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM cats`).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery(`ORDER BY created DESC, id ASC`).
		WithArgs(0, 2).
		WillReturnRows(pgxmock.NewRows(catColumns()).
			AddRow(int64(3), "c3", 10, 10, []byte{3}, now).
			AddRow(int64(2), "c2", 20, 20, []byte{2}, now.Add(-time.Hour)))
	mock.ExpectQuery(`WHERE ct.cat_id = ANY\(\$1\)`).
		WithArgs([]int64{3, 2}).
		WillReturnRows(pgxmock.NewRows([]string{"cat_id", "id", "name", "created"}).
			AddRow(int64(3), int64(1), "Active", now))

	cats, total, err := r.GetCatsPaged(ctx, 1, 2, "")
	require.NoError(t, err)
	require.Equal(t, 3, total)
	require.Len(t, cats, 2)
	require.Equal(t, int64(3), cats[0].ID)
	require.Equal(t, "c3", cats[0].SourceID)
	require.Len(t, cats[0].Tags, 1)
	require.Equal(t, "Active", cats[0].Tags[0].Name)
	require.Empty(t, cats[1].Tags)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCatRepo_GetCatsPaged_TagFilter(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewCatRepo(db)

	ctx := context.Background()
	now := time.Now().UTC()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM cats c`).
		WithArgs("Active").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`WHERE ct.cat_id = c.id AND t.name = \$1`).
		WithArgs("Active", 0, 10).
		WillReturnRows(pgxmock.NewRows(catColumns()).
			AddRow(int64(1), "c1", 5, 5, []byte{1}, now))
	mock.ExpectQuery(`WHERE ct.cat_id = ANY\(\$1\)`).
		WithArgs([]int64{1}).
		WillReturnRows(pgxmock.NewRows([]string{"cat_id", "id", "name", "created"}).
			AddRow(int64(1), int64(9), "Active", now))

	cats, total, err := r.GetCatsPaged(ctx, 1, 10, "Active")
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Len(t, cats, 1)
	require.Equal(t, "Active", cats[0].Tags[0].Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCatRepo_GetCatsPaged_OutOfRangePageIsEmpty(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewCatRepo(db)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM cats`).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery(`ORDER BY created DESC, id ASC`).
		WithArgs(990, 10).
		WillReturnRows(pgxmock.NewRows(catColumns()))

	cats, total, err := r.GetCatsPaged(context.Background(), 100, 10, "")
	require.NoError(t, err)
	require.Equal(t, 3, total)
	require.Empty(t, cats)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCatRepo_GetCatByID_OK(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewCatRepo(db)

	now := time.Now().UTC()
	mock.ExpectQuery(`FROM cats WHERE id = \$1`).
		WithArgs(int64(42)).
		WillReturnRows(pgxmock.NewRows(catColumns()).
			AddRow(int64(42), "abc", 640, 480, []byte("img"), now))
	mock.ExpectQuery(`WHERE ct.cat_id = ANY\(\$1\)`).
		WithArgs([]int64{42}).
		WillReturnRows(pgxmock.NewRows([]string{"cat_id", "id", "name", "created"}).
			AddRow(int64(42), int64(1), "Curious", now))

	cat, err := r.GetCatByID(context.Background(), 42)
	require.NoError(t, err)
	require.Equal(t, int64(42), cat.ID)
	require.Equal(t, "abc", cat.SourceID)
	require.Equal(t, []byte("img"), cat.Image)
	require.Len(t, cat.Tags, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCatRepo_GetCatByID_NotFound(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewCatRepo(db)

	mock.ExpectQuery(`FROM cats WHERE id = \$1`).
		WithArgs(int64(7)).
		WillReturnError(pgx.ErrNoRows)

	_, err := r.GetCatByID(context.Background(), 7)
	require.ErrorIs(t, err, errs.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
