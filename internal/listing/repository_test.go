package listing

import (
	"context"
	"regexp"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var imageRowColumns = []string{"id", "listing_id", "url", "thumbnail_url", "storage_path", "thumbnail_path", "is_main", "sort_order", "created_at"}

func newMockRepo(t *testing.T) (Repository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewPgxRepository(mock), mock
}

func TestPgxRepository_Create(t *testing.T) {
	repo, mock := newMockRepo(t)

	l := &Listing{
		Title:     gofakeit.CarModel(),
		ModelYear: 2019,
		Price:     18990,
		Mileage:   64000,
		FuelType:  gofakeit.CarFuelType(),
	}
	id := gofakeit.UUID()
	now := gofakeit.Date()

	mock.ExpectQuery(`INSERT INTO public.sales_listings`).
		WithArgs(l.Title, l.ModelYear, l.Description, l.Price, l.Mileage, l.FuelType).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(id, now, now))

	require.NoError(t, repo.Create(context.Background(), l))
	assert.Equal(t, id, l.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgxRepository_List(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := gofakeit.Date()
	mainURL := "/files/listings/a/main.jpg"
	mock.ExpectQuery(regexp.QuoteMeta(
		"FROM public.sales_listings l LEFT JOIN public.sales_listing_images i ON i.listing_id = l.id AND i.is_main WHERE (l.title ILIKE $1 OR l.description ILIKE $2 OR l.fuel_type ILIKE $3) ORDER BY l.price ASC, l.id LIMIT 20 OFFSET 0",
	)).
		WithArgs("%diesel%", "%diesel%", "%diesel%").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "title", "model_year", "description", "price", "mileage", "fuel_type", "created_at", "updated_at",
			"url", "thumbnail_url", "total_count",
		}).
			AddRow(gofakeit.UUID(), "Golf", 2018, "", 12000.0, 90000, "diesel", now, now, &mainURL, (*string)(nil), 1))

	items, total, err := repo.List(context.Background(), Filter{Keyword: "diesel", SortBy: "price", SortOrder: "asc"})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, mainURL, *items[0].MainImageURL)
	assert.Nil(t, items[0].MainThumbnailURL)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgxRepository_List_UnknownSortFallsBack(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`ORDER BY l.created_at DESC, l.id LIMIT 20 OFFSET 0`).
		WillReturnRows(pgxmock.NewRows([]string{"id"}))

	_, _, err := repo.List(context.Background(), Filter{SortBy: "title; DROP TABLE x"})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgxRepository_Update_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	l := &Listing{ID: gofakeit.UUID(), Title: "x"}
	mock.ExpectQuery(`UPDATE public.sales_listings SET`).
		WithArgs(l.Title, l.ModelYear, l.Description, l.Price, l.Mileage, l.FuelType, l.ID).
		WillReturnError(pgx.ErrNoRows)

	err := repo.Update(context.Background(), l)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgxRepository_Delete(t *testing.T) {
	repo, mock := newMockRepo(t)
	id := gofakeit.UUID()

	mock.ExpectExec(`DELETE FROM public.sales_listings WHERE id = \$1`).
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), id), ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgxRepository_AddImage(t *testing.T) {
	repo, mock := newMockRepo(t)

	listingID := gofakeit.UUID()
	img := &Image{ListingID: listingID, URL: gofakeit.URL()}
	imageID := gofakeit.UUID()

	mock.ExpectQuery(regexp.QuoteMeta(
		"INSERT INTO public.sales_listing_images (listing_id,url,thumbnail_url,storage_path,thumbnail_path,is_main,sort_order) VALUES ($1,$2,$3,$4,$5,NOT EXISTS (SELECT 1 FROM public.sales_listing_images WHERE listing_id = $6 AND is_main),(SELECT COALESCE(MAX(sort_order), -1) + 1 FROM public.sales_listing_images WHERE listing_id = $7)) RETURNING id, is_main, sort_order, created_at",
	)).
		WithArgs(listingID, img.URL, img.ThumbnailURL, img.StoragePath, img.ThumbnailPath, listingID, listingID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "is_main", "sort_order", "created_at"}).
			AddRow(imageID, true, 0, gofakeit.Date()))

	require.NoError(t, repo.AddImage(context.Background(), img))
	assert.Equal(t, imageID, img.ID)
	assert.True(t, img.IsMain)
	assert.Zero(t, img.SortOrder)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgxRepository_AddImage_UnknownListing(t *testing.T) {
	repo, mock := newMockRepo(t)

	img := &Image{ListingID: gofakeit.UUID(), URL: gofakeit.URL()}
	mock.ExpectQuery(`INSERT INTO public.sales_listing_images`).
		WithArgs(img.ListingID, img.URL, pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), img.ListingID, img.ListingID).
		WillReturnError(&pgconn.PgError{Code: pgerrcode.ForeignKeyViolation})

	err := repo.AddImage(context.Background(), img)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgxRepository_SetMainImage(t *testing.T) {
	listingID, imageID := gofakeit.UUID(), gofakeit.UUID()

	t.Run("Success", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE public.sales_listing_images SET is_main = \$1 WHERE is_main = \$2 AND listing_id = \$3`).
			WithArgs(false, true, listingID).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		mock.ExpectExec(`UPDATE public.sales_listing_images SET is_main = \$1 WHERE id = \$2 AND listing_id = \$3`).
			WithArgs(true, imageID, listingID).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		mock.ExpectCommit()

		require.NoError(t, repo.SetMainImage(context.Background(), listingID, imageID))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Unknown Image Rolls Back", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE public.sales_listing_images SET is_main`).
			WithArgs(false, true, listingID).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		mock.ExpectExec(`UPDATE public.sales_listing_images SET is_main`).
			WithArgs(true, imageID, listingID).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))
		mock.ExpectRollback()

		err := repo.SetMainImage(context.Background(), listingID, imageID)
		assert.ErrorIs(t, err, ErrImageNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPgxRepository_ReorderImages(t *testing.T) {
	repo, mock := newMockRepo(t)

	listingID := gofakeit.UUID()
	ids := []string{gofakeit.UUID(), gofakeit.UUID()}

	mock.ExpectExec(`UPDATE public.sales_listing_images AS i`).
		WithArgs(ids, listingID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 2))

	require.NoError(t, repo.ReorderImages(context.Background(), listingID, ids))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgxRepository_DeleteImage_PromotesNext(t *testing.T) {
	repo, mock := newMockRepo(t)

	listingID, imageID := gofakeit.UUID(), gofakeit.UUID()
	path := "listings/" + listingID + "/a.jpg"

	mock.ExpectBegin()
	mock.ExpectQuery(`DELETE FROM public.sales_listing_images WHERE id = \$1 AND listing_id = \$2 RETURNING`).
		WithArgs(imageID, listingID).
		WillReturnRows(pgxmock.NewRows(imageRowColumns).
			AddRow(imageID, listingID, "/files/"+path, (*string)(nil), &path, (*string)(nil), true, 0, gofakeit.Date()))
	mock.ExpectExec(`UPDATE public.sales_listing_images SET is_main = \$1 WHERE id = \(SELECT id`).
		WithArgs(true, listingID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	img, err := repo.DeleteImage(context.Background(), listingID, imageID)
	require.NoError(t, err)
	assert.Equal(t, path, *img.StoragePath)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgxRepository_DeleteImage_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	listingID, imageID := gofakeit.UUID(), gofakeit.UUID()
	mock.ExpectBegin()
	mock.ExpectQuery(`DELETE FROM public.sales_listing_images`).
		WithArgs(imageID, listingID).
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectRollback()

	_, err := repo.DeleteImage(context.Background(), listingID, imageID)
	assert.ErrorIs(t, err, ErrImageNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
