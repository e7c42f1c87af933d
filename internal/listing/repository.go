package listing

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/kelleauto/dealership-backend/internal/db"
)

type Repository interface {
	Create(ctx context.Context, l *Listing) error
	GetByID(ctx context.Context, id string) (*Listing, error)
	List(ctx context.Context, filter Filter) ([]*Listing, int, error)
	Update(ctx context.Context, l *Listing) error
	Delete(ctx context.Context, id string) error

	ListImages(ctx context.Context, listingID string) ([]*Image, error)
	// AddImage appends img after the listing's last image. The first image of a
	// listing becomes its main image.
	AddImage(ctx context.Context, img *Image) error
	SetMainImage(ctx context.Context, listingID, imageID string) error
	// ReorderImages assigns sort orders following the position of each id.
	ReorderImages(ctx context.Context, listingID string, imageIDs []string) error
	// DeleteImage removes an image and returns it. When the main image is
	// removed, the first remaining image is promoted.
	DeleteImage(ctx context.Context, listingID, imageID string) (*Image, error)
}

var listingColumns = []string{
	"l.id", "l.title", "l.model_year", "l.description", "l.price", "l.mileage", "l.fuel_type",
	"l.created_at", "l.updated_at",
}

var imageColumns = []string{
	"id", "listing_id", "url", "thumbnail_url", "storage_path", "thumbnail_path", "is_main", "sort_order", "created_at",
}

var sortColumns = map[string]string{
	"created_at": "l.created_at",
	"price":      "l.price",
	"model_year": "l.model_year",
	"mileage":    "l.mileage",
}

type pgxRepository struct {
	conn db.DBTX
}

func NewPgxRepository(conn db.DBTX) Repository {
	return &pgxRepository{conn: conn}
}

func (r *pgxRepository) Create(ctx context.Context, l *Listing) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.sales_listings").
		Columns("title", "model_year", "description", "price", "mileage", "fuel_type").
		Values(l.Title, l.ModelYear, l.Description, l.Price, l.Mileage, l.FuelType).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create listing query failed: %w", err)
	}

	if err := r.conn.QueryRow(ctx, query, args...).Scan(&l.ID, &l.CreatedAt, &l.UpdatedAt); err != nil {
		return fmt.Errorf("create listing failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Listing, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(listingColumns...).
		From("public.sales_listings l").
		Where(squirrel.Eq{"l.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get listing query failed: %w", err)
	}

	var l Listing
	if err := r.conn.QueryRow(ctx, query, args...).Scan(
		&l.ID, &l.Title, &l.ModelYear, &l.Description, &l.Price, &l.Mileage, &l.FuelType,
		&l.CreatedAt, &l.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get listing failed: %w", err)
	}
	return &l, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Listing, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	columns := append(append([]string{}, listingColumns...), "i.url", "i.thumbnail_url", "count(*) OVER() AS total_count")
	query := psql.Select(columns...).
		From("public.sales_listings l").
		LeftJoin("public.sales_listing_images i ON i.listing_id = l.id AND i.is_main")

	if filter.Keyword != "" {
		pattern := "%" + filter.Keyword + "%"
		query = query.Where(squirrel.Or{
			squirrel.ILike{"l.title": pattern},
			squirrel.ILike{"l.description": pattern},
			squirrel.ILike{"l.fuel_type": pattern},
		})
	}

	// Sorting
	orderBy, ok := sortColumns[filter.SortBy]
	if !ok {
		orderBy = "l.created_at"
	}
	orderDir := "DESC"
	if filter.SortOrder == "ASC" || filter.SortOrder == "asc" {
		orderDir = "ASC"
	}
	query = query.OrderBy(orderBy+" "+orderDir, "l.id")

	// Pagination
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize
	query = query.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list listings query failed: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list listings failed: %w", err)
	}
	defer rows.Close()

	var (
		result []*Listing
		total  int
	)
	for rows.Next() {
		var l Listing
		if err := rows.Scan(
			&l.ID, &l.Title, &l.ModelYear, &l.Description, &l.Price, &l.Mileage, &l.FuelType,
			&l.CreatedAt, &l.UpdatedAt, &l.MainImageURL, &l.MainThumbnailURL, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan listing failed: %w", err)
		}
		result = append(result, &l)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate listings failed: %w", err)
	}

	return result, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, l *Listing) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.sales_listings").
		Set("title", l.Title).
		Set("model_year", l.ModelYear).
		Set("description", l.Description).
		Set("price", l.Price).
		Set("mileage", l.Mileage).
		Set("fuel_type", l.FuelType).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": l.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build update listing query failed: %w", err)
	}

	if err := r.conn.QueryRow(ctx, query, args...).Scan(&l.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("update listing failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.sales_listings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete listing query failed: %w", err)
	}

	ct, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete listing failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) ListImages(ctx context.Context, listingID string) ([]*Image, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(imageColumns...).
		From("public.sales_listing_images").
		Where(squirrel.Eq{"listing_id": listingID}).
		OrderBy("sort_order ASC", "created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list images query failed: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list images failed: %w", err)
	}
	defer rows.Close()

	images := make([]*Image, 0)
	for rows.Next() {
		img, err := scanImage(rows)
		if err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate images failed: %w", err)
	}
	return images, nil
}

func (r *pgxRepository) AddImage(ctx context.Context, img *Image) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.sales_listing_images").
		Columns("listing_id", "url", "thumbnail_url", "storage_path", "thumbnail_path", "is_main", "sort_order").
		Values(
			img.ListingID, img.URL, img.ThumbnailURL, img.StoragePath, img.ThumbnailPath,
			squirrel.Expr("NOT EXISTS (SELECT 1 FROM public.sales_listing_images WHERE listing_id = ? AND is_main)", img.ListingID),
			squirrel.Expr("(SELECT COALESCE(MAX(sort_order), -1) + 1 FROM public.sales_listing_images WHERE listing_id = ?)", img.ListingID),
		).
		Suffix("RETURNING id, is_main, sort_order, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build add image query failed: %w", err)
	}

	if err := r.conn.QueryRow(ctx, query, args...).Scan(&img.ID, &img.IsMain, &img.SortOrder, &img.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return ErrNotFound
		}
		return fmt.Errorf("add image failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) SetMainImage(ctx context.Context, listingID, imageID string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	clearQuery, clearArgs, err := psql.Update("public.sales_listing_images").
		Set("is_main", false).
		Where(squirrel.Eq{"listing_id": listingID, "is_main": true}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build clear main image query failed: %w", err)
	}
	setQuery, setArgs, err := psql.Update("public.sales_listing_images").
		Set("is_main", true).
		Where(squirrel.Eq{"id": imageID, "listing_id": listingID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build set main image query failed: %w", err)
	}

	return db.InTx(ctx, r.conn, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, clearQuery, clearArgs...); err != nil {
			return fmt.Errorf("clear main image failed: %w", err)
		}
		ct, err := tx.Exec(ctx, setQuery, setArgs...)
		if err != nil {
			return fmt.Errorf("set main image failed: %w", err)
		}
		if ct.RowsAffected() == 0 {
			return ErrImageNotFound
		}
		return nil
	})
}

func (r *pgxRepository) ReorderImages(ctx context.Context, listingID string, imageIDs []string) error {
	const query = `
		UPDATE public.sales_listing_images AS i
		SET sort_order = o.ord - 1
		FROM unnest($1::text[]) WITH ORDINALITY AS o(id, ord)
		WHERE i.id = o.id::uuid AND i.listing_id = $2
	`

	ct, err := r.conn.Exec(ctx, query, imageIDs, listingID)
	if err != nil {
		return fmt.Errorf("reorder images failed: %w", err)
	}
	if ct.RowsAffected() != int64(len(imageIDs)) {
		return ErrInvalidOrder
	}
	return nil
}

func (r *pgxRepository) DeleteImage(ctx context.Context, listingID, imageID string) (*Image, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	deleteQuery, deleteArgs, err := psql.Delete("public.sales_listing_images").
		Where(squirrel.Eq{"id": imageID, "listing_id": listingID}).
		Suffix("RETURNING " + strings.Join(imageColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build delete image query failed: %w", err)
	}
	promoteQuery, promoteArgs, err := psql.Update("public.sales_listing_images").
		Set("is_main", true).
		Where(squirrel.Expr(
			"id = (SELECT id FROM public.sales_listing_images WHERE listing_id = ? ORDER BY sort_order, created_at LIMIT 1)",
			listingID,
		)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build promote image query failed: %w", err)
	}

	var deleted *Image
	err = db.InTx(ctx, r.conn, func(tx pgx.Tx) error {
		img, err := scanImage(tx.QueryRow(ctx, deleteQuery, deleteArgs...))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrImageNotFound
			}
			return err
		}
		if img.IsMain {
			if _, err := tx.Exec(ctx, promoteQuery, promoteArgs...); err != nil {
				return fmt.Errorf("promote main image failed: %w", err)
			}
		}
		deleted = img
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

func scanImage(row pgx.Row) (*Image, error) {
	var img Image
	if err := row.Scan(
		&img.ID, &img.ListingID, &img.URL, &img.ThumbnailURL, &img.StoragePath, &img.ThumbnailPath,
		&img.IsMain, &img.SortOrder, &img.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan image failed: %w", err)
	}
	return &img, nil
}
