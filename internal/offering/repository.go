package offering

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/kelleauto/dealership-backend/internal/db"
)

type Repository interface {
	Create(ctx context.Context, o *Offering) error
	GetByID(ctx context.Context, kind Kind, id string) (*Offering, error)
	List(ctx context.Context, kind Kind) ([]*Offering, error)
	Update(ctx context.Context, o *Offering) error
	Delete(ctx context.Context, kind Kind, id string) error
}

type pgxRepository struct {
	conn db.DBTX
}

func NewPgxRepository(conn db.DBTX) Repository {
	return &pgxRepository{conn: conn}
}

func tableFor(kind Kind) (string, error) {
	table := kind.table()
	if table == "" {
		return "", ErrInvalidKind
	}
	return table, nil
}

func (r *pgxRepository) Create(ctx context.Context, o *Offering) error {
	table, err := tableFor(o.Kind)
	if err != nil {
		return err
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert(table).
		Columns("name", "description").
		Values(o.Name, o.Description).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create offering query failed: %w", err)
	}

	if err := r.conn.QueryRow(ctx, query, args...).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return fmt.Errorf("create offering failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, kind Kind, id string) (*Offering, error) {
	table, err := tableFor(kind)
	if err != nil {
		return nil, err
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("id", "name", "description", "created_at", "updated_at").
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get offering query failed: %w", err)
	}

	o := Offering{Kind: kind}
	if err := r.conn.QueryRow(ctx, query, args...).Scan(&o.ID, &o.Name, &o.Description, &o.CreatedAt, &o.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get offering failed: %w", err)
	}
	return &o, nil
}

func (r *pgxRepository) List(ctx context.Context, kind Kind) ([]*Offering, error) {
	table, err := tableFor(kind)
	if err != nil {
		return nil, err
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("id", "name", "description", "created_at", "updated_at").
		From(table).
		OrderBy("created_at ASC", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list offerings query failed: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list offerings failed: %w", err)
	}
	defer rows.Close()

	result := make([]*Offering, 0)
	for rows.Next() {
		o := Offering{Kind: kind}
		if err := rows.Scan(&o.ID, &o.Name, &o.Description, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan offering failed: %w", err)
		}
		result = append(result, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate offerings failed: %w", err)
	}
	return result, nil
}

func (r *pgxRepository) Update(ctx context.Context, o *Offering) error {
	table, err := tableFor(o.Kind)
	if err != nil {
		return err
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update(table).
		Set("name", o.Name).
		Set("description", o.Description).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": o.ID}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build update offering query failed: %w", err)
	}

	if err := r.conn.QueryRow(ctx, query, args...).Scan(&o.CreatedAt, &o.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("update offering failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, kind Kind, id string) error {
	table, err := tableFor(kind)
	if err != nil {
		return err
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete offering query failed: %w", err)
	}

	ct, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete offering failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
