package booking

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
	Create(ctx context.Context, booking *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)

	// OccupiedHours returns the distinct hours of day booked on date, ascending.
	OccupiedHours(ctx context.Context, date string) ([]int, error)

	// IsSlotTaken checks whether any booking already falls within the hour starting at at.
	IsSlotTaken(ctx context.Context, at LocalTime) (bool, error)
}

// appointmentColumn reads appointment_time back as the literal wall-clock string.
const appointmentColumn = "to_char(appointment_time, 'YYYY-MM-DD HH24:MI:SS')"

type pgxRepository struct {
	conn db.DBTX
}

func NewPgxRepository(conn db.DBTX) Repository {
	return &pgxRepository{conn: conn}
}

func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	if b.AppointmentTime == nil {
		return ErrMissingSlot
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.bookings").
		Columns("type", "details", "contact_name", "contact_phonenumber", "appointment_time").
		Values(b.Type, b.Details, b.ContactName, b.ContactPhone,
			squirrel.Expr("?::timestamp", b.AppointmentTime.String())).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	if err := r.conn.QueryRow(ctx, query, args...).Scan(&b.ID, &b.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrSlotTaken
		}
		return fmt.Errorf("create booking failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"id", "type", "details", "contact_name", "contact_phonenumber", appointmentColumn, "created_at",
	).
		From("public.bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	var (
		b           Booking
		appointment *string
	)
	if err := r.conn.QueryRow(ctx, query, args...).Scan(
		&b.ID, &b.Type, &b.Details, &b.ContactName, &b.ContactPhone, &appointment, &b.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	if err := setAppointment(&b, appointment); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"id", "type", "details", "contact_name", "contact_phonenumber", appointmentColumn, "created_at",
		"count(*) OVER() AS total_count",
	).
		From("public.bookings")

	if filter.Scope == ScopeUpcoming && filter.From != nil {
		query = query.Where("appointment_time >= ?::timestamp", filter.From.String())
	}
	if filter.Keyword != "" {
		pattern := "%" + filter.Keyword + "%"
		query = query.Where(squirrel.Or{
			squirrel.ILike{"contact_name": pattern},
			squirrel.ILike{"type": pattern},
			squirrel.ILike{"details": pattern},
			squirrel.ILike{"contact_phonenumber": pattern},
		})
	}

	// Upcoming bookings read best in appointment order, the full history newest first.
	if filter.Scope == ScopeUpcoming {
		query = query.OrderBy("appointment_time "+orderDir(filter.SortOrder, "ASC"), "created_at DESC")
	} else {
		query = query.OrderBy("created_at " + orderDir(filter.SortOrder, "DESC"))
	}

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
		return nil, 0, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var (
		bookings []*Booking
		total    int
	)
	for rows.Next() {
		var (
			b           Booking
			appointment *string
		)
		if err := rows.Scan(
			&b.ID, &b.Type, &b.Details, &b.ContactName, &b.ContactPhone, &appointment, &b.CreatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan booking failed: %w", err)
		}
		if err := setAppointment(&b, appointment); err != nil {
			return nil, 0, err
		}
		bookings = append(bookings, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate bookings failed: %w", err)
	}

	return bookings, total, nil
}

func (r *pgxRepository) OccupiedHours(ctx context.Context, date string) ([]int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("EXTRACT(HOUR FROM appointment_time)::int AS hour").
		Distinct().
		From("public.bookings").
		Where("appointment_time::date = ?::date", date).
		Where("appointment_time IS NOT NULL").
		OrderBy("hour").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build occupied hours query failed: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query occupied hours failed: %w", err)
	}
	defer rows.Close()

	hours := make([]int, 0)
	for rows.Next() {
		var h int
		if err := rows.Scan(&h); err != nil {
			return nil, fmt.Errorf("scan occupied hour failed: %w", err)
		}
		hours = append(hours, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate occupied hours failed: %w", err)
	}
	return hours, nil
}

func (r *pgxRepository) IsSlotTaken(ctx context.Context, at LocalTime) (bool, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	subQuery, args, err := psql.Select("1").
		From("public.bookings").
		Where("date_trunc('hour', appointment_time) = date_trunc('hour', ?::timestamp)", at.String()).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build slot taken query failed: %w", err)
	}

	var exists bool
	if err := r.conn.QueryRow(ctx, "SELECT EXISTS ("+subQuery+")", args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("check slot taken failed: %w", err)
	}
	return exists, nil
}

func setAppointment(b *Booking, raw *string) error {
	if raw == nil {
		return nil
	}
	lt, err := ParseLocalTime(*raw)
	if err != nil {
		return fmt.Errorf("parse appointment_time %q: %w", *raw, err)
	}
	b.AppointmentTime = &lt
	return nil
}

func orderDir(sortOrder, def string) string {
	switch strings.ToUpper(sortOrder) {
	case "ASC":
		return "ASC"
	case "DESC":
		return "DESC"
	}
	return def
}
