package booking

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var bookingColumns = []string{"id", "type", "details", "contact_name", "contact_phonenumber", "appointment_time", "created_at"}

func newMockRepo(t *testing.T) (Repository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewPgxRepository(mock), mock
}

func strPtr(s string) *string { return &s }

func TestPgxRepository_Create(t *testing.T) {
	repo, mock := newMockRepo(t)

	at, err := At("2025-03-10", 14)
	require.NoError(t, err)
	b := &Booking{
		Type:            TypeCleaning,
		Details:         gofakeit.Word(),
		ContactName:     strPtr(gofakeit.Name()),
		ContactPhone:    strPtr(gofakeit.Phone()),
		AppointmentTime: &at,
	}

	id := gofakeit.UUID()
	createdAt := gofakeit.Date()
	mock.ExpectQuery(regexp.QuoteMeta(
		"INSERT INTO public.bookings (type,details,contact_name,contact_phonenumber,appointment_time) VALUES ($1,$2,$3,$4,$5::timestamp) RETURNING id, created_at",
	)).
		WithArgs(b.Type, b.Details, b.ContactName, b.ContactPhone, "2025-03-10 14:00:00").
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(id, createdAt))

	require.NoError(t, repo.Create(context.Background(), b))
	assert.Equal(t, id, b.ID)
	assert.Equal(t, createdAt, b.CreatedAt)
	assert.Equal(t, "2025-03-10 14:00:00", b.AppointmentTime.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgxRepository_Create_UniqueViolation(t *testing.T) {
	repo, mock := newMockRepo(t)

	at, _ := At("2025-03-10", 9)
	mock.ExpectQuery(`INSERT INTO public.bookings`).
		WithArgs(TypeSales, "", pgxmock.AnyArg(), pgxmock.AnyArg(), "2025-03-10 09:00:00").
		WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})

	err := repo.Create(context.Background(), &Booking{Type: TypeSales, AppointmentTime: &at})
	assert.ErrorIs(t, err, ErrSlotTaken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgxRepository_Create_Failure(t *testing.T) {
	repo, mock := newMockRepo(t)

	at, _ := At("2025-03-10", 9)
	mock.ExpectQuery(`INSERT INTO public.bookings`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(assert.AnError)

	err := repo.Create(context.Background(), &Booking{Type: TypeSales, AppointmentTime: &at})
	assert.ErrorIs(t, err, assert.AnError)
	assert.NotErrorIs(t, err, ErrSlotTaken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgxRepository_Create_RequiresAppointment(t *testing.T) {
	repo, mock := newMockRepo(t)

	err := repo.Create(context.Background(), &Booking{Type: TypeSales})
	assert.ErrorIs(t, err, ErrMissingSlot)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgxRepository_OccupiedHours(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT DISTINCT EXTRACT(HOUR FROM appointment_time)::int AS hour FROM public.bookings WHERE appointment_time::date = $1::date AND appointment_time IS NOT NULL ORDER BY hour",
	)).
		WithArgs("2025-03-10").
		WillReturnRows(pgxmock.NewRows([]string{"hour"}).AddRow(9).AddRow(10))

	hours, err := repo.OccupiedHours(context.Background(), "2025-03-10")
	require.NoError(t, err)
	assert.Equal(t, []int{9, 10}, hours)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgxRepository_OccupiedHours_Empty(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT DISTINCT EXTRACT`).
		WithArgs("2025-03-11").
		WillReturnRows(pgxmock.NewRows([]string{"hour"}))

	hours, err := repo.OccupiedHours(context.Background(), "2025-03-11")
	require.NoError(t, err)
	assert.NotNil(t, hours)
	assert.Empty(t, hours)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgxRepository_OccupiedHours_Error(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT DISTINCT EXTRACT`).
		WithArgs("2025-03-10").
		WillReturnError(assert.AnError)

	_, err := repo.OccupiedHours(context.Background(), "2025-03-10")
	assert.ErrorIs(t, err, assert.AnError)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgxRepository_IsSlotTaken(t *testing.T) {
	repo, mock := newMockRepo(t)

	at, _ := At("2025-03-10", 11)
	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT EXISTS (SELECT 1 FROM public.bookings WHERE date_trunc('hour', appointment_time) = date_trunc('hour', $1::timestamp))",
	)).
		WithArgs("2025-03-10 11:00:00").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	taken, err := repo.IsSlotTaken(context.Background(), at)
	require.NoError(t, err)
	assert.True(t, taken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgxRepository_GetByID(t *testing.T) {
	repo, mock := newMockRepo(t)

	id := gofakeit.UUID()
	createdAt := gofakeit.Date()
	name := gofakeit.Name()
	mock.ExpectQuery(`SELECT (.+) FROM public.bookings WHERE id = \$1`).
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows(bookingColumns).
			AddRow(id, TypeService, "oil change", &name, (*string)(nil), strPtr("2025-03-10 16:00:00"), createdAt))

	b, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, b.ID)
	assert.Equal(t, TypeService, b.Type)
	assert.Equal(t, name, *b.ContactName)
	assert.Nil(t, b.ContactPhone)
	require.NotNil(t, b.AppointmentTime)
	assert.Equal(t, "2025-03-10 16:00:00", b.AppointmentTime.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgxRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	id := gofakeit.UUID()
	mock.ExpectQuery(`SELECT (.+) FROM public.bookings WHERE id = \$1`).
		WithArgs(id).
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetByID(context.Background(), id)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgxRepository_List_Upcoming(t *testing.T) {
	repo, mock := newMockRepo(t)

	from, _ := At("2025-03-10", 9)
	created := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	columns := append(append([]string{}, bookingColumns...), "total_count")

	mock.ExpectQuery(`FROM public.bookings WHERE appointment_time >= \$1::timestamp AND \(contact_name ILIKE \$2 OR type ILIKE \$3 OR details ILIKE \$4 OR contact_phonenumber ILIKE \$5\) ORDER BY appointment_time ASC, created_at DESC LIMIT 10 OFFSET 10`).
		WithArgs(from.String(), "%anna%", "%anna%", "%anna%", "%anna%").
		WillReturnRows(pgxmock.NewRows(columns).
			AddRow(gofakeit.UUID(), TypeSales, "", strPtr("Anna"), (*string)(nil), strPtr("2025-03-12 10:00:00"), created, 11))

	items, total, err := repo.List(context.Background(), Filter{
		Scope:    ScopeUpcoming,
		From:     &from,
		Keyword:  "anna",
		Page:     2,
		PageSize: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, 11, total)
	require.Len(t, items, 1)
	assert.Equal(t, "2025-03-12 10:00:00", items[0].AppointmentTime.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgxRepository_List_All(t *testing.T) {
	repo, mock := newMockRepo(t)

	columns := append(append([]string{}, bookingColumns...), "total_count")
	mock.ExpectQuery(`FROM public.bookings ORDER BY created_at DESC LIMIT 20 OFFSET 0`).
		WillReturnRows(pgxmock.NewRows(columns))

	items, total, err := repo.List(context.Background(), Filter{Scope: ScopeAll})
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Zero(t, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgxRepository_List_SortOrder(t *testing.T) {
	repo, mock := newMockRepo(t)

	columns := append(append([]string{}, bookingColumns...), "total_count")
	mock.ExpectQuery(`FROM public.bookings ORDER BY created_at ASC LIMIT 20 OFFSET 0`).
		WillReturnRows(pgxmock.NewRows(columns))
	mock.ExpectQuery(`FROM public.bookings WHERE appointment_time >= \$1::timestamp ORDER BY appointment_time DESC, created_at DESC LIMIT 20 OFFSET 0`).
		WithArgs("2025-03-10 00:00:00").
		WillReturnRows(pgxmock.NewRows(columns))

	_, _, err := repo.List(context.Background(), Filter{Scope: ScopeAll, SortOrder: "asc"})
	require.NoError(t, err)

	from, err := ParseDate("2025-03-10")
	require.NoError(t, err)
	_, _, err = repo.List(context.Background(), Filter{Scope: ScopeUpcoming, From: &from, SortOrder: "DESC"})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
