package booking

import (
	"context"
	"errors"
	"strings"
	"time"
)

type CreateRequest struct {
	Type         Type
	Details      string
	ContactName  *string
	ContactPhone *string

	// Either Date and Hour, or AppointmentTime as "YYYY-MM-DD HH:MM:SS".
	Date            string
	Hour            *int
	AppointmentTime string
}

type Service interface {
	OccupiedHours(ctx context.Context, date string) ([]int, error)
	Slots(ctx context.Context, date string) ([]SlotAvailability, error)
	Create(ctx context.Context, req CreateRequest) (*Booking, error)
	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
}

type service struct {
	repo     Repository
	calendar Calendar
	now      func() time.Time
}

// Option customizes the booking service.
type Option func(*service)

// WithClock replaces the wall clock used to decide which bookings are upcoming.
func WithClock(now func() time.Time) Option {
	return func(s *service) { s.now = now }
}

// WithCalendar replaces the bookable hours.
func WithCalendar(c Calendar) Option {
	return func(s *service) { s.calendar = c }
}

func NewService(repo Repository, opts ...Option) Service {
	s := &service{
		repo:     repo,
		calendar: DefaultCalendar,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) OccupiedHours(ctx context.Context, date string) ([]int, error) {
	if _, err := ParseDate(date); err != nil {
		return nil, ErrInvalidDate
	}

	hours, err := s.repo.OccupiedHours(ctx, date)
	if err != nil {
		return nil, ErrCheckFailed.WithCause(err)
	}
	if hours == nil {
		hours = []int{}
	}
	return hours, nil
}

func (s *service) Slots(ctx context.Context, date string) ([]SlotAvailability, error) {
	hours, err := s.OccupiedHours(ctx, date)
	if err != nil {
		return nil, err
	}
	return s.calendar.Open(hours), nil
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	// 1. Validate type
	if req.Type == "" {
		return nil, ErrMissingType
	}
	if !req.Type.Valid() {
		return nil, ErrInvalidType
	}

	// 2. Resolve the requested slot
	at, err := s.resolveSlot(req)
	if err != nil {
		return nil, err
	}

	// 3. Re-check availability; the unique index still catches a lost race below
	taken, err := s.repo.IsSlotTaken(ctx, at)
	if err != nil {
		return nil, ErrStorage.WithCause(err)
	}
	if taken {
		return nil, ErrSlotTaken
	}

	// 4. Create booking
	b := &Booking{
		Type:            req.Type,
		Details:         strings.TrimSpace(req.Details),
		ContactName:     trimmedOrNil(req.ContactName),
		ContactPhone:    trimmedOrNil(req.ContactPhone),
		AppointmentTime: &at,
	}
	if err := s.repo.Create(ctx, b); err != nil {
		if errors.Is(err, ErrSlotTaken) {
			return nil, ErrSlotTaken
		}
		return nil, ErrStorage.WithCause(err)
	}

	return b, nil
}

func (s *service) resolveSlot(req CreateRequest) (LocalTime, error) {
	var (
		at  LocalTime
		err error
	)

	switch {
	case req.AppointmentTime != "":
		at, err = ParseLocalTime(req.AppointmentTime)
		if err != nil {
			return LocalTime{}, ErrInvalidTime
		}
		if req.Date != "" && req.Date != at.Date() {
			return LocalTime{}, ErrInvalidTime
		}
		if req.Hour != nil && *req.Hour != at.Hour() {
			return LocalTime{}, ErrInvalidTime
		}
	case req.Date != "" && req.Hour != nil:
		if _, err := ParseDate(req.Date); err != nil {
			return LocalTime{}, ErrInvalidDate
		}
		if !s.calendar.Contains(*req.Hour) {
			return LocalTime{}, ErrHourNotOffered
		}
		at, err = At(req.Date, *req.Hour)
		if err != nil {
			return LocalTime{}, ErrHourNotOffered
		}
	default:
		return LocalTime{}, ErrMissingSlot
	}

	if !at.OnTheHour() {
		return LocalTime{}, ErrNotOnTheHour
	}
	if !s.calendar.Contains(at.Hour()) {
		return LocalTime{}, ErrHourNotOffered
	}
	return at, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Booking, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	if filter.Scope == "" {
		filter.Scope = ScopeUpcoming
	}
	if filter.Scope == ScopeUpcoming && filter.From == nil {
		// Bookings that started earlier in the current hour still count as upcoming.
		from := LocalTimeOf(s.now()).StartOfHour()
		filter.From = &from
	}
	filter.Keyword = strings.TrimSpace(filter.Keyword)
	return s.repo.List(ctx, filter)
}

func trimmedOrNil(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	if t == "" {
		return nil
	}
	return &t
}
