package booking

import (
	"context"
	"errors"
	"sort"
)

// State is a step of the interactive booking flow.
type State int

const (
	StateIdle State = iota
	StateDateSelected
	StateSlotsLoading
	StateSlotsReady
	StateTimeSelected
	StateSubmitting
	StateConfirmed
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDateSelected:
		return "date_selected"
	case StateSlotsLoading:
		return "slots_loading"
	case StateSlotsReady:
		return "slots_ready"
	case StateTimeSelected:
		return "time_selected"
	case StateSubmitting:
		return "submitting"
	case StateConfirmed:
		return "confirmed"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// SlotChecker reports the booked hours of a date.
type SlotChecker interface {
	OccupiedHours(ctx context.Context, date string) ([]int, error)
}

// Submitter persists a booking.
type Submitter interface {
	Create(ctx context.Context, req CreateRequest) (*Booking, error)
}

// Form holds what the customer enters besides the slot.
type Form struct {
	Type         Type
	Details      string
	ContactName  *string
	ContactPhone *string
}

// Session walks one customer through picking a date, an hour and submitting.
// A Session is not safe for concurrent use.
type Session struct {
	checker   SlotChecker
	submitter Submitter
	calendar  Calendar

	state    State
	date     string
	hour     int
	occupied map[int]struct{}
	lastErr  error
	booking  *Booking
}

func NewSession(checker SlotChecker, submitter Submitter) *Session {
	return &Session{
		checker:   checker,
		submitter: submitter,
		calendar:  DefaultCalendar,
		hour:      -1,
		occupied:  map[int]struct{}{},
	}
}

func (s *Session) State() State { return s.state }
func (s *Session) Date() string { return s.date }

// Hour returns the selected hour, or false when none is selected.
func (s *Session) Hour() (int, bool) {
	return s.hour, s.hour >= 0
}

// Err is the error of the last failed slot check or submission.
func (s *Session) Err() error { return s.lastErr }

// Booking is the confirmed booking, set once the session reaches StateConfirmed.
func (s *Session) Booking() *Booking { return s.booking }

// Occupied lists the booked hours of the selected date, ascending.
func (s *Session) Occupied() []int {
	out := make([]int, 0, len(s.occupied))
	for h := range s.occupied {
		out = append(out, h)
	}
	sort.Ints(out)
	return out
}

// Slots is the calendar for the selected date with availability applied.
func (s *Session) Slots() []SlotAvailability {
	return s.calendar.Open(s.Occupied())
}

// PickDate selects a date and loads its occupied hours, discarding any hour selection.
// A malformed date leaves the session idle. A failed check is treated as a
// day with no bookings; the error is kept in Err.
func (s *Session) PickDate(ctx context.Context, date string) error {
	if _, err := ParseDate(date); err != nil {
		s.Reset()
		s.lastErr = ErrInvalidDate
		return ErrInvalidDate
	}

	s.booking = nil
	s.lastErr = nil
	s.date = date
	s.hour = -1
	s.state = StateDateSelected

	s.load(ctx)
	return nil
}

// Refresh reloads the occupied hours of the selected date. A selected hour
// that became occupied is cleared, and Err reports only the outcome of this
// reload. A confirmed session is left as is.
func (s *Session) Refresh(ctx context.Context) {
	if s.date == "" || s.state == StateConfirmed {
		return
	}
	s.lastErr = nil
	s.load(ctx)
}

func (s *Session) load(ctx context.Context) {
	s.state = StateSlotsLoading

	hours, err := s.checker.OccupiedHours(ctx, s.date)
	s.occupied = make(map[int]struct{}, len(hours))
	if err != nil {
		s.lastErr = err
	} else {
		for _, h := range hours {
			s.occupied[h] = struct{}{}
		}
	}

	if _, busy := s.occupied[s.hour]; busy {
		s.hour = -1
	}
	if s.hour >= 0 {
		s.state = StateTimeSelected
	} else {
		s.state = StateSlotsReady
	}
}

// PickHour selects an open calendar hour. Occupied or non-calendar hours
// are ignored and false is returned.
func (s *Session) PickHour(hour int) bool {
	if s.state != StateSlotsReady && s.state != StateTimeSelected {
		return false
	}
	if !s.calendar.Contains(hour) {
		return false
	}
	if _, busy := s.occupied[hour]; busy {
		return false
	}

	s.hour = hour
	s.state = StateTimeSelected
	return true
}

// Submit books the selected slot. On failure the session returns to
// StateSlotsReady with the error kept in Err; a conflict also refreshes the
// occupied hours. On success the session stays in StateConfirmed until Reset
// or PickDate starts a new flow.
func (s *Session) Submit(ctx context.Context, form Form) (*Booking, error) {
	if s.state != StateTimeSelected {
		return nil, ErrNoSlotSelected
	}

	s.state = StateSubmitting
	hour := s.hour
	b, err := s.submitter.Create(ctx, CreateRequest{
		Type:         form.Type,
		Details:      form.Details,
		ContactName:  form.ContactName,
		ContactPhone: form.ContactPhone,
		Date:         s.date,
		Hour:         &hour,
	})
	if err != nil {
		s.state = StateFailed
		s.lastErr = err
		s.hour = -1
		if errors.Is(err, ErrSlotTaken) {
			s.load(ctx)
			s.lastErr = err
		}
		s.state = StateSlotsReady
		return nil, err
	}

	s.booking = b
	s.lastErr = nil
	s.state = StateConfirmed
	return b, nil
}

// Reset closes the flow and returns to StateIdle.
func (s *Session) Reset() {
	s.state = StateIdle
	s.date = ""
	s.hour = -1
	s.occupied = map[int]struct{}{}
	s.lastErr = nil
	s.booking = nil
}
