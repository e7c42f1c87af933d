package booking

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/brianvoe/gofakeit/v7"
)

// memoryRepository enforces one booking per hour the way the unique index does.
type memoryRepository struct {
	mu       sync.Mutex
	bookings map[string]*Booking // keyed by the start of the booked hour
	err      error
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{bookings: map[string]*Booking{}}
}

func (r *memoryRepository) Create(_ context.Context, b *Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}

	key := b.AppointmentTime.StartOfHour().String()
	if _, ok := r.bookings[key]; ok {
		return ErrSlotTaken
	}
	b.ID = gofakeit.UUID()
	b.CreatedAt = time.Now()
	r.bookings[key] = b
	return nil
}

func (r *memoryRepository) GetByID(_ context.Context, id string) (*Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryRepository) List(_ context.Context, filter Filter) ([]*Booking, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*Booking
	for _, b := range r.bookings {
		if filter.From != nil && b.AppointmentTime.String() < filter.From.String() {
			continue
		}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].AppointmentTime.String() < out[j].AppointmentTime.String()
	})
	return out, len(out), nil
}

func (r *memoryRepository) OccupiedHours(_ context.Context, date string) ([]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}

	hours := make([]int, 0)
	for _, b := range r.bookings {
		if b.AppointmentTime.Date() == date {
			hours = append(hours, b.AppointmentTime.Hour())
		}
	}
	sort.Ints(hours)
	return hours, nil
}

func (r *memoryRepository) IsSlotTaken(_ context.Context, at LocalTime) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return false, r.err
	}
	_, ok := r.bookings[at.StartOfHour().String()]
	return ok, nil
}

// racyRepository lets every availability check pass so the conflict has to
// come from Create.
type racyRepository struct {
	*memoryRepository
}

func (racyRepository) IsSlotTaken(context.Context, LocalTime) (bool, error) {
	return false, nil
}
