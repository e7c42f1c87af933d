package booking

import (
	"fmt"
	"sort"
)

// Business hours: the first and last bookable hour of every day.
const (
	FirstHour = 9
	LastHour  = 17
)

// Slot is a one-hour window starting at Hour.
type Slot struct {
	Hour int
}

// Label renders the slot start, e.g. "09:00".
func (s Slot) Label() string {
	return fmt.Sprintf("%02d:00", s.Hour)
}

// SlotAvailability is a calendar slot annotated with whether it can still be booked.
type SlotAvailability struct {
	Slot
	Available bool
}

// Calendar is the fixed menu of bookable hours, identical for every day.
type Calendar struct {
	slots []Slot
}

// DefaultCalendar offers one slot per hour from FirstHour to LastHour inclusive.
var DefaultCalendar = NewCalendar(FirstHour, LastHour)

func NewCalendar(first, last int) Calendar {
	slots := make([]Slot, 0, last-first+1)
	for h := first; h <= last; h++ {
		slots = append(slots, Slot{Hour: h})
	}
	return Calendar{slots: slots}
}

// Slots returns a copy of the calendar's slots in hour order.
func (c Calendar) Slots() []Slot {
	out := make([]Slot, len(c.slots))
	copy(out, c.slots)
	return out
}

func (c Calendar) Contains(hour int) bool {
	i := sort.Search(len(c.slots), func(i int) bool { return c.slots[i].Hour >= hour })
	return i < len(c.slots) && c.slots[i].Hour == hour
}

// Open marks every calendar slot as available unless its hour is in occupied.
// Occupied hours outside the calendar are ignored.
func (c Calendar) Open(occupied []int) []SlotAvailability {
	taken := make(map[int]struct{}, len(occupied))
	for _, h := range occupied {
		taken[h] = struct{}{}
	}

	out := make([]SlotAvailability, len(c.slots))
	for i, s := range c.slots {
		_, busy := taken[s.Hour]
		out[i] = SlotAvailability{Slot: s, Available: !busy}
	}
	return out
}
