package booking

import (
	"encoding/json"
	"fmt"
	"time"
)

const (
	DateLayout      = "2006-01-02"
	LocalTimeLayout = "2006-01-02 15:04:05"
)

// LocalTime is a wall-clock appointment time with no zone attached.
// It is stored and displayed verbatim; it is never converted between zones.
type LocalTime struct {
	t time.Time
}

// ParseLocalTime parses a "YYYY-MM-DD HH:MM:SS" string.
func ParseLocalTime(s string) (LocalTime, error) {
	t, err := time.Parse(LocalTimeLayout, s)
	if err != nil {
		return LocalTime{}, err
	}
	return checkYear(t)
}

// ParseDate parses a "YYYY-MM-DD" string and returns midnight of that day.
func ParseDate(s string) (LocalTime, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return LocalTime{}, err
	}
	return checkYear(t)
}

// checkYear rejects year 0, which time.Parse accepts but Postgres does not.
func checkYear(t time.Time) (LocalTime, error) {
	if t.Year() < 1 {
		return LocalTime{}, fmt.Errorf("year %04d out of range", t.Year())
	}
	return LocalTime{t: t}, nil
}

// At composes the wall-clock time for hour on the given date.
func At(date string, hour int) (LocalTime, error) {
	d, err := ParseDate(date)
	if err != nil {
		return LocalTime{}, err
	}
	if hour < 0 || hour > 23 {
		return LocalTime{}, fmt.Errorf("hour %d out of range", hour)
	}
	return LocalTime{t: d.t.Add(time.Duration(hour) * time.Hour)}, nil
}

// LocalTimeOf reads the wall clock of t, dropping its zone.
func LocalTimeOf(t time.Time) LocalTime {
	y, m, d := t.Date()
	return LocalTime{t: time.Date(y, m, d, t.Hour(), t.Minute(), t.Second(), 0, time.UTC)}
}

func (lt LocalTime) String() string { return lt.t.Format(LocalTimeLayout) }
func (lt LocalTime) Date() string   { return lt.t.Format(DateLayout) }
func (lt LocalTime) Hour() int      { return lt.t.Hour() }
func (lt LocalTime) IsZero() bool   { return lt.t.IsZero() }

// OnTheHour reports whether minutes and seconds are both zero.
func (lt LocalTime) OnTheHour() bool {
	return lt.t.Minute() == 0 && lt.t.Second() == 0 && lt.t.Nanosecond() == 0
}

// StartOfHour drops minutes and seconds.
func (lt LocalTime) StartOfHour() LocalTime {
	return LocalTime{t: lt.t.Truncate(time.Hour)}
}

func (lt LocalTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(lt.String())
}

func (lt *LocalTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseLocalTime(s)
	if err != nil {
		return err
	}
	*lt = parsed
	return nil
}
