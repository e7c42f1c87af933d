package booking

import (
	"net/http"
	"time"

	"github.com/kelleauto/dealership-backend/internal/pkg/apperror"
)

var (
	ErrNotFound       = apperror.New(http.StatusNotFound, "booking not found")
	ErrInvalidDate    = apperror.New(http.StatusBadRequest, "date must be a valid YYYY-MM-DD date")
	ErrMissingType    = apperror.New(http.StatusBadRequest, "type is required")
	ErrInvalidType    = apperror.New(http.StatusBadRequest, "type must be one of sales, cleaning, service, general")
	ErrMissingSlot    = apperror.New(http.StatusBadRequest, "date and hour, or appointment_time, are required")
	ErrInvalidTime    = apperror.New(http.StatusBadRequest, "appointment_time must be formatted as YYYY-MM-DD HH:MM:SS")
	ErrNotOnTheHour   = apperror.New(http.StatusBadRequest, "appointment_time must start on the hour")
	ErrHourNotOffered = apperror.New(http.StatusBadRequest, "hour is outside of the bookable hours")
	ErrSlotTaken      = apperror.New(http.StatusConflict, "time slot already booked")
	ErrStorage        = apperror.New(http.StatusInternalServerError, "failed to save booking")
	ErrCheckFailed    = apperror.New(http.StatusInternalServerError, "failed to check availability")
	ErrNoSlotSelected = apperror.New(http.StatusBadRequest, "no time slot selected")
)

// Type classifies what the appointment is for.
type Type string

const (
	TypeSales    Type = "sales"
	TypeCleaning Type = "cleaning"
	TypeService  Type = "service"
	TypeGeneral  Type = "general"
)

func (t Type) Valid() bool {
	switch t {
	case TypeSales, TypeCleaning, TypeService, TypeGeneral:
		return true
	}
	return false
}

type Booking struct {
	ID              string
	Type            Type
	Details         string
	ContactName     *string
	ContactPhone    *string
	AppointmentTime *LocalTime
	CreatedAt       time.Time
}

// Scope selects which bookings the admin listing returns.
type Scope string

const (
	ScopeUpcoming Scope = "upcoming"
	ScopeAll      Scope = "all"
)

type Filter struct {
	Scope    Scope
	From     *LocalTime // Lower bound for ScopeUpcoming
	Keyword  string
	Page     int
	PageSize int

	// SortOrder flips the direction of the primary ordering; "asc" or "desc",
	// empty keeps the scope's default.
	SortOrder string
}
