package http

import (
	"time"

	"github.com/kelleauto/dealership-backend/internal/booking"
	"github.com/kelleauto/dealership-backend/internal/pkg/request"
)

// DateQuery is the query string of the availability endpoints.
type DateQuery struct {
	Date string `form:"date" binding:"required"`
}

type CheckResponse struct {
	OccupiedHours []int `json:"occupiedHours"`
}

type SlotResponse struct {
	Hour      int    `json:"hour"`
	Label     string `json:"label"`
	Available bool   `json:"available"`
}

type SlotsResponse struct {
	Date  string         `json:"date"`
	Slots []SlotResponse `json:"slots"`
}

func NewSlotsResponse(date string, slots []booking.SlotAvailability) SlotsResponse {
	items := make([]SlotResponse, len(slots))
	for i, s := range slots {
		items[i] = SlotResponse{Hour: s.Hour, Label: s.Label(), Available: s.Available}
	}
	return SlotsResponse{Date: date, Slots: items}
}

// CreateBookingRequest is decoded strictly: unknown fields are rejected.
type CreateBookingRequest struct {
	Type               string  `json:"type" binding:"required"`
	Details            string  `json:"details" binding:"max=2000"`
	ContactName        *string `json:"contact_name" binding:"omitempty,max=200"`
	ContactPhoneNumber *string `json:"contact_phonenumber" binding:"omitempty,max=50"`
	AppointmentTime    string  `json:"appointment_time"`
	Date               string  `json:"date"`
	Hour               *int    `json:"hour"`
}

func (r CreateBookingRequest) ToServiceRequest() booking.CreateRequest {
	return booking.CreateRequest{
		Type:            booking.Type(r.Type),
		Details:         r.Details,
		ContactName:     r.ContactName,
		ContactPhone:    r.ContactPhoneNumber,
		Date:            r.Date,
		Hour:            r.Hour,
		AppointmentTime: r.AppointmentTime,
	}
}

type BookingResponse struct {
	ID                 string             `json:"id"`
	Type               string             `json:"type"`
	Details            string             `json:"details"`
	ContactName        *string            `json:"contact_name"`
	ContactPhoneNumber *string            `json:"contact_phonenumber"`
	AppointmentTime    *booking.LocalTime `json:"appointment_time"`
	CreatedAt          time.Time          `json:"created_at"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:                 b.ID,
		Type:               string(b.Type),
		Details:            b.Details,
		ContactName:        b.ContactName,
		ContactPhoneNumber: b.ContactPhone,
		AppointmentTime:    b.AppointmentTime,
		CreatedAt:          b.CreatedAt,
	}
}

// ListBookingsRequest defines query parameters for the admin booking list.
type ListBookingsRequest struct {
	request.ListParams
	Scope   string `form:"scope" binding:"omitempty,oneof=upcoming all"`
	Keyword string `form:"keyword" binding:"omitempty,max=100"`
}
