package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kelleauto/dealership-backend/internal/booking"
	"github.com/kelleauto/dealership-backend/internal/pkg/request"
	"github.com/kelleauto/dealership-backend/internal/pkg/response"
)

type Handler struct {
	service booking.Service
}

func NewHandler(service booking.Service) *Handler {
	return &Handler{service: service}
}

// Check returns the hours already booked on a date.
func (h *Handler) Check(c *gin.Context) {
	var q DateQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, booking.ErrInvalidDate)
		return
	}

	hours, err := h.service.OccupiedHours(c.Request.Context(), q.Date)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, CheckResponse{OccupiedHours: hours})
}

// Slots returns every bookable slot of a date with its availability.
func (h *Handler) Slots(c *gin.Context) {
	var q DateQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, booking.ErrInvalidDate)
		return
	}

	slots, err := h.service.Slots(c.Request.Context(), q.Date)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewSlotsResponse(q.Date, slots))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateBookingRequest
	if err := request.BindStrictJSON(c, &body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	b, err := h.service.Create(c.Request.Context(), body.ToServiceRequest())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewBookingResponse(b))
}

func (h *Handler) List(c *gin.Context) {
	var req ListBookingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}
	req.Normalize()

	filter := booking.Filter{
		Scope:    booking.Scope(req.Scope),
		Keyword:  req.Keyword,
		Page:     req.Page,
		PageSize: req.PageSize,

		SortOrder: req.SortOrder,
	}

	bookings, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		response.BadRequest(c, "invalid UUID", err)
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}
