// Package client talks to the public booking endpoints of a running server.
// It satisfies booking.SlotChecker and booking.Submitter so a booking.Session
// can be driven remotely.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kelleauto/dealership-backend/internal/booking"
	"github.com/kelleauto/dealership-backend/internal/pkg/apperror"
)

const maxErrorBody = 64 << 10

type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

// WithHTTPClient replaces the default client, which times out after 10s.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New builds a client for a server root such as http://localhost:8080.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/") + "/v1",
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type checkResponse struct {
	OccupiedHours []int `json:"occupiedHours"`
}

type createBody struct {
	Type               string  `json:"type"`
	Details            string  `json:"details"`
	ContactName        *string `json:"contact_name,omitempty"`
	ContactPhoneNumber *string `json:"contact_phonenumber,omitempty"`
	AppointmentTime    string  `json:"appointment_time,omitempty"`
	Date               string  `json:"date,omitempty"`
	Hour               *int    `json:"hour,omitempty"`
}

type bookingBody struct {
	ID                 string             `json:"id"`
	Type               booking.Type       `json:"type"`
	Details            string             `json:"details"`
	ContactName        *string            `json:"contact_name"`
	ContactPhoneNumber *string            `json:"contact_phonenumber"`
	AppointmentTime    *booking.LocalTime `json:"appointment_time"`
	CreatedAt          time.Time          `json:"created_at"`
}

type errorBody struct {
	Error string `json:"error"`
}

// OccupiedHours calls GET /v1/bookings/check.
func (c *Client) OccupiedHours(ctx context.Context, date string) ([]int, error) {
	var resp checkResponse
	path := "/bookings/check?" + url.Values{"date": {date}}.Encode()
	if err := c.do(ctx, http.MethodGet, path, nil, http.StatusOK, &resp); err != nil {
		return nil, err
	}
	if resp.OccupiedHours == nil {
		resp.OccupiedHours = []int{}
	}
	return resp.OccupiedHours, nil
}

// Create calls POST /v1/bookings.
func (c *Client) Create(ctx context.Context, req booking.CreateRequest) (*booking.Booking, error) {
	body := createBody{
		Type:               string(req.Type),
		Details:            req.Details,
		ContactName:        req.ContactName,
		ContactPhoneNumber: req.ContactPhone,
		AppointmentTime:    req.AppointmentTime,
		Date:               req.Date,
		Hour:               req.Hour,
	}

	var resp bookingBody
	if err := c.do(ctx, http.MethodPost, "/bookings", body, http.StatusCreated, &resp); err != nil {
		return nil, err
	}

	return &booking.Booking{
		ID:              resp.ID,
		Type:            resp.Type,
		Details:         resp.Details,
		ContactName:     resp.ContactName,
		ContactPhone:    resp.ContactPhoneNumber,
		AppointmentTime: resp.AppointmentTime,
		CreatedAt:       resp.CreatedAt,
	}, nil
}

// do sends one request. A non-expected status is returned as an AppError with
// the server's status and message, so errors.Is matches the server's sentinels.
func (c *Client) do(ctx context.Context, method, path string, in any, want int, out any) error {
	var reqBody io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		var eb errorBody
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if json.Unmarshal(raw, &eb) != nil || eb.Error == "" {
			eb.Error = http.StatusText(resp.StatusCode)
		}
		return apperror.New(resp.StatusCode, eb.Error)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
