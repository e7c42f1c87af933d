package api

import "time"

// LoginRequest is the payload for POST /v1/admin/login.
type LoginRequest struct {
	Password string `json:"password" binding:"required"`
}

// LoginResponse is the response for POST /v1/admin/login.
type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}
