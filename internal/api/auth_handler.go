package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kelleauto/dealership-backend/internal/auth"
	"github.com/kelleauto/dealership-backend/internal/pkg/request"
	"github.com/kelleauto/dealership-backend/internal/pkg/response"
)

type AuthHandler struct {
	authService auth.Service
}

func NewAuthHandler(authService auth.Service) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

//
// POST /v1/admin/login
//

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := request.BindStrictJSON(c, &req); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	session, err := h.authService.Login(c.Request.Context(), req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		AccessToken: session.AccessToken,
		ExpiresAt:   session.ExpiresAt,
	})
}

//
// POST /v1/admin/logout
//

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.authService.Logout(c.Request.Context(), auth.GetTokenID(c), auth.GetTokenExpiry(c)); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
