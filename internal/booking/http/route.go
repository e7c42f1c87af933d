package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, adminMiddleware gin.HandlerFunc) {
	// === Public Routes ===
	group := g.Group("/bookings")
	{
		group.GET("/check", h.Check)
		group.GET("/slots", h.Slots)
		group.POST("", h.Create)
	}

	// === Administration Routes ===
	adminGroup := g.Group("/admin/bookings")
	adminGroup.Use(adminMiddleware)
	{
		adminGroup.GET("", h.List)
		adminGroup.GET("/:id", h.Get)
	}
}
