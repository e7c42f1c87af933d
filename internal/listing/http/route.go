package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, adminMiddleware gin.HandlerFunc) {
	// === Public Routes ===
	group := g.Group("/sales-listings")
	{
		group.GET("", h.List)
		group.GET("/:id", h.Get)
	}

	// === Administration Routes ===
	adminGroup := g.Group("/admin/sales-listings")
	adminGroup.Use(adminMiddleware)
	{
		adminGroup.POST("", h.Create)
		adminGroup.PATCH("/:id", h.Update)
		adminGroup.DELETE("/:id", h.Delete)

		adminGroup.POST("/:id/images", h.AddImage)
		adminGroup.POST("/:id/images/upload", h.UploadImage)
		adminGroup.PUT("/:id/images/order", h.ReorderImages)
		adminGroup.PUT("/:id/images/:image_id/main", h.SetMainImage)
		adminGroup.DELETE("/:id/images/:image_id", h.DeleteImage)
	}
}
