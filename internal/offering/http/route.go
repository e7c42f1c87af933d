package http

import (
	"github.com/gin-gonic/gin"

	"github.com/kelleauto/dealership-backend/internal/offering"
)

// RegisterRoutes mounts both offering catalogues, e.g. /cleaning-offerings and
// /admin/cleaning-offerings.
func RegisterRoutes(g *gin.RouterGroup, service offering.Service, adminMiddleware gin.HandlerFunc) {
	for _, kind := range []offering.Kind{offering.KindCleaning, offering.KindService} {
		h := NewHandler(service, kind)
		path := "/" + string(kind) + "-offerings"

		// === Public Routes ===
		group := g.Group(path)
		{
			group.GET("", h.List)
			group.GET("/:id", h.Get)
		}

		// === Administration Routes ===
		adminGroup := g.Group("/admin" + path)
		adminGroup.Use(adminMiddleware)
		{
			adminGroup.POST("", h.Create)
			adminGroup.PUT("/:id", h.Update)
			adminGroup.DELETE("/:id", h.Delete)
		}
	}
}
