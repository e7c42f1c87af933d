package http

import "github.com/gin-gonic/gin"

// RegisterRoutes serves stored files publicly under /files.
func RegisterRoutes(r gin.IRouter, handler *Handler) {
	r.GET("/files/*path", handler.ServeFile)
}
