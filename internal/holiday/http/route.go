package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers holiday routes.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/holidays")

	group.Use(authMiddleware)
	{
		group.GET("", h.List)
		group.POST("", h.Create)
		group.DELETE("/:id", h.Delete)
	}
}
