package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers operating settings routes.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/settings")

	group.Use(authMiddleware)
	{
		group.GET("", h.Get)    // Current operating hours and price
		group.PUT("", h.Update) // Update operating hours and price
	}
}
