package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers court-related routes.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/courts")

	group.Use(authMiddleware)
	{
		group.GET("", h.List)          // List courts
		group.GET("/:id", h.Get)       // Get court details
		group.POST("", h.Create)       // Create court
		group.PUT("/:id", h.Update)    // Rename or (de)activate court
		group.DELETE("/:id", h.Delete) // Delete unreferenced court
	}
}
