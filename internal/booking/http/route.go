package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	g.GET("/schedule", authMiddleware, h.Schedule)

	group := g.Group("/bookings")

	group.Use(authMiddleware)
	{
		group.GET("", h.List)
		group.POST("", h.Create)
		group.GET("/years", h.Years)
		group.GET("/periods", h.Periods)
		group.POST("/bulk-delete", h.BulkDelete)
		group.GET("/:id", h.Get)
		group.DELETE("/:id", h.Cancel)
	}
}
