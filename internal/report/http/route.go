package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers reporting routes. The monthly calendar lives under /bookings
// next to the ledger it summarizes.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	g.GET("/bookings/calendar", authMiddleware, h.Calendar)

	group := g.Group("/reports")

	group.Use(authMiddleware)
	{
		group.GET("/dashboard/stats", h.DashboardStats)
		group.GET("/dashboard/charts", h.DashboardCharts)
		group.GET("/capacity", h.Capacity)
	}
}
