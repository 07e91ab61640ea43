package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers admin session routes.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/auth")

	group.POST("/token", h.Token)
	group.GET("/me", authMiddleware, h.Me)
}
