package auth

import "github.com/gin-gonic/gin"

const (
	ctxAdminID  = "adminID"
	ctxUsername = "username"
)

// GetAdminID returns the authenticated admin's ID or empty string.
func GetAdminID(c *gin.Context) string {
	return c.GetString(ctxAdminID)
}

// GetUsername returns the authenticated admin's username or empty string.
func GetUsername(c *gin.Context) string {
	return c.GetString(ctxUsername)
}
