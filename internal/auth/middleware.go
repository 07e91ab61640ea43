package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/courtmaster-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/courtmaster-backend/internal/pkg/response"
)

func unauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorResponse{
		Error: msg,
		Kind:  apperror.KindUnauthorized.String(),
	})
}

// AuthRequired is a Gin middleware that validates JWT from Authorization: Bearer <token>
func AuthRequired(jwtManager *JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			unauthorized(c, "missing Authorization header")
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			unauthorized(c, "invalid Authorization header format")
			return
		}

		claims, err := jwtManager.ParseAndValidate(parts[1])
		if err != nil {
			unauthorized(c, "invalid or expired token")
			return
		}

		// Store admin info into Gin context for later handlers.
		c.Set(ctxAdminID, claims.AdminID())
		c.Set(ctxUsername, claims.Username)

		c.Next()
	}
}
