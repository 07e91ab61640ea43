package api

import (
	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/courtmaster-backend/internal/admin"
	"github.com/nekogravitycat/courtmaster-backend/internal/auth"
	"github.com/nekogravitycat/courtmaster-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/courtmaster-backend/internal/pkg/response"
)

var errAdminGone = apperror.New(apperror.KindUnauthorized, "admin account no longer exists")

// RequireAdmin ensures the token subject is still a known admin account.
// It MUST be used after auth.AuthRequired middleware.
func RequireAdmin(adminService admin.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		adminID := auth.GetAdminID(c)
		if adminID == "" {
			response.Error(c, errAdminGone)
			c.Abort()
			return
		}

		if _, err := adminService.GetByID(c.Request.Context(), adminID); err != nil {
			if apperror.KindOf(err) == apperror.KindNotFound {
				err = errAdminGone
			}
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Next()
	}
}

// chain combines handlers into one so route registration keeps a single auth argument.
func chain(handlers ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range handlers {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
