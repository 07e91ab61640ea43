package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nekogravitycat/courtmaster-backend/internal/admin"
	"github.com/nekogravitycat/courtmaster-backend/internal/auth"
	"github.com/nekogravitycat/courtmaster-backend/internal/pkg/response"
)

type Handler struct {
	service    admin.Service
	jwtManager *auth.JWTManager
}

func NewHandler(service admin.Service, jwtManager *auth.JWTManager) *Handler {
	return &Handler{service: service, jwtManager: jwtManager}
}

//
// POST /v1/auth/token
//

func (h *Handler) Token(c *gin.Context) {
	var req TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	a, err := h.service.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	token, err := h.jwtManager.GenerateAccessToken(a.ID, a.Username)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int64(h.jwtManager.TTL().Seconds()),
		Admin:       NewAdminResponse(a),
	})
}

//
// GET /v1/auth/me
//

func (h *Handler) Me(c *gin.Context) {
	a, err := h.service.GetByID(c.Request.Context(), auth.GetAdminID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewAdminResponse(a))
}
