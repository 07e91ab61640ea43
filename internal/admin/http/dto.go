package http

import (
	"time"

	"github.com/nekogravitycat/courtmaster-backend/internal/admin"
)

// TokenRequest is the payload for POST /v1/auth/token.
type TokenRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AdminResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

func NewAdminResponse(a *admin.Admin) AdminResponse {
	return AdminResponse{ID: a.ID, Username: a.Username, CreatedAt: a.CreatedAt}
}

// TokenResponse is the response for POST /v1/auth/token.
type TokenResponse struct {
	AccessToken string        `json:"access_token"`
	TokenType   string        `json:"token_type"`
	ExpiresIn   int64         `json:"expires_in"`
	Admin       AdminResponse `json:"admin"`
}
