package http

import (
	"time"

	"github.com/nekogravitycat/courtmaster-backend/internal/court"
	"github.com/nekogravitycat/courtmaster-backend/internal/pkg/request"
)

type CourtResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

func NewResponse(c *court.Court) CourtResponse {
	return CourtResponse{
		ID:        c.ID,
		Name:      c.Name,
		Active:    c.Active,
		CreatedAt: c.CreatedAt,
	}
}

type ListCourtsRequest struct {
	request.ListParams
	ActiveOnly bool `form:"active_only"`
}

type CreateRequest struct {
	Name   string `json:"name" binding:"required"`
	Active *bool  `json:"active"`
}

type UpdateRequest struct {
	Name   *string `json:"name" binding:"omitempty"`
	Active *bool   `json:"active"`
}
