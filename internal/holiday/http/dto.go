package http

import (
	"time"

	"github.com/nekogravitycat/courtmaster-backend/internal/holiday"
	"github.com/nekogravitycat/courtmaster-backend/internal/pkg/request"
)

type HolidayResponse struct {
	ID          string    `json:"id"`
	Date        string    `json:"date"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewResponse(h *holiday.Holiday) HolidayResponse {
	return HolidayResponse{
		ID:          h.ID,
		Date:        h.Date.Format(request.DateLayout),
		Description: h.Description,
		CreatedAt:   h.CreatedAt,
	}
}

type ListHolidaysRequest struct {
	request.ListParams
	From string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To   string `form:"to" binding:"omitempty,datetime=2006-01-02"`
}

type CreateRequest struct {
	Date        string `json:"date" binding:"required,datetime=2006-01-02"`
	Description string `json:"description" binding:"omitempty,max=200"`
}
