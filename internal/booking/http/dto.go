package http

import (
	"time"

	"github.com/nekogravitycat/courtmaster-backend/internal/booking"
	"github.com/nekogravitycat/courtmaster-backend/internal/period"
	"github.com/nekogravitycat/courtmaster-backend/internal/pkg/request"
	"github.com/nekogravitycat/courtmaster-backend/internal/schedule"
)

// ListBookingsRequest defines query parameters for listing bookings.
type ListBookingsRequest struct {
	request.ListParams
	Date   string `form:"date" binding:"omitempty,datetime=2006-01-02"`
	Search string `form:"search" binding:"omitempty,max=100"`
}

type BookingResponse struct {
	ID              string             `json:"id"`
	CourtID         string             `json:"court_id"`
	Date            string             `json:"date"`
	StartTime       schedule.TimeOfDay `json:"start_time"`
	EndTime         schedule.TimeOfDay `json:"end_time"`
	DurationMinutes int                `json:"duration_minutes"`
	CustomerName    string             `json:"customer_name"`
	Mobile          string             `json:"mobile"`
	Category        string             `json:"category"`
	Status          string             `json:"status"`
	CreatedAt       time.Time          `json:"created_at"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:              b.ID,
		CourtID:         b.CourtID,
		Date:            b.Date.Format(request.DateLayout),
		StartTime:       b.StartTime,
		EndTime:         b.EndTime,
		DurationMinutes: b.DurationMinutes(),
		CustomerName:    b.CustomerName,
		Mobile:          b.Mobile,
		Category:        string(b.Category),
		Status:          b.Status,
		CreatedAt:       b.CreatedAt,
	}
}

type CreateBookingRequest struct {
	CourtID      string              `json:"court_id" binding:"required,uuid"`
	Date         string              `json:"date" binding:"required,datetime=2006-01-02"`
	StartTime    *schedule.TimeOfDay `json:"start_time" binding:"required"`
	EndTime      *schedule.TimeOfDay `json:"end_time" binding:"required"`
	CustomerName string              `json:"customer_name" binding:"required,max=200"`
	Mobile       string              `json:"mobile" binding:"omitempty,max=32"`
	Category     string              `json:"category" binding:"omitempty,oneof=booking coaching event"`
}

// BulkDeleteRequest selects the period whose bookings are removed.
type BulkDeleteRequest struct {
	Period string `json:"period" binding:"required,oneof=weekly monthly yearly"`
	Year   int    `json:"year" binding:"required,min=1,max=9999"`
	Month  int    `json:"month" binding:"omitempty,min=1,max=12"`
	Week   int    `json:"week" binding:"omitempty,min=1,max=5"`
}

func (r BulkDeleteRequest) Selector() period.Selector {
	return period.Selector{Kind: period.Kind(r.Period), Year: r.Year, Month: r.Month, Week: r.Week}
}

type BulkDeleteResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Count     int64  `json:"count"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type PeriodsRequest struct {
	Year  int `form:"year" binding:"required,min=1,max=9999"`
	Month int `form:"month" binding:"required,min=1,max=12"`
}

type WeekResponse struct {
	Week      int    `json:"week"`
	Label     string `json:"label"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type ScheduleRequest struct {
	Date string `form:"date" binding:"required,datetime=2006-01-02"`
}

type SlotResponse struct {
	StartTime schedule.TimeOfDay `json:"start_time"`
	EndTime   schedule.TimeOfDay `json:"end_time"`
	Booking   *BookingResponse   `json:"booking"`
}

type CourtScheduleResponse struct {
	CourtID   string         `json:"court_id"`
	CourtName string         `json:"court_name"`
	Slots     []SlotResponse `json:"slots"`
}

type ScheduleResponse struct {
	Date                string                  `json:"date"`
	Holiday             bool                    `json:"holiday"`
	SlotDurationMinutes int                     `json:"slot_duration"`
	Courts              []CourtScheduleResponse `json:"courts"`
}

func NewScheduleResponse(ds *booking.DaySchedule) ScheduleResponse {
	resp := ScheduleResponse{
		Date:                ds.Date.Format(request.DateLayout),
		Holiday:             ds.Holiday,
		SlotDurationMinutes: ds.SlotDurationMinutes,
		Courts:              make([]CourtScheduleResponse, len(ds.Courts)),
	}
	for i, cs := range ds.Courts {
		slots := make([]SlotResponse, len(cs.Slots))
		for j, cell := range cs.Slots {
			slots[j] = SlotResponse{StartTime: cell.Start, EndTime: cell.End}
			if cell.Booking != nil {
				b := NewBookingResponse(cell.Booking)
				slots[j].Booking = &b
			}
		}
		resp.Courts[i] = CourtScheduleResponse{CourtID: cs.Court.ID, CourtName: cs.Court.Name, Slots: slots}
	}
	return resp
}
