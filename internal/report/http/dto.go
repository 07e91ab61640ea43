package http

import (
	"github.com/nekogravitycat/courtmaster-backend/internal/period"
	"github.com/nekogravitycat/courtmaster-backend/internal/pkg/request"
	"github.com/nekogravitycat/courtmaster-backend/internal/report"
)

type StatsRequest struct {
	Period string `form:"period" binding:"omitempty,oneof=overall weekly monthly yearly"`
	Year   int    `form:"year" binding:"omitempty,min=1,max=9999"`
	Month  int    `form:"month" binding:"omitempty,min=1,max=12"`
	Week   int    `form:"week" binding:"omitempty,min=1,max=5"`
}

func (r StatsRequest) Selector() period.Selector {
	kind := period.KindOverall
	if r.Period != "" {
		kind = period.Kind(r.Period)
	}
	return period.Selector{Kind: kind, Year: r.Year, Month: r.Month, Week: r.Week}
}

type StatsResponse struct {
	Period          string  `json:"period"`
	StartDate       *string `json:"start_date,omitempty"`
	EndDate         *string `json:"end_date,omitempty"`
	TotalBookings   int     `json:"total_bookings"`
	Revenue         string  `json:"revenue"`
	ActiveCustomers int     `json:"active_customers"`
}

func NewStatsResponse(s *report.DashboardStats) StatsResponse {
	resp := StatsResponse{
		Period:          string(s.Period),
		TotalBookings:   s.TotalBookings,
		Revenue:         s.Revenue.StringFixed(2),
		ActiveCustomers: s.ActiveCustomers,
	}
	if s.Range != nil {
		start := s.Range.Start.Format(request.DateLayout)
		end := s.Range.End.Format(request.DateLayout)
		resp.StartDate, resp.EndDate = &start, &end
	}
	return resp
}

type DateCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type StatusCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

type ChartsResponse struct {
	DailyTrend      []DateCount   `json:"daily_trend"`
	StatusBreakdown []StatusCount `json:"status_breakdown"`
}

func NewChartsResponse(c *report.DashboardCharts) ChartsResponse {
	resp := ChartsResponse{
		DailyTrend:      make([]DateCount, len(c.DailyTrend)),
		StatusBreakdown: make([]StatusCount, len(c.StatusBreakdown)),
	}
	for i, p := range c.DailyTrend {
		resp.DailyTrend[i] = DateCount{Date: p.Date.Format(request.DateLayout), Count: p.Count}
	}
	for i, s := range c.StatusBreakdown {
		resp.StatusBreakdown[i] = StatusCount{Label: s.Label, Count: s.Count}
	}
	return resp
}

type CapacityRequest struct {
	StartDate string   `form:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate   string   `form:"end_date" binding:"required,datetime=2006-01-02"`
	CourtIDs  []string `form:"court_id" binding:"omitempty,dive,uuid"`
}

type HeatmapCellResponse struct {
	Date        string `json:"date"`
	CourtID     string `json:"court_id"`
	BookedHours string `json:"booked_hours"`
}

type CalendarRequest struct {
	Year     int      `form:"year" binding:"required,min=1,max=9999"`
	Month    int      `form:"month" binding:"required,min=1,max=12"`
	CourtIDs []string `form:"court_id" binding:"omitempty,dive,uuid"`
}
