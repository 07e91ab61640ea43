// Package report aggregates the booking ledger into dashboard statistics,
// charts, the capacity heatmap and the monthly calendar. It never writes to the ledger.
package report

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/nekogravitycat/courtmaster-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/courtmaster-backend/internal/period"
)

// DefaultTrendWindowDays is the length of the dashboard's daily trend.
const DefaultTrendWindowDays = 30

var ErrInvalidWindow = apperror.Validation("trend window must be between 1 and 366 days")

type DashboardStats struct {
	Period          period.Kind     `json:"period"`
	Range           *period.Range   `json:"range,omitempty"`
	TotalBookings   int             `json:"total_bookings"`
	Revenue         decimal.Decimal `json:"revenue"`
	ActiveCustomers int             `json:"active_customers"`
}

type TrendPoint struct {
	Date  time.Time `json:"date"`
	Count int       `json:"count"`
}

type StatusCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// HeatmapCell is the booked time of one court on one day.
type HeatmapCell struct {
	Date        time.Time       `json:"date"`
	CourtID     string          `json:"court_id"`
	BookedHours decimal.Decimal `json:"booked_hours"`
}

type DashboardCharts struct {
	DailyTrend      []TrendPoint  `json:"daily_trend"`
	StatusBreakdown []StatusCount `json:"status_breakdown"`
}

type CalendarDay struct {
	Date  time.Time `json:"date"`
	Count int       `json:"count"`
}
