package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nekogravitycat/courtmaster-backend/internal/period"
	"github.com/nekogravitycat/courtmaster-backend/internal/pkg/request"
	"github.com/nekogravitycat/courtmaster-backend/internal/pkg/response"
	"github.com/nekogravitycat/courtmaster-backend/internal/report"
)

type Handler struct {
	service report.Service
}

func NewHandler(service report.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) DashboardStats(c *gin.Context) {
	var req StatsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}

	stats, err := h.service.DashboardStats(c.Request.Context(), req.Selector())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewStatsResponse(stats))
}

func (h *Handler) DashboardCharts(c *gin.Context) {
	charts, err := h.service.DashboardCharts(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewChartsResponse(charts))
}

func (h *Handler) Capacity(c *gin.Context) {
	var req CapacityRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}
	start, _ := time.Parse(request.DateLayout, req.StartDate)
	end, _ := time.Parse(request.DateLayout, req.EndDate)

	rng, err := period.NewRange(start, end)
	if err != nil {
		response.Error(c, err)
		return
	}

	cells, err := h.service.CapacityHeatmap(c.Request.Context(), rng, req.CourtIDs)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]HeatmapCellResponse, len(cells))
	for i, cell := range cells {
		items[i] = HeatmapCellResponse{
			Date:        cell.Date.Format(request.DateLayout),
			CourtID:     cell.CourtID,
			BookedHours: cell.BookedHours.StringFixed(2),
		}
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *Handler) Calendar(c *gin.Context) {
	var req CalendarRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}

	days, err := h.service.MonthlyCalendar(c.Request.Context(), req.Year, req.Month, req.CourtIDs)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]DateCount, len(days))
	for i, d := range days {
		items[i] = DateCount{Date: d.Date.Format(request.DateLayout), Count: d.Count}
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}
