package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nekogravitycat/courtmaster-backend/internal/booking"
	"github.com/nekogravitycat/courtmaster-backend/internal/period"
	"github.com/nekogravitycat/courtmaster-backend/internal/pkg/request"
	"github.com/nekogravitycat/courtmaster-backend/internal/pkg/response"
)

const noDataMessage = "No data available for selected period"

type Handler struct {
	service booking.Service
}

func NewHandler(service booking.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	var req ListBookingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}
	req.Normalize()

	q := booking.Query{Search: req.Search}
	if req.Date != "" {
		q.Date, _ = time.Parse(request.DateLayout, req.Date)
	}

	bookings, err := h.service.Query(c.Request.Context(), q)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b)
	}
	c.JSON(http.StatusOK, response.Paginate(items, req.Page, req.PageSize))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateBookingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}
	date, _ := time.Parse(request.DateLayout, body.Date)

	b, err := h.service.Create(c.Request.Context(), booking.CreateRequest{
		CourtID:      body.CourtID,
		Date:         date,
		StartTime:    *body.StartTime,
		EndTime:      *body.EndTime,
		CustomerName: body.CustomerName,
		Mobile:       body.Mobile,
		Category:     body.Category,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewBookingResponse(b))
}

func (h *Handler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) Cancel(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	if err := h.service.Cancel(c.Request.Context(), req.ID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) BulkDelete(c *gin.Context) {
	var body BulkDeleteRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	res, err := h.service.BulkDelete(c.Request.Context(), body.Selector())
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := BulkDeleteResponse{
		Success:   res.Deleted,
		Message:   "Selected booking data deleted successfully",
		Count:     res.Count,
		StartDate: res.Range.Start.Format(request.DateLayout),
		EndDate:   res.Range.End.Format(request.DateLayout),
	}
	if !res.Deleted {
		resp.Message = noDataMessage
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) Years(c *gin.Context) {
	years, err := h.service.DistinctYears(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"years": years})
}

// Periods lists the fixed weeks of a month, as offered by the bulk-delete picker.
func (h *Handler) Periods(c *gin.Context) {
	var req PeriodsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}

	weeks, err := period.Weeks(req.Year, req.Month)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]WeekResponse, len(weeks))
	for i, w := range weeks {
		items[i] = WeekResponse{
			Week:      w.Ordinal,
			Label:     w.Label,
			StartDate: w.Range.Start.Format(request.DateLayout),
			EndDate:   w.Range.End.Format(request.DateLayout),
		}
	}
	c.JSON(http.StatusOK, gin.H{"weeks": items})
}

func (h *Handler) Schedule(c *gin.Context) {
	var req ScheduleRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}
	date, _ := time.Parse(request.DateLayout, req.Date)

	ds, err := h.service.DaySchedule(c.Request.Context(), date)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewScheduleResponse(ds))
}
