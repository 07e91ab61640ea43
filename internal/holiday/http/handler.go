package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nekogravitycat/courtmaster-backend/internal/holiday"
	"github.com/nekogravitycat/courtmaster-backend/internal/pkg/request"
	"github.com/nekogravitycat/courtmaster-backend/internal/pkg/response"
)

type Handler struct {
	service holiday.Service
}

func NewHandler(service holiday.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	var req ListHolidaysRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}
	req.Normalize()

	// Layouts were already checked by the binding tags.
	var filter holiday.Filter
	if req.From != "" {
		filter.From, _ = time.Parse(request.DateLayout, req.From)
	}
	if req.To != "" {
		filter.To, _ = time.Parse(request.DateLayout, req.To)
	}

	holidays, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]HolidayResponse, len(holidays))
	for i, hd := range holidays {
		items[i] = NewResponse(hd)
	}
	c.JSON(http.StatusOK, response.Paginate(items, req.Page, req.PageSize))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}
	date, _ := time.Parse(request.DateLayout, body.Date)

	hd, err := h.service.Create(c.Request.Context(), holiday.CreateRequest{
		Date:        date,
		Description: body.Description,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewResponse(hd))
}

func (h *Handler) Delete(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), req.ID); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
