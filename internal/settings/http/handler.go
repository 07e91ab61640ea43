package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nekogravitycat/courtmaster-backend/internal/pkg/response"
	"github.com/nekogravitycat/courtmaster-backend/internal/settings"
)

type Handler struct {
	service settings.Service
}

func NewHandler(service settings.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Get(c *gin.Context) {
	cfg, err := h.service.Get(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewResponse(cfg))
}

func (h *Handler) Update(c *gin.Context) {
	var body UpdateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	cfg, err := h.service.Update(c.Request.Context(), settings.UpdateRequest{
		OpenAt:              body.OpenTime,
		CloseAt:             body.CloseTime,
		SlotDurationMinutes: body.SlotDurationMinutes,
		PricePerHour:        body.PricePerHour,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewResponse(cfg))
}
