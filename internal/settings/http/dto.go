package http

import (
	"time"

	"github.com/nekogravitycat/courtmaster-backend/internal/schedule"
	"github.com/nekogravitycat/courtmaster-backend/internal/settings"
)

type SettingsResponse struct {
	OpenTime            schedule.TimeOfDay   `json:"open_time"`
	CloseTime           schedule.TimeOfDay   `json:"close_time"`
	SlotDurationMinutes int                  `json:"slot_duration"`
	PricePerHour        int64                `json:"price_per_hour"`
	Slots               []schedule.TimeOfDay `json:"slots"`
	UpdatedAt           *time.Time           `json:"updated_at,omitempty"`
}

func NewResponse(cfg *settings.OperatingConfig) SettingsResponse {
	resp := SettingsResponse{
		OpenTime:            cfg.OpenAt,
		CloseTime:           cfg.CloseAt,
		SlotDurationMinutes: cfg.SlotDurationMinutes,
		PricePerHour:        cfg.PricePerHour,
		Slots:               []schedule.TimeOfDay{},
	}
	if slots, err := cfg.Slots(); err == nil && slots != nil {
		resp.Slots = slots
	}
	if !cfg.UpdatedAt.IsZero() {
		resp.UpdatedAt = &cfg.UpdatedAt
	}
	return resp
}

type UpdateRequest struct {
	OpenTime            *schedule.TimeOfDay `json:"open_time"`
	CloseTime           *schedule.TimeOfDay `json:"close_time"`
	SlotDurationMinutes *int                `json:"slot_duration" binding:"omitempty,min=1"`
	PricePerHour        *int64              `json:"price_per_hour" binding:"omitempty,min=0"`
}
