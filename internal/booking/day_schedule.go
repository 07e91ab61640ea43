package booking

import (
	"context"
	"time"

	"github.com/nekogravitycat/courtmaster-backend/internal/court"
	"github.com/nekogravitycat/courtmaster-backend/internal/period"
	"github.com/nekogravitycat/courtmaster-backend/internal/schedule"
)

// SlotCell is one grid slot on one court, with the booking occupying it if any.
type SlotCell struct {
	schedule.Interval
	Booking *Booking
}

type CourtSchedule struct {
	Court *court.Court
	Slots []SlotCell
}

// DaySchedule is the booking grid of every active court for a single day.
type DaySchedule struct {
	Date                time.Time
	Holiday             bool
	SlotDurationMinutes int
	Courts              []CourtSchedule
}

func (s *service) DaySchedule(ctx context.Context, date time.Time) (*DaySchedule, error) {
	if date.IsZero() {
		return nil, ErrDateRequired
	}
	day := period.Day(date)

	cfg, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	grid, err := schedule.GenerateIntervals(cfg.OpenAt, cfg.CloseAt, cfg.SlotDurationMinutes)
	if err != nil {
		return nil, err
	}

	courts, err := s.courts.List(ctx, true)
	if err != nil {
		return nil, err
	}
	closed, err := s.holidays.IsHoliday(ctx, day)
	if err != nil {
		return nil, err
	}
	bookings, err := s.repo.List(ctx, Filter{Date: day})
	if err != nil {
		return nil, err
	}

	byCourt := make(map[string][]*Booking)
	for _, b := range bookings {
		byCourt[b.CourtID] = append(byCourt[b.CourtID], b)
	}

	out := &DaySchedule{
		Date:                day,
		Holiday:             closed,
		SlotDurationMinutes: cfg.SlotDurationMinutes,
		Courts:              make([]CourtSchedule, 0, len(courts)),
	}
	for _, c := range courts {
		cs := CourtSchedule{Court: c, Slots: make([]SlotCell, len(grid))}
		for i, slot := range grid {
			cs.Slots[i] = SlotCell{Interval: slot, Booking: occupant(slot, byCourt[c.ID])}
		}
		out.Courts = append(out.Courts, cs)
	}
	return out, nil
}

func occupant(slot schedule.Interval, bookings []*Booking) *Booking {
	for _, b := range bookings {
		if slot.Overlaps(b.Interval()) {
			return b
		}
	}
	return nil
}
