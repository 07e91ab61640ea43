package report

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nekogravitycat/courtmaster-backend/internal/booking"
	"github.com/nekogravitycat/courtmaster-backend/internal/period"
	"github.com/nekogravitycat/courtmaster-backend/internal/settings"
)

// Ledger is the read side of the booking ledger.
type Ledger interface {
	List(ctx context.Context, filter booking.Filter) ([]*booking.Booking, error)
}

type Service interface {
	// DashboardStats aggregates the resolved period, or all time for period.KindOverall.
	DashboardStats(ctx context.Context, sel period.Selector) (*DashboardStats, error)
	// DailyTrend counts bookings per day over the trailing window ending today, zero-filled.
	DailyTrend(ctx context.Context, windowDays int) ([]TrendPoint, error)
	StatusBreakdown(ctx context.Context) ([]StatusCount, error)
	// CapacityHeatmap sums booked hours per (day, court). Empty courtIDs means all courts.
	CapacityHeatmap(ctx context.Context, rng period.Range, courtIDs []string) ([]HeatmapCell, error)
	DashboardCharts(ctx context.Context) (*DashboardCharts, error)
	// MonthlyCalendar counts bookings per day of the month. Empty courtIDs means all courts.
	MonthlyCalendar(ctx context.Context, year, month int, courtIDs []string) ([]CalendarDay, error)
}

type service struct {
	ledger   Ledger
	settings settings.Service
	cache    Cache
	loc      *time.Location
	now      func() time.Time
}

type Option func(*service)

// WithClock overrides the time source used to find "today".
func WithClock(now func() time.Time) Option {
	return func(s *service) { s.now = now }
}

// NewService builds the aggregator. loc is the operating timezone; nil means UTC.
func NewService(ledger Ledger, settingsService settings.Service, cache Cache, loc *time.Location, opts ...Option) Service {
	if cache == nil {
		cache = NoopCache{}
	}
	if loc == nil {
		loc = time.UTC
	}
	s := &service{ledger: ledger, settings: settingsService, cache: cache, loc: loc, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var sixty = decimal.NewFromInt(60)

func (s *service) DashboardStats(ctx context.Context, sel period.Selector) (*DashboardStats, error) {
	field := fmt.Sprintf("stats:%s:%d:%d:%d", sel.Kind, sel.Year, sel.Month, sel.Week)
	return cached(ctx, s.cache, field, func() (*DashboardStats, error) {
		stats := &DashboardStats{Period: sel.Kind}

		var filter booking.Filter
		if sel.Kind != period.KindOverall {
			rng, err := period.Resolve(sel)
			if err != nil {
				return nil, err
			}
			stats.Range = &rng
			filter.From, filter.To = rng.Start, rng.End
		}

		bookings, err := s.ledger.List(ctx, filter)
		if err != nil {
			return nil, err
		}
		cfg, err := s.settings.Get(ctx)
		if err != nil {
			return nil, err
		}

		// Revenue uses the current price for every booking.
		var minutes int64
		customers := make(map[string]struct{})
		for _, b := range bookings {
			minutes += int64(b.DurationMinutes())
			customers[b.CustomerName] = struct{}{}
		}
		stats.TotalBookings = len(bookings)
		stats.ActiveCustomers = len(customers)
		stats.Revenue = decimal.NewFromInt(minutes).
			Mul(decimal.NewFromInt(cfg.PricePerHour)).
			Div(sixty).
			Round(2)
		return stats, nil
	})
}

func (s *service) today() time.Time {
	return period.Day(s.now().In(s.loc))
}

func (s *service) DailyTrend(ctx context.Context, windowDays int) ([]TrendPoint, error) {
	if windowDays < 1 || windowDays > 366 {
		return nil, ErrInvalidWindow
	}
	end := s.today()
	start := end.AddDate(0, 0, -(windowDays - 1))

	field := fmt.Sprintf("trend:%s:%d", end.Format(time.DateOnly), windowDays)
	return cachedSlice(ctx, s.cache, field, func() ([]TrendPoint, error) {
		bookings, err := s.ledger.List(ctx, booking.Filter{From: start, To: end})
		if err != nil {
			return nil, err
		}

		counts := make(map[time.Time]int)
		for _, b := range bookings {
			counts[period.Day(b.Date)]++
		}

		points := make([]TrendPoint, 0, windowDays)
		for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
			points = append(points, TrendPoint{Date: d, Count: counts[d]})
		}
		return points, nil
	})
}

func (s *service) StatusBreakdown(ctx context.Context) ([]StatusCount, error) {
	return cachedSlice(ctx, s.cache, "status", func() ([]StatusCount, error) {
		bookings, err := s.ledger.List(ctx, booking.Filter{})
		if err != nil {
			return nil, err
		}

		counts := make(map[string]int)
		for _, b := range bookings {
			counts[b.Status]++
		}

		out := make([]StatusCount, 0, len(counts))
		for label, n := range counts {
			out = append(out, StatusCount{Label: label, Count: n})
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
		return out, nil
	})
}

func (s *service) CapacityHeatmap(ctx context.Context, rng period.Range, courtIDs []string) ([]HeatmapCell, error) {
	if rng.End.Before(rng.Start) {
		return nil, period.ErrInvalidRange
	}
	ids := sortedIDs(courtIDs)

	field := fmt.Sprintf("heatmap:%s:%s", rng, strings.Join(ids, ","))
	return cachedSlice(ctx, s.cache, field, func() ([]HeatmapCell, error) {
		bookings, err := s.ledger.List(ctx, booking.Filter{From: rng.Start, To: rng.End, CourtIDs: ids})
		if err != nil {
			return nil, err
		}

		type cellKey struct {
			date    time.Time
			courtID string
		}
		minutes := make(map[cellKey]int64)
		for _, b := range bookings {
			minutes[cellKey{period.Day(b.Date), b.CourtID}] += int64(b.DurationMinutes())
		}

		cells := make([]HeatmapCell, 0, len(minutes))
		for k, m := range minutes {
			cells = append(cells, HeatmapCell{
				Date:        k.date,
				CourtID:     k.courtID,
				BookedHours: decimal.NewFromInt(m).Div(sixty).Round(2),
			})
		}
		sort.Slice(cells, func(i, j int) bool {
			if !cells[i].Date.Equal(cells[j].Date) {
				return cells[i].Date.Before(cells[j].Date)
			}
			return cells[i].CourtID < cells[j].CourtID
		})
		return cells, nil
	})
}

func (s *service) DashboardCharts(ctx context.Context) (*DashboardCharts, error) {
	trend, err := s.DailyTrend(ctx, DefaultTrendWindowDays)
	if err != nil {
		return nil, err
	}
	breakdown, err := s.StatusBreakdown(ctx)
	if err != nil {
		return nil, err
	}
	return &DashboardCharts{DailyTrend: trend, StatusBreakdown: breakdown}, nil
}

func (s *service) MonthlyCalendar(ctx context.Context, year, month int, courtIDs []string) ([]CalendarDay, error) {
	rng, err := period.Resolve(period.Selector{Kind: period.KindMonthly, Year: year, Month: month})
	if err != nil {
		return nil, err
	}
	ids := sortedIDs(courtIDs)

	field := fmt.Sprintf("calendar:%04d-%02d", year, month)
	if len(ids) > 0 {
		field += ":" + strings.Join(ids, ",")
	}
	return cachedSlice(ctx, s.cache, field, func() ([]CalendarDay, error) {
		bookings, err := s.ledger.List(ctx, booking.Filter{From: rng.Start, To: rng.End, CourtIDs: ids})
		if err != nil {
			return nil, err
		}

		// The ledger is ordered by date, so days come out in order.
		days := make([]CalendarDay, 0)
		for _, b := range bookings {
			d := period.Day(b.Date)
			if n := len(days); n > 0 && days[n-1].Date.Equal(d) {
				days[n-1].Count++
				continue
			}
			days = append(days, CalendarDay{Date: d, Count: 1})
		}
		return days, nil
	})
}

func sortedIDs(ids []string) []string {
	out := append([]string(nil), ids...)
	sort.Strings(out)
	return out
}

// cached serves field from the cache, computing and storing it on a miss.
// The generation is pinned before the ledger is read, so a result that raced an
// invalidation is stored under a generation nobody reads any more.
// Cache failures are logged and never fail the report.
func cached[T any](ctx context.Context, cache Cache, field string, compute func() (*T, error)) (*T, error) {
	gen, err := cache.Generation(ctx)
	if err != nil {
		log.Printf("report cache generation: %v", err)
		return compute()
	}

	var hit T
	if ok, err := cache.Get(ctx, gen, field, &hit); err != nil {
		log.Printf("report cache get %s: %v", field, err)
	} else if ok {
		return &hit, nil
	}

	v, err := compute()
	if err != nil {
		return nil, err
	}
	if err := cache.Set(ctx, gen, field, v); err != nil {
		log.Printf("report cache set %s: %v", field, err)
	}
	return v, nil
}

func cachedSlice[T any](ctx context.Context, cache Cache, field string, compute func() ([]T, error)) ([]T, error) {
	out, err := cached(ctx, cache, field, func() (*[]T, error) {
		v, err := compute()
		return &v, err
	})
	if err != nil {
		return nil, err
	}
	return *out, nil
}
