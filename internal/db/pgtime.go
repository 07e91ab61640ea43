package db

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/nekogravitycat/courtmaster-backend/internal/schedule"
)

const microsPerMinute = int64(time.Minute / time.Microsecond)

// Time converts a time of day to a postgres time value.
func Time(t schedule.TimeOfDay) pgtype.Time {
	return pgtype.Time{Microseconds: int64(t.Minutes()) * microsPerMinute, Valid: true}
}

// TimeOfDay converts a postgres time value back, dropping seconds.
func TimeOfDay(t pgtype.Time) schedule.TimeOfDay {
	return schedule.TimeOfDay(t.Microseconds / microsPerMinute)
}

// Date converts a calendar day to a postgres date value.
func Date(d time.Time) pgtype.Date {
	y, m, day := d.Date()
	return pgtype.Date{Time: time.Date(y, m, day, 0, 0, 0, 0, time.UTC), Valid: true}
}
