package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/nekogravitycat/courtmaster-backend/internal/schedule"
)

func TestTimeRoundTrip(t *testing.T) {
	for _, s := range []string{"00:00", "05:00", "10:30", "23:59"} {
		tod := schedule.MustParseTimeOfDay(s)
		assert.Equal(t, tod, TimeOfDay(Time(tod)), s)
	}

	pg := Time(schedule.MustParseTimeOfDay("10:30"))
	assert.Equal(t, int64((10*60+30)*60*1_000_000), pg.Microseconds)
}

func TestDate(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*3600)
	d := Date(time.Date(2024, 3, 5, 23, 30, 0, 0, loc))
	assert.True(t, d.Valid)
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), d.Time)
}
