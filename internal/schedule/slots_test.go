package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/courtmaster-backend/internal/pkg/apperror"
)

func TestGenerateSlots(t *testing.T) {
	tests := []struct {
		name     string
		open     string
		close    string
		duration int
		want     []string
	}{
		{
			name:     "Hourly grid",
			open:     "05:00",
			close:    "09:00",
			duration: 60,
			want:     []string{"05:00", "06:00", "07:00", "08:00"},
		},
		{
			name:     "Duration does not divide the span",
			open:     "10:00",
			close:    "12:00",
			duration: 90,
			want:     []string{"10:00", "11:30"},
		},
		{
			name:     "Last start just before close",
			open:     "10:00",
			close:    "10:31",
			duration: 30,
			want:     []string{"10:00", "10:30"},
		},
		{
			name:     "Open equals close",
			open:     "10:00",
			close:    "10:00",
			duration: 60,
			want:     nil,
		},
		{
			name:     "Open after close",
			open:     "18:00",
			close:    "09:00",
			duration: 60,
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GenerateSlots(MustParseTimeOfDay(tt.open), MustParseTimeOfDay(tt.close), tt.duration)
			require.NoError(t, err)

			var gotStr []string
			for _, s := range got {
				gotStr = append(gotStr, s.String())
			}
			assert.Equal(t, tt.want, gotStr)
		})
	}
}

func TestGenerateSlots_Pathological(t *testing.T) {
	open := MustParseTimeOfDay("05:00")
	closeAt := MustParseTimeOfDay("23:00")

	for _, d := range []int{0, -30} {
		_, err := GenerateSlots(open, closeAt, d)
		require.Error(t, err, "duration %d must not loop forever", d)
		assert.Equal(t, apperror.KindConfiguration, apperror.KindOf(err))
	}

	// 00:00-23:59 with 1-minute slots needs far more than the cap.
	_, err := GenerateSlots(MustParseTimeOfDay("00:00"), MustParseTimeOfDay("23:59"), 1)
	assert.ErrorIs(t, err, ErrTooManySlots)
}

func TestGenerateSlots_CapBoundary(t *testing.T) {
	open := MustParseTimeOfDay("00:00")

	// Exactly 100 ten-minute slots fit before 16:40.
	slots, err := GenerateSlots(open, MustParseTimeOfDay("16:40"), 10)
	require.NoError(t, err)
	assert.Len(t, slots, MaxSlotsPerDay)

	// One more minute of opening requires a 101st slot.
	_, err = GenerateSlots(open, MustParseTimeOfDay("16:41"), 10)
	assert.ErrorIs(t, err, ErrTooManySlots)
}

func TestGenerateSlots_Properties(t *testing.T) {
	durations := []int{5, 15, 30, 45, 60, 90, 120, 240}
	opens := []string{"00:00", "05:00", "06:30", "09:15"}
	closes := []string{"10:00", "12:00", "18:45", "23:59"}

	for _, d := range durations {
		for _, o := range opens {
			for _, c := range closes {
				open, closeAt := MustParseTimeOfDay(o), MustParseTimeOfDay(c)
				slots, err := GenerateSlots(open, closeAt, d)
				if err != nil {
					assert.ErrorIs(t, err, ErrTooManySlots)
					continue
				}
				require.NotEmpty(t, slots)
				assert.Equal(t, open, slots[0], "first slot must equal open")
				assert.LessOrEqual(t, len(slots), MaxSlotsPerDay)
				for i, s := range slots {
					assert.Less(t, s, closeAt, "slot %s must start before close %s", s, closeAt)
					if i > 0 {
						assert.Greater(t, s, slots[i-1], "slots must be strictly increasing")
					}
				}
			}
		}
	}
}

func TestGenerateIntervals(t *testing.T) {
	got, err := GenerateIntervals(MustParseTimeOfDay("10:00"), MustParseTimeOfDay("12:00"), 90)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, Interval{Start: MustParseTimeOfDay("11:30"), End: MustParseTimeOfDay("13:00")}, got[1])
	assert.Equal(t, 90, got[0].DurationMinutes())
}

func TestOverlaps(t *testing.T) {
	at := MustParseTimeOfDay

	tests := []struct {
		name   string
		a, b   Interval
		expect bool
	}{
		{"Identical", Interval{at("10:00"), at("11:00")}, Interval{at("10:00"), at("11:00")}, true},
		{"Partial", Interval{at("10:00"), at("11:00")}, Interval{at("10:30"), at("11:30")}, true},
		{"Contained", Interval{at("09:00"), at("12:00")}, Interval{at("10:00"), at("11:00")}, true},
		{"Back to back", Interval{at("09:00"), at("10:00")}, Interval{at("10:00"), at("11:00")}, false},
		{"Disjoint", Interval{at("06:00"), at("07:00")}, Interval{at("10:00"), at("11:00")}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, tt.a.Overlaps(tt.b))
			assert.Equal(t, tt.expect, tt.b.Overlaps(tt.a), "overlap must be symmetric")
		})
	}
}
