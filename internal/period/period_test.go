package period

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/courtmaster-backend/internal/pkg/apperror"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name      string
		sel       Selector
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "Yearly",
			sel:       Selector{Kind: KindYearly, Year: 2024},
			wantStart: Date(2024, time.January, 1),
			wantEnd:   Date(2024, time.December, 31),
		},
		{
			name:      "Monthly leap February",
			sel:       Selector{Kind: KindMonthly, Year: 2024, Month: 2},
			wantStart: Date(2024, time.February, 1),
			wantEnd:   Date(2024, time.February, 29),
		},
		{
			name:      "Monthly common February",
			sel:       Selector{Kind: KindMonthly, Year: 2023, Month: 2},
			wantStart: Date(2023, time.February, 1),
			wantEnd:   Date(2023, time.February, 28),
		},
		{
			name:      "Monthly December",
			sel:       Selector{Kind: KindMonthly, Year: 2023, Month: 12},
			wantStart: Date(2023, time.December, 1),
			wantEnd:   Date(2023, time.December, 31),
		},
		{
			name:      "Weekly first week",
			sel:       Selector{Kind: KindWeekly, Year: 2023, Month: 1, Week: 1},
			wantStart: Date(2023, time.January, 1),
			wantEnd:   Date(2023, time.January, 7),
		},
		{
			name:      "Weekly fifth week of March 2024 is three days",
			sel:       Selector{Kind: KindWeekly, Year: 2024, Month: 3, Week: 5},
			wantStart: Date(2024, time.March, 29),
			wantEnd:   Date(2024, time.March, 31),
		},
		{
			name:      "Weekly fifth week of leap February is one day",
			sel:       Selector{Kind: KindWeekly, Year: 2024, Month: 2, Week: 5},
			wantStart: Date(2024, time.February, 29),
			wantEnd:   Date(2024, time.February, 29),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.sel)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStart, got.Start)
			assert.Equal(t, tt.wantEnd, got.End)
		})
	}
}

func TestResolve_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		sel     Selector
		wantErr error
	}{
		{"Fifth week of common February", Selector{Kind: KindWeekly, Year: 2023, Month: 2, Week: 5}, ErrInvalidWeek},
		{"Week zero", Selector{Kind: KindWeekly, Year: 2024, Month: 3, Week: 0}, ErrInvalidWeek},
		{"Week six", Selector{Kind: KindWeekly, Year: 2024, Month: 3, Week: 6}, ErrInvalidWeek},
		{"Missing month for weekly", Selector{Kind: KindWeekly, Year: 2024, Week: 1}, ErrInvalidMonth},
		{"Month thirteen", Selector{Kind: KindMonthly, Year: 2024, Month: 13}, ErrInvalidMonth},
		{"Missing year", Selector{Kind: KindYearly}, ErrInvalidYear},
		{"Unknown kind", Selector{Kind: "daily", Year: 2024}, ErrInvalidKind},
		{"Overall has no range", Selector{Kind: KindOverall}, ErrUnbounded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(tt.sel)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
		})
	}
}

func TestWeeklyPartitionCoversMonth(t *testing.T) {
	for year := 2023; year <= 2024; year++ {
		for month := 1; month <= 12; month++ {
			days := DaysIn(year, time.Month(month))
			covered := make(map[int]int)

			for week := 1; week <= MaxWeeksInMonth; week++ {
				r, err := Resolve(Selector{Kind: KindWeekly, Year: year, Month: month, Week: week})
				if err != nil {
					assert.ErrorIs(t, err, ErrInvalidWeek)
					continue
				}
				assert.LessOrEqual(t, r.End.Day(), days, "week end must not exceed month length")
				assert.Equal(t, time.Month(month), r.End.Month())
				for _, d := range r.Days() {
					covered[d.Day()]++
				}
			}

			require.Len(t, covered, days, "%d-%02d must be fully covered", year, month)
			for day := 1; day <= days; day++ {
				assert.Equal(t, 1, covered[day], "%d-%02d-%02d covered exactly once", year, month, day)
			}
		}
	}
}

func TestWeeks(t *testing.T) {
	weeks, err := Weeks(2024, 3)
	require.NoError(t, err)
	require.Len(t, weeks, 5)
	assert.Equal(t, "Week 1 (Mar 1-7)", weeks[0].Label)
	assert.Equal(t, "Week 5 (Mar 29-31)", weeks[4].Label)

	// Labels and deletion ranges come from the same partition.
	for _, w := range weeks {
		r, err := Resolve(Selector{Kind: KindWeekly, Year: 2024, Month: 3, Week: w.Ordinal})
		require.NoError(t, err)
		assert.Equal(t, r, w.Range)
		assert.Equal(t, w.Ordinal, WeekOf(r.Start))
		assert.Equal(t, w.Ordinal, WeekOf(r.End))
	}

	feb, err := Weeks(2023, 2)
	require.NoError(t, err)
	assert.Len(t, feb, 4)

	_, err = Weeks(2024, 0)
	assert.ErrorIs(t, err, ErrInvalidMonth)
}

func TestRange(t *testing.T) {
	r, err := NewRange(time.Date(2024, 3, 5, 15, 0, 0, 0, time.UTC), Date(2024, time.March, 7))
	require.NoError(t, err)
	assert.Len(t, r.Days(), 3)
	assert.True(t, r.Contains(Date(2024, time.March, 5)))
	assert.True(t, r.Contains(time.Date(2024, 3, 7, 23, 59, 0, 0, time.UTC)))
	assert.False(t, r.Contains(Date(2024, time.March, 8)))
	assert.Equal(t, "2024-03-05..2024-03-07", r.String())

	_, err = NewRange(Date(2024, time.March, 7), Date(2024, time.March, 5))
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind(" Monthly ")
	require.NoError(t, err)
	assert.Equal(t, KindMonthly, k)

	_, err = ParseKind("quarterly")
	assert.ErrorIs(t, err, ErrInvalidKind)
}
