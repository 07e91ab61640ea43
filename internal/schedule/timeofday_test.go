package schedule

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	got, err := ParseTimeOfDay("05:30")
	require.NoError(t, err)
	assert.Equal(t, 5*60+30, got.Minutes())

	got, err = ParseTimeOfDay("23:15:00")
	require.NoError(t, err)
	assert.Equal(t, "23:15", got.String())

	for _, bad := range []string{"", "24:00", "7am", "10:61", "10-30"} {
		_, err := ParseTimeOfDay(bad)
		assert.ErrorIs(t, err, ErrInvalidTimeOfDay, "input %q", bad)
	}
}

func TestTimeOfDay_JSON(t *testing.T) {
	type payload struct {
		Start TimeOfDay `json:"start"`
	}

	b, err := json.Marshal(payload{Start: NewTimeOfDay(9, 5)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"start":"09:05"}`, string(b))

	var p payload
	require.NoError(t, json.Unmarshal([]byte(`{"start":"18:45:00"}`), &p))
	assert.Equal(t, NewTimeOfDay(18, 45), p.Start)

	assert.Error(t, json.Unmarshal([]byte(`{"start":"noon"}`), &p))
}

func TestTimeOfDay_On(t *testing.T) {
	day := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 3, 4, 10, 30, 0, 0, time.UTC), NewTimeOfDay(10, 30).On(day))
}
