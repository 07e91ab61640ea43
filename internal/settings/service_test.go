package settings

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/courtmaster-backend/internal/events"
	"github.com/nekogravitycat/courtmaster-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/courtmaster-backend/internal/schedule"
)

func ptr[T any](v T) *T { return &v }

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, e events.Event) error {
	return m.Called(ctx, e).Error(0)
}

func TestService_GetDefaults(t *testing.T) {
	svc := NewService(NewMemoryRepository(), nil)

	cfg, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "05:00", cfg.OpenAt.String())
	assert.Equal(t, "12:00", cfg.CloseAt.String())
	assert.Equal(t, 60, cfg.SlotDurationMinutes)
	assert.EqualValues(t, 400, cfg.PricePerHour)

	slots, err := cfg.Slots()
	require.NoError(t, err)
	assert.Len(t, slots, 7)
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()
	var published []events.Event
	pub := events.PublisherFunc(func(_ context.Context, e events.Event) error {
		published = append(published, e)
		return nil
	})
	svc := NewService(NewMemoryRepository(), pub)

	cfg, err := svc.Update(ctx, UpdateRequest{
		OpenAt:              ptr(schedule.MustParseTimeOfDay("06:00")),
		SlotDurationMinutes: ptr(30),
	})
	require.NoError(t, err)
	assert.Equal(t, "06:00", cfg.OpenAt.String())
	assert.Equal(t, "12:00", cfg.CloseAt.String(), "unset fields keep their value")
	assert.False(t, cfg.UpdatedAt.IsZero())

	got, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 30, got.SlotDurationMinutes)

	require.Len(t, published, 1)
	assert.Equal(t, events.SettingsUpdated, published[0].Type)
}

func TestService_UpdateInvalid(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		req     UpdateRequest
		wantErr error
	}{
		{"Open after close", UpdateRequest{OpenAt: ptr(schedule.MustParseTimeOfDay("13:00"))}, ErrInvalidHours},
		{"Open equals close", UpdateRequest{CloseAt: ptr(schedule.MustParseTimeOfDay("05:00"))}, ErrInvalidHours},
		{"Zero duration", UpdateRequest{SlotDurationMinutes: ptr(0)}, ErrInvalidSlotDuration},
		{"Negative price", UpdateRequest{PricePerHour: ptr(int64(-1))}, ErrNegativePrice},
		{"Grid over cap", UpdateRequest{
			OpenAt:              ptr(schedule.MustParseTimeOfDay("00:00")),
			CloseAt:             ptr(schedule.MustParseTimeOfDay("23:59")),
			SlotDurationMinutes: ptr(5),
		}, ErrUnboundedGrid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(NewMemoryRepository(), nil)
			_, err := svc.Update(ctx, tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

			// Rejected updates leave the defaults in place.
			cfg, err := svc.Get(ctx)
			require.NoError(t, err)
			assert.Equal(t, Defaults().OpenAt, cfg.OpenAt)
		})
	}
}

func TestService_UpdateSurvivesPublishFailure(t *testing.T) {
	ctx := context.Background()
	pub := new(mockPublisher)
	pub.On("Publish", mock.Anything, mock.MatchedBy(func(e events.Event) bool {
		return e.Type == events.SettingsUpdated
	})).Return(errors.New("broker down")).Once()

	svc := NewService(NewMemoryRepository(), pub)
	cfg, err := svc.Update(ctx, UpdateRequest{PricePerHour: ptr(int64(500))})
	require.NoError(t, err, "the saved configuration is not rolled back")
	assert.EqualValues(t, 500, cfg.PricePerHour)

	pub.AssertExpectations(t)

	// Invalid updates publish nothing.
	_, err = svc.Update(ctx, UpdateRequest{SlotDurationMinutes: ptr(-5)})
	assert.ErrorIs(t, err, ErrInvalidSlotDuration)
	pub.AssertNumberOfCalls(t, "Publish", 1)
}
