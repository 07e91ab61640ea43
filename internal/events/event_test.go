package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMulti_PublishesToAll(t *testing.T) {
	var got []string
	record := func(name string) Publisher {
		return PublisherFunc(func(_ context.Context, e Event) error {
			got = append(got, name+":"+e.Type)
			return nil
		})
	}

	m := Multi{record("a"), nil, record("b")}
	err := m.Publish(context.Background(), Event{Type: BookingCreated, OccurredAt: time.Now()})

	assert.NoError(t, err)
	assert.Equal(t, []string{"a:booking.created", "b:booking.created"}, got)
}

func TestMulti_ContinuesAfterFailure(t *testing.T) {
	boom := errors.New("broker down")
	called := false

	m := Multi{
		PublisherFunc(func(context.Context, Event) error { return boom }),
		PublisherFunc(func(context.Context, Event) error { called = true; return nil }),
	}
	err := m.Publish(context.Background(), Event{Type: BookingCancelled})

	assert.ErrorIs(t, err, boom)
	assert.True(t, called, "later publishers still receive the event")
}

func TestNoop(t *testing.T) {
	assert.NoError(t, Noop{}.Publish(context.Background(), Event{Type: SettingsUpdated}))
}
