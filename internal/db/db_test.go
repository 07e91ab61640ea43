package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type flakyPinger struct {
	failures int
	calls    int
}

func (p *flakyPinger) Ping(context.Context) error {
	p.calls++
	if p.calls <= p.failures {
		return errors.New("connection refused")
	}
	return nil
}

func TestWaitForPing(t *testing.T) {
	ctx := context.Background()

	t.Run("Recovers within attempts", func(t *testing.T) {
		p := &flakyPinger{failures: 2}
		err := waitForPing(ctx, p, PoolOptions{ConnectAttempts: 3, RetryDelay: time.Millisecond})
		require.NoError(t, err)
		assert.Equal(t, 3, p.calls)
	})

	t.Run("Gives up after attempts", func(t *testing.T) {
		p := &flakyPinger{failures: 5}
		err := waitForPing(ctx, p, PoolOptions{ConnectAttempts: 2, RetryDelay: time.Millisecond})
		assert.ErrorContains(t, err, "after 2 attempts")
		assert.Equal(t, 2, p.calls)
	})

	t.Run("Zero attempts still pings once", func(t *testing.T) {
		p := &flakyPinger{}
		require.NoError(t, waitForPing(ctx, p, PoolOptions{}))
		assert.Equal(t, 1, p.calls)
	})

	t.Run("Stops when the context ends", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		p := &flakyPinger{failures: 5}
		err := waitForPing(cctx, p, PoolOptions{ConnectAttempts: 5, RetryDelay: time.Hour})
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, p.calls)
	})
}
