package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCallGate(t *testing.T) {
	t.Run("First call passes immediately", func(t *testing.T) {
		gate := newCallGate(time.Second)

		start := time.Now()
		require.NoError(t, gate.Wait(context.Background()))
		assert.Less(t, time.Since(start), 100*time.Millisecond)
	})

	t.Run("Back-to-back calls are spaced by the interval", func(t *testing.T) {
		const interval = 120 * time.Millisecond
		gate := newCallGate(interval)

		require.NoError(t, gate.Wait(context.Background()))
		start := time.Now()
		require.NoError(t, gate.Wait(context.Background()))

		assert.GreaterOrEqual(t, time.Since(start), interval-10*time.Millisecond)
	})

	t.Run("Concurrent callers each get their own slot", func(t *testing.T) {
		const interval = 50 * time.Millisecond
		gate := newCallGate(interval)

		start := time.Now()
		done := make(chan time.Duration, 3)
		for i := 0; i < 3; i++ {
			go func() {
				_ = gate.Wait(context.Background())
				done <- time.Since(start)
			}()
		}

		var last time.Duration
		for i := 0; i < 3; i++ {
			d := <-done
			if d > last {
				last = d
			}
		}

		// Three callers occupy slots 0, 1x and 2x interval.
		assert.GreaterOrEqual(t, last, 2*interval-10*time.Millisecond)
	})

	t.Run("Canceled context aborts the wait", func(t *testing.T) {
		gate := newCallGate(time.Minute)
		require.NoError(t, gate.Wait(context.Background()))

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		start := time.Now()
		err := gate.Wait(ctx)
		assert.Error(t, err)
		assert.Less(t, time.Since(start), time.Second)
	})
}
