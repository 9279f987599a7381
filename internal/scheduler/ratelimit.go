package scheduler

import (
	"context"
	"sync"
	"time"
)

// callGate enforces a minimum spacing between external model calls. Callers
// that arrive in a burst are serialized at exactly one interval apart: each
// Wait reserves the next free slot under the lock, so two near-simultaneous
// callers can never both observe a stale "safe to call" timestamp.
type callGate struct {
	mu       sync.Mutex
	interval time.Duration
	next     time.Time
}

func newCallGate(interval time.Duration) *callGate {
	return &callGate{interval: interval}
}

// Wait blocks until the caller's reserved slot arrives or ctx is done.
// The slot stays reserved even when the caller bails out on ctx, which keeps
// the spacing guarantee intact for everyone behind it.
func (g *callGate) Wait(ctx context.Context) error {
	g.mu.Lock()
	now := time.Now()
	slot := g.next
	if slot.Before(now) {
		slot = now
	}
	g.next = slot.Add(g.interval)
	g.mu.Unlock()

	delay := time.Until(slot)
	if delay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
