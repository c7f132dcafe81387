// Package latency simulates the round trip of operations that have no real backend.
package latency

import (
	"context"
	"time"
)

// Simulator waits for a fixed delay before returning.
type Simulator struct {
	delay time.Duration
}

// New returns a simulator. A non-positive delay disables waiting.
func New(delay time.Duration) Simulator {
	return Simulator{delay: delay}
}

// Delay returns the configured delay.
func (s Simulator) Delay() time.Duration {
	return s.delay
}

// Wait blocks for the delay or until ctx is done, whichever comes first.
func (s Simulator) Wait(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.delay <= 0 {
		return nil
	}
	timer := time.NewTimer(s.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
