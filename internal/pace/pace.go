// Package pace provides advisory pacing between successive upstream-heavy
// operations. It is deliberately not a token bucket; callers just want a
// breather between whole-article generations.
package pace

import (
	"context"
	"time"
)

// Pacer inserts a pause between successive operations.
type Pacer interface {
	// Wait blocks until the next operation may start or ctx is done.
	Wait(ctx context.Context) error
}

// FixedDelay pauses a constant duration on every Wait call.
type FixedDelay struct {
	Delay time.Duration
}

// NewFixedDelay creates a pacer with a constant inter-operation delay.
func NewFixedDelay(delay time.Duration) *FixedDelay {
	return &FixedDelay{Delay: delay}
}

// Wait sleeps for the configured delay, returning early with the context
// error when ctx is cancelled.
func (f *FixedDelay) Wait(ctx context.Context) error {
	if f.Delay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(f.Delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// None is a pacer that never waits.
type None struct{}

// Wait returns immediately.
func (None) Wait(ctx context.Context) error {
	return ctx.Err()
}
