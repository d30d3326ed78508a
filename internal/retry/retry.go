// Package retry provides a reusable retry-with-backoff policy for the
// network-calling components.
package retry

import (
	"context"
	"errors"
	"time"

	"draftforge/internal/logger"
)

// Policy describes a retry schedule with exponential backoff.
type Policy struct {
	MaxAttempts  int
	InitialDelay time.Duration
	Multiplier   float64
}

// DefaultPolicy matches the transient-failure handling used for all
// upstream API calls: 3 attempts, 1s initial delay, doubling.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts:  3,
		InitialDelay: 1 * time.Second,
		Multiplier:   2.0,
	}
}

// Permanent wraps an error so Do stops retrying immediately.
type Permanent struct {
	Err error
}

func (p *Permanent) Error() string { return p.Err.Error() }

func (p *Permanent) Unwrap() error { return p.Err }

// Stop marks err as non-retryable.
func Stop(err error) error {
	return &Permanent{Err: err}
}

// Do runs fn until it succeeds, the policy is exhausted, the error is
// permanent, or the context is cancelled. The delay between attempts grows
// by the policy multiplier.
func (p Policy) Do(ctx context.Context, op string, fn func() error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	delay := p.InitialDelay

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		err = fn()
		if err == nil {
			return nil
		}

		var perm *Permanent
		if errors.As(err, &perm) {
			return perm.Err
		}

		if attempt == attempts {
			break
		}

		logger.Warn("Retrying after failure", "op", op, "attempt", attempt, "delay", delay.String(), "error", err.Error())
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay = time.Duration(float64(delay) * p.Multiplier)
	}

	return err
}
