// Package poll runs bounded, fixed-delay polling loops.
package poll

import (
	"context"
	"errors"
	"time"
)

// ErrExhausted is returned when the stop condition never held within MaxAttempts.
var ErrExhausted = errors.New("poll attempts exhausted")

// SleepFunc blocks for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Policy describes how many times to try and how long to wait between tries.
type Policy struct {
	MaxAttempts int
	Delay       time.Duration
	// Sleep defaults to a context-aware timer.
	Sleep SleepFunc
}

// Attempt is invoked once per try. It reports whether polling can stop.
type Attempt func(ctx context.Context, attempt int) (done bool, err error)

// Do calls fn until it reports done, returns an error, ctx is cancelled or
// MaxAttempts is reached. It returns the number of attempts made. There is no
// delay after the final attempt.
func (p Policy) Do(ctx context.Context, fn Attempt) (int, error) {
	maxAttempts := p.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	sleep := p.Sleep
	if sleep == nil {
		sleep = Sleep
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return attempt - 1, err
		}

		done, err := fn(ctx, attempt)
		if err != nil {
			return attempt, err
		}
		if done {
			return attempt, nil
		}

		if attempt < maxAttempts {
			if err := sleep(ctx, p.Delay); err != nil {
				return attempt, err
			}
		}
	}
	return maxAttempts, ErrExhausted
}

// Sleep waits for d, returning early with ctx.Err() on cancellation.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
