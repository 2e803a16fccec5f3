package retry

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"gitlab.com/browserker/seek/wait"
)

type staleConfig struct {
	clock   wait.Clock
	onStale func(err error)
}

// StaleOption configures StaleSafely
type StaleOption func(*staleConfig)

// WithClock for measuring the time spent
func WithClock(clock wait.Clock) StaleOption {
	return func(c *staleConfig) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// OnStale is called with every stale or transient error before retrying
func OnStale(fn func(err error)) StaleOption {
	return func(c *staleConfig) {
		c.onStale = fn
	}
}

// StaleSafely runs action with the time budget it has left, re-running it
// whenever it fails with a stale or transient error. Once more than timeout has
// been spent a *TimeoutErr wrapping the last such error is returned. Any other
// error is returned as is.
func StaleSafely[T any](ctx context.Context, timeout time.Duration, action func(remaining time.Duration) (T, error), opts ...StaleOption) (T, error) {
	cfg := &staleConfig{clock: wait.SystemClock}
	for _, opt := range opts {
		opt(cfg)
	}

	start := cfg.clock.Now()
	working := timeout

	for {
		result, err := action(working)
		if err == nil || !(IsStale(err) || IsTransient(err)) {
			return result, err
		}

		if cfg.onStale != nil {
			cfg.onStale(err)
		}

		spent := cfg.clock.Now().Sub(start)
		if spent > timeout {
			log.Ctx(ctx).Debug().Err(err).Str("spent", ShortInterval(spent)).Msg("stale retries exhausted")
			var empty T
			return empty, &TimeoutErr{Spent: spent, cause: err}
		}
		working = timeout - spent

		if err := ctx.Err(); err != nil {
			var empty T
			return empty, err
		}
	}
}
