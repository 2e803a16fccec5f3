package search

import (
	"context"
	"time"

	"gitlab.com/browserker/seek/browserk/navi"
	"gitlab.com/browserker/seek/retry"
)

// StaleSafely runs action with a working copy of opts, re-running it on stale
// or transient errors with the timeout reduced by the time already spent
func StaleSafely[R any](ctx context.Context, opts *navi.SearchOptions, action func(working *navi.SearchOptions) (R, error), staleOpts ...retry.StaleOption) (R, error) {
	if opts == nil {
		opts = navi.NewSearchOptions()
	}
	timeout := opts.Timeout(ctx)
	first := true

	return retry.StaleSafely(ctx, timeout, func(remaining time.Duration) (R, error) {
		working := opts.Clone()
		if !first {
			working.SetTimeout(remaining)
		}
		first = false
		return action(working)
	}, staleOpts...)
}
