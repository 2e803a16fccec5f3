package retry

import (
	"context"
	"time"

	"gitlab.com/browserker/seek/wait"
)

// Options for a single retry loop, unset timeout and interval fall back to
// the ambient settings
type Options struct {
	timeout  *time.Duration
	interval *time.Duration
	Ignored  []wait.IgnoreFunc
}

// NewOptions with nothing set
func NewOptions() *Options {
	return &Options{Ignored: make([]wait.IgnoreFunc, 0)}
}

// WithTimeout sets the timeout
func (o *Options) WithTimeout(d time.Duration) *Options {
	o.timeout = &d
	return o
}

// WithInterval sets the poll interval
func (o *Options) WithInterval(d time.Duration) *Options {
	o.interval = &d
	return o
}

// Ignoring errors matching any of fns during the loop
func (o *Options) Ignoring(fns ...wait.IgnoreFunc) *Options {
	o.Ignored = append(o.Ignored, fns...)
	return o
}

// IgnoringStale errors during the loop
func (o *Options) IgnoringStale() *Options {
	return o.Ignoring(IsStale)
}

// IsTimeoutSet explicitly
func (o *Options) IsTimeoutSet() bool {
	return o.timeout != nil
}

// IsIntervalSet explicitly
func (o *Options) IsIntervalSet() bool {
	return o.interval != nil
}

// Timeout set or the ambient one
func (o *Options) Timeout(ctx context.Context) time.Duration {
	if o.timeout != nil {
		return *o.timeout
	}
	return Timeout(ctx)
}

// Interval set or the ambient one
func (o *Options) Interval(ctx context.Context) time.Duration {
	if o.interval != nil {
		return *o.interval
	}
	return Interval(ctx)
}

// Clone the options
func (o *Options) Clone() *Options {
	c := &Options{Ignored: make([]wait.IgnoreFunc, len(o.Ignored))}
	copy(c.Ignored, o.Ignored)
	if o.timeout != nil {
		t := *o.timeout
		c.timeout = &t
	}
	if o.interval != nil {
		i := *o.interval
		c.interval = &i
	}
	return c
}
