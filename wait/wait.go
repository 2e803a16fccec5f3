package wait

import (
	"context"
	"reflect"
	"time"

	"github.com/pkg/errors"
)

// IgnoreFunc reports whether an error raised by a condition should be
// swallowed so polling continues
type IgnoreFunc func(err error) bool

type config struct {
	clock   Clock
	ignored []IgnoreFunc
}

// Option for a Wait
type Option func(*config)

// WithClock replaces the system clock, mostly for tests
func WithClock(clock Clock) Option {
	return func(c *config) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// Ignoring errors matching any of the predicates
func Ignoring(ignore ...IgnoreFunc) Option {
	return func(c *config) {
		for _, fn := range ignore {
			if fn != nil {
				c.ignored = append(c.ignored, fn)
			}
		}
	}
}

// IgnoringType ignores errors that are (or wrap) an error of type E
func IgnoringType[E error]() IgnoreFunc {
	return func(err error) bool {
		var target E
		return errors.As(err, &target)
	}
}

// Wait repeatedly evaluates a condition against input until it is satisfied
// or Timeout elapses.
type Wait[T any] struct {
	config
	input           T
	Timeout         time.Duration
	PollingInterval time.Duration
}

// New wait over input
func New[T any](input T, timeout, interval time.Duration, opts ...Option) *Wait[T] {
	w := &Wait[T]{
		config:          config{clock: SystemClock},
		input:           input,
		Timeout:         timeout,
		PollingInterval: interval,
	}
	for _, opt := range opts {
		opt(&w.config)
	}
	return w
}

// Input the wait passes to conditions
func (w *Wait[T]) Input() T {
	return w.input
}

// Clock the wait reads time from
func (w *Wait[T]) Clock() Clock {
	return w.clock
}

// IsIgnored returns true if any registered predicate matches err
func (w *Wait[T]) IsIgnored(err error) bool {
	for _, ignore := range w.ignored {
		if ignore(err) {
			return true
		}
	}
	return false
}

// Until polls condition until it returns a satisfying value (see Satisfied),
// returning that value. On timeout it returns empty with a nil error. Errors
// not matched by an ignore predicate are returned at once.
func Until[T, R any](ctx context.Context, w *Wait[T], condition func(T) (R, error), empty R) (R, error) {
	return UntilFunc(ctx, w, condition, func(r R) bool { return Satisfied(r) }, empty)
}

// UntilFunc is Until with an explicit satisfaction check
func UntilFunc[T, R any](ctx context.Context, w *Wait[T], condition func(T) (R, error), satisfied func(R) bool, empty R) (R, error) {
	start := w.clock.Now()

	for {
		if err := ctx.Err(); err != nil {
			return empty, errors.Wrap(err, "wait interrupted")
		}

		iterationStart := w.clock.Now()

		result, err := condition(w.input)
		if err == nil && satisfied(result) {
			return result, nil
		}
		if err != nil && !w.IsIgnored(err) {
			return empty, err
		}

		now := w.clock.Now()
		remaining := w.Timeout - now.Sub(start)
		if remaining <= 0 {
			return empty, nil
		}

		// sleeps are clipped to the deadline and the condition is checked once
		// more there, unless the interval alone outlasts the whole timeout
		sleep := w.PollingInterval - now.Sub(iterationStart)
		if sleep > remaining {
			sleep = remaining
		}

		if sleep > 0 {
			if err := w.clock.Sleep(ctx, sleep); err != nil {
				return empty, errors.Wrap(err, "wait interrupted")
			}
		}

		if w.PollingInterval > w.Timeout {
			return empty, nil
		}
	}
}

// Satisfied is the default success rule: true for a true bool, false for nil,
// length > 0 for strings and collections, non-nil for everything else.
func Satisfied(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Func, reflect.Chan:
		return !rv.IsNil()
	case reflect.Slice, reflect.Map:
		return !rv.IsNil() && rv.Len() > 0
	case reflect.Array:
		return rv.Len() > 0
	}
	return true
}
