package retry

import (
	"context"
	"sync"
	"time"
)

const (
	// DefaultTimeout of retry loops when nothing else is configured
	DefaultTimeout = 5 * time.Second
	// DefaultInterval between polls when nothing else is configured
	DefaultInterval = 200 * time.Millisecond
)

// Boundary decides where the ambient Timeout and Interval are stored
type Boundary int8

const (
	// BoundaryContext stores immutable values on the context.Context. Calls
	// given a derived context see the caller's values, unrelated flows never do.
	BoundaryContext Boundary = iota
	// BoundaryFlow stores values in a mutable slot attached to a context with
	// Bind. Every call sharing that context sees later changes.
	BoundaryFlow
	// BoundaryStatic stores values process wide
	BoundaryStatic
)

// BoundaryMap for printing
var BoundaryMap = map[Boundary]string{
	BoundaryContext: "context",
	BoundaryFlow:    "flow",
	BoundaryStatic:  "static",
}

func (b Boundary) String() string {
	if s, ok := BoundaryMap[b]; ok {
		return s
	}
	return "unknown"
}

type values struct {
	timeout  time.Duration
	interval time.Duration
}

var defaultValues = values{timeout: DefaultTimeout, interval: DefaultInterval}

type slot struct {
	lock sync.RWMutex
	v    values
}

type ctxKey int8

const (
	valuesKey ctxKey = iota
	slotKey
)

var (
	settingsLock sync.RWMutex
	boundary     = BoundaryContext
	static       = defaultValues
)

// SetBoundary switches the storage policy. Values stored under a previous
// boundary are not carried over.
func SetBoundary(b Boundary) {
	settingsLock.Lock()
	boundary = b
	settingsLock.Unlock()
}

// CurrentBoundary in use
func CurrentBoundary() Boundary {
	settingsLock.RLock()
	defer settingsLock.RUnlock()
	return boundary
}

// Reset the boundary and static values to their defaults
func Reset() {
	settingsLock.Lock()
	boundary = BoundaryContext
	static = defaultValues
	settingsLock.Unlock()
}

// Bind attaches a fresh mutable settings slot to ctx for BoundaryFlow
func Bind(ctx context.Context) context.Context {
	return context.WithValue(ctx, slotKey, &slot{v: defaultValues})
}

// Timeout currently in effect for ctx
func Timeout(ctx context.Context) time.Duration {
	return current(ctx).timeout
}

// Interval currently in effect for ctx
func Interval(ctx context.Context) time.Duration {
	return current(ctx).interval
}

// SetTimeout stores d under the current boundary. Always continue with the
// returned context, under BoundaryContext it is the only place d is visible.
func SetTimeout(ctx context.Context, d time.Duration) context.Context {
	return update(ctx, func(v *values) { v.timeout = d })
}

// SetInterval stores d under the current boundary, see SetTimeout
func SetInterval(ctx context.Context, d time.Duration) context.Context {
	return update(ctx, func(v *values) { v.interval = d })
}

func current(ctx context.Context) values {
	switch CurrentBoundary() {
	case BoundaryStatic:
		settingsLock.RLock()
		defer settingsLock.RUnlock()
		return static
	case BoundaryFlow:
		if s, ok := ctx.Value(slotKey).(*slot); ok {
			s.lock.RLock()
			defer s.lock.RUnlock()
			return s.v
		}
	default:
		if v, ok := ctx.Value(valuesKey).(values); ok {
			return v
		}
	}
	return defaultValues
}

func update(ctx context.Context, fn func(v *values)) context.Context {
	switch CurrentBoundary() {
	case BoundaryStatic:
		settingsLock.Lock()
		fn(&static)
		settingsLock.Unlock()
		return ctx
	case BoundaryFlow:
		s, ok := ctx.Value(slotKey).(*slot)
		if !ok {
			ctx = Bind(ctx)
			s = ctx.Value(slotKey).(*slot)
		}
		s.lock.Lock()
		fn(&s.v)
		s.lock.Unlock()
		return ctx
	}
	v := current(ctx)
	fn(&v)
	return context.WithValue(ctx, valuesKey, v)
}
