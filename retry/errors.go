package retry

import (
	"time"

	"github.com/pkg/errors"
)

// TimeoutErr when stale retries run out of time
type TimeoutErr struct {
	Spent time.Duration
	cause error
}

func (e *TimeoutErr) Error() string {
	return "Timed out after " + ShortInterval(e.Spent) + "."
}

// Cause is the last error that was retried
func (e *TimeoutErr) Cause() error {
	return e.cause
}

func (e *TimeoutErr) Unwrap() error {
	return e.cause
}

type staler interface {
	Stale() bool
}

type transienter interface {
	Transient() bool
}

// IsStale returns true if err, or anything it wraps, is a stale element handle
func IsStale(err error) bool {
	var s staler
	return errors.As(err, &s) && s.Stale()
}

// IsTransient returns true if err, or anything it wraps, is a transient
// driver failure worth retrying
func IsTransient(err error) bool {
	var t transienter
	return errors.As(err, &t) && t.Transient()
}
