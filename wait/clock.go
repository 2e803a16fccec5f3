package wait

import (
	"context"
	"time"
)

// Clock is the only source of time for poll loops
type Clock interface {
	Now() time.Time
	Sleep(ctx context.Context, d time.Duration) error
}

type systemClock struct{}

// SystemClock reads the wall clock and sleeps on a timer
var SystemClock Clock = systemClock{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// Sleep returns early with ctx.Err() if the context is done first
func (systemClock) Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
