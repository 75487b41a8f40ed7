// Package clock provides the wall-clock implementation of the Clock port.
package clock

import (
	"context"
	"time"

	"github.com/tabnap/tabnap/internal/application/port"
)

type systemClock struct{}

// New returns a Clock backed by the system wall clock.
func New() port.Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now()
}

func (systemClock) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (systemClock) AfterFunc(d time.Duration, fn func()) port.Timer {
	return time.AfterFunc(d, fn)
}
