package port

import (
	"context"
	"time"
)

// Timer is a cancellable one-shot timer.
type Timer interface {
	// Stop cancels the timer. It reports whether the timer was still
	// pending; stopping an already-fired or stopped timer is a no-op.
	Stop() bool
}

// Clock abstracts wall-clock time so watchdog and batch timing can run
// against simulated time in tests.
type Clock interface {
	Now() time.Time

	// Sleep blocks for d or until the context is done, returning the
	// context error in the latter case.
	Sleep(ctx context.Context, d time.Duration) error

	// AfterFunc arms a timer that runs fn after d.
	AfterFunc(d time.Duration, fn func()) Timer
}
