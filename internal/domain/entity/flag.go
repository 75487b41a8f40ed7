package entity

import "time"

// Durable flag names. Flags are persisted outside the process and must
// read identically before and after a process restart.
const (
	FlagBulkOperationRunning  = "bulk_operation_running"
	FlagFaviconRefreshRunning = "favicon_refresh_running"
)

// DurableFlag is a named boolean persisted outside the process.
// UpdatedAt records the last write, allowing staleness checks after a
// restart loses any process-local timer.
type DurableFlag struct {
	Name      string    `json:"name"`
	Value     bool      `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Age returns how long ago the flag was last written, relative to now.
// Returns 0 for a flag that has never been written.
func (f DurableFlag) Age(now time.Time) time.Duration {
	if f.UpdatedAt.IsZero() {
		return 0
	}
	return now.Sub(f.UpdatedAt)
}
