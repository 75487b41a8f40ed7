package port

import (
	"context"

	"github.com/tabnap/tabnap/internal/domain/entity"
)

// SchedulingSnapshot summarizes the scheduler's pending set.
type SchedulingSnapshot struct {
	Size    int               `json:"size"`
	Entries []SchedulingEntry `json:"entries"`
}

// SchedulingEntry is one pending-suspension record.
type SchedulingEntry struct {
	TabID entity.TabID `json:"tabId"`
}

// Scheduler is the external collaborator deciding when an eligible tab
// becomes due for suspension. The policy itself is out of scope here; the
// coordinator only tells it which tabs enter and leave the pool.
type Scheduler interface {
	// ScheduleTab (re)registers a tab for eventual suspension.
	ScheduleTab(ctx context.Context, tab entity.Tab) error

	// UnscheduleTab removes any pending-suspension bookkeeping for the tab.
	UnscheduleTab(ctx context.Context, id entity.TabID) error

	// ScheduleAllTabs re-registers every eligible tab.
	ScheduleAllTabs(ctx context.Context) error

	// ScanTabsForSuspension runs one suspension scan pass.
	ScanTabsForSuspension(ctx context.Context) error

	// Snapshot returns the current pending set.
	Snapshot(ctx context.Context) (SchedulingSnapshot, error)

	// DebouncedRescheduleAll requests a full reschedule, coalescing bursts.
	DebouncedRescheduleAll(ctx context.Context) error
}
