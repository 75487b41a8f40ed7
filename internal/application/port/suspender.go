package port

import (
	"context"

	"github.com/tabnap/tabnap/internal/domain/entity"
)

// SuspendOptions carry the caller's intent for a single-tab operation.
type SuspendOptions struct {
	IsManual    bool `json:"isManual"`
	ShouldFocus bool `json:"shouldFocus"`
}

// Suspender is the external collaborator that swaps tab content for the
// placeholder page and back.
type Suspender interface {
	SuspendTab(ctx context.Context, id entity.TabID, opts SuspendOptions) error
	UnsuspendTab(ctx context.Context, id entity.TabID, opts SuspendOptions) error

	SuspendAllTabsInWindow(ctx context.Context, windowID entity.WindowID) error
	UnsuspendAllTabsInWindow(ctx context.Context, windowID entity.WindowID) error

	SuspendAllTabs(ctx context.Context) error
	UnsuspendAllTabs(ctx context.Context) error

	// ShouldSkipTabForScheduling returns a human-readable reason the tab is
	// excluded from scheduling, or "" when it is eligible. strict applies
	// the tighter rule set used by explicit selection operations.
	ShouldSkipTabForScheduling(ctx context.Context, tab entity.Tab, strict bool) (string, error)

	// ClearFaviconCache drops the placeholder favicon cache.
	ClearFaviconCache(ctx context.Context) error
}
