package port

import (
	"context"

	"github.com/tabnap/tabnap/internal/domain/entity"
)

// Host exposes the browser-side APIs the coordinator consumes. Every call
// crosses the bridge and is a suspension point; callers must not assume
// atomicity across consecutive calls.
type Host interface {
	// GetTab returns the tab descriptor, or ErrTabNotFound-wrapped error
	// if the tab vanished between lookup and use.
	GetTab(ctx context.Context, id entity.TabID) (entity.Tab, error)

	// QueryTabs returns all tabs, across all windows.
	QueryTabs(ctx context.Context) ([]entity.Tab, error)

	// ActiveTabs returns the active tab of every window.
	ActiveTabs(ctx context.Context) ([]entity.Tab, error)

	// ActiveTabInWindow returns the active tab of the given window.
	// ok is false when the window has no active tab (e.g. it is closing).
	ActiveTabInWindow(ctx context.Context, windowID entity.WindowID) (entity.Tab, bool, error)

	// CurrentWindow returns the id of the current window.
	CurrentWindow(ctx context.Context) (entity.WindowID, error)

	// LastFocusedWindow returns the id of the most recently focused window
	// as the host sees it.
	LastFocusedWindow(ctx context.Context) (entity.WindowID, error)

	// ListWindows returns the ids of all live windows.
	ListWindows(ctx context.Context) ([]entity.WindowID, error)

	// ReloadTab reloads the tab from the network.
	ReloadTab(ctx context.Context, id entity.TabID) error

	// Broadcast sends a fire-and-forget notification to extension pages.
	// Delivery failure (e.g. no listener) is reported as an error the
	// caller may swallow.
	Broadcast(ctx context.Context, name string, payload map[string]any) error

	// OpenSettings opens the extension settings surface.
	OpenSettings(ctx context.Context) error
}

// Broadcaster is the notification-only slice of Host. Components that
// outlive any single connection (the bulk watchdog) depend on it instead
// of the full Host, so the connection behind it can be rebound.
type Broadcaster interface {
	Broadcast(ctx context.Context, name string, payload map[string]any) error
}
