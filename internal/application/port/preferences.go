package port

import "context"

// Preferences is the external settings/whitelist store. Validation and
// the persistence schema live on the other side of the bridge.
type Preferences interface {
	// Settings returns the current settings object.
	Settings(ctx context.Context) (map[string]any, error)

	// SaveSettings persists a new settings object.
	SaveSettings(ctx context.Context, settings map[string]any) error

	// SaveWhitelist persists the whitelist patterns.
	SaveWhitelist(ctx context.Context, patterns []string) error

	// NeverSuspendLastWindow reports whether the active tab of the last
	// focused window is exempt from suspension.
	NeverSuspendLastWindow(ctx context.Context) (bool, error)
}
