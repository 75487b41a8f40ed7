package bridge

import (
	"context"

	"github.com/tabnap/tabnap/internal/application/port"
	"github.com/tabnap/tabnap/internal/domain/entity"
)

// The collaborator adapters forward each port call to the matching module
// living on the extension side. They share the HostAdapter's call plumbing.

// SchedulerAdapter implements port.Scheduler over the bridge.
type SchedulerAdapter struct {
	host *HostAdapter
}

// NewSchedulerAdapter creates the scheduler adapter.
func NewSchedulerAdapter(host *HostAdapter) *SchedulerAdapter {
	return &SchedulerAdapter{host: host}
}

var _ port.Scheduler = (*SchedulerAdapter)(nil)

func (a *SchedulerAdapter) ScheduleTab(ctx context.Context, tab entity.Tab) error {
	return a.host.call(ctx, "scheduler.scheduleTab", map[string]any{"tab": tab}, nil)
}

func (a *SchedulerAdapter) UnscheduleTab(ctx context.Context, id entity.TabID) error {
	return a.host.call(ctx, "scheduler.unscheduleTab", map[string]any{"tabId": id}, nil)
}

func (a *SchedulerAdapter) ScheduleAllTabs(ctx context.Context) error {
	return a.host.call(ctx, "scheduler.scheduleAllTabs", nil, nil)
}

func (a *SchedulerAdapter) ScanTabsForSuspension(ctx context.Context) error {
	return a.host.call(ctx, "scheduler.scanTabsForSuspension", nil, nil)
}

func (a *SchedulerAdapter) Snapshot(ctx context.Context) (port.SchedulingSnapshot, error) {
	var snapshot port.SchedulingSnapshot
	err := a.host.call(ctx, "scheduler.snapshot", nil, &snapshot)
	return snapshot, err
}

func (a *SchedulerAdapter) DebouncedRescheduleAll(ctx context.Context) error {
	return a.host.call(ctx, "scheduler.debouncedRescheduleAll", nil, nil)
}

// SuspenderAdapter implements port.Suspender over the bridge.
type SuspenderAdapter struct {
	host *HostAdapter
}

// NewSuspenderAdapter creates the suspender adapter.
func NewSuspenderAdapter(host *HostAdapter) *SuspenderAdapter {
	return &SuspenderAdapter{host: host}
}

var _ port.Suspender = (*SuspenderAdapter)(nil)

func (a *SuspenderAdapter) SuspendTab(ctx context.Context, id entity.TabID, opts port.SuspendOptions) error {
	return a.host.call(ctx, "suspender.suspendTab", map[string]any{"tabId": id, "options": opts}, nil)
}

func (a *SuspenderAdapter) UnsuspendTab(ctx context.Context, id entity.TabID, opts port.SuspendOptions) error {
	return a.host.call(ctx, "suspender.unsuspendTab", map[string]any{"tabId": id, "options": opts}, nil)
}

func (a *SuspenderAdapter) SuspendAllTabsInWindow(ctx context.Context, windowID entity.WindowID) error {
	return a.host.call(ctx, "suspender.suspendAllTabsInWindow", map[string]any{"windowId": windowID}, nil)
}

func (a *SuspenderAdapter) UnsuspendAllTabsInWindow(ctx context.Context, windowID entity.WindowID) error {
	return a.host.call(ctx, "suspender.unsuspendAllTabsInWindow", map[string]any{"windowId": windowID}, nil)
}

func (a *SuspenderAdapter) SuspendAllTabs(ctx context.Context) error {
	return a.host.call(ctx, "suspender.suspendAllTabs", nil, nil)
}

func (a *SuspenderAdapter) UnsuspendAllTabs(ctx context.Context) error {
	return a.host.call(ctx, "suspender.unsuspendAllTabs", nil, nil)
}

func (a *SuspenderAdapter) ShouldSkipTabForScheduling(ctx context.Context, tab entity.Tab, strict bool) (string, error) {
	var result struct {
		Reason string `json:"reason"`
	}
	err := a.host.call(ctx, "suspender.shouldSkipTab", map[string]any{"tab": tab, "strict": strict}, &result)
	return result.Reason, err
}

func (a *SuspenderAdapter) ClearFaviconCache(ctx context.Context) error {
	return a.host.call(ctx, "suspender.clearFaviconCache", nil, nil)
}

// PreferencesAdapter implements port.Preferences over the bridge.
type PreferencesAdapter struct {
	host *HostAdapter
}

// NewPreferencesAdapter creates the preferences adapter.
func NewPreferencesAdapter(host *HostAdapter) *PreferencesAdapter {
	return &PreferencesAdapter{host: host}
}

var _ port.Preferences = (*PreferencesAdapter)(nil)

func (a *PreferencesAdapter) Settings(ctx context.Context) (map[string]any, error) {
	var settings map[string]any
	err := a.host.call(ctx, "prefs.get", nil, &settings)
	return settings, err
}

func (a *PreferencesAdapter) SaveSettings(ctx context.Context, settings map[string]any) error {
	return a.host.call(ctx, "prefs.save", map[string]any{"settings": settings}, nil)
}

func (a *PreferencesAdapter) SaveWhitelist(ctx context.Context, patterns []string) error {
	return a.host.call(ctx, "prefs.saveWhitelist", map[string]any{"whitelist": patterns}, nil)
}

func (a *PreferencesAdapter) NeverSuspendLastWindow(ctx context.Context) (bool, error) {
	var result struct {
		Enabled bool `json:"enabled"`
	}
	err := a.host.call(ctx, "prefs.neverSuspendLastWindow", nil, &result)
	return result.Enabled, err
}

// SessionAdapter implements port.SessionManager over the bridge.
type SessionAdapter struct {
	host *HostAdapter
}

// NewSessionAdapter creates the session manager adapter.
func NewSessionAdapter(host *HostAdapter) *SessionAdapter {
	return &SessionAdapter{host: host}
}

var _ port.SessionManager = (*SessionAdapter)(nil)

func (a *SessionAdapter) AutoSaveEnabled(ctx context.Context) (bool, error) {
	var result struct {
		Enabled bool `json:"enabled"`
	}
	err := a.host.call(ctx, "session.autoSaveEnabled", nil, &result)
	return result.Enabled, err
}

func (a *SessionAdapter) SaveSession(ctx context.Context) error {
	return a.host.call(ctx, "session.save", nil, nil)
}
