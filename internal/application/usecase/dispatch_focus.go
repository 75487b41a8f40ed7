package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/tabnap/tabnap/internal/application/port"
	"github.com/tabnap/tabnap/internal/application/state"
	"github.com/tabnap/tabnap/internal/domain/entity"
	"github.com/tabnap/tabnap/internal/logging"
)

// FocusEventsUseCase handles tab activation and window focus events. It is
// the only writer of the focus-tracking state besides removal cleanup.
type FocusEventsUseCase struct {
	store     *state.Store
	host      port.Host
	scheduler port.Scheduler
	prefs     port.Preferences
}

// NewFocusEventsUseCase creates the focus dispatcher.
func NewFocusEventsUseCase(store *state.Store, host port.Host, scheduler port.Scheduler, prefs port.Preferences) *FocusEventsUseCase {
	return &FocusEventsUseCase{store: store, host: host, scheduler: scheduler, prefs: prefs}
}

// TabActivated records the new active tab of the window, exempts it from
// pending suspension when its window holds (or protects) focus, and
// returns the previously active tab to the suspension pool.
func (uc *FocusEventsUseCase) TabActivated(ctx context.Context, windowID entity.WindowID, tabID entity.TabID) error {
	ctx = logging.WithTabID(ctx, int(tabID))
	log := logging.FromContext(ctx)
	log.Debug().Int("window_id", int(windowID)).Msg("tab activated")

	// Capture the previous active tab before overwriting.
	prev, hadPrev := uc.store.SetActiveTab(windowID, tabID)

	exempt, err := uc.activationExempt(ctx, windowID)
	if err != nil {
		log.Warn().Err(err).Msg("could not determine focus exemption, assuming exempt")
		exempt = true
	}
	if exempt {
		if err := uc.scheduler.UnscheduleTab(ctx, tabID); err != nil {
			log.Warn().Err(err).Msg("failed to unschedule activated tab")
		}
	}

	if !hadPrev || prev == tabID {
		return nil
	}

	// Losing focus returns the previous tab to the suspension pool, but
	// only if it still exists and is not already the placeholder. The tab
	// may have been navigated concurrently; the fresh descriptor from the
	// host decides.
	prevTab, err := uc.host.GetTab(ctx, prev)
	if err != nil {
		if errors.Is(err, port.ErrTabNotFound) {
			log.Debug().Int("prev_tab", int(prev)).Msg("previous active tab already gone")
			return nil
		}
		return fmt.Errorf("fetch previous active tab %d: %w", prev, err)
	}
	if prevTab.Suspended {
		return nil
	}
	if err := uc.scheduler.ScheduleTab(ctx, prevTab); err != nil {
		return fmt.Errorf("reschedule deactivated tab %d: %w", prev, err)
	}
	return nil
}

// activationExempt reports whether the activated tab's window currently
// holds focus, or is protected as the last focused window.
func (uc *FocusEventsUseCase) activationExempt(ctx context.Context, windowID entity.WindowID) (bool, error) {
	focused, err := uc.host.LastFocusedWindow(ctx)
	if err != nil {
		return false, fmt.Errorf("query focused window: %w", err)
	}
	if windowID == focused {
		return true, nil
	}

	protectLast, err := uc.prefs.NeverSuspendLastWindow(ctx)
	if err != nil {
		return false, fmt.Errorf("read never-suspend-last-window: %w", err)
	}
	return protectLast && windowID == uc.store.LastFocusedWindow(), nil
}

// WindowFocusChanged updates last-focused tracking and moves the
// never-suspend-last-window protection with focus. The host sentinel for
// "focus left the browser entirely" is ignored.
func (uc *FocusEventsUseCase) WindowFocusChanged(ctx context.Context, windowID entity.WindowID) error {
	log := logging.FromContext(ctx)

	if windowID == entity.WindowIDNone {
		log.Trace().Msg("focus left the browser, ignoring")
		return nil
	}

	prev := uc.store.LastFocusedWindow()
	uc.store.SetLastFocusedWindow(windowID)
	log.Debug().Int("window_id", int(windowID)).Int("previous", int(prev)).Msg("window focus changed")

	if tabID, ok := uc.store.ActiveTab(windowID); ok {
		if err := uc.scheduler.UnscheduleTab(ctx, tabID); err != nil {
			log.Warn().Err(err).Int("tab_id", int(tabID)).Msg("failed to unschedule focused window's active tab")
		}
	}

	protectLast, err := uc.prefs.NeverSuspendLastWindow(ctx)
	if err != nil {
		return fmt.Errorf("read never-suspend-last-window: %w", err)
	}
	if !protectLast || prev == entity.WindowIDNone || prev == windowID {
		return nil
	}

	// The protection exemption moved with focus: active tabs of every
	// other window become schedulable again.
	active, err := uc.host.ActiveTabs(ctx)
	if err != nil {
		return fmt.Errorf("query active tabs: %w", err)
	}
	for _, tab := range active {
		if tab.WindowID == windowID || tab.Suspended {
			continue
		}
		if err := uc.scheduler.ScheduleTab(ctx, tab); err != nil {
			log.Warn().Err(err).Int("tab_id", int(tab.ID)).Msg("failed to reschedule unprotected active tab")
		}
	}
	return nil
}

// WindowRemoved drops focus tracking for a closed window.
func (uc *FocusEventsUseCase) WindowRemoved(ctx context.Context, windowID entity.WindowID) error {
	logging.FromContext(ctx).Debug().Int("window_id", int(windowID)).Msg("window removed")
	uc.store.RemoveWindow(windowID)
	return nil
}
