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

// TabEventsUseCase handles tab lifecycle events from the host.
type TabEventsUseCase struct {
	store     *state.Store
	host      port.Host
	scheduler port.Scheduler
}

// NewTabEventsUseCase creates the tab lifecycle dispatcher.
func NewTabEventsUseCase(store *state.Store, host port.Host, scheduler port.Scheduler) *TabEventsUseCase {
	return &TabEventsUseCase{store: store, host: host, scheduler: scheduler}
}

// TabCreated registers a freshly created tab with the scheduler.
func (uc *TabEventsUseCase) TabCreated(ctx context.Context, tab entity.Tab) error {
	ctx = logging.WithTabID(ctx, int(tab.ID))
	log := logging.FromContext(ctx)
	log.Debug().Str("url", tab.URL).Msg("tab created")

	if err := uc.scheduler.ScheduleTab(ctx, tab); err != nil {
		return fmt.Errorf("schedule created tab: %w", err)
	}
	return nil
}

// TabUpdated re-registers the tab when the change is significant; all
// other updates are dropped to prevent rescheduling storms.
func (uc *TabEventsUseCase) TabUpdated(ctx context.Context, tab entity.Tab, change entity.TabChange) error {
	ctx = logging.WithTabID(ctx, int(tab.ID))
	log := logging.FromContext(ctx)

	if !change.Significant() {
		log.Trace().Msg("ignoring insignificant tab update")
		return nil
	}

	log.Debug().Str("url", tab.URL).Msg("significant tab update, rescheduling")
	if err := uc.scheduler.ScheduleTab(ctx, tab); err != nil {
		return fmt.Errorf("reschedule updated tab: %w", err)
	}
	return nil
}

// TabRemoved purges pending-suspension bookkeeping and, when the removed
// tab was the tracked active tab of a window that stays open, re-queries
// the host for the window's new active tab instead of leaving the entry
// stale.
func (uc *TabEventsUseCase) TabRemoved(ctx context.Context, tabID entity.TabID, windowID entity.WindowID, windowClosing bool) error {
	ctx = logging.WithTabID(ctx, int(tabID))
	log := logging.FromContext(ctx)
	log.Debug().Int("window_id", int(windowID)).Bool("window_closing", windowClosing).Msg("tab removed")

	if err := uc.scheduler.UnscheduleTab(ctx, tabID); err != nil {
		log.Warn().Err(err).Msg("failed to unschedule removed tab")
	}

	tracked, ok := uc.store.ActiveTab(windowID)
	if !ok || tracked != tabID || windowClosing {
		return nil
	}

	newActive, found, err := uc.host.ActiveTabInWindow(ctx, windowID)
	if err != nil {
		if errors.Is(err, port.ErrWindowNotFound) {
			log.Debug().Msg("window vanished while re-querying active tab")
			uc.store.ClearActiveTab(windowID)
			return nil
		}
		return fmt.Errorf("re-query active tab for window %d: %w", windowID, err)
	}
	if !found {
		uc.store.ClearActiveTab(windowID)
		return nil
	}

	uc.store.SetActiveTab(windowID, newActive.ID)
	log.Debug().Int("new_active", int(newActive.ID)).Msg("active tab tracking updated after removal")
	return nil
}
