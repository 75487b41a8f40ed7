package usecase

import (
	"context"
	"fmt"

	"github.com/tabnap/tabnap/internal/application/port"
	"github.com/tabnap/tabnap/internal/application/state"
	"github.com/tabnap/tabnap/internal/logging"
)

// TimerTrigger names a periodic trigger.
type TimerTrigger string

const (
	TriggerSuspensionScan  TimerTrigger = "suspensionScan"
	TriggerCleanup         TimerTrigger = "cleanup"
	TriggerReconcile       TimerTrigger = "reconcile"
	TriggerSessionAutosave TimerTrigger = "sessionAutosave"
)

// TimerEventsUseCase maps periodic triggers to collaborator calls. Each
// trigger is isolated: a failing branch is logged and cannot suppress
// future firings of any trigger.
type TimerEventsUseCase struct {
	store     *state.Store
	host      port.Host
	scheduler port.Scheduler
	session   port.SessionManager
}

// NewTimerEventsUseCase creates the timer dispatcher.
func NewTimerEventsUseCase(store *state.Store, host port.Host, scheduler port.Scheduler, session port.SessionManager) *TimerEventsUseCase {
	return &TimerEventsUseCase{store: store, host: host, scheduler: scheduler, session: session}
}

// Fire runs one trigger. The error is returned for observability; callers
// log it and keep their tickers running.
func (uc *TimerEventsUseCase) Fire(ctx context.Context, trigger TimerTrigger) error {
	ctx = logging.WithComponent(ctx, "timer")
	log := logging.FromContext(ctx)
	log.Trace().Str("trigger", string(trigger)).Msg("timer fired")

	var err error
	switch trigger {
	case TriggerSuspensionScan:
		err = uc.scheduler.ScanTabsForSuspension(ctx)
	case TriggerCleanup:
		// Reserved hook; nothing to clean up at the moment.
	case TriggerReconcile:
		err = uc.reconcile(ctx)
	case TriggerSessionAutosave:
		err = uc.autosave(ctx)
	default:
		err = fmt.Errorf("unknown timer trigger %q", trigger)
	}

	if err != nil {
		log.Error().Err(err).Str("trigger", string(trigger)).Msg("timer trigger failed")
	}
	return err
}

// reconcile prunes focus tracking against the live window list, healing
// any staleness left by missed removal events or a process restart.
func (uc *TimerEventsUseCase) reconcile(ctx context.Context) error {
	windows, err := uc.host.ListWindows(ctx)
	if err != nil {
		return fmt.Errorf("list windows: %w", err)
	}
	uc.store.Reconcile(ctx, windows)
	return nil
}

func (uc *TimerEventsUseCase) autosave(ctx context.Context) error {
	enabled, err := uc.session.AutoSaveEnabled(ctx)
	if err != nil {
		return fmt.Errorf("query auto-save setting: %w", err)
	}
	if !enabled {
		return nil
	}
	if err := uc.session.SaveSession(ctx); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}
