package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/tabnap/tabnap/internal/application/port"
	"github.com/tabnap/tabnap/internal/application/state"
	"github.com/tabnap/tabnap/internal/domain/entity"
	"github.com/tabnap/tabnap/internal/logging"
)

// DefaultBulkOpCeiling bounds the lifetime of the bulk-operation flag.
// A bulk operation whose completion signal is lost (process eviction,
// crashed collaborator) is force-reset after this long.
const DefaultBulkOpCeiling = 10 * time.Minute

// bulkResetBroadcast is the notification name sent when the watchdog
// force-resets a stuck flag.
const bulkResetBroadcast = "bulkOperationReset"

// BulkWatchdog enforces that at most one bulk operation is observably
// running at a time, and that the durable flag backing that invariant can
// never remain stuck true. The flag is durable; the timer is process
// local and re-armed deterministically at startup. One watchdog lives for
// the whole process; the broadcaster behind it may be rebound across
// connections.
type BulkWatchdog struct {
	store       *state.Store
	broadcaster port.Broadcaster
	clock       port.Clock
	ceiling     time.Duration
	logger      zerolog.Logger

	mu    sync.Mutex
	timer port.Timer
}

// NewBulkWatchdog creates a watchdog with the given ceiling. The logger is
// used for timer callbacks, which fire outside any request context.
func NewBulkWatchdog(store *state.Store, broadcaster port.Broadcaster, clock port.Clock, ceiling time.Duration, logger zerolog.Logger) *BulkWatchdog {
	if ceiling <= 0 {
		ceiling = DefaultBulkOpCeiling
	}
	return &BulkWatchdog{
		store:       store,
		broadcaster: broadcaster,
		clock:       clock,
		ceiling:     ceiling,
		logger:      logger,
	}
}

// Begin marks a bulk operation as running. A concurrent start attempt is
// rejected with ErrOperationAlreadyRunning and leaves the in-flight timer
// untouched.
func (w *BulkWatchdog) Begin(ctx context.Context) error {
	log := logging.FromContext(ctx)

	running, err := w.store.Flag(ctx, entity.FlagBulkOperationRunning)
	if err != nil {
		return fmt.Errorf("read bulk-op flag: %w", err)
	}
	if running {
		log.Debug().Msg("bulk operation already running, rejecting")
		return ErrOperationAlreadyRunning
	}

	if err := w.store.SetFlag(ctx, entity.FlagBulkOperationRunning, true); err != nil {
		return fmt.Errorf("set bulk-op flag: %w", err)
	}

	w.arm(w.ceiling)
	log.Info().Dur("ceiling", w.ceiling).Msg("bulk operation started, watchdog armed")
	return nil
}

// Complete marks a clean completion: the timer is cancelled and the flag
// persisted false.
func (w *BulkWatchdog) Complete(ctx context.Context) error {
	w.cancelTimer()
	if err := w.store.SetFlag(ctx, entity.FlagBulkOperationRunning, false); err != nil {
		return fmt.Errorf("clear bulk-op flag: %w", err)
	}
	logging.FromContext(ctx).Info().Msg("bulk operation completed")
	return nil
}

// ForceReset clears the flag regardless of operation state and broadcasts
// a reset notification. Broadcast delivery failure is swallowed: there may
// simply be no listener.
func (w *BulkWatchdog) ForceReset(ctx context.Context) error {
	log := logging.FromContext(ctx)

	w.cancelTimer()
	if err := w.store.SetFlag(ctx, entity.FlagBulkOperationRunning, false); err != nil {
		return fmt.Errorf("force-clear bulk-op flag: %w", err)
	}

	if err := w.broadcaster.Broadcast(ctx, bulkResetBroadcast, nil); err != nil {
		log.Debug().Err(err).Msg("bulk reset broadcast had no listener")
	}
	return nil
}

// RecoverAtStartup re-establishes the watchdog invariant after a process
// restart: a flag older than the ceiling is cleared outright, a younger
// one gets a timer re-armed for the remaining time.
func (w *BulkWatchdog) RecoverAtStartup(ctx context.Context) error {
	log := logging.FromContext(ctx)

	flag, err := w.store.FlagDetail(ctx, entity.FlagBulkOperationRunning)
	if err != nil {
		return fmt.Errorf("read bulk-op flag: %w", err)
	}
	if !flag.Value {
		return nil
	}

	age := flag.Age(w.clock.Now())
	if age >= w.ceiling {
		log.Warn().Dur("age", age).Msg("stale bulk-op flag found at startup, clearing")
		return w.ForceReset(ctx)
	}

	remaining := w.ceiling - age
	w.arm(remaining)
	log.Info().Dur("remaining", remaining).Msg("bulk-op flag survived restart, watchdog re-armed")
	return nil
}

// arm replaces any pending timer with a fresh one.
func (w *BulkWatchdog) arm(d time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = w.clock.AfterFunc(d, w.onCeiling)
}

func (w *BulkWatchdog) cancelTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}

// onCeiling fires when a bulk operation overran the ceiling. It runs
// outside any request context.
func (w *BulkWatchdog) onCeiling() {
	ctx := logging.WithContext(context.Background(), w.logger)
	log := logging.FromContext(ctx)

	log.Warn().Dur("ceiling", w.ceiling).Msg("bulk operation exceeded ceiling, force-resetting flag")

	w.mu.Lock()
	w.timer = nil
	w.mu.Unlock()

	if err := w.store.SetFlag(ctx, entity.FlagBulkOperationRunning, false); err != nil {
		log.Error().Err(err).Msg("failed to force-reset bulk-op flag")
		return
	}
	if err := w.broadcaster.Broadcast(ctx, bulkResetBroadcast, nil); err != nil {
		log.Debug().Err(err).Msg("bulk reset broadcast had no listener")
	}
}
