// Package state owns the coordinator's process-wide state: the ephemeral
// focus-tracking maps and the read-through accessors over durable flags.
// Dispatcher and router code mutate state only through this API.
package state

import (
	"context"
	"sync"

	"github.com/tabnap/tabnap/internal/domain/entity"
	"github.com/tabnap/tabnap/internal/domain/repository"
	"github.com/tabnap/tabnap/internal/logging"
)

// Store tracks the active tab per window and the last focused window, and
// fronts the durable-flag repository. The maps are recomputable: after a
// process restart they start empty and self-heal via lifecycle events and
// the reconciliation sweep. Flags are never cached, so flag reads after a
// restart observe the pre-restart value.
type Store struct {
	mu                sync.Mutex
	lastFocusedWindow entity.WindowID
	activeTabs        map[entity.WindowID]entity.TabID

	flags repository.FlagRepository
}

// NewStore creates a store backed by the given flag repository.
func NewStore(flags repository.FlagRepository) *Store {
	return &Store{
		lastFocusedWindow: entity.WindowIDNone,
		activeTabs:        make(map[entity.WindowID]entity.TabID),
		flags:             flags,
	}
}

// LastFocusedWindow returns the tracked last focused window, or
// WindowIDNone if none was observed yet.
func (s *Store) LastFocusedWindow() entity.WindowID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastFocusedWindow
}

// SetLastFocusedWindow records the last focused window. Setting the
// WindowIDNone sentinel is a no-op: losing focus to another application
// must not disturb suspension state.
func (s *Store) SetLastFocusedWindow(id entity.WindowID) {
	if id == entity.WindowIDNone {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastFocusedWindow = id
}

// ActiveTab returns the tracked active tab of the window. ok is false for
// windows never observed via an activation event.
func (s *Store) ActiveTab(windowID entity.WindowID) (entity.TabID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.activeTabs[windowID]
	return id, ok
}

// SetActiveTab records the active tab of a window, returning the previous
// entry (ok false when there was none).
func (s *Store) SetActiveTab(windowID entity.WindowID, tabID entity.TabID) (entity.TabID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, ok := s.activeTabs[windowID]
	s.activeTabs[windowID] = tabID
	return prev, ok
}

// ClearActiveTab drops the window's active-tab entry, if any, without
// touching last-focused tracking.
func (s *Store) ClearActiveTab(windowID entity.WindowID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.activeTabs, windowID)
}

// RemoveWindow drops all tracking for a closed window. If the window was
// the last focused one, last-focused resets to the sentinel.
func (s *Store) RemoveWindow(windowID entity.WindowID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.activeTabs, windowID)
	if s.lastFocusedWindow == windowID {
		s.lastFocusedWindow = entity.WindowIDNone
	}
}

// Reconcile prunes tracking for windows absent from the live set. Entries
// are created only by activation events, so pruning is the only cleanup
// needed; the sweep also resets a stale last-focused pointer.
func (s *Store) Reconcile(ctx context.Context, live []entity.WindowID) {
	log := logging.FromContext(ctx)

	alive := make(map[entity.WindowID]struct{}, len(live))
	for _, id := range live {
		alive[id] = struct{}{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for windowID := range s.activeTabs {
		if _, ok := alive[windowID]; !ok {
			delete(s.activeTabs, windowID)
			log.Debug().Int("window_id", int(windowID)).Msg("pruned stale window tracking")
		}
	}

	if s.lastFocusedWindow != entity.WindowIDNone {
		if _, ok := alive[s.lastFocusedWindow]; !ok {
			log.Debug().Int("window_id", int(s.lastFocusedWindow)).Msg("last focused window is gone, resetting")
			s.lastFocusedWindow = entity.WindowIDNone
		}
	}
}

// TrackedWindows returns the window ids currently tracked. Intended for
// diagnostics and tests.
func (s *Store) TrackedWindows() []entity.WindowID {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]entity.WindowID, 0, len(s.activeTabs))
	for id := range s.activeTabs {
		ids = append(ids, id)
	}
	return ids
}

// Flag reads a durable flag straight from the backing store.
func (s *Store) Flag(ctx context.Context, name string) (bool, error) {
	flag, err := s.flags.Get(ctx, name)
	if err != nil {
		return false, err
	}
	return flag.Value, nil
}

// FlagDetail reads a durable flag including its last-write time.
func (s *Store) FlagDetail(ctx context.Context, name string) (entity.DurableFlag, error) {
	return s.flags.Get(ctx, name)
}

// SetFlag writes a durable flag straight through to the backing store.
func (s *Store) SetFlag(ctx context.Context, name string, value bool) error {
	return s.flags.Set(ctx, name, value)
}
