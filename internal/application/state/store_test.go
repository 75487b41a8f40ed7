package state_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabnap/tabnap/internal/application/state"
	"github.com/tabnap/tabnap/internal/domain/entity"
	"github.com/tabnap/tabnap/internal/infrastructure/persistence/memory"
	"github.com/tabnap/tabnap/internal/logging"
)

func testContext() context.Context {
	logger := zerolog.New(zerolog.NewConsoleWriter()).Level(zerolog.Disabled)
	return logging.WithContext(context.Background(), logger)
}

func newStore() *state.Store {
	return state.NewStore(memory.NewFlagRepository())
}

func TestStore_ActiveTabFollowsLatestActivation(t *testing.T) {
	s := newStore()

	_, ok := s.ActiveTab(1)
	assert.False(t, ok, "window never activated")

	s.SetActiveTab(1, 10)
	s.SetActiveTab(2, 20)
	s.SetActiveTab(1, 11)

	tab, ok := s.ActiveTab(1)
	require.True(t, ok)
	assert.Equal(t, entity.TabID(11), tab)

	tab, ok = s.ActiveTab(2)
	require.True(t, ok)
	assert.Equal(t, entity.TabID(20), tab)
}

func TestStore_SetActiveTabReturnsPrevious(t *testing.T) {
	s := newStore()

	prev, had := s.SetActiveTab(1, 10)
	assert.False(t, had)
	assert.Equal(t, entity.TabID(0), prev)

	prev, had = s.SetActiveTab(1, 11)
	assert.True(t, had)
	assert.Equal(t, entity.TabID(10), prev)
}

func TestStore_RemoveWindowResetsLastFocused(t *testing.T) {
	s := newStore()

	s.SetLastFocusedWindow(3)
	s.SetActiveTab(3, 30)

	s.RemoveWindow(3)

	_, ok := s.ActiveTab(3)
	assert.False(t, ok)
	assert.Equal(t, entity.WindowIDNone, s.LastFocusedWindow())
}

func TestStore_RemoveOtherWindowKeepsLastFocused(t *testing.T) {
	s := newStore()

	s.SetLastFocusedWindow(3)
	s.SetActiveTab(4, 40)

	s.RemoveWindow(4)

	assert.Equal(t, entity.WindowID(3), s.LastFocusedWindow())
}

func TestStore_SentinelFocusIsNoop(t *testing.T) {
	s := newStore()

	s.SetLastFocusedWindow(5)
	s.SetLastFocusedWindow(entity.WindowIDNone)

	assert.Equal(t, entity.WindowID(5), s.LastFocusedWindow())
}

func TestStore_ReconcilePrunesDeadWindows(t *testing.T) {
	s := newStore()

	s.SetActiveTab(1, 10)
	s.SetActiveTab(2, 20)
	s.SetActiveTab(3, 30)

	s.Reconcile(testContext(), []entity.WindowID{1, 3})

	tab, ok := s.ActiveTab(1)
	require.True(t, ok)
	assert.Equal(t, entity.TabID(10), tab)

	_, ok = s.ActiveTab(2)
	assert.False(t, ok)

	tab, ok = s.ActiveTab(3)
	require.True(t, ok)
	assert.Equal(t, entity.TabID(30), tab)
}

func TestStore_ReconcileResetsStaleLastFocused(t *testing.T) {
	s := newStore()

	s.SetLastFocusedWindow(7)
	s.Reconcile(testContext(), []entity.WindowID{1})

	assert.Equal(t, entity.WindowIDNone, s.LastFocusedWindow())
}

func TestStore_FlagsReadThrough(t *testing.T) {
	ctx := testContext()
	repo := memory.NewFlagRepository()

	// Two stores sharing one backing repo model a process restart: the
	// second store observes the first one's write with no warm-up.
	before := state.NewStore(repo)
	require.NoError(t, before.SetFlag(ctx, entity.FlagBulkOperationRunning, true))

	after := state.NewStore(repo)
	value, err := after.Flag(ctx, entity.FlagBulkOperationRunning)
	require.NoError(t, err)
	assert.True(t, value)
}
