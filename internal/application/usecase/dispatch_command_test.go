package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tabnap/tabnap/internal/application/port"
	"github.com/tabnap/tabnap/internal/application/port/mocks"
	"github.com/tabnap/tabnap/internal/application/state"
	"github.com/tabnap/tabnap/internal/application/usecase"
	"github.com/tabnap/tabnap/internal/domain/entity"
	"github.com/tabnap/tabnap/internal/infrastructure/persistence/memory"
)

func newCommands(t *testing.T) (*usecase.CommandsUseCase, *state.Store, *mocks.MockHost, *mocks.MockSuspender) {
	t.Helper()
	repo := memory.NewFlagRepository()
	clock := newFakeClock()
	repo.Now = clock.Now
	store := state.NewStore(repo)
	host := mocks.NewMockHost(t)
	suspender := mocks.NewMockSuspender(t)
	logger := zerolog.New(zerolog.NewConsoleWriter()).Level(zerolog.Disabled)
	watchdog := usecase.NewBulkWatchdog(store, host, clock, 10*time.Minute, logger)
	return usecase.NewCommandsUseCase(host, suspender, watchdog), store, host, suspender
}

func TestCommands_SuspendCurrentTargetsActiveTab(t *testing.T) {
	ctx := testContext()
	uc, _, host, suspender := newCommands(t)

	host.On("CurrentWindow", mock.Anything).Return(entity.WindowID(1), nil).Once()
	host.On("ActiveTabInWindow", mock.Anything, entity.WindowID(1)).
		Return(entity.Tab{ID: 10, WindowID: 1}, true, nil).Once()
	suspender.On("SuspendTab", mock.Anything, entity.TabID(10), port.SuspendOptions{IsManual: true}).
		Return(nil).Once()

	require.NoError(t, uc.Execute(ctx, usecase.CommandSuspendCurrent))
}

func TestCommands_SuspendWindowTargetsWholeWindow(t *testing.T) {
	ctx := testContext()
	uc, _, host, suspender := newCommands(t)

	host.On("CurrentWindow", mock.Anything).Return(entity.WindowID(2), nil).Once()
	host.On("ActiveTabInWindow", mock.Anything, entity.WindowID(2)).
		Return(entity.Tab{ID: 20, WindowID: 2}, true, nil).Once()
	suspender.On("SuspendAllTabsInWindow", mock.Anything, entity.WindowID(2)).Return(nil).Once()

	require.NoError(t, uc.Execute(ctx, usecase.CommandSuspendWindow))
}

func TestCommands_BulkCommandHoldsFlagForDuration(t *testing.T) {
	ctx := testContext()
	uc, store, host, suspender := newCommands(t)

	host.On("CurrentWindow", mock.Anything).Return(entity.WindowID(1), nil).Once()
	host.On("ActiveTabInWindow", mock.Anything, entity.WindowID(1)).
		Return(entity.Tab{ID: 10, WindowID: 1}, true, nil).Once()

	var duringOp bool
	suspender.On("SuspendAllTabs", mock.Anything).Run(func(mock.Arguments) {
		running, err := store.Flag(context.Background(), entity.FlagBulkOperationRunning)
		require.NoError(t, err)
		duringOp = running
	}).Return(nil).Once()

	require.NoError(t, uc.Execute(ctx, usecase.CommandSuspendAll))

	assert.True(t, duringOp, "flag should be set while the operation runs")
	running, err := store.Flag(ctx, entity.FlagBulkOperationRunning)
	require.NoError(t, err)
	assert.False(t, running, "flag should be cleared after completion")
}

func TestCommands_BulkCommandDroppedWhileBulkRunning(t *testing.T) {
	ctx := testContext()
	uc, store, host, _ := newCommands(t)

	require.NoError(t, store.SetFlag(ctx, entity.FlagBulkOperationRunning, true))

	host.On("CurrentWindow", mock.Anything).Return(entity.WindowID(2), nil).Once()
	host.On("ActiveTabInWindow", mock.Anything, entity.WindowID(2)).
		Return(entity.Tab{ID: 20, WindowID: 2}, true, nil).Once()

	// No suspender expectations: the command is dropped, not run alongside
	// the in-flight operation.
	require.NoError(t, uc.Execute(ctx, usecase.CommandSuspendWindow))

	running, err := store.Flag(ctx, entity.FlagBulkOperationRunning)
	require.NoError(t, err)
	assert.True(t, running, "in-flight operation keeps its flag")
}

func TestCommands_BulkCommandReleasesFlagOnFailure(t *testing.T) {
	ctx := testContext()
	uc, store, host, suspender := newCommands(t)

	host.On("CurrentWindow", mock.Anything).Return(entity.WindowID(1), nil).Once()
	host.On("ActiveTabInWindow", mock.Anything, entity.WindowID(1)).
		Return(entity.Tab{ID: 10, WindowID: 1}, true, nil).Once()
	suspender.On("UnsuspendAllTabs", mock.Anything).Return(errors.New("boom")).Once()

	require.Error(t, uc.Execute(ctx, usecase.CommandUnsuspendAll))

	running, err := store.Flag(ctx, entity.FlagBulkOperationRunning)
	require.NoError(t, err)
	assert.False(t, running, "failed operation must still release the flag")
}

func TestCommands_MissingActiveTabAbortsQuietly(t *testing.T) {
	ctx := testContext()
	uc, _, host, _ := newCommands(t)

	host.On("CurrentWindow", mock.Anything).Return(entity.WindowID(1), nil).Once()
	host.On("ActiveTabInWindow", mock.Anything, entity.WindowID(1)).
		Return(entity.Tab{}, false, nil).Once()

	// No suspender expectations: the command is dropped, not failed.
	require.NoError(t, uc.Execute(ctx, usecase.CommandUnsuspendCurrent))
}

func TestCommands_OpenSettingsSkipsTabResolution(t *testing.T) {
	ctx := testContext()
	uc, _, host, _ := newCommands(t)

	host.On("OpenSettings", mock.Anything).Return(nil).Once()

	require.NoError(t, uc.Execute(ctx, usecase.CommandOpenSettings))
}

func TestCommands_UnknownCommandRejected(t *testing.T) {
	ctx := testContext()
	uc, _, host, _ := newCommands(t)

	host.On("CurrentWindow", mock.Anything).Return(entity.WindowID(1), nil).Once()
	host.On("ActiveTabInWindow", mock.Anything, entity.WindowID(1)).
		Return(entity.Tab{ID: 10, WindowID: 1}, true, nil).Once()

	assert.Error(t, uc.Execute(ctx, usecase.Command("do-a-flip")))
}
