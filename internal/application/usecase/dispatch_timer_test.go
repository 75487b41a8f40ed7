package usecase_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tabnap/tabnap/internal/application/port/mocks"
	"github.com/tabnap/tabnap/internal/application/state"
	"github.com/tabnap/tabnap/internal/application/usecase"
	"github.com/tabnap/tabnap/internal/domain/entity"
	"github.com/tabnap/tabnap/internal/infrastructure/persistence/memory"
)

func newTimerEvents(t *testing.T) (*usecase.TimerEventsUseCase, *state.Store, *mocks.MockHost, *mocks.MockScheduler, *mocks.MockSessionManager) {
	t.Helper()
	store := state.NewStore(memory.NewFlagRepository())
	host := mocks.NewMockHost(t)
	scheduler := mocks.NewMockScheduler(t)
	session := mocks.NewMockSessionManager(t)
	uc := usecase.NewTimerEventsUseCase(store, host, scheduler, session)
	return uc, store, host, scheduler, session
}

func TestTimerEvents_SuspensionScanDelegates(t *testing.T) {
	ctx := testContext()
	uc, _, _, scheduler, _ := newTimerEvents(t)

	scheduler.On("ScanTabsForSuspension", mock.Anything).Return(nil).Once()

	require.NoError(t, uc.Fire(ctx, usecase.TriggerSuspensionScan))
}

func TestTimerEvents_ScanFailureIsReturnedNotSwallowed(t *testing.T) {
	ctx := testContext()
	uc, _, _, scheduler, _ := newTimerEvents(t)

	scheduler.On("ScanTabsForSuspension", mock.Anything).Return(errors.New("bridge down")).Once()

	assert.Error(t, uc.Fire(ctx, usecase.TriggerSuspensionScan))
}

func TestTimerEvents_ReconcilePrunesAgainstLiveWindows(t *testing.T) {
	ctx := testContext()
	uc, store, host, _, _ := newTimerEvents(t)

	store.SetActiveTab(1, 10)
	store.SetActiveTab(2, 20)

	host.On("ListWindows", mock.Anything).Return([]entity.WindowID{1}, nil).Once()

	require.NoError(t, uc.Fire(ctx, usecase.TriggerReconcile))

	_, ok := store.ActiveTab(2)
	assert.False(t, ok)
	_, ok = store.ActiveTab(1)
	assert.True(t, ok)
}

func TestTimerEvents_AutosaveHonorsSetting(t *testing.T) {
	ctx := testContext()
	uc, _, _, _, session := newTimerEvents(t)

	session.On("AutoSaveEnabled", mock.Anything).Return(false, nil).Once()

	// Disabled: SaveSession must not be called.
	require.NoError(t, uc.Fire(ctx, usecase.TriggerSessionAutosave))

	session.On("AutoSaveEnabled", mock.Anything).Return(true, nil).Once()
	session.On("SaveSession", mock.Anything).Return(nil).Once()

	require.NoError(t, uc.Fire(ctx, usecase.TriggerSessionAutosave))
}

func TestTimerEvents_CleanupIsCurrentlyANoop(t *testing.T) {
	ctx := testContext()
	uc, _, _, _, _ := newTimerEvents(t)

	require.NoError(t, uc.Fire(ctx, usecase.TriggerCleanup))
}

func TestTimerEvents_UnknownTriggerRejected(t *testing.T) {
	ctx := testContext()
	uc, _, _, _, _ := newTimerEvents(t)

	assert.Error(t, uc.Fire(ctx, usecase.TimerTrigger("frobnicate")))
}
