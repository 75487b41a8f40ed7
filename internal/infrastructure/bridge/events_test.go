package bridge_test

import (
	"context"
	"encoding/json"
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
	"github.com/tabnap/tabnap/internal/infrastructure/bridge"
	"github.com/tabnap/tabnap/internal/infrastructure/clock"
	"github.com/tabnap/tabnap/internal/infrastructure/persistence/memory"
	"github.com/tabnap/tabnap/internal/logging"
)

type dispatcherFixture struct {
	dispatcher *bridge.EventDispatcher
	store      *state.Store
	host       *mocks.MockHost
	scheduler  *mocks.MockScheduler
	suspender  *mocks.MockSuspender
	prefs      *mocks.MockPreferences
}

func testContext() context.Context {
	logger := zerolog.New(zerolog.NewConsoleWriter()).Level(zerolog.Disabled)
	return logging.WithContext(context.Background(), logger)
}

func newDispatcher(t *testing.T) *dispatcherFixture {
	t.Helper()
	store := state.NewStore(memory.NewFlagRepository())
	host := mocks.NewMockHost(t)
	scheduler := mocks.NewMockScheduler(t)
	suspender := mocks.NewMockSuspender(t)
	prefs := mocks.NewMockPreferences(t)

	logger := zerolog.New(zerolog.NewConsoleWriter()).Level(zerolog.Disabled)
	watchdog := usecase.NewBulkWatchdog(store, host, clock.New(), 10*time.Minute, logger)

	tabs := usecase.NewTabEventsUseCase(store, host, scheduler)
	focus := usecase.NewFocusEventsUseCase(store, host, scheduler, prefs)
	commands := usecase.NewCommandsUseCase(host, suspender, watchdog)

	return &dispatcherFixture{
		dispatcher: bridge.NewEventDispatcher(tabs, focus, commands),
		store:      store,
		host:       host,
		scheduler:  scheduler,
		suspender:  suspender,
		prefs:      prefs,
	}
}

func TestEventDispatcher_TabCreated(t *testing.T) {
	ctx := testContext()
	f := newDispatcher(t)

	want := entity.Tab{ID: 5, WindowID: 1, URL: "https://a.example", Title: "A"}
	f.scheduler.On("ScheduleTab", mock.Anything, want).Return(nil).Once()

	payload := json.RawMessage(`{"tab":{"id":5,"windowId":1,"url":"https://a.example","title":"A"}}`)
	require.NoError(t, f.dispatcher.Dispatch(ctx, "tabCreated", payload))
}

func TestEventDispatcher_TabUpdatedCarriesChange(t *testing.T) {
	ctx := testContext()
	f := newDispatcher(t)

	want := entity.Tab{ID: 5, WindowID: 1, URL: "https://b.example"}
	f.scheduler.On("ScheduleTab", mock.Anything, want).Return(nil).Once()

	payload := json.RawMessage(`{"tab":{"id":5,"windowId":1,"url":"https://b.example"},"change":{"url":"https://b.example"}}`)
	require.NoError(t, f.dispatcher.Dispatch(ctx, "tabUpdated", payload))
}

func TestEventDispatcher_TabRemoved(t *testing.T) {
	ctx := testContext()
	f := newDispatcher(t)

	f.scheduler.On("UnscheduleTab", mock.Anything, entity.TabID(5)).Return(nil).Once()

	payload := json.RawMessage(`{"tabId":5,"windowId":1,"isWindowClosing":true}`)
	require.NoError(t, f.dispatcher.Dispatch(ctx, "tabRemoved", payload))
}

func TestEventDispatcher_TabActivated(t *testing.T) {
	ctx := testContext()
	f := newDispatcher(t)

	f.host.On("LastFocusedWindow", mock.Anything).Return(entity.WindowID(1), nil).Once()
	f.scheduler.On("UnscheduleTab", mock.Anything, entity.TabID(5)).Return(nil).Once()

	payload := json.RawMessage(`{"tabId":5,"windowId":1}`)
	require.NoError(t, f.dispatcher.Dispatch(ctx, "tabActivated", payload))

	tab, ok := f.store.ActiveTab(1)
	require.True(t, ok)
	assert.Equal(t, entity.TabID(5), tab)
}

func TestEventDispatcher_WindowFocusChanged(t *testing.T) {
	ctx := testContext()
	f := newDispatcher(t)

	f.prefs.On("NeverSuspendLastWindow", mock.Anything).Return(false, nil).Once()

	payload := json.RawMessage(`{"windowId":2}`)
	require.NoError(t, f.dispatcher.Dispatch(ctx, "windowFocusChanged", payload))

	assert.Equal(t, entity.WindowID(2), f.store.LastFocusedWindow())
}

func TestEventDispatcher_WindowRemoved(t *testing.T) {
	ctx := testContext()
	f := newDispatcher(t)

	f.store.SetActiveTab(3, 30)

	payload := json.RawMessage(`{"windowId":3}`)
	require.NoError(t, f.dispatcher.Dispatch(ctx, "windowRemoved", payload))

	_, ok := f.store.ActiveTab(3)
	assert.False(t, ok)
}

func TestEventDispatcher_Command(t *testing.T) {
	ctx := testContext()
	f := newDispatcher(t)

	f.host.On("CurrentWindow", mock.Anything).Return(entity.WindowID(1), nil).Once()
	f.host.On("ActiveTabInWindow", mock.Anything, entity.WindowID(1)).
		Return(entity.Tab{ID: 10, WindowID: 1}, true, nil).Once()
	f.suspender.On("SuspendTab", mock.Anything, entity.TabID(10), port.SuspendOptions{IsManual: true}).
		Return(nil).Once()

	payload := json.RawMessage(`{"command":"suspend-current"}`)
	require.NoError(t, f.dispatcher.Dispatch(ctx, "command", payload))
}

func TestEventDispatcher_UnknownEvent(t *testing.T) {
	ctx := testContext()
	f := newDispatcher(t)

	err := f.dispatcher.Dispatch(ctx, "tabTeleported", json.RawMessage(`{}`))
	assert.Error(t, err)
}

func TestEventDispatcher_MalformedPayload(t *testing.T) {
	ctx := testContext()
	f := newDispatcher(t)

	err := f.dispatcher.Dispatch(ctx, "tabCreated", json.RawMessage(`{"tab":`))
	assert.Error(t, err)
}
