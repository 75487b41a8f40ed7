package bridge

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tabnap/tabnap/internal/application/usecase"
	"github.com/tabnap/tabnap/internal/domain/entity"
)

// Lifecycle event names on the wire.
const (
	eventTabCreated         = "tabCreated"
	eventTabUpdated         = "tabUpdated"
	eventTabRemoved         = "tabRemoved"
	eventTabActivated       = "tabActivated"
	eventWindowFocusChanged = "windowFocusChanged"
	eventWindowRemoved      = "windowRemoved"
	eventCommand            = "command"
)

// EventDispatcher demultiplexes lifecycle events onto the dispatcher
// usecases.
type EventDispatcher struct {
	tabs     *usecase.TabEventsUseCase
	focus    *usecase.FocusEventsUseCase
	commands *usecase.CommandsUseCase
}

// NewEventDispatcher creates the event demux.
func NewEventDispatcher(tabs *usecase.TabEventsUseCase, focus *usecase.FocusEventsUseCase, commands *usecase.CommandsUseCase) *EventDispatcher {
	return &EventDispatcher{tabs: tabs, focus: focus, commands: commands}
}

// Dispatch decodes and routes one event. Unknown events are an error so
// protocol drift surfaces in logs rather than silently.
func (d *EventDispatcher) Dispatch(ctx context.Context, name string, payload json.RawMessage) error {
	switch name {
	case eventTabCreated:
		var p struct {
			Tab entity.Tab `json:"tab"`
		}
		if err := json.Unmarshal(payload, &p); err != nil {
			return fmt.Errorf("decode %s: %w", name, err)
		}
		return d.tabs.TabCreated(ctx, p.Tab)

	case eventTabUpdated:
		var p struct {
			Tab    entity.Tab       `json:"tab"`
			Change entity.TabChange `json:"change"`
		}
		if err := json.Unmarshal(payload, &p); err != nil {
			return fmt.Errorf("decode %s: %w", name, err)
		}
		return d.tabs.TabUpdated(ctx, p.Tab, p.Change)

	case eventTabRemoved:
		var p struct {
			TabID           entity.TabID    `json:"tabId"`
			WindowID        entity.WindowID `json:"windowId"`
			IsWindowClosing bool            `json:"isWindowClosing"`
		}
		if err := json.Unmarshal(payload, &p); err != nil {
			return fmt.Errorf("decode %s: %w", name, err)
		}
		return d.tabs.TabRemoved(ctx, p.TabID, p.WindowID, p.IsWindowClosing)

	case eventTabActivated:
		var p struct {
			TabID    entity.TabID    `json:"tabId"`
			WindowID entity.WindowID `json:"windowId"`
		}
		if err := json.Unmarshal(payload, &p); err != nil {
			return fmt.Errorf("decode %s: %w", name, err)
		}
		return d.focus.TabActivated(ctx, p.WindowID, p.TabID)

	case eventWindowFocusChanged:
		var p struct {
			WindowID entity.WindowID `json:"windowId"`
		}
		if err := json.Unmarshal(payload, &p); err != nil {
			return fmt.Errorf("decode %s: %w", name, err)
		}
		return d.focus.WindowFocusChanged(ctx, p.WindowID)

	case eventWindowRemoved:
		var p struct {
			WindowID entity.WindowID `json:"windowId"`
		}
		if err := json.Unmarshal(payload, &p); err != nil {
			return fmt.Errorf("decode %s: %w", name, err)
		}
		return d.focus.WindowRemoved(ctx, p.WindowID)

	case eventCommand:
		var p struct {
			Command string `json:"command"`
		}
		if err := json.Unmarshal(payload, &p); err != nil {
			return fmt.Errorf("decode %s: %w", name, err)
		}
		return d.commands.Execute(ctx, usecase.Command(p.Command))
	}

	return fmt.Errorf("unknown event %q", name)
}
