package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tabnap/tabnap/internal/application/port"
	"github.com/tabnap/tabnap/internal/domain/entity"
)

// rpcError maps an extension-side error code to the port sentinels.
func rpcError(code, msg string) error {
	switch code {
	case codeTabNotFound:
		return fmt.Errorf("%s: %w", msg, port.ErrTabNotFound)
	case codeWindowNotFound:
		return fmt.Errorf("%s: %w", msg, port.ErrWindowNotFound)
	}
	return errors.New(msg)
}

// HostAdapter implements port.Host over the bridge session.
type HostAdapter struct {
	session *Session
}

// NewHostAdapter creates the host adapter.
func NewHostAdapter(session *Session) *HostAdapter {
	return &HostAdapter{session: session}
}

var _ port.Host = (*HostAdapter)(nil)

func (h *HostAdapter) call(ctx context.Context, method string, params, out any) error {
	raw, err := h.session.Call(ctx, method, params)
	if err != nil {
		return err
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s result: %w", method, err)
	}
	return nil
}

func (h *HostAdapter) GetTab(ctx context.Context, id entity.TabID) (entity.Tab, error) {
	var tab entity.Tab
	err := h.call(ctx, "tabs.get", map[string]any{"tabId": id}, &tab)
	return tab, err
}

func (h *HostAdapter) QueryTabs(ctx context.Context) ([]entity.Tab, error) {
	var tabs []entity.Tab
	err := h.call(ctx, "tabs.query", nil, &tabs)
	return tabs, err
}

func (h *HostAdapter) ActiveTabs(ctx context.Context) ([]entity.Tab, error) {
	var tabs []entity.Tab
	err := h.call(ctx, "tabs.active", nil, &tabs)
	return tabs, err
}

func (h *HostAdapter) ActiveTabInWindow(ctx context.Context, windowID entity.WindowID) (entity.Tab, bool, error) {
	var result struct {
		Tab *entity.Tab `json:"tab"`
	}
	if err := h.call(ctx, "tabs.activeInWindow", map[string]any{"windowId": windowID}, &result); err != nil {
		return entity.Tab{}, false, err
	}
	if result.Tab == nil {
		return entity.Tab{}, false, nil
	}
	return *result.Tab, true, nil
}

func (h *HostAdapter) CurrentWindow(ctx context.Context) (entity.WindowID, error) {
	var result struct {
		WindowID entity.WindowID `json:"windowId"`
	}
	err := h.call(ctx, "windows.current", nil, &result)
	return result.WindowID, err
}

func (h *HostAdapter) LastFocusedWindow(ctx context.Context) (entity.WindowID, error) {
	var result struct {
		WindowID entity.WindowID `json:"windowId"`
	}
	err := h.call(ctx, "windows.lastFocused", nil, &result)
	return result.WindowID, err
}

func (h *HostAdapter) ListWindows(ctx context.Context) ([]entity.WindowID, error) {
	var ids []entity.WindowID
	err := h.call(ctx, "windows.list", nil, &ids)
	return ids, err
}

func (h *HostAdapter) ReloadTab(ctx context.Context, id entity.TabID) error {
	return h.call(ctx, "tabs.reload", map[string]any{"tabId": id}, nil)
}

func (h *HostAdapter) Broadcast(ctx context.Context, name string, payload map[string]any) error {
	return h.session.Broadcast(ctx, name, payload)
}

func (h *HostAdapter) OpenSettings(ctx context.Context) error {
	return h.call(ctx, "settings.open", nil, nil)
}
