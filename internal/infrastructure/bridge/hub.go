package bridge

import (
	"context"
	"errors"
	"sync"

	"github.com/tabnap/tabnap/internal/application/port"
)

// ErrNoExtension is returned for broadcasts attempted while no extension
// connection is bound.
var ErrNoExtension = errors.New("no extension connected")

// BroadcastHub is a process-lifetime broadcast target. It always points at
// the most recently connected session, so daemon-scoped components keep a
// stable handle across extension reconnects.
type BroadcastHub struct {
	mu     sync.Mutex
	target port.Broadcaster
}

var _ port.Broadcaster = (*BroadcastHub)(nil)

// NewBroadcastHub creates an unbound hub.
func NewBroadcastHub() *BroadcastHub {
	return &BroadcastHub{}
}

// Bind points the hub at a new connection's broadcaster, replacing any
// previous one.
func (h *BroadcastHub) Bind(target port.Broadcaster) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.target = target
}

// Broadcast forwards to the currently bound target.
func (h *BroadcastHub) Broadcast(ctx context.Context, name string, payload map[string]any) error {
	h.mu.Lock()
	target := h.target
	h.mu.Unlock()

	if target == nil {
		return ErrNoExtension
	}
	return target.Broadcast(ctx, name, payload)
}
