package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/tabnap/tabnap/internal/application/usecase"
	"github.com/tabnap/tabnap/internal/domain/entity"
	"github.com/tabnap/tabnap/internal/logging"
)

// ErrSessionClosed is returned by Call when the extension disconnected.
var ErrSessionClosed = errors.New("bridge session closed")

type callResult struct {
	result json.RawMessage
	err    error
}

// Session is one connected extension. It demultiplexes inbound frames
// (requests, events, RPC responses) and serializes outbound writes.
type Session struct {
	conn   *websocket.Conn
	router *usecase.Router
	events *EventDispatcher
	logger zerolog.Logger

	writeMu sync.Mutex

	pendingMu sync.Mutex
	pending   map[string]chan callResult

	closeOnce sync.Once
	closed    chan struct{}
}

// NewSession wraps an upgraded connection. Bind must be called before
// Run: the router and dispatchers are built around the session's own
// adapters, so they cannot exist earlier.
func NewSession(conn *websocket.Conn, logger zerolog.Logger) *Session {
	return &Session{
		conn:    conn,
		logger:  logger,
		pending: make(map[string]chan callResult),
		closed:  make(chan struct{}),
	}
}

// Bind attaches the per-session router and event dispatcher.
func (s *Session) Bind(router *usecase.Router, events *EventDispatcher) {
	s.router = router
	s.events = events
}

// Run reads frames until the connection drops. It always returns a
// non-nil error describing why the session ended.
func (s *Session) Run(ctx context.Context) error {
	defer s.Close()

	for {
		var f frame
		if err := s.conn.ReadJSON(&f); err != nil {
			return fmt.Errorf("bridge read: %w", err)
		}

		switch f.Kind {
		case frameRequest:
			go s.handleRequest(ctx, f)
		case frameEvent:
			go s.handleEvent(ctx, f)
		case frameResponse:
			s.settleCall(f)
		default:
			s.logger.Warn().Str("kind", f.Kind).Msg("unknown frame kind")
		}
	}
}

// Close tears the session down and fails all pending calls.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		close(s.closed)
		_ = s.conn.Close()

		s.pendingMu.Lock()
		for id, ch := range s.pending {
			ch <- callResult{err: ErrSessionClosed}
			delete(s.pending, id)
		}
		s.pendingMu.Unlock()
	})
}

// handleRequest routes a control message and writes exactly one response
// frame. Effects run after the delivery attempt, even when the write
// failed: the response channel being severed must not drop side effects.
func (s *Session) handleRequest(ctx context.Context, f frame) {
	ctx = logging.WithContext(ctx, s.logger)

	var payload map[string]any
	if len(f.Payload) > 0 {
		if err := json.Unmarshal(f.Payload, &payload); err != nil {
			s.writeFrame(frame{Kind: frameResponse, ID: f.ID, Response: entity.ErrResponse("invalid payload")})
			return
		}
	}

	req := entity.Request{Type: entity.MessageType(f.Type), Payload: payload}
	if f.Sender != nil {
		req.Sender = *f.Sender
	}

	out := s.router.Handle(ctx, req)

	if err := s.writeFrame(frame{Kind: frameResponse, ID: f.ID, Response: out.Response}); err != nil {
		s.logger.Warn().Err(err).Str("type", f.Type).Msg("failed to deliver response, running effects anyway")
	}

	for _, effect := range out.Effects {
		effectCtx := logging.WithComponent(ctx, "effect:"+effect.Name)
		effect.Run(effectCtx)
	}
}

// handleEvent dispatches a lifecycle event, isolated so one bad event
// cannot take the read loop down.
func (s *Session) handleEvent(ctx context.Context, f frame) {
	ctx = logging.WithContext(ctx, s.logger)
	defer func() {
		if rec := recover(); rec != nil {
			s.logger.Error().Interface("panic", rec).Str("event", f.Name).Msg("event handler panicked")
		}
	}()

	if err := s.events.Dispatch(ctx, f.Name, f.Payload); err != nil {
		s.logger.Warn().Err(err).Str("event", f.Name).Msg("event dispatch failed")
	}
}

// settleCall resolves a pending RPC with its response frame.
func (s *Session) settleCall(f frame) {
	s.pendingMu.Lock()
	ch, ok := s.pending[f.ID]
	if ok {
		delete(s.pending, f.ID)
	}
	s.pendingMu.Unlock()

	if !ok {
		s.logger.Debug().Str("id", f.ID).Msg("response for unknown call, dropping")
		return
	}

	if f.Error != "" {
		ch <- callResult{err: rpcError(f.Code, f.Error)}
		return
	}
	ch <- callResult{result: f.Result}
}

// Call issues an RPC to the extension side and waits for its response.
func (s *Session) Call(ctx context.Context, method string, params any) (json.RawMessage, error) {
	id := uuid.NewString()
	ch := make(chan callResult, 1)

	s.pendingMu.Lock()
	s.pending[id] = ch
	s.pendingMu.Unlock()

	if err := s.writeFrame(frame{Kind: frameCall, ID: id, Method: method, Params: params}); err != nil {
		s.pendingMu.Lock()
		delete(s.pending, id)
		s.pendingMu.Unlock()
		return nil, fmt.Errorf("call %s: %w", method, err)
	}

	select {
	case res := <-ch:
		if res.err != nil {
			return nil, fmt.Errorf("call %s: %w", method, res.err)
		}
		return res.result, nil
	case <-ctx.Done():
		s.pendingMu.Lock()
		delete(s.pending, id)
		s.pendingMu.Unlock()
		return nil, ctx.Err()
	case <-s.closed:
		return nil, ErrSessionClosed
	}
}

// Broadcast sends a fire-and-forget notification frame.
func (s *Session) Broadcast(ctx context.Context, name string, payload map[string]any) error {
	_ = ctx
	return s.writeFrame(frame{Kind: frameBroadcast, Name: name, Params: payload})
}

func (s *Session) writeFrame(f frame) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	select {
	case <-s.closed:
		return ErrSessionClosed
	default:
	}
	return s.conn.WriteJSON(f)
}
