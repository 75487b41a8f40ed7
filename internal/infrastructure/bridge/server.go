package bridge

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/tabnap/tabnap/internal/application/usecase"
	"github.com/tabnap/tabnap/internal/logging"
)

// Wiring builds the per-session object graph. The router and dispatchers
// talk to the extension through the session's adapters, so they are
// constructed once the session exists.
type Wiring func(s *Session) (*usecase.Router, *EventDispatcher, *usecase.TimerEventsUseCase)

// TimerIntervals holds the periodic trigger intervals for a session.
type TimerIntervals struct {
	SuspensionScan  time.Duration
	Cleanup         time.Duration
	Reconcile       time.Duration
	SessionAutosave time.Duration
}

// Server accepts extension connections and runs one Session per
// connection, including its periodic triggers.
type Server struct {
	upgrader websocket.Upgrader
	wire     Wiring
	timers   TimerIntervals
	logger   zerolog.Logger
}

// NewServer creates a bridge server. The listener is local-only by
// configuration; message-level sender validation happens in the router.
func NewServer(wire Wiring, timers TimerIntervals, logger zerolog.Logger) *Server {
	return &Server{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		wire:   wire,
		timers: timers,
		logger: logger,
	}
}

// ServeHTTP upgrades the connection and blocks until the session ends.
func (srv *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := srv.upgrader.Upgrade(w, r, nil)
	if err != nil {
		srv.logger.Error().Err(err).Msg("websocket upgrade failed")
		return
	}

	logger := srv.logger.With().Str("remote", conn.RemoteAddr().String()).Logger()
	logger.Info().Msg("extension connected")

	session := NewSession(conn, logger)
	router, events, timers := srv.wire(session)
	session.Bind(router, events)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	go srv.runTimers(ctx, session, timers)

	if err := session.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Info().Err(err).Msg("extension disconnected")
	}
}

// runTimers drives the four periodic triggers for the session's lifetime.
// Trigger failures are logged by the usecase and never stop the tickers.
func (srv *Server) runTimers(ctx context.Context, session *Session, timers *usecase.TimerEventsUseCase) {
	ctx = logging.WithContext(ctx, srv.logger)

	run := func(interval time.Duration, trigger usecase.TimerTrigger) {
		if interval <= 0 {
			return
		}
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				_ = timers.Fire(ctx, trigger)
			case <-ctx.Done():
				return
			case <-session.closed:
				return
			}
		}
	}

	go run(srv.timers.SuspensionScan, usecase.TriggerSuspensionScan)
	go run(srv.timers.Cleanup, usecase.TriggerCleanup)
	go run(srv.timers.Reconcile, usecase.TriggerReconcile)
	run(srv.timers.SessionAutosave, usecase.TriggerSessionAutosave)
}
