package cli

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tabnap/tabnap/internal/application/state"
	"github.com/tabnap/tabnap/internal/application/usecase"
	"github.com/tabnap/tabnap/internal/config"
	"github.com/tabnap/tabnap/internal/domain/entity"
	"github.com/tabnap/tabnap/internal/infrastructure/bridge"
	"github.com/tabnap/tabnap/internal/infrastructure/clock"
	"github.com/tabnap/tabnap/internal/infrastructure/persistence/sqlite"
	"github.com/tabnap/tabnap/internal/logging"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the coordinator and listen for the extension",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	manager := config.NewManager(configPath)
	cfg, err := manager.Load()
	if err != nil {
		return err
	}
	manager.Watch()

	logger := logging.NewFromConfigValues(cfg.Logging.Level, cfg.Logging.Format)
	ctx = logging.WithContext(ctx, logger)

	db, err := sqlite.NewConnection(ctx, cfg.Database.Path)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	flags, err := sqlite.NewFlagRepository(ctx, db)
	if err != nil {
		return err
	}

	store := state.NewStore(flags)
	clk := clock.New()

	// One watchdog for the process. Sessions come and go; only the
	// broadcast target is rebound per connection, so a reconnect never
	// arms a second recovery timer.
	hub := bridge.NewBroadcastHub()
	watchdog := usecase.NewBulkWatchdog(store, hub, clk, cfg.Watchdog.Ceiling, logger)
	if err := watchdog.RecoverAtStartup(ctx); err != nil {
		logger.Error().Err(err).Msg("watchdog recovery failed")
	}

	wiring := func(session *bridge.Session) (*usecase.Router, *bridge.EventDispatcher, *usecase.TimerEventsUseCase) {
		host := bridge.NewHostAdapter(session)
		hub.Bind(host)
		scheduler := bridge.NewSchedulerAdapter(host)
		suspender := bridge.NewSuspenderAdapter(host)
		prefs := bridge.NewPreferencesAdapter(host)
		sessionMgr := bridge.NewSessionAdapter(host)

		reloader := usecase.NewBatchReloader(host, clk)

		router := usecase.NewRouter(store, host, scheduler, suspender, prefs, watchdog, reloader,
			cfg.Bridge.ExtensionOrigin, entity.ReloadBatchConfig{
				BatchSize:       cfg.Reload.BatchSize,
				PerTabDelay:     cfg.Reload.PerTabDelay,
				InterBatchDelay: cfg.Reload.InterBatchDelay,
			})

		tabs := usecase.NewTabEventsUseCase(store, host, scheduler)
		focus := usecase.NewFocusEventsUseCase(store, host, scheduler, prefs)
		commands := usecase.NewCommandsUseCase(host, suspender, watchdog)
		timers := usecase.NewTimerEventsUseCase(store, host, scheduler, sessionMgr)

		return router, bridge.NewEventDispatcher(tabs, focus, commands), timers
	}

	server := bridge.NewServer(wiring, bridge.TimerIntervals{
		SuspensionScan:  cfg.Timers.SuspensionScan,
		Cleanup:         cfg.Timers.Cleanup,
		Reconcile:       cfg.Timers.Reconcile,
		SessionAutosave: cfg.Timers.SessionAutosave,
	}, logger)

	httpServer := &http.Server{Addr: cfg.Bridge.ListenAddr, Handler: server}
	go func() {
		<-ctx.Done()
		_ = httpServer.Close()
	}()

	logger.Info().Str("addr", cfg.Bridge.ListenAddr).Msg("bridge listening")
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("bridge listener: %w", err)
	}
	return nil
}
