package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/tabnap/tabnap/internal/application/port"
	"github.com/tabnap/tabnap/internal/domain/entity"
	"github.com/tabnap/tabnap/internal/logging"
)

// Command names a keyboard command from the host.
type Command string

const (
	CommandSuspendCurrent   Command = "suspend-current"
	CommandUnsuspendCurrent Command = "unsuspend-current"
	CommandSuspendWindow    Command = "suspend-window"
	CommandUnsuspendWindow  Command = "unsuspend-window"
	CommandSuspendAll       Command = "suspend-all"
	CommandUnsuspendAll     Command = "unsuspend-all"
	CommandOpenSettings     Command = "open-settings"
)

// CommandsUseCase dispatches keyboard commands against the active tab of
// the current window. Bulk commands share the watchdog with the message
// router, so at most one bulk operation runs at a time regardless of how
// it was started.
type CommandsUseCase struct {
	host      port.Host
	suspender port.Suspender
	watchdog  *BulkWatchdog
}

// NewCommandsUseCase creates the command dispatcher.
func NewCommandsUseCase(host port.Host, suspender port.Suspender, watchdog *BulkWatchdog) *CommandsUseCase {
	return &CommandsUseCase{host: host, suspender: suspender, watchdog: watchdog}
}

// Execute runs one command. A missing active tab aborts with a warning,
// not an error: the user may have triggered the shortcut on an empty
// window.
func (uc *CommandsUseCase) Execute(ctx context.Context, command Command) error {
	ctx = logging.WithComponent(ctx, "command")
	log := logging.FromContext(ctx)
	log.Debug().Str("command", string(command)).Msg("executing command")

	if command == CommandOpenSettings {
		return uc.host.OpenSettings(ctx)
	}

	windowID, err := uc.host.CurrentWindow(ctx)
	if err != nil {
		return fmt.Errorf("resolve current window: %w", err)
	}
	tab, ok, err := uc.host.ActiveTabInWindow(ctx, windowID)
	if err != nil {
		return fmt.Errorf("resolve active tab: %w", err)
	}
	if !ok {
		log.Warn().Int("window_id", int(windowID)).Msg("no active tab for command, aborting")
		return nil
	}

	manual := port.SuspendOptions{IsManual: true}

	switch command {
	case CommandSuspendCurrent:
		return uc.suspender.SuspendTab(ctx, tab.ID, manual)
	case CommandUnsuspendCurrent:
		return uc.suspender.UnsuspendTab(ctx, tab.ID, manual)
	case CommandSuspendWindow, CommandUnsuspendWindow, CommandSuspendAll, CommandUnsuspendAll:
		return uc.runBulk(ctx, command, windowID)
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

// runBulk holds the bulk-operation flag across a command-triggered bulk
// operation. A command arriving while another bulk operation runs is
// dropped with a warning, mirroring the router's rejection.
func (uc *CommandsUseCase) runBulk(ctx context.Context, command Command, windowID entity.WindowID) error {
	log := logging.FromContext(ctx)

	if err := uc.watchdog.Begin(ctx); err != nil {
		if errors.Is(err, ErrOperationAlreadyRunning) {
			log.Warn().Str("command", string(command)).Msg("bulk operation already running, dropping command")
			return nil
		}
		return err
	}

	var err error
	switch command {
	case CommandSuspendWindow:
		err = uc.suspender.SuspendAllTabsInWindow(ctx, windowID)
	case CommandUnsuspendWindow:
		err = uc.suspender.UnsuspendAllTabsInWindow(ctx, windowID)
	case CommandSuspendAll:
		err = uc.suspender.SuspendAllTabs(ctx)
	case CommandUnsuspendAll:
		err = uc.suspender.UnsuspendAllTabs(ctx)
	}
	if cerr := uc.watchdog.Complete(ctx); cerr != nil {
		log.Error().Err(cerr).Msg("failed to mark bulk operation complete")
	}
	return err
}
