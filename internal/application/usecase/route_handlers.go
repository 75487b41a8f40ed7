package usecase

import (
	"context"
	"errors"

	"github.com/tabnap/tabnap/internal/application/port"
	"github.com/tabnap/tabnap/internal/domain/entity"
	"github.com/tabnap/tabnap/internal/logging"
)

// prefsChangedBroadcast notifies extension pages that settings changed.
const prefsChangedBroadcast = "prefsChanged"

// faviconProgressBroadcast carries refresh progress to any listening page.
const faviconProgressBroadcast = "faviconRefreshProgress"

func (r *Router) handleFlagQuery(ctx context.Context, name string) RouteOutput {
	value, err := r.store.Flag(ctx, name)
	if err != nil {
		return internalError(ctx, err)
	}
	return RouteOutput{Response: entity.OKResponse(map[string]any{"running": value})}
}

func (r *Router) handleSaveSettings(ctx context.Context, req entity.Request) RouteOutput {
	settings, ok := payloadObject(req.Payload, "settings")
	if !ok {
		return RouteOutput{Response: entity.ErrResponse(ErrInvalidPayload.Error())}
	}
	if err := r.prefs.SaveSettings(ctx, settings); err != nil {
		return internalError(ctx, err)
	}
	return RouteOutput{
		Response: entity.OKResponse(nil),
		Effects:  r.settingsChangedEffects(),
	}
}

func (r *Router) handleUpdateWhitelist(ctx context.Context, req entity.Request) RouteOutput {
	patterns, ok := payloadStrings(req.Payload, "whitelist")
	if !ok {
		return RouteOutput{Response: entity.ErrResponse(ErrInvalidPayload.Error())}
	}
	if err := r.prefs.SaveWhitelist(ctx, patterns); err != nil {
		return internalError(ctx, err)
	}
	return RouteOutput{
		Response: entity.OKResponse(nil),
		Effects:  r.settingsChangedEffects(),
	}
}

func (r *Router) handlePrefsChanged(ctx context.Context) RouteOutput {
	return RouteOutput{
		Response: entity.OKResponse(nil),
		Effects:  r.settingsChangedEffects(),
	}
}

// settingsChangedEffects are the fire-and-forget consequences of any
// settings mutation: tell extension pages, then let the scheduler take
// the new rules into account.
func (r *Router) settingsChangedEffects() []Effect {
	return []Effect{
		{
			Name: "broadcast-prefs-changed",
			Run: func(ctx context.Context) {
				if err := r.host.Broadcast(ctx, prefsChangedBroadcast, nil); err != nil {
					logging.FromContext(ctx).Debug().Err(err).Msg("prefs broadcast had no listener")
				}
			},
		},
		{
			Name: "debounced-reschedule-all",
			Run: func(ctx context.Context) {
				if err := r.scheduler.DebouncedRescheduleAll(ctx); err != nil {
					logging.FromContext(ctx).Warn().Err(err).Msg("debounced reschedule failed")
				}
			},
		},
	}
}

func (r *Router) handleSingleTab(ctx context.Context, req entity.Request, suspend bool) RouteOutput {
	log := logging.FromContext(ctx)

	// Explicit payload target first, sender's own tab as fallback. A
	// tabId that is present but malformed is rejected outright.
	tabID := entity.TabIDNone
	if id, present, ok := payloadInt(req.Payload, "tabId"); present {
		if !ok {
			return RouteOutput{Response: entity.ErrResponse(ErrInvalidPayload.Error())}
		}
		tabID = entity.TabID(id)
	} else if req.Sender.FromTab() {
		tabID = req.Sender.TabID
	}
	if !tabID.Valid() {
		return RouteOutput{Response: entity.ErrResponse(ErrInvalidPayload.Error())}
	}

	opts := port.SuspendOptions{
		IsManual:    payloadBool(req.Payload, "isManual"),
		ShouldFocus: payloadBool(req.Payload, "shouldFocus"),
	}

	var err error
	if suspend {
		err = r.suspender.SuspendTab(ctx, tabID, opts)
	} else {
		err = r.suspender.UnsuspendTab(ctx, tabID, opts)
	}
	if err != nil {
		if errors.Is(err, port.ErrTabNotFound) {
			log.Debug().Int("tab_id", int(tabID)).Msg("tab vanished before operation, no-op")
			return RouteOutput{Response: entity.OKResponse(nil)}
		}
		return internalError(ctx, err)
	}
	return RouteOutput{Response: entity.OKResponse(nil)}
}

func (r *Router) handleBulkWindow(ctx context.Context, req entity.Request, suspend bool) RouteOutput {
	windowID, err := r.resolveWindow(ctx, req)
	if err != nil {
		if errors.Is(err, ErrInvalidPayload) {
			return RouteOutput{Response: entity.ErrResponse(ErrInvalidPayload.Error())}
		}
		return internalError(ctx, err)
	}
	// A window-scoped request must never widen into an all-windows one.
	if !windowID.Valid() {
		return RouteOutput{Response: entity.ErrResponse(ErrInvalidPayload.Error())}
	}

	if err := r.watchdog.Begin(ctx); err != nil {
		if errors.Is(err, ErrOperationAlreadyRunning) {
			return RouteOutput{Response: entity.ErrResponse(ErrOperationAlreadyRunning.Error())}
		}
		return internalError(ctx, err)
	}

	return RouteOutput{
		Response: entity.OKResponse(nil),
		Effects:  []Effect{r.bulkEffect(suspend, false, windowID)},
	}
}

func (r *Router) handleBulkAll(ctx context.Context, suspend bool) RouteOutput {
	if err := r.watchdog.Begin(ctx); err != nil {
		if errors.Is(err, ErrOperationAlreadyRunning) {
			return RouteOutput{Response: entity.ErrResponse(ErrOperationAlreadyRunning.Error())}
		}
		return internalError(ctx, err)
	}

	return RouteOutput{
		Response: entity.OKResponse(nil),
		Effects:  []Effect{r.bulkEffect(suspend, true, entity.WindowIDNone)},
	}
}

// bulkEffect runs the long bulk operation after the response has been
// sent. The watchdog covers the case where this never completes. The
// all-windows variants are selected explicitly, never inferred from the
// window id.
func (r *Router) bulkEffect(suspend, allWindows bool, windowID entity.WindowID) Effect {
	name := "bulk-unsuspend"
	if suspend {
		name = "bulk-suspend"
	}
	return Effect{
		Name: name,
		Run: func(ctx context.Context) {
			log := logging.FromContext(ctx)

			var err error
			switch {
			case allWindows && suspend:
				err = r.suspender.SuspendAllTabs(ctx)
			case allWindows:
				err = r.suspender.UnsuspendAllTabs(ctx)
			case suspend:
				err = r.suspender.SuspendAllTabsInWindow(ctx, windowID)
			default:
				err = r.suspender.UnsuspendAllTabsInWindow(ctx, windowID)
			}
			if err != nil {
				log.Error().Err(err).Msg("bulk operation failed")
			}
			if err := r.watchdog.Complete(ctx); err != nil {
				log.Error().Err(err).Msg("failed to mark bulk operation complete")
			}
		},
	}
}

// resolveWindow picks the target window: explicit payload id, then the
// sender tab's window, then the current window. A windowId that is
// present but malformed or invalid is an error, not a fallback.
func (r *Router) resolveWindow(ctx context.Context, req entity.Request) (entity.WindowID, error) {
	if id, present, ok := payloadInt(req.Payload, "windowId"); present {
		windowID := entity.WindowID(id)
		if !ok || !windowID.Valid() {
			return entity.WindowIDNone, ErrInvalidPayload
		}
		return windowID, nil
	}
	if req.Sender.FromTab() {
		tab, err := r.host.GetTab(ctx, req.Sender.TabID)
		if err == nil {
			return tab.WindowID, nil
		}
		if !errors.Is(err, port.ErrTabNotFound) {
			return entity.WindowIDNone, err
		}
	}
	return r.host.CurrentWindow(ctx)
}

func (r *Router) handleSelected(ctx context.Context, req entity.Request, suspend bool) RouteOutput {
	log := logging.FromContext(ctx)

	ids, ok := payloadTabIDs(req.Payload, "tabIds")
	if !ok {
		return RouteOutput{Response: entity.ErrResponse(ErrInvalidPayload.Error())}
	}

	counts := entity.SelectionCounts{Total: len(ids)}
	for _, id := range ids {
		tab, err := r.host.GetTab(ctx, id)
		if err != nil {
			if errors.Is(err, port.ErrTabNotFound) {
				log.Debug().Int("tab_id", int(id)).Msg("selected tab vanished, skipping")
				counts.Skipped++
			} else {
				log.Warn().Err(err).Int("tab_id", int(id)).Msg("selected tab lookup failed")
				counts.Errors++
			}
			continue
		}

		if suspend {
			reason, err := r.suspender.ShouldSkipTabForScheduling(ctx, tab, true)
			if err != nil {
				counts.Errors++
				continue
			}
			if reason != "" {
				log.Debug().Int("tab_id", int(id)).Str("reason", reason).Msg("selected tab skipped")
				counts.Skipped++
				continue
			}
			if err := r.suspender.SuspendTab(ctx, id, port.SuspendOptions{IsManual: true}); err != nil {
				log.Warn().Err(err).Int("tab_id", int(id)).Msg("selected tab suspend failed")
				counts.Errors++
				continue
			}
		} else {
			if !tab.Suspended {
				counts.Skipped++
				continue
			}
			if err := r.suspender.UnsuspendTab(ctx, id, port.SuspendOptions{IsManual: true}); err != nil {
				log.Warn().Err(err).Int("tab_id", int(id)).Msg("selected tab unsuspend failed")
				counts.Errors++
				continue
			}
		}
		counts.Success++
	}

	return RouteOutput{Response: entity.OKResponse(map[string]any{"counts": counts})}
}

func (r *Router) handleClearFaviconCache(ctx context.Context) RouteOutput {
	if err := r.suspender.ClearFaviconCache(ctx); err != nil {
		return internalError(ctx, err)
	}
	return RouteOutput{Response: entity.OKResponse(nil)}
}

// handleRefreshFavicons reloads every suspended tab so placeholder pages
// re-fetch their favicons. Mutually exclusive via the favicon durable
// flag; the flag is cleared on every exit path.
func (r *Router) handleRefreshFavicons(ctx context.Context) RouteOutput {
	log := logging.FromContext(ctx)

	running, err := r.store.Flag(ctx, entity.FlagFaviconRefreshRunning)
	if err != nil {
		return internalError(ctx, err)
	}
	if running {
		return RouteOutput{Response: entity.ErrResponse(ErrOperationAlreadyRunning.Error())}
	}
	if err := r.store.SetFlag(ctx, entity.FlagFaviconRefreshRunning, true); err != nil {
		return internalError(ctx, err)
	}
	defer func() {
		if err := r.store.SetFlag(ctx, entity.FlagFaviconRefreshRunning, false); err != nil {
			log.Error().Err(err).Msg("failed to clear favicon refresh flag")
		}
	}()

	tabs, err := r.host.QueryTabs(ctx)
	if err != nil {
		return internalError(ctx, err)
	}
	suspended := make([]entity.Tab, 0, len(tabs))
	for _, tab := range tabs {
		if tab.Suspended {
			suspended = append(suspended, tab)
		}
	}

	progress := func(percent int) {
		if err := r.host.Broadcast(ctx, faviconProgressBroadcast, map[string]any{"percent": percent}); err != nil {
			log.Debug().Err(err).Msg("favicon progress broadcast had no listener")
		}
	}

	result, err := r.reloader.Run(ctx, suspended, r.reloadCfg, progress)
	if err != nil {
		return RouteOutput{Response: entity.Response{"success": false, "error": err.Error()}}
	}

	return RouteOutput{Response: entity.OKResponse(map[string]any{
		"count": result.Processed,
		"total": result.Total,
	})}
}

func (r *Router) handleGetStats(ctx context.Context) RouteOutput {
	log := logging.FromContext(ctx)

	tabs, err := r.host.QueryTabs(ctx)
	if err != nil {
		return internalError(ctx, err)
	}
	snapshot, err := r.scheduler.Snapshot(ctx)
	if err != nil {
		return internalError(ctx, err)
	}

	stats := entity.ExtensionStats{Total: len(tabs), Scheduled: snapshot.Size}
	for _, tab := range tabs {
		if tab.Suspended {
			stats.Suspended++
			continue
		}
		reason, err := r.suspender.ShouldSkipTabForScheduling(ctx, tab, false)
		if err != nil {
			log.Warn().Err(err).Int("tab_id", int(tab.ID)).Msg("skip check failed while counting stats")
			continue
		}
		if reason != "" {
			stats.Skipped++
		}
	}

	return RouteOutput{Response: entity.OKResponse(map[string]any{
		"total":     stats.Total,
		"suspended": stats.Suspended,
		"scheduled": stats.Scheduled,
		"skipped":   stats.Skipped,
	})}
}

func (r *Router) handleGetSkippedTabs(ctx context.Context) RouteOutput {
	log := logging.FromContext(ctx)

	tabs, err := r.host.QueryTabs(ctx)
	if err != nil {
		return internalError(ctx, err)
	}

	skipped := make([]entity.SkippedTab, 0)
	for _, tab := range tabs {
		if tab.Suspended {
			continue
		}
		reason, err := r.suspender.ShouldSkipTabForScheduling(ctx, tab, false)
		if err != nil {
			log.Warn().Err(err).Int("tab_id", int(tab.ID)).Msg("skip check failed")
			continue
		}
		if reason == "" {
			continue
		}
		skipped = append(skipped, entity.SkippedTab{
			TabID:  tab.ID,
			Title:  tab.Title,
			URL:    tab.URL,
			Reason: reason,
		})
	}

	return RouteOutput{Response: entity.OKResponse(map[string]any{"skippedTabs": skipped})}
}

func (r *Router) handleResetBulkOp(ctx context.Context) RouteOutput {
	if err := r.watchdog.ForceReset(ctx); err != nil {
		return internalError(ctx, err)
	}
	return RouteOutput{Response: entity.OKResponse(nil)}
}
