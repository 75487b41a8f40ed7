package usecase

import (
	"context"
	"fmt"
	"math"

	"github.com/tabnap/tabnap/internal/application/port"
	"github.com/tabnap/tabnap/internal/application/state"
	"github.com/tabnap/tabnap/internal/domain/entity"
	"github.com/tabnap/tabnap/internal/logging"
)

// Effect is a fire-and-forget side effect of a handled request. Effects
// are attached to the handler result and run by the transport after the
// response delivery attempt, in order, so they survive a severed response
// channel.
type Effect struct {
	Name string
	Run  func(ctx context.Context)
}

// RouteOutput is the result of routing one request: exactly one response,
// plus the ordered effects list.
type RouteOutput struct {
	Response entity.Response
	Effects  []Effect
}

// Router validates and dispatches control messages. Every request yields
// exactly one response, on all paths including panics inside handlers.
type Router struct {
	store     *state.Store
	host      port.Host
	scheduler port.Scheduler
	suspender port.Suspender
	prefs     port.Preferences
	watchdog  *BulkWatchdog
	reloader  *BatchReloader

	ownOrigin string
	reloadCfg entity.ReloadBatchConfig
}

// NewRouter creates a message router. ownOrigin is the extension's own
// served origin; privileged messages must come from it.
func NewRouter(
	store *state.Store,
	host port.Host,
	scheduler port.Scheduler,
	suspender port.Suspender,
	prefs port.Preferences,
	watchdog *BulkWatchdog,
	reloader *BatchReloader,
	ownOrigin string,
	reloadCfg entity.ReloadBatchConfig,
) *Router {
	return &Router{
		store:     store,
		host:      host,
		scheduler: scheduler,
		suspender: suspender,
		prefs:     prefs,
		watchdog:  watchdog,
		reloader:  reloader,
		ownOrigin: ownOrigin,
		reloadCfg: reloadCfg,
	}
}

// Handle routes one request. It never panics and never returns without a
// response.
func (r *Router) Handle(ctx context.Context, req entity.Request) (out RouteOutput) {
	ctx = logging.WithMessageType(ctx, string(req.Type))
	log := logging.FromContext(ctx)

	defer func() {
		if rec := recover(); rec != nil {
			log.Error().Interface("panic", rec).Msg("handler panicked")
			out = RouteOutput{Response: entity.ErrResponse(fmt.Sprintf("internal error: %v", rec))}
		}
	}()

	if !req.Type.Known() {
		log.Warn().Msg("unknown message type")
		return RouteOutput{Response: entity.ErrResponse(ErrUnknownMessageType.Error())}
	}

	if !r.senderAllowed(req) {
		log.Warn().Str("origin", req.Sender.Origin).Msg("sender not allowed for message type")
		return RouteOutput{Response: entity.ErrResponse(ErrPermissionDenied.Error())}
	}

	log.Debug().Msg("dispatching message")

	switch req.Type {
	case entity.MsgIsBulkOperationRunning:
		return r.handleFlagQuery(ctx, entity.FlagBulkOperationRunning)
	case entity.MsgIsFaviconRefreshRunning:
		return r.handleFlagQuery(ctx, entity.FlagFaviconRefreshRunning)
	case entity.MsgSaveSettings:
		return r.handleSaveSettings(ctx, req)
	case entity.MsgUpdateWhitelist:
		return r.handleUpdateWhitelist(ctx, req)
	case entity.MsgPrefsChanged:
		return r.handlePrefsChanged(ctx)
	case entity.MsgSuspendTab:
		return r.handleSingleTab(ctx, req, true)
	case entity.MsgUnsuspendTab:
		return r.handleSingleTab(ctx, req, false)
	case entity.MsgSuspendWindow:
		return r.handleBulkWindow(ctx, req, true)
	case entity.MsgUnsuspendWindow:
		return r.handleBulkWindow(ctx, req, false)
	case entity.MsgSuspendAll:
		return r.handleBulkAll(ctx, true)
	case entity.MsgUnsuspendAll:
		return r.handleBulkAll(ctx, false)
	case entity.MsgSuspendSelected:
		return r.handleSelected(ctx, req, true)
	case entity.MsgUnsuspendSelected:
		return r.handleSelected(ctx, req, false)
	case entity.MsgClearFaviconCache:
		return r.handleClearFaviconCache(ctx)
	case entity.MsgRefreshSuspendedFavicons:
		return r.handleRefreshFavicons(ctx)
	case entity.MsgGetExtensionStats:
		return r.handleGetStats(ctx)
	case entity.MsgGetSkippedTabs:
		return r.handleGetSkippedTabs(ctx)
	case entity.MsgResetBulkOpRunning:
		return r.handleResetBulkOp(ctx)
	}

	// Unreachable: Known() covers the closed set.
	return RouteOutput{Response: entity.ErrResponse(ErrUnknownMessageType.Error())}
}

// senderAllowed applies the dispatch-order rules: status queries bypass
// validation, single-tab operations additionally accept content scripts
// attached to a real tab, everything else requires the extension's own
// origin.
func (r *Router) senderAllowed(req entity.Request) bool {
	if req.Type.StatusQuery() {
		return true
	}
	privileged := req.Sender.Origin == r.ownOrigin
	if req.Type.SingleTabOp() {
		return privileged || req.Sender.FromTab()
	}
	return privileged
}

// internalError maps a collaborator failure to a response, forwarding the
// underlying message but never a stack trace.
func internalError(ctx context.Context, err error) RouteOutput {
	logging.FromContext(ctx).Error().Err(err).Msg("handler failed")
	return RouteOutput{Response: entity.ErrResponse(err.Error())}
}

// --- payload helpers ---
// JSON payloads carry numbers as float64; these helpers normalize access.

// payloadInt reads an integral number. present reports whether the key
// existed at all; ok whether it decoded as an integer. Fractional values
// are rejected rather than truncated onto the wrong id.
func payloadInt(payload map[string]any, key string) (value int, present, ok bool) {
	v, found := payload[key]
	if !found {
		return 0, false, false
	}
	switch n := v.(type) {
	case float64:
		if n != math.Trunc(n) {
			return 0, true, false
		}
		return int(n), true, true
	case int:
		return n, true, true
	}
	return 0, true, false
}

func payloadBool(payload map[string]any, key string) bool {
	v, _ := payload[key].(bool)
	return v
}

func payloadTabIDs(payload map[string]any, key string) ([]entity.TabID, bool) {
	raw, ok := payload[key]
	if !ok {
		return nil, false
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, false
	}
	ids := make([]entity.TabID, 0, len(list))
	for _, item := range list {
		switch n := item.(type) {
		case float64:
			if n != math.Trunc(n) {
				return nil, false
			}
			ids = append(ids, entity.TabID(n))
		case int:
			ids = append(ids, entity.TabID(n))
		default:
			return nil, false
		}
	}
	return ids, true
}

func payloadStrings(payload map[string]any, key string) ([]string, bool) {
	raw, ok := payload[key]
	if !ok {
		return nil, false
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		s, ok := item.(string)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}

func payloadObject(payload map[string]any, key string) (map[string]any, bool) {
	obj, ok := payload[key].(map[string]any)
	return obj, ok
}
