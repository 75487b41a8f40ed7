package entity

// MessageType tags a control message. The set is closed: anything not
// listed below resolves to an explicit "unknown" response at the router.
type MessageType string

const (
	// Status queries, answered without sender validation.
	MsgIsBulkOperationRunning  MessageType = "isBulkOperationRunning"
	MsgIsFaviconRefreshRunning MessageType = "isFaviconRefreshRunning"

	// Settings surface.
	MsgSaveSettings    MessageType = "saveSettings"
	MsgUpdateWhitelist MessageType = "updateWhitelist"
	MsgPrefsChanged    MessageType = "prefsChanged"

	// Single-tab operations; accepted from the extension itself or from a
	// content script attached to a real tab.
	MsgSuspendTab   MessageType = "suspendTab"
	MsgUnsuspendTab MessageType = "unsuspendTab"

	// Bulk operations, guarded by the bulk-op durable flag.
	MsgSuspendWindow   MessageType = "suspendWindow"
	MsgUnsuspendWindow MessageType = "unsuspendWindow"
	MsgSuspendAll      MessageType = "suspendAll"
	MsgUnsuspendAll    MessageType = "unsuspendAll"

	// Selection operations with per-tab accounting.
	MsgSuspendSelected   MessageType = "suspendSelected"
	MsgUnsuspendSelected MessageType = "unsuspendSelected"

	// Administrative / diagnostics.
	MsgClearFaviconCache        MessageType = "clearFaviconCache"
	MsgRefreshSuspendedFavicons MessageType = "refreshSuspendedFavicons"
	MsgGetExtensionStats        MessageType = "getExtensionStats"
	MsgGetSkippedTabs           MessageType = "getSkippedTabs"
	MsgResetBulkOpRunning       MessageType = "resetBulkOpRunning"
)

var knownMessageTypes = map[MessageType]struct{}{
	MsgIsBulkOperationRunning:   {},
	MsgIsFaviconRefreshRunning:  {},
	MsgSaveSettings:             {},
	MsgUpdateWhitelist:          {},
	MsgPrefsChanged:             {},
	MsgSuspendTab:               {},
	MsgUnsuspendTab:             {},
	MsgSuspendWindow:            {},
	MsgUnsuspendWindow:          {},
	MsgSuspendAll:               {},
	MsgUnsuspendAll:             {},
	MsgSuspendSelected:          {},
	MsgUnsuspendSelected:        {},
	MsgClearFaviconCache:        {},
	MsgRefreshSuspendedFavicons: {},
	MsgGetExtensionStats:        {},
	MsgGetSkippedTabs:           {},
	MsgResetBulkOpRunning:       {},
}

// Known reports whether the type belongs to the closed message set.
func (t MessageType) Known() bool {
	_, ok := knownMessageTypes[t]
	return ok
}

// StatusQuery reports whether the type bypasses sender validation.
func (t MessageType) StatusQuery() bool {
	return t == MsgIsBulkOperationRunning || t == MsgIsFaviconRefreshRunning
}

// SingleTabOp reports whether the type is a single-tab suspend/unsuspend,
// which additionally accepts content-script senders attached to a tab.
func (t MessageType) SingleTabOp() bool {
	return t == MsgSuspendTab || t == MsgUnsuspendTab
}

// Sender identifies the origin of a control message.
type Sender struct {
	Origin string `json:"origin"`          // served origin of the sending page
	TabID  TabID  `json:"tabId,omitempty"` // tab the content script runs in, if any
}

// FromTab reports whether the sender is a content script attached to a
// real tab.
func (s Sender) FromTab() bool {
	return s.TabID.Valid()
}

// Request is a control message as received from the bridge.
type Request struct {
	Type    MessageType    `json:"type"`
	Payload map[string]any `json:"payload,omitempty"`
	Sender  Sender         `json:"sender"`
}

// Response is the single reply to a Request. Exactly one of
// {"success": true, ...} or {"error": "..."} holds, on every path.
type Response map[string]any

// OKResponse builds a success response with optional extra fields.
func OKResponse(fields map[string]any) Response {
	r := Response{"success": true}
	for k, v := range fields {
		r[k] = v
	}
	return r
}

// ErrResponse builds an error response carrying the given message.
func ErrResponse(msg string) Response {
	return Response{"error": msg}
}

// OK reports whether the response is a success response.
func (r Response) OK() bool {
	ok, _ := r["success"].(bool)
	return ok
}

// ErrorMessage returns the error string, or "" for success responses.
func (r Response) ErrorMessage() string {
	msg, _ := r["error"].(string)
	return msg
}

// SelectionCounts is the per-tab accounting of a selection operation.
type SelectionCounts struct {
	Success int `json:"success"`
	Skipped int `json:"skipped"`
	Errors  int `json:"errors"`
	Total   int `json:"total"`
}
