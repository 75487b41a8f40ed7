// Package bridge connects the coordinator to the extension side over a
// JSON WebSocket: inbound control requests and lifecycle events, outbound
// RPC to the collaborators living in the extension process.
package bridge

import (
	"encoding/json"

	"github.com/tabnap/tabnap/internal/domain/entity"
)

// Frame kinds on the wire.
const (
	frameRequest   = "request"   // extension -> daemon control message
	frameResponse  = "response"  // reply in either direction, matched by id
	frameEvent     = "event"     // extension -> daemon lifecycle event
	frameCall      = "call"      // daemon -> extension RPC
	frameBroadcast = "broadcast" // daemon -> extension fire-and-forget
)

// frame is the single wire envelope. Unused fields stay empty per kind.
type frame struct {
	Kind    string          `json:"kind"`
	ID      string          `json:"id,omitempty"`
	Type    string          `json:"type,omitempty"`   // request: message type
	Name    string          `json:"name,omitempty"`   // event/broadcast name
	Method  string          `json:"method,omitempty"` // call: RPC method
	Payload json.RawMessage `json:"payload,omitempty"`
	Params  any             `json:"params,omitempty"`
	Sender  *entity.Sender  `json:"sender,omitempty"`

	// response fields
	Response entity.Response `json:"response,omitempty"`
	Result   json.RawMessage `json:"result,omitempty"`
	Error    string          `json:"error,omitempty"`
	Code     string          `json:"code,omitempty"`
}

// RPC error codes the extension side may attach to a response.
const (
	codeTabNotFound    = "tabNotFound"
	codeWindowNotFound = "windowNotFound"
)
