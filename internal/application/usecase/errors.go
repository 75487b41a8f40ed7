package usecase

import "errors"

// Router-boundary error taxonomy. The string values are the wire-visible
// error messages, so they stay stable.
var (
	ErrPermissionDenied        = errors.New("permission denied")
	ErrInvalidPayload          = errors.New("invalid payload")
	ErrUnknownMessageType      = errors.New("Unknown message type")
	ErrOperationAlreadyRunning = errors.New("operation already running")
	ErrNotFound                = errors.New("not found")
)
