package port

import "errors"

// ErrTabNotFound is returned by Host implementations when a tab vanished
// between lookup and use. Callers treat this as expected and non-fatal.
var ErrTabNotFound = errors.New("tab not found")

// ErrWindowNotFound is the window-side counterpart of ErrTabNotFound.
var ErrWindowNotFound = errors.New("window not found")
