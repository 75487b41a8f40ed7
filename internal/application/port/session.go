package port

import "context"

// SessionManager is the external session auto-save collaborator.
type SessionManager interface {
	// AutoSaveEnabled reports whether periodic session saving is on.
	AutoSaveEnabled(ctx context.Context) (bool, error)

	// SaveSession snapshots the current session.
	SaveSession(ctx context.Context) error
}
