package repository

import (
	"context"

	"github.com/tabnap/tabnap/internal/domain/entity"
)

// FlagRepository persists durable flags. Reads always hit the backing
// store; there is no authoritative in-memory copy, so a freshly restarted
// process observes the pre-restart value.
type FlagRepository interface {
	// Get returns the flag, or a zero-value flag if it was never written.
	Get(ctx context.Context, name string) (entity.DurableFlag, error)

	// Set writes the flag and stamps its update time.
	Set(ctx context.Context, name string, value bool) error
}
