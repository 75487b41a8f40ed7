// Package memory provides in-memory repository implementations, used by
// tests and by runs that do not need durability.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/tabnap/tabnap/internal/domain/entity"
	"github.com/tabnap/tabnap/internal/domain/repository"
)

// FlagRepository is a map-backed FlagRepository. The Now hook lets tests
// control timestamps.
type FlagRepository struct {
	mu    sync.Mutex
	flags map[string]entity.DurableFlag

	Now func() time.Time
}

// NewFlagRepository creates an empty in-memory flag store.
func NewFlagRepository() *FlagRepository {
	return &FlagRepository{
		flags: make(map[string]entity.DurableFlag),
		Now:   time.Now,
	}
}

var _ repository.FlagRepository = (*FlagRepository)(nil)

func (r *FlagRepository) Get(_ context.Context, name string) (entity.DurableFlag, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	flag, ok := r.flags[name]
	if !ok {
		return entity.DurableFlag{Name: name}, nil
	}
	return flag, nil
}

func (r *FlagRepository) Set(_ context.Context, name string, value bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.flags[name] = entity.DurableFlag{Name: name, Value: value, UpdatedAt: r.Now()}
	return nil
}

// Seed writes a flag with an explicit timestamp, for restart scenarios.
func (r *FlagRepository) Seed(name string, value bool, updatedAt time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.flags[name] = entity.DurableFlag{Name: name, Value: value, UpdatedAt: updatedAt}
}
