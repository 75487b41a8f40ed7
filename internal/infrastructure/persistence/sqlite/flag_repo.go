package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tabnap/tabnap/internal/domain/entity"
	"github.com/tabnap/tabnap/internal/domain/repository"
	"github.com/tabnap/tabnap/internal/logging"
)

const flagSchema = `
CREATE TABLE IF NOT EXISTS durable_flags (
	name       TEXT PRIMARY KEY,
	value      INTEGER NOT NULL DEFAULT 0,
	updated_at TEXT NOT NULL
);`

type flagRepo struct {
	db *sql.DB
}

// NewFlagRepository creates the durable-flag repository, creating its
// table on first use.
func NewFlagRepository(ctx context.Context, db *sql.DB) (repository.FlagRepository, error) {
	if _, err := db.ExecContext(ctx, flagSchema); err != nil {
		return nil, fmt.Errorf("create durable_flags table: %w", err)
	}
	return &flagRepo{db: db}, nil
}

// Get reads the flag straight from storage. A never-written flag reads as
// a zero value, not an error.
func (r *flagRepo) Get(ctx context.Context, name string) (entity.DurableFlag, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT value, updated_at FROM durable_flags WHERE name = ?`, name)

	var value int
	var updatedAt string
	if err := row.Scan(&value, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.DurableFlag{Name: name}, nil
		}
		return entity.DurableFlag{}, fmt.Errorf("read flag %q: %w", name, err)
	}

	ts, err := time.Parse(time.RFC3339Nano, updatedAt)
	if err != nil {
		return entity.DurableFlag{}, fmt.Errorf("parse flag %q timestamp: %w", name, err)
	}

	return entity.DurableFlag{Name: name, Value: value != 0, UpdatedAt: ts}, nil
}

// Set upserts the flag and stamps its update time.
func (r *flagRepo) Set(ctx context.Context, name string, value bool) error {
	log := logging.FromContext(ctx)

	intValue := 0
	if value {
		intValue = 1
	}
	now := time.Now().UTC().Format(time.RFC3339Nano)

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO durable_flags (name, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		name, intValue, now)
	if err != nil {
		return fmt.Errorf("write flag %q: %w", name, err)
	}

	log.Debug().Str("flag", name).Bool("value", value).Msg("durable flag written")
	return nil
}
