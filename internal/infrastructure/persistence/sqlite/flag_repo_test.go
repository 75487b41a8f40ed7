package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabnap/tabnap/internal/domain/entity"
	"github.com/tabnap/tabnap/internal/domain/repository"
	"github.com/tabnap/tabnap/internal/infrastructure/persistence/sqlite"
	"github.com/tabnap/tabnap/internal/logging"
)

func testContext() context.Context {
	logger := zerolog.New(zerolog.NewConsoleWriter()).Level(zerolog.Disabled)
	return logging.WithContext(context.Background(), logger)
}

func newTestRepo(t *testing.T) (repository.FlagRepository, string) {
	t.Helper()
	ctx := testContext()

	path := filepath.Join(t.TempDir(), "tabnap.db")
	db, err := sqlite.NewConnection(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo, err := sqlite.NewFlagRepository(ctx, db)
	require.NoError(t, err)
	return repo, path
}

func TestFlagRepository_UnwrittenFlagReadsAsZero(t *testing.T) {
	ctx := testContext()
	repo, _ := newTestRepo(t)

	flag, err := repo.Get(ctx, entity.FlagBulkOperationRunning)
	require.NoError(t, err)
	assert.False(t, flag.Value)
	assert.True(t, flag.UpdatedAt.IsZero())
}

func TestFlagRepository_SetThenGetRoundTrips(t *testing.T) {
	ctx := testContext()
	repo, _ := newTestRepo(t)

	before := time.Now().Add(-time.Second)
	require.NoError(t, repo.Set(ctx, entity.FlagBulkOperationRunning, true))

	flag, err := repo.Get(ctx, entity.FlagBulkOperationRunning)
	require.NoError(t, err)
	assert.True(t, flag.Value)
	assert.True(t, flag.UpdatedAt.After(before))

	require.NoError(t, repo.Set(ctx, entity.FlagBulkOperationRunning, false))
	flag, err = repo.Get(ctx, entity.FlagBulkOperationRunning)
	require.NoError(t, err)
	assert.False(t, flag.Value)
}

func TestFlagRepository_SurvivesReopen(t *testing.T) {
	ctx := testContext()
	repo, path := newTestRepo(t)

	require.NoError(t, repo.Set(ctx, entity.FlagFaviconRefreshRunning, true))

	// A fresh connection to the same file sees the flag: this is what lets
	// the watchdog recover after a process restart.
	db, err := sqlite.NewConnection(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	reopened, err := sqlite.NewFlagRepository(ctx, db)
	require.NoError(t, err)

	flag, err := reopened.Get(ctx, entity.FlagFaviconRefreshRunning)
	require.NoError(t, err)
	assert.True(t, flag.Value)
	assert.False(t, flag.UpdatedAt.IsZero())
}

func TestFlagRepository_FlagsAreIndependent(t *testing.T) {
	ctx := testContext()
	repo, _ := newTestRepo(t)

	require.NoError(t, repo.Set(ctx, entity.FlagBulkOperationRunning, true))

	flag, err := repo.Get(ctx, entity.FlagFaviconRefreshRunning)
	require.NoError(t, err)
	assert.False(t, flag.Value)
}
