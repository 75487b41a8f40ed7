package usecase_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tabnap/tabnap/internal/application/port/mocks"
	"github.com/tabnap/tabnap/internal/application/usecase"
	"github.com/tabnap/tabnap/internal/domain/entity"
)

func reloadTabs(ids ...entity.TabID) []entity.Tab {
	tabs := make([]entity.Tab, 0, len(ids))
	for _, id := range ids {
		tabs = append(tabs, entity.Tab{ID: id, Suspended: true})
	}
	return tabs
}

func TestBatchReloader_ChunksRunInOrder(t *testing.T) {
	ctx := testContext()
	host := mocks.NewMockHost(t)
	clock := newFakeClock()
	reloader := usecase.NewBatchReloader(host, clock)

	var mu sync.Mutex
	var order []entity.TabID
	host.On("ReloadTab", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			mu.Lock()
			order = append(order, args.Get(1).(entity.TabID))
			mu.Unlock()
		}).
		Return(nil)

	cfg := entity.ReloadBatchConfig{
		BatchSize:       3,
		PerTabDelay:     300 * time.Millisecond,
		InterBatchDelay: time.Second,
	}

	var progress []int
	result, err := reloader.Run(ctx, reloadTabs(1, 2, 3, 4, 5, 6, 7), cfg, func(percent int) {
		progress = append(progress, percent)
	})
	require.NoError(t, err)

	assert.Equal(t, 7, result.Processed)
	assert.Equal(t, 0, result.Errors)
	assert.Equal(t, 7, result.Total)

	// Chunks of 3, 3, 1 settle strictly in order.
	require.Len(t, order, 7)
	assert.ElementsMatch(t, []entity.TabID{1, 2, 3}, order[:3])
	assert.ElementsMatch(t, []entity.TabID{4, 5, 6}, order[3:6])
	assert.Equal(t, entity.TabID(7), order[6])

	// Progress observed between chunks: 3/7 and 6/7.
	assert.Equal(t, []int{42, 85}, progress)

	// Two inter-batch waits happened.
	assert.GreaterOrEqual(t, result.Duration, 2*cfg.InterBatchDelay)
}

func TestBatchReloader_MemberFailureDoesNotAbort(t *testing.T) {
	ctx := testContext()
	host := mocks.NewMockHost(t)
	clock := newFakeClock()
	reloader := usecase.NewBatchReloader(host, clock)

	host.On("ReloadTab", mock.Anything, entity.TabID(4)).Return(errors.New("tab crashed"))
	host.On("ReloadTab", mock.Anything, mock.Anything).Return(nil)

	cfg := entity.ReloadBatchConfig{BatchSize: 3, InterBatchDelay: time.Second}

	result, err := reloader.Run(ctx, reloadTabs(1, 2, 3, 4, 5, 6, 7), cfg, nil)
	require.NoError(t, err)

	// The failing member is excluded from the processed count; siblings
	// and later chunks still ran.
	assert.Equal(t, 6, result.Processed)
	assert.Equal(t, 1, result.Errors)
	host.AssertNumberOfCalls(t, "ReloadTab", 7)
}

func TestBatchReloader_FiltersInvalidIDs(t *testing.T) {
	ctx := testContext()
	host := mocks.NewMockHost(t)
	clock := newFakeClock()
	reloader := usecase.NewBatchReloader(host, clock)

	host.On("ReloadTab", mock.Anything, entity.TabID(5)).Return(nil).Once()

	tabs := []entity.Tab{{ID: entity.TabIDNone}, {ID: 0}, {ID: 5}}
	result, err := reloader.Run(ctx, tabs, entity.ReloadBatchConfig{BatchSize: 2}, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Total)
	assert.Equal(t, 1, result.Processed)
}

func TestBatchReloader_EmptyInput(t *testing.T) {
	ctx := testContext()
	host := mocks.NewMockHost(t)
	clock := newFakeClock()
	reloader := usecase.NewBatchReloader(host, clock)

	result, err := reloader.Run(ctx, nil, entity.ReloadBatchConfig{BatchSize: 3}, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Total)
	assert.Equal(t, 0, result.Processed)
}
