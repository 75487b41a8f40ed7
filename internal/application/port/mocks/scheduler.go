package mocks

import (
	"context"

	"github.com/tabnap/tabnap/internal/application/port"
	"github.com/tabnap/tabnap/internal/domain/entity"

	"github.com/stretchr/testify/mock"
)

// MockScheduler is a testify mock of port.Scheduler.
type MockScheduler struct {
	mock.Mock
}

// NewMockScheduler creates a mock wired to the test lifecycle.
func NewMockScheduler(t mockConstructorTestingT) *MockScheduler {
	m := &MockScheduler{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockScheduler) ScheduleTab(ctx context.Context, tab entity.Tab) error {
	args := m.Called(ctx, tab)
	return args.Error(0)
}

func (m *MockScheduler) UnscheduleTab(ctx context.Context, id entity.TabID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockScheduler) ScheduleAllTabs(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockScheduler) ScanTabsForSuspension(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockScheduler) Snapshot(ctx context.Context) (port.SchedulingSnapshot, error) {
	args := m.Called(ctx)
	return args.Get(0).(port.SchedulingSnapshot), args.Error(1)
}

func (m *MockScheduler) DebouncedRescheduleAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
