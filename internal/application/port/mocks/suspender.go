package mocks

import (
	"context"

	"github.com/tabnap/tabnap/internal/application/port"
	"github.com/tabnap/tabnap/internal/domain/entity"

	"github.com/stretchr/testify/mock"
)

// MockSuspender is a testify mock of port.Suspender.
type MockSuspender struct {
	mock.Mock
}

// NewMockSuspender creates a mock wired to the test lifecycle.
func NewMockSuspender(t mockConstructorTestingT) *MockSuspender {
	m := &MockSuspender{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockSuspender) SuspendTab(ctx context.Context, id entity.TabID, opts port.SuspendOptions) error {
	args := m.Called(ctx, id, opts)
	return args.Error(0)
}

func (m *MockSuspender) UnsuspendTab(ctx context.Context, id entity.TabID, opts port.SuspendOptions) error {
	args := m.Called(ctx, id, opts)
	return args.Error(0)
}

func (m *MockSuspender) SuspendAllTabsInWindow(ctx context.Context, windowID entity.WindowID) error {
	args := m.Called(ctx, windowID)
	return args.Error(0)
}

func (m *MockSuspender) UnsuspendAllTabsInWindow(ctx context.Context, windowID entity.WindowID) error {
	args := m.Called(ctx, windowID)
	return args.Error(0)
}

func (m *MockSuspender) SuspendAllTabs(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSuspender) UnsuspendAllTabs(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSuspender) ShouldSkipTabForScheduling(ctx context.Context, tab entity.Tab, strict bool) (string, error) {
	args := m.Called(ctx, tab, strict)
	return args.String(0), args.Error(1)
}

func (m *MockSuspender) ClearFaviconCache(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
