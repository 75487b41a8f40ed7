// Package mocks contains testify mocks for the application ports.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/tabnap/tabnap/internal/domain/entity"
)

type mockConstructorTestingT interface {
	mock.TestingT
	Cleanup(func())
}

// MockHost is a testify mock of port.Host.
type MockHost struct {
	mock.Mock
}

// NewMockHost creates a mock wired to the test lifecycle.
func NewMockHost(t mockConstructorTestingT) *MockHost {
	m := &MockHost{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockHost) GetTab(ctx context.Context, id entity.TabID) (entity.Tab, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(entity.Tab), args.Error(1)
}

func (m *MockHost) QueryTabs(ctx context.Context) ([]entity.Tab, error) {
	args := m.Called(ctx)
	tabs, _ := args.Get(0).([]entity.Tab)
	return tabs, args.Error(1)
}

func (m *MockHost) ActiveTabs(ctx context.Context) ([]entity.Tab, error) {
	args := m.Called(ctx)
	tabs, _ := args.Get(0).([]entity.Tab)
	return tabs, args.Error(1)
}

func (m *MockHost) ActiveTabInWindow(ctx context.Context, windowID entity.WindowID) (entity.Tab, bool, error) {
	args := m.Called(ctx, windowID)
	return args.Get(0).(entity.Tab), args.Bool(1), args.Error(2)
}

func (m *MockHost) CurrentWindow(ctx context.Context) (entity.WindowID, error) {
	args := m.Called(ctx)
	return args.Get(0).(entity.WindowID), args.Error(1)
}

func (m *MockHost) LastFocusedWindow(ctx context.Context) (entity.WindowID, error) {
	args := m.Called(ctx)
	return args.Get(0).(entity.WindowID), args.Error(1)
}

func (m *MockHost) ListWindows(ctx context.Context) ([]entity.WindowID, error) {
	args := m.Called(ctx)
	ids, _ := args.Get(0).([]entity.WindowID)
	return ids, args.Error(1)
}

func (m *MockHost) ReloadTab(ctx context.Context, id entity.TabID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockHost) Broadcast(ctx context.Context, name string, payload map[string]any) error {
	args := m.Called(ctx, name, payload)
	return args.Error(0)
}

func (m *MockHost) OpenSettings(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
