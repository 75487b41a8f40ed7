package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockPreferences is a testify mock of port.Preferences.
type MockPreferences struct {
	mock.Mock
}

// NewMockPreferences creates a mock wired to the test lifecycle.
func NewMockPreferences(t mockConstructorTestingT) *MockPreferences {
	m := &MockPreferences{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockPreferences) Settings(ctx context.Context) (map[string]any, error) {
	args := m.Called(ctx)
	settings, _ := args.Get(0).(map[string]any)
	return settings, args.Error(1)
}

func (m *MockPreferences) SaveSettings(ctx context.Context, settings map[string]any) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}

func (m *MockPreferences) SaveWhitelist(ctx context.Context, patterns []string) error {
	args := m.Called(ctx, patterns)
	return args.Error(0)
}

func (m *MockPreferences) NeverSuspendLastWindow(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}
