package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockSessionManager is a testify mock of port.SessionManager.
type MockSessionManager struct {
	mock.Mock
}

// NewMockSessionManager creates a mock wired to the test lifecycle.
func NewMockSessionManager(t mockConstructorTestingT) *MockSessionManager {
	m := &MockSessionManager{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockSessionManager) AutoSaveEnabled(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

func (m *MockSessionManager) SaveSession(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
