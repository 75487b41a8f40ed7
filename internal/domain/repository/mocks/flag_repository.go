// Package mocks contains testify mocks for the repository interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/tabnap/tabnap/internal/domain/entity"
)

// MockFlagRepository is a testify mock of repository.FlagRepository.
type MockFlagRepository struct {
	mock.Mock
}

type mockConstructorTestingT interface {
	mock.TestingT
	Cleanup(func())
}

// NewMockFlagRepository creates a mock wired to the test lifecycle.
func NewMockFlagRepository(t mockConstructorTestingT) *MockFlagRepository {
	m := &MockFlagRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockFlagRepository) Get(ctx context.Context, name string) (entity.DurableFlag, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(entity.DurableFlag), args.Error(1)
}

func (m *MockFlagRepository) Set(ctx context.Context, name string, value bool) error {
	args := m.Called(ctx, name, value)
	return args.Error(0)
}
