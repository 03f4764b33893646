package core

import (
	"time"

	"github.com/stretchr/testify/mock"

	coreport "github.com/amirhossein-jamali/credit-ledger/internal/domain/port/core"
)

// MockTimeProvider is a testify mock of core.TimeProvider
type MockTimeProvider struct {
	mock.Mock
}

// NewMockTimeProvider creates a mock that asserts its expectations on cleanup
func NewMockTimeProvider(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockTimeProvider {
	m := &MockTimeProvider{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// NewFixedTimeProvider returns a mock whose clock is stopped at at
func NewFixedTimeProvider(t interface {
	mock.TestingT
	Cleanup(func())
}, at time.Time) *MockTimeProvider {
	m := NewMockTimeProvider(t)
	m.On("Now").Return(at).Maybe()
	m.On("Since", mock.Anything).Return(coreport.Duration(0)).Maybe()
	m.On("Sleep", mock.Anything).Return().Maybe()
	return m
}

// Now provides a mock function
func (m *MockTimeProvider) Now() time.Time {
	args := m.Called()
	return args.Get(0).(time.Time)
}

// Since provides a mock function
func (m *MockTimeProvider) Since(t time.Time) coreport.Duration {
	args := m.Called(t)
	return args.Get(0).(coreport.Duration)
}

// Sleep provides a mock function
func (m *MockTimeProvider) Sleep(d coreport.Duration) {
	m.Called(d)
}
