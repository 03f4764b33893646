package messaging

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/amirhossein-jamali/credit-ledger/internal/domain/entity"
)

// MockEventPublisher is a testify mock of messaging.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

// NewMockEventPublisher creates a mock that asserts its expectations on cleanup
func NewMockEventPublisher(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockEventPublisher {
	m := &MockEventPublisher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Publish provides a mock function
func (m *MockEventPublisher) Publish(ctx context.Context, event entity.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// Close provides a mock function
func (m *MockEventPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}

// Published returns the events passed to Publish in call order
func (m *MockEventPublisher) Published() []entity.Event {
	var events []entity.Event
	for _, call := range m.Calls {
		if call.Method == "Publish" {
			events = append(events, call.Arguments.Get(1).(entity.Event))
		}
	}
	return events
}
