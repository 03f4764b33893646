package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/credit-ledger/internal/domain/entity"
	"github.com/amirhossein-jamali/credit-ledger/internal/infrastructure/adapter/logger"
)

type mockChannel struct {
	mock.Mock
}

func (m *mockChannel) ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error {
	return m.Called(name, kind, durable, autoDelete, internal, noWait, args).Error(0)
}

func (m *mockChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	return m.Called(ctx, exchange, key, mandatory, immediate, msg).Error(0)
}

func (m *mockChannel) Close() error {
	return m.Called().Error(0)
}

var verified = entity.Event{
	Seq:       12,
	Kind:      entity.EventTransactionVerified,
	SubjectID: 4,
	Actor:     "0x9999999999999999999999999999999999999999",
	Payload:   map[string]string{"amount": "100", "status": "Verified"},
	Timestamp: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
}

func TestRabbitMQPublisher(t *testing.T) {
	t.Run("Publishes JSON to the topic exchange keyed by kind", func(t *testing.T) {
		ch := &mockChannel{}
		ch.On("ExchangeDeclare", "ledger.events", "topic", true, false, false, false, amqp.Table(nil)).Return(nil).Once()

		var sent amqp.Publishing
		ch.On("PublishWithContext", mock.Anything, "ledger.events", "TransactionVerified", false, false, mock.Anything).
			Run(func(args mock.Arguments) { sent = args.Get(5).(amqp.Publishing) }).
			Return(nil).Once()
		ch.On("Close").Return(nil).Once()

		publisher, err := newRabbitMQPublisher(ch, "ledger.events", logger.NewNoopLogger())
		require.NoError(t, err)
		require.NoError(t, publisher.Publish(context.Background(), verified))

		assert.Equal(t, "application/json", sent.ContentType)
		assert.Equal(t, amqp.Persistent, sent.DeliveryMode)
		assert.Equal(t, "12", sent.MessageId)

		var body EventMessage
		require.NoError(t, json.Unmarshal(sent.Body, &body))
		assert.Equal(t, NewEventMessage(verified), body)
		assert.Equal(t, "2024-03-01T12:00:00Z", body.Timestamp)

		require.NoError(t, publisher.Close())
		assert.ErrorIs(t, publisher.Publish(context.Background(), verified), ErrPublisherClosed)
		assert.NoError(t, publisher.Close())
		ch.AssertExpectations(t)
	})

	t.Run("Broker errors are returned", func(t *testing.T) {
		ch := &mockChannel{}
		ch.On("ExchangeDeclare", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
		ch.On("PublishWithContext", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(amqp.ErrClosed)

		publisher, err := newRabbitMQPublisher(ch, "ledger.events", logger.NewNoopLogger())
		require.NoError(t, err)

		assert.ErrorIs(t, publisher.Publish(context.Background(), verified), amqp.ErrClosed)
	})

	t.Run("A failed exchange declaration closes the channel", func(t *testing.T) {
		ch := &mockChannel{}
		ch.On("ExchangeDeclare", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(errors.New("access refused"))
		ch.On("Close").Return(nil).Once()

		_, err := newRabbitMQPublisher(ch, "ledger.events", logger.NewNoopLogger())

		assert.ErrorContains(t, err, "access refused")
		ch.AssertExpectations(t)
	})
}

func TestLogPublisher(t *testing.T) {
	publisher := NewLogPublisher(logger.NewNoopLogger())

	assert.NoError(t, publisher.Publish(context.Background(), verified))
	assert.NoError(t, publisher.Close())
}
