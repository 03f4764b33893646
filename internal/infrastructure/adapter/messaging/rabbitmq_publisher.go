package messaging

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/amirhossein-jamali/credit-ledger/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/credit-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/credit-ledger/internal/domain/port/messaging"
)

// ErrPublisherClosed is returned by Publish after Close
var ErrPublisherClosed = errors.New("publisher closed")

const publishTimeout = 5 * time.Second

// Config holds the broker settings
type Config struct {
	URL      string
	Exchange string
}

// channel is the part of *amqp.Channel the publisher uses
type channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// RabbitMQPublisher publishes events to a durable topic exchange with the event kind as routing key
type RabbitMQPublisher struct {
	conn     *amqp.Connection
	ch       channel
	exchange string
	logger   coreport.Logger

	mu     sync.Mutex
	closed bool
}

// NewRabbitMQPublisher dials the broker and declares the exchange
func NewRabbitMQPublisher(cfg Config, logger coreport.Logger) (*RabbitMQPublisher, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		logger.Error("Failed to connect to RabbitMQ", map[string]any{"error": err.Error()})
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	publisher, err := newRabbitMQPublisher(ch, cfg.Exchange, logger)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	publisher.conn = conn

	logger.Info("Successfully connected to RabbitMQ", map[string]any{"exchange": cfg.Exchange})
	return publisher, nil
}

func newRabbitMQPublisher(ch channel, exchange string, logger coreport.Logger) (*RabbitMQPublisher, error) {
	if err := ch.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", exchange, err)
	}

	return &RabbitMQPublisher{
		ch:       ch,
		exchange: exchange,
		logger:   logger,
	}, nil
}

// Publish sends the event as a persistent JSON message
func (p *RabbitMQPublisher) Publish(ctx context.Context, event entity.Event) error {
	body, err := marshalEvent(event)
	if err != nil {
		return fmt.Errorf("failed to encode event %d: %w", event.Seq, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrPublisherClosed
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    fmt.Sprintf("%d", event.Seq),
		Timestamp:    event.Timestamp,
		Type:         string(event.Kind),
		Body:         body,
	}
	if err := p.ch.PublishWithContext(ctx, p.exchange, string(event.Kind), false, false, msg); err != nil {
		return fmt.Errorf("failed to publish event %d: %w", event.Seq, err)
	}
	return nil
}

// Close closes the channel and the connection
func (p *RabbitMQPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true

	err := p.ch.Close()
	if p.conn != nil && !p.conn.IsClosed() {
		err = errors.Join(err, p.conn.Close())
	}
	return err
}

var _ messaging.EventPublisher = (*RabbitMQPublisher)(nil)
