package messaging

import (
	"context"

	"github.com/amirhossein-jamali/credit-ledger/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/credit-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/credit-ledger/internal/domain/port/messaging"
)

// LogPublisher writes every event to the structured log. It is the default when no broker is configured.
type LogPublisher struct {
	logger coreport.Logger
}

// NewLogPublisher creates a new LogPublisher
func NewLogPublisher(logger coreport.Logger) *LogPublisher {
	return &LogPublisher{logger: logger.With(map[string]any{"component": "events"})}
}

// Publish logs the event
func (p *LogPublisher) Publish(_ context.Context, event entity.Event) error {
	p.logger.Info("Event", map[string]any{
		"seq":        event.Seq,
		"kind":       event.Kind,
		"subject_id": event.SubjectID,
		"actor":      event.Actor,
		"payload":    event.Payload,
		"timestamp":  event.Timestamp,
	})
	return nil
}

// Close flushes the logger
func (p *LogPublisher) Close() error {
	p.logger.Flush()
	return nil
}

var _ messaging.EventPublisher = (*LogPublisher)(nil)
