package notification

import (
	"context"

	"github.com/amirhossein-jamali/credit-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/credit-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/credit-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/credit-ledger/internal/domain/port/messaging"
)

// Dispatcher hands committed events to the publisher.
// The event is already stored, so a failed publish is logged and counted, never returned.
type Dispatcher struct {
	publisher messaging.EventPublisher
	logger    coreport.Logger
	metrics   coreport.Metrics
}

// NewDispatcher creates a dispatcher; a nil publisher disables delivery
func NewDispatcher(publisher messaging.EventPublisher, logger coreport.Logger, metrics coreport.Metrics) *Dispatcher {
	return &Dispatcher{
		publisher: publisher,
		logger:    logger,
		metrics:   metrics,
	}
}

// Dispatch publishes event. It must only be called after the unit of work that stored it committed.
func (d *Dispatcher) Dispatch(ctx context.Context, event *entity.Event) {
	if d == nil || d.publisher == nil || event == nil {
		return
	}

	if err := d.publisher.Publish(context.WithoutCancel(ctx), *event); err != nil {
		d.metrics.RecordPublishFailure(string(event.Kind))
		d.logger.Warn("Failed to publish event", map[string]any{
			"seq":        event.Seq,
			"kind":       event.Kind,
			"subject_id": event.SubjectID,
			"error":      err.Error(),
		})
	}
}

// Outcome returns the metrics outcome label for err
func Outcome(err error) string {
	if err == nil {
		return coreport.OutcomeSuccess
	}
	return errs.Kind(err)
}
