package messaging

import (
	"context"

	"github.com/amirhossein-jamali/credit-ledger/internal/domain/entity"
)

// EventPublisher delivers committed events to subscribers outside the store.
// Delivery is best effort; the store remains the source of truth.
type EventPublisher interface {
	Publish(ctx context.Context, event entity.Event) error
	Close() error
}
