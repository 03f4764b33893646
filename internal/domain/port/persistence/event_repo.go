package persistence

import (
	"context"

	"github.com/amirhossein-jamali/credit-ledger/internal/domain/entity"
)

// EventRepository stores the append-only audit feed
type EventRepository interface {
	// Append allocates the next event sequence number, stores the event and sets event.Seq
	Append(ctx context.Context, event *entity.Event) error

	// ListAfter returns up to limit events with seq greater than afterSeq in ascending order
	ListAfter(ctx context.Context, afterSeq uint64, limit int) ([]*entity.Event, error)

	// Count returns the number of stored events
	Count(ctx context.Context) (uint64, error)
}
