package persistence

import (
	"context"

	"github.com/amirhossein-jamali/credit-ledger/internal/domain/entity"
)

// RecordRepository stores user records and the owner index
type RecordRepository interface {
	// Create inserts a record whose id was allocated from the records sequence.
	// The owner index is updated as part of the same write.
	Create(ctx context.Context, record *entity.UserRecord) error

	// Update overwrites name, email, age and updatedAt of an existing record
	//
	// Possible errors:
	// - ErrRecordNotFound: If no record has the id
	Update(ctx context.Context, record *entity.UserRecord) error

	// GetByID retrieves a record by id
	//
	// Possible errors:
	// - ErrRecordNotFound: If no record has the id
	GetByID(ctx context.Context, id uint64) (*entity.UserRecord, error)

	// ListByOwner returns the owner's records in creation order; empty when none
	ListByOwner(ctx context.Context, owner entity.Address) ([]*entity.UserRecord, error)

	// Count returns the number of persisted records
	Count(ctx context.Context) (uint64, error)
}
