package usecase

import (
	"context"

	"github.com/amirhossein-jamali/credit-ledger/internal/domain/entity"
)

// RecordUseCase defines the record store operations
type RecordUseCase interface {
	// StoreRecord appends a record owned by caller and returns its id
	StoreRecord(ctx context.Context, caller entity.Address, fields entity.RecordFields) (uint64, error)

	// UpdateRecord overwrites the fields of a record owned by caller
	UpdateRecord(ctx context.Context, caller entity.Address, id uint64, fields entity.RecordFields) error

	// GetRecordsByOwner returns the owner's records in creation order, NotFound when none
	GetRecordsByOwner(ctx context.Context, owner entity.Address) ([]*entity.UserRecord, error)

	// GetMyRecords is GetRecordsByOwner for the caller
	GetMyRecords(ctx context.Context, caller entity.Address) ([]*entity.UserRecord, error)

	// GetRecordByID returns one record
	GetRecordByID(ctx context.Context, id uint64) (*entity.UserRecord, error)

	// TotalRecords returns the number of ids ever issued
	TotalRecords(ctx context.Context) (uint64, error)
}
