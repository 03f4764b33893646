package record

import (
	"context"

	"github.com/amirhossein-jamali/credit-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/credit-ledger/internal/domain/error"
)

// GetRecordsByOwner returns the owner's records in creation order.
// An owner without records yields ErrNoRecordsForOwner rather than an empty list.
func (s *Service) GetRecordsByOwner(ctx context.Context, owner entity.Address) ([]*entity.UserRecord, error) {
	records, err := s.listByOwner(ctx, owner)
	s.observe(OpGetRecordsByOwner, err)
	return records, err
}

// GetMyRecords returns the caller's own records
func (s *Service) GetMyRecords(ctx context.Context, caller entity.Address) ([]*entity.UserRecord, error) {
	return s.GetRecordsByOwner(ctx, caller)
}

func (s *Service) listByOwner(ctx context.Context, owner entity.Address) ([]*entity.UserRecord, error) {
	if err := owner.Validate(); err != nil {
		return nil, errs.NewValidationError("owner", err)
	}

	records, err := s.uow.GetRecordRepository(ctx).ListByOwner(ctx, owner)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errs.ErrNoRecordsForOwner
	}
	return records, nil
}

// GetRecordByID returns one record
func (s *Service) GetRecordByID(ctx context.Context, id uint64) (*entity.UserRecord, error) {
	record, err := s.uow.GetRecordRepository(ctx).GetByID(ctx, id)
	s.observe(OpGetRecordByID, err)
	return record, err
}

// TotalRecords returns the number of record ids ever issued
func (s *Service) TotalRecords(ctx context.Context) (uint64, error) {
	total, err := s.uow.GetSequenceRepository(ctx).Current(ctx, entity.SequenceRecords)
	s.observe(OpTotalRecords, err)
	return total, err
}
