package record

import (
	"context"
	"fmt"

	"github.com/amirhossein-jamali/credit-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/credit-ledger/internal/domain/error"
)

// StoreRecord appends a record owned by caller and returns its id
func (s *Service) StoreRecord(ctx context.Context, caller entity.Address, fields entity.RecordFields) (uint64, error) {
	var (
		id    uint64
		event *entity.Event
	)

	err := s.executor.Execute(ctx, OpStoreRecord, func(txCtx context.Context) error {
		if err := caller.Validate(); err != nil {
			return errs.NewValidationError("caller", err)
		}
		if err := fields.Validate(); err != nil {
			return err
		}

		next, err := s.uow.GetSequenceRepository(txCtx).Next(txCtx, entity.SequenceRecords)
		if err != nil {
			return fmt.Errorf("allocate record id: %w", err)
		}

		record, err := entity.NewUserRecord(next, caller, fields, s.timeProvider)
		if err != nil {
			return err
		}
		if err := s.uow.GetRecordRepository(txCtx).Create(txCtx, record); err != nil {
			return err
		}

		stored := entity.NewRecordEvent(entity.EventRecordStored, record, caller)
		if err := s.uow.GetEventRepository(txCtx).Append(txCtx, stored); err != nil {
			return err
		}

		id, event = next, stored
		return nil
	})
	s.observe(OpStoreRecord, err)
	if err != nil {
		s.logger.Debug("Record not stored", errs.LogFields(err))
		return 0, err
	}

	s.logger.Info("Record stored", map[string]any{
		"record_id": id,
		"owner":     caller,
	})
	s.dispatcher.Dispatch(ctx, event)

	return id, nil
}
