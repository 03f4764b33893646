package record

import (
	"context"

	"github.com/amirhossein-jamali/credit-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/credit-ledger/internal/domain/error"
)

// UpdateRecord overwrites name, email and age of a record.
// Errors are checked in order: unknown id, caller not the owner, invalid fields.
func (s *Service) UpdateRecord(ctx context.Context, caller entity.Address, id uint64, fields entity.RecordFields) error {
	var event *entity.Event

	err := s.executor.Execute(ctx, OpUpdateRecord, func(txCtx context.Context) error {
		records := s.uow.GetRecordRepository(txCtx)

		record, err := records.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		if err := record.Amend(caller, fields, s.timeProvider); err != nil {
			return err
		}
		if err := records.Update(txCtx, record); err != nil {
			return err
		}

		updated := entity.NewRecordEvent(entity.EventRecordUpdated, record, caller)
		if err := s.uow.GetEventRepository(txCtx).Append(txCtx, updated); err != nil {
			return err
		}

		event = updated
		return nil
	})
	s.observe(OpUpdateRecord, err)
	if err != nil {
		fields := errs.LogFields(err)
		fields["record_id"] = id
		s.logger.Debug("Record not updated", fields)
		return err
	}

	s.logger.Info("Record updated", map[string]any{
		"record_id": id,
		"owner":     caller,
	})
	s.dispatcher.Dispatch(ctx, event)

	return nil
}
