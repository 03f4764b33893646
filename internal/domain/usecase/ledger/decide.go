package ledger

import (
	"context"

	"github.com/amirhossein-jamali/credit-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/credit-ledger/internal/domain/error"
)

// VerifyTransaction marks a Proposed transaction Verified and credits its amount to the
// credited person. Status change, credit and event are written in one unit of work.
func (s *Service) VerifyTransaction(ctx context.Context, caller entity.Address, id uint64) error {
	return s.decide(ctx, OpVerifyTransaction, caller, id)
}

// RejectTransaction marks a Proposed transaction Rejected. No credit is granted.
func (s *Service) RejectTransaction(ctx context.Context, caller entity.Address, id uint64) error {
	return s.decide(ctx, OpRejectTransaction, caller, id)
}

// decide applies a decision. Errors are checked in order:
// unknown id, caller not the authority, transaction already decided.
func (s *Service) decide(ctx context.Context, operation string, caller entity.Address, id uint64) error {
	var event *entity.Event

	err := s.executor.Execute(ctx, operation, func(txCtx context.Context) error {
		transactions := s.uow.GetTransactionRepository(txCtx)

		txn, err := transactions.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		if caller != s.authority {
			return errs.NewAuthorizationError(operation, caller.String(), s.authority.String(), errs.ErrNotAuthority)
		}

		kind := entity.EventTransactionRejected
		if operation == OpVerifyTransaction {
			kind = entity.EventTransactionVerified
			err = txn.Verify(caller, s.timeProvider)
		} else {
			err = txn.Reject(caller, s.timeProvider)
		}
		if err != nil {
			return err
		}

		if err := transactions.UpdateStatus(txCtx, txn); err != nil {
			return err
		}
		if txn.IsCredited() {
			if err := s.credit(txCtx, txn); err != nil {
				return err
			}
		}

		decided := entity.NewTransactionEvent(kind, txn, caller)
		if err := s.uow.GetEventRepository(txCtx).Append(txCtx, decided); err != nil {
			return err
		}

		event = decided
		return nil
	})
	s.observe(operation, err)
	if err != nil {
		fields := errs.LogFields(err)
		fields["transaction_id"] = id
		s.logger.Debug("Transaction decision refused", fields)
		return err
	}

	s.logger.Info("Transaction decided", map[string]any{
		"transaction_id": id,
		"status":         event.Payload["status"],
	})
	s.dispatcher.Dispatch(ctx, event)

	return nil
}

// credit grants txn.Amount to the credited person inside the current unit of work
func (s *Service) credit(txCtx context.Context, txn *entity.Transaction) error {
	credits := s.uow.GetCreditRepository(txCtx)

	balance, err := credits.Get(txCtx, txn.CreditedPerson)
	if err != nil {
		return err
	}
	if err := balance.Credit(txn.Amount, s.timeProvider); err != nil {
		return err
	}
	return credits.Save(txCtx, balance)
}
