package ledger

import (
	"context"
	"fmt"

	"github.com/amirhossein-jamali/credit-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/credit-ledger/internal/domain/error"
)

// ProposeTransaction stores a Proposed transaction with caller as seller and returns its id.
// Anyone may propose; nothing is credited until the authority verifies.
func (s *Service) ProposeTransaction(ctx context.Context, caller entity.Address, proposal entity.Proposal) (uint64, error) {
	var (
		id    uint64
		event *entity.Event
	)

	err := s.executor.Execute(ctx, OpProposeTransaction, func(txCtx context.Context) error {
		if err := proposal.Validate(); err != nil {
			return err
		}

		next, err := s.uow.GetSequenceRepository(txCtx).Next(txCtx, entity.SequenceTransactions)
		if err != nil {
			return fmt.Errorf("allocate transaction id: %w", err)
		}

		txn, err := entity.NewTransaction(next, caller, proposal, s.timeProvider)
		if err != nil {
			return err
		}
		if err := s.uow.GetTransactionRepository(txCtx).Create(txCtx, txn); err != nil {
			return err
		}

		proposed := entity.NewTransactionEvent(entity.EventTransactionProposed, txn, caller)
		if err := s.uow.GetEventRepository(txCtx).Append(txCtx, proposed); err != nil {
			return err
		}

		id, event = next, proposed
		return nil
	})
	s.observe(OpProposeTransaction, err)
	if err != nil {
		s.logger.Debug("Transaction not proposed", errs.LogFields(err))
		return 0, err
	}

	s.logger.Info("Transaction proposed", map[string]any{
		"transaction_id":  id,
		"seller":          caller,
		"credited_person": proposal.CreditedPerson,
		"amount":          proposal.Amount,
	})
	s.dispatcher.Dispatch(ctx, event)

	return id, nil
}
