package ledger

import (
	"context"

	"github.com/amirhossein-jamali/credit-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/credit-ledger/internal/domain/error"
)

// GetTransaction returns one transaction
func (s *Service) GetTransaction(ctx context.Context, id uint64) (*entity.Transaction, error) {
	txn, err := s.uow.GetTransactionRepository(ctx).GetByID(ctx, id)
	s.observe(OpGetTransaction, err)
	return txn, err
}

// ListTransactions returns transactions matching filter in id order. No match is an empty list.
func (s *Service) ListTransactions(ctx context.Context, filter entity.TransactionFilter) ([]*entity.Transaction, error) {
	if filter.Status != nil && !filter.Status.IsValid() {
		err := errs.NewValidationError("status", errs.ErrInvalidStatus)
		s.observe(OpListTransactions, err)
		return nil, err
	}

	txns, err := s.uow.GetTransactionRepository(ctx).List(ctx, filter.Normalized())
	s.observe(OpListTransactions, err)
	return txns, err
}

// GetCredits returns the credit balance of addr, 0 for an address never credited
func (s *Service) GetCredits(ctx context.Context, addr entity.Address) (uint64, error) {
	if err := addr.Validate(); err != nil {
		err = errs.NewValidationError("address", err)
		s.observe(OpGetCredits, err)
		return 0, err
	}

	balance, err := s.uow.GetCreditRepository(ctx).Get(ctx, addr)
	s.observe(OpGetCredits, err)
	if err != nil {
		return 0, err
	}
	return balance.Balance(), nil
}
