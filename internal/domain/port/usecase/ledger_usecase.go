package usecase

import (
	"context"

	"github.com/amirhossein-jamali/credit-ledger/internal/domain/entity"
)

// LedgerUseCase defines the transaction workflow and credit ledger operations
type LedgerUseCase interface {
	ProposeTransaction(ctx context.Context, caller entity.Address, proposal entity.Proposal) (uint64, error)
	VerifyTransaction(ctx context.Context, caller entity.Address, id uint64) error
	RejectTransaction(ctx context.Context, caller entity.Address, id uint64) error
	GetTransaction(ctx context.Context, id uint64) (*entity.Transaction, error)
	ListTransactions(ctx context.Context, filter entity.TransactionFilter) ([]*entity.Transaction, error)
	GetCredits(ctx context.Context, addr entity.Address) (uint64, error)
	Authority() entity.Address
}
