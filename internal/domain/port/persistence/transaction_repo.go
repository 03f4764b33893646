package persistence

import (
	"context"

	"github.com/amirhossein-jamali/credit-ledger/internal/domain/entity"
)

// TransactionRepository stores ledger transactions
type TransactionRepository interface {
	// Create inserts a Proposed transaction with an allocated id
	Create(ctx context.Context, txn *entity.Transaction) error

	// UpdateStatus persists the decision fields of a transaction
	//
	// Possible errors:
	// - ErrTransactionNotFound: If no transaction has the id
	UpdateStatus(ctx context.Context, txn *entity.Transaction) error

	// GetByID retrieves a transaction by id
	//
	// Possible errors:
	// - ErrTransactionNotFound: If no transaction has the id
	GetByID(ctx context.Context, id uint64) (*entity.Transaction, error)

	// List returns transactions matching the filter ordered by id ascending
	List(ctx context.Context, filter entity.TransactionFilter) ([]*entity.Transaction, error)

	// Count returns the number of persisted transactions
	Count(ctx context.Context) (uint64, error)

	// SumAmount returns the total amount of transactions in the given status
	SumAmount(ctx context.Context, status entity.TransactionStatus) (uint64, error)
}
