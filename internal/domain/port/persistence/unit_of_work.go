package persistence

import (
	"context"
)

// UnitOfWork coordinates one atomic write across the repositories.
// Repositories obtained with a transactional context see and join that transaction.
type UnitOfWork interface {
	// Begin starts a new transaction and returns a transactional context
	Begin(ctx context.Context) (context.Context, error)

	// Commit commits the transaction in the given context
	Commit(ctx context.Context) error

	// Rollback rolls back the transaction in the given context
	Rollback(ctx context.Context) error

	// GetRecordRepository returns a record repository bound to the current transaction
	GetRecordRepository(ctx context.Context) RecordRepository

	// GetTransactionRepository returns a transaction repository bound to the current transaction
	GetTransactionRepository(ctx context.Context) TransactionRepository

	// GetCreditRepository returns a credit repository bound to the current transaction
	GetCreditRepository(ctx context.Context) CreditRepository

	// GetEventRepository returns an event repository bound to the current transaction
	GetEventRepository(ctx context.Context) EventRepository

	// GetSequenceRepository returns a sequence repository bound to the current transaction
	GetSequenceRepository(ctx context.Context) SequenceRepository
}
