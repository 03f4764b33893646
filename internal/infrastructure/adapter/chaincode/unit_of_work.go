package chaincode

import (
	"context"
	"errors"

	coreport "github.com/amirhossein-jamali/credit-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/credit-ledger/internal/domain/port/persistence"
)

var errNoWriteSet = errors.New("no unit of work in context")

// UnitOfWork buffers the writes of one invocation and flushes them to world state on commit.
// A rollback drops the buffer before anything reaches the stub.
type UnitOfWork struct {
	store  StateStore
	logger coreport.Logger
}

// NewUnitOfWork creates a unit of work over the invocation's state
func NewUnitOfWork(store StateStore, logger coreport.Logger) *UnitOfWork {
	return &UnitOfWork{store: store, logger: logger}
}

// Begin starts buffering writes
func (u *UnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	ws := &writeSet{writes: make(map[string][]byte)}
	return context.WithValue(ctx, writeSetKey, ws), nil
}

// Commit writes the buffered keys in the order they were first written
func (u *UnitOfWork) Commit(ctx context.Context) error {
	ws := writeSetFrom(ctx)
	if ws == nil {
		return errNoWriteSet
	}
	for _, key := range ws.order {
		if err := u.store.PutState(key, ws.writes[key]); err != nil {
			return err
		}
	}
	u.logger.Debug("Write set committed", map[string]any{"keys": len(ws.order)})
	ws.writes, ws.order = nil, nil
	return nil
}

// Rollback drops the buffered writes
func (u *UnitOfWork) Rollback(ctx context.Context) error {
	ws := writeSetFrom(ctx)
	if ws == nil {
		return errNoWriteSet
	}
	ws.writes, ws.order = map[string][]byte{}, nil
	return nil
}

// GetRecordRepository returns a record repository bound to the current write set
func (u *UnitOfWork) GetRecordRepository(ctx context.Context) persistence.RecordRepository {
	return &recordRepository{view: newView(ctx, u.store), sequences: u.sequences(ctx)}
}

// GetTransactionRepository returns a transaction repository bound to the current write set
func (u *UnitOfWork) GetTransactionRepository(ctx context.Context) persistence.TransactionRepository {
	return &transactionRepository{view: newView(ctx, u.store), sequences: u.sequences(ctx)}
}

// GetCreditRepository returns a credit repository bound to the current write set
func (u *UnitOfWork) GetCreditRepository(ctx context.Context) persistence.CreditRepository {
	return &creditRepository{view: newView(ctx, u.store)}
}

// GetEventRepository returns an event repository bound to the current write set
func (u *UnitOfWork) GetEventRepository(ctx context.Context) persistence.EventRepository {
	return &eventRepository{view: newView(ctx, u.store), sequences: u.sequences(ctx)}
}

// GetSequenceRepository returns a sequence repository bound to the current write set
func (u *UnitOfWork) GetSequenceRepository(ctx context.Context) persistence.SequenceRepository {
	return u.sequences(ctx)
}

func (u *UnitOfWork) sequences(ctx context.Context) *sequenceRepository {
	return &sequenceRepository{view: newView(ctx, u.store)}
}

var _ persistence.UnitOfWork = (*UnitOfWork)(nil)
