package chaincode

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/amirhossein-jamali/credit-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/credit-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/credit-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/credit-ledger/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/credit-ledger/internal/domain/usecase/audit"
	"github.com/amirhossein-jamali/credit-ledger/internal/domain/usecase/ledger"
	"github.com/amirhossein-jamali/credit-ledger/internal/domain/usecase/notification"
	"github.com/amirhossein-jamali/credit-ledger/internal/domain/usecase/record"
	"github.com/amirhossein-jamali/credit-ledger/internal/infrastructure/adapter/messaging"
	"github.com/amirhossein-jamali/credit-ledger/internal/infrastructure/adapter/metrics"
)

// txClock stamps every write with the proposal timestamp so endorsers agree
type txClock struct {
	now time.Time
}

func (c txClock) Now() time.Time { return c.now }

func (c txClock) Since(t time.Time) coreport.Duration { return coreport.Duration(c.now.Sub(t)) }

// Sleep is a no-op: chaincode must not block
func (c txClock) Sleep(coreport.Duration) {}

// directExecutor runs each write in the calling goroutine. Fabric already orders invocations.
type directExecutor struct {
	uow    persistence.UnitOfWork
	logger coreport.Logger
}

func (e directExecutor) Execute(ctx context.Context, operation string, fn persistence.WriteFunc) error {
	txCtx, err := e.uow.Begin(ctx)
	if err != nil {
		return err
	}

	if err := fn(txCtx); err != nil {
		if rbErr := e.uow.Rollback(txCtx); rbErr != nil {
			e.logger.Error("Failed to drop write set", map[string]any{
				"operation": operation,
				"error":     rbErr.Error(),
			})
		}
		return err
	}
	return e.uow.Commit(txCtx)
}

// eventPublisher emits a committed event as the invocation's chaincode event.
// Each mutation produces exactly one event, which matches Fabric's one event per transaction.
type eventPublisher struct {
	store StateStore
}

func (p eventPublisher) Publish(_ context.Context, event entity.Event) error {
	payload, err := json.Marshal(messaging.NewEventMessage(event))
	if err != nil {
		return fmt.Errorf("encoding event: %w", err)
	}
	return p.store.SetEvent(string(event.Kind), payload)
}

func (p eventPublisher) Close() error { return nil }

// session wires the use cases over one invocation's state
type session struct {
	store      StateStore
	uow        *UnitOfWork
	executor   directExecutor
	dispatcher *notification.Dispatcher
	clock      txClock
	logger     coreport.Logger
	metrics    coreport.Metrics
}

func newSession(store StateStore, now time.Time, logger coreport.Logger) *session {
	m := metrics.NewNoopMetrics()
	uow := NewUnitOfWork(store, logger)
	return &session{
		store:      store,
		uow:        uow,
		executor:   directExecutor{uow: uow, logger: logger},
		dispatcher: notification.NewDispatcher(eventPublisher{store: store}, logger, m),
		clock:      txClock{now: now.UTC()},
		logger:     logger,
		metrics:    m,
	}
}

func (s *session) records() *record.Service {
	return record.NewService(s.executor, s.uow, s.dispatcher, s.clock, s.logger, s.metrics)
}

func (s *session) audit() *audit.Service {
	return audit.NewService(s.uow, s.logger, s.metrics)
}

// ledger builds the ledger service around the stored authority
func (s *session) ledger() (*ledger.Service, error) {
	authority, err := s.authority()
	if err != nil {
		return nil, err
	}
	return ledger.NewService(authority, s.executor, s.uow, s.dispatcher, s.clock, s.logger, s.metrics)
}

func (s *session) authority() (entity.Address, error) {
	raw, err := s.store.GetState(authorityKey)
	if err != nil {
		return "", fmt.Errorf("reading authority: %w", err)
	}
	if len(raw) == 0 {
		return "", errs.ErrAuthorityNotConfigured
	}
	return entity.Address(raw), nil
}

// initAuthority stores the authority once
func (s *session) initAuthority(raw string) (entity.Address, error) {
	existing, err := s.store.GetState(authorityKey)
	if err != nil {
		return "", fmt.Errorf("reading authority: %w", err)
	}
	if len(existing) > 0 {
		return "", errs.ErrAuthorityAlreadySet
	}

	authority, err := entity.NewAddress(raw)
	if err != nil {
		return "", errs.NewValidationError("authority", err)
	}
	if err := s.store.PutState(authorityKey, []byte(authority)); err != nil {
		return "", err
	}
	return authority, nil
}
