// Package testutil assembles the write path on an in-memory database for use case tests.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	coremocks "github.com/amirhossein-jamali/credit-ledger/mocks/port/core"
	messagingmocks "github.com/amirhossein-jamali/credit-ledger/mocks/port/messaging"

	"github.com/amirhossein-jamali/credit-ledger/internal/domain/entity"
	"github.com/amirhossein-jamali/credit-ledger/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/credit-ledger/internal/domain/usecase/audit"
	"github.com/amirhossein-jamali/credit-ledger/internal/domain/usecase/executor"
	"github.com/amirhossein-jamali/credit-ledger/internal/domain/usecase/ledger"
	"github.com/amirhossein-jamali/credit-ledger/internal/domain/usecase/notification"
	"github.com/amirhossein-jamali/credit-ledger/internal/domain/usecase/record"
	"github.com/amirhossein-jamali/credit-ledger/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/credit-ledger/internal/infrastructure/adapter/logger"
)

// Well-known addresses
const (
	Alice     entity.Address = "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	Bob       entity.Address = "0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
	Carol     entity.Address = "0xcccccccccccccccccccccccccccccccccccccccc"
	Authority entity.Address = "0x9999999999999999999999999999999999999999"
)

// Now is the time every write is stamped with
var Now = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// Harness is a fully wired write path
type Harness struct {
	UoW       persistence.UnitOfWork
	Executor  *executor.SerialExecutor
	Publisher *messagingmocks.MockEventPublisher
	Metrics   *coremocks.MockMetrics
	Records   *record.Service
	Ledger    *ledger.Service
	Audit     *audit.Service
}

// NewHarness wires the services on a fresh database. The publisher accepts every event.
func NewHarness(t *testing.T) *Harness {
	t.Helper()

	publisher := messagingmocks.NewMockEventPublisher(t)
	publisher.On("Publish", mock.Anything, mock.Anything).Return(nil).Maybe()
	return NewHarnessWithPublisher(t, publisher)
}

// NewHarnessWithPublisher wires the services around the given publisher mock
func NewHarnessWithPublisher(t *testing.T, publisher *messagingmocks.MockEventPublisher) *Harness {
	t.Helper()

	log := logger.NewNoopLogger()
	tp := coremocks.NewFixedTimeProvider(t, Now)
	metrics := coremocks.NewPermissiveMetrics(t)

	db := database.NewTestDB(t, log, tp)
	uow := database.NewUnitOfWork(db, log, database.NewErrorMapper())
	exec := executor.NewSerialExecutor(uow, tp, log, metrics, executor.WithQueueSize(16))
	t.Cleanup(exec.Shutdown)

	dispatcher := notification.NewDispatcher(publisher, log, metrics)

	ledgerService, err := ledger.NewService(Authority, exec, uow, dispatcher, tp, log, metrics)
	if err != nil {
		t.Fatalf("Failed to create ledger service: %v", err)
	}

	return &Harness{
		UoW:       uow,
		Executor:  exec,
		Publisher: publisher,
		Metrics:   metrics,
		Records:   record.NewService(exec, uow, dispatcher, tp, log, metrics),
		Ledger:    ledgerService,
		Audit:     audit.NewService(uow, log, metrics),
	}
}

// Events returns every stored event in seq order
func (h *Harness) Events(t *testing.T) []*entity.Event {
	t.Helper()
	events, err := h.Audit.ListEvents(context.Background(), 0, entity.MaxEventLimit)
	if err != nil {
		t.Fatalf("Failed to list events: %v", err)
	}
	return events
}
