package record

import (
	coreport "github.com/amirhossein-jamali/credit-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/credit-ledger/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/credit-ledger/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/credit-ledger/internal/domain/usecase/notification"
)

// Operation names used for executor jobs, metrics and logs
const (
	OpStoreRecord       = "storeRecord"
	OpUpdateRecord      = "updateRecord"
	OpGetRecordsByOwner = "getRecordsByOwner"
	OpGetRecordByID     = "getRecordById"
	OpTotalRecords      = "totalRecords"
)

// Service implements the record store.
// Writes go through the executor; reads use the unit of work outside any transaction.
type Service struct {
	executor     persistence.WriteExecutor
	uow          persistence.UnitOfWork
	dispatcher   *notification.Dispatcher
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	metrics      coreport.Metrics
}

// NewService creates a new record Service
func NewService(
	executor persistence.WriteExecutor,
	uow persistence.UnitOfWork,
	dispatcher *notification.Dispatcher,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	metrics coreport.Metrics,
) *Service {
	return &Service{
		executor:     executor,
		uow:          uow,
		dispatcher:   dispatcher,
		timeProvider: timeProvider,
		logger:       logger.With(map[string]any{"component": "records"}),
		metrics:      metrics,
	}
}

func (s *Service) observe(operation string, err error) {
	s.metrics.RecordOperation(operation, notification.Outcome(err))
}

var _ usecase.RecordUseCase = (*Service)(nil)
