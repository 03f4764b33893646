package ledger

import (
	"github.com/amirhossein-jamali/credit-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/credit-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/credit-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/credit-ledger/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/credit-ledger/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/credit-ledger/internal/domain/usecase/notification"
)

// Operation names used for executor jobs, metrics and logs
const (
	OpProposeTransaction = "proposeTransaction"
	OpVerifyTransaction  = "verifyTransaction"
	OpRejectTransaction  = "rejectTransaction"
	OpGetTransaction     = "getTransaction"
	OpListTransactions   = "listTransactions"
	OpGetCredits         = "getCredits"
)

// Service implements the transaction workflow and the credit ledger.
// The authority is fixed for the lifetime of the service.
type Service struct {
	authority    entity.Address
	executor     persistence.WriteExecutor
	uow          persistence.UnitOfWork
	dispatcher   *notification.Dispatcher
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	metrics      coreport.Metrics
}

// NewService creates a new ledger Service. The authority must be non-empty.
func NewService(
	authority entity.Address,
	executor persistence.WriteExecutor,
	uow persistence.UnitOfWork,
	dispatcher *notification.Dispatcher,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	metrics coreport.Metrics,
) (*Service, error) {
	if authority.IsZero() {
		return nil, errs.ErrAuthorityNotConfigured
	}

	return &Service{
		authority:    authority,
		executor:     executor,
		uow:          uow,
		dispatcher:   dispatcher,
		timeProvider: timeProvider,
		logger:       logger.With(map[string]any{"component": "ledger"}),
		metrics:      metrics,
	}, nil
}

// Authority returns the address allowed to decide transactions
func (s *Service) Authority() entity.Address {
	return s.authority
}

func (s *Service) observe(operation string, err error) {
	s.metrics.RecordOperation(operation, notification.Outcome(err))
}

var _ usecase.LedgerUseCase = (*Service)(nil)
