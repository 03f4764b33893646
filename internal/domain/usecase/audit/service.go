package audit

import (
	"context"
	"fmt"

	"github.com/amirhossein-jamali/credit-ledger/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/credit-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/credit-ledger/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/credit-ledger/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/credit-ledger/internal/domain/usecase/notification"
)

// Operation names
const (
	OpListEvents     = "listEvents"
	OpCheckIntegrity = "checkIntegrity"
)

// Service serves the event feed and checks persisted state for consistency
type Service struct {
	uow     persistence.UnitOfWork
	logger  coreport.Logger
	metrics coreport.Metrics
}

// NewService creates a new audit Service
func NewService(uow persistence.UnitOfWork, logger coreport.Logger, metrics coreport.Metrics) *Service {
	return &Service{
		uow:     uow,
		logger:  logger.With(map[string]any{"component": "audit"}),
		metrics: metrics,
	}
}

// ListEvents returns events after afterSeq, oldest first, at most limit (clamped to MaxEventLimit)
func (s *Service) ListEvents(ctx context.Context, afterSeq uint64, limit int) ([]*entity.Event, error) {
	limit = entity.ClampLimit(limit, entity.DefaultEventLimit, entity.MaxEventLimit)

	events, err := s.uow.GetEventRepository(ctx).ListAfter(ctx, afterSeq, limit)
	s.metrics.RecordOperation(OpListEvents, notification.Outcome(err))
	return events, err
}

// CheckIntegrity compares every id counter with its row count and the sum of balances
// with the sum of verified amounts. It only reads.
func (s *Service) CheckIntegrity(ctx context.Context) (*usecase.IntegrityReport, error) {
	report, err := s.checkIntegrity(ctx)
	s.metrics.RecordOperation(OpCheckIntegrity, notification.Outcome(err))
	if err != nil {
		return nil, err
	}

	if !report.Consistent() {
		s.logger.Error("Integrity check found inconsistencies", map[string]any{
			"sequences":      report.Sequences,
			"credit_total":   report.CreditTotal,
			"verified_total": report.VerifiedTotal,
		})
	}
	return report, nil
}

func (s *Service) checkIntegrity(ctx context.Context) (*usecase.IntegrityReport, error) {
	sequences := s.uow.GetSequenceRepository(ctx)

	counters := []struct {
		name  string
		count func(context.Context) (uint64, error)
	}{
		{entity.SequenceRecords, s.uow.GetRecordRepository(ctx).Count},
		{entity.SequenceTransactions, s.uow.GetTransactionRepository(ctx).Count},
		{entity.SequenceEvents, s.uow.GetEventRepository(ctx).Count},
	}

	report := &usecase.IntegrityReport{}
	for _, c := range counters {
		current, err := sequences.Current(ctx, c.name)
		if err != nil {
			return nil, fmt.Errorf("read %s counter: %w", c.name, err)
		}
		rows, err := c.count(ctx)
		if err != nil {
			return nil, fmt.Errorf("count %s: %w", c.name, err)
		}
		report.Sequences = append(report.Sequences, usecase.SequenceCheck{Name: c.name, Counter: current, Rows: rows})
	}

	creditTotal, err := s.uow.GetCreditRepository(ctx).Sum(ctx)
	if err != nil {
		return nil, fmt.Errorf("sum credits: %w", err)
	}
	verifiedTotal, err := s.uow.GetTransactionRepository(ctx).SumAmount(ctx, entity.StatusVerified)
	if err != nil {
		return nil, fmt.Errorf("sum verified amounts: %w", err)
	}
	report.CreditTotal = creditTotal
	report.VerifiedTotal = verifiedTotal

	return report, nil
}

var _ usecase.AuditUseCase = (*Service)(nil)
