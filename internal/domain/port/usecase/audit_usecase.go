package usecase

import (
	"context"

	"github.com/amirhossein-jamali/credit-ledger/internal/domain/entity"
)

// SequenceCheck compares a counter with the rows it numbered
type SequenceCheck struct {
	Name    string
	Counter uint64
	Rows    uint64
}

// Consistent reports whether every issued id has its row
func (c SequenceCheck) Consistent() bool {
	return c.Counter == c.Rows
}

// IntegrityReport is the result of an integrity check over persisted state
type IntegrityReport struct {
	Sequences     []SequenceCheck
	CreditTotal   uint64 // Sum of all balances
	VerifiedTotal uint64 // Sum of amounts of verified transactions
}

// Consistent reports whether counters match rows and balances match verified amounts
func (r *IntegrityReport) Consistent() bool {
	for _, s := range r.Sequences {
		if !s.Consistent() {
			return false
		}
	}
	return r.CreditTotal == r.VerifiedTotal
}

// AuditUseCase exposes the event feed and integrity checks
type AuditUseCase interface {
	// ListEvents returns events with seq greater than afterSeq, oldest first
	ListEvents(ctx context.Context, afterSeq uint64, limit int) ([]*entity.Event, error)

	// CheckIntegrity verifies counters against rows and credits against verified transactions
	CheckIntegrity(ctx context.Context) (*IntegrityReport, error)
}
