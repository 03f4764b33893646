package entity

import (
	"fmt"
	"time"

	errs "github.com/amirhossein-jamali/credit-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/credit-ledger/internal/domain/port/core"
)

// TransactionStatus is the closed set of transaction states.
// Proposed is the zero value and the only state with outgoing transitions.
type TransactionStatus uint8

// TransactionStatus values
const (
	StatusProposed TransactionStatus = iota
	StatusVerified
	StatusRejected
)

var statusNames = map[TransactionStatus]string{
	StatusProposed: "Proposed",
	StatusVerified: "Verified",
	StatusRejected: "Rejected",
}

// String returns the status name
func (s TransactionStatus) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("TransactionStatus(%d)", uint8(s))
}

// IsValid reports whether s is one of the three known states
func (s TransactionStatus) IsValid() bool {
	_, ok := statusNames[s]
	return ok
}

// IsTerminal reports whether no transition leaves s
func (s TransactionStatus) IsTerminal() bool {
	return s == StatusVerified || s == StatusRejected
}

// ParseTransactionStatus parses a status name, case-sensitive
func ParseTransactionStatus(name string) (TransactionStatus, error) {
	for status, n := range statusNames {
		if n == name {
			return status, nil
		}
	}
	return StatusProposed, fmt.Errorf("%w: %s", errs.ErrInvalidStatus, name)
}

// Transaction is a proposed credit to a beneficiary awaiting the authority's decision
type Transaction struct {
	ID             uint64            // Sequential id
	Seller         Address           // Proposer, immutable
	CreditedPerson Address           // Beneficiary, immutable
	Description    string            // Non-empty
	Amount         uint64            // Positive
	Status         TransactionStatus // Proposed until decided
	CreatedAt      time.Time         // When the proposal was stored
	DecidedAt      *time.Time        // When the authority decided (nil while Proposed)
	DecidedBy      Address           // Authority that decided (empty while Proposed)
}

// Proposal holds the caller-supplied part of a new transaction
type Proposal struct {
	CreditedPerson Address
	Description    string
	Amount         uint64
}

// Validate checks the proposal fields
func (p Proposal) Validate() error {
	if p.Amount == 0 {
		return errs.NewValidationError("amount", errs.ErrInvalidAmount)
	}
	if p.Amount > MaxAmount {
		return errs.NewValidationError("amount", errs.ErrAmountTooLarge)
	}
	if p.Description == "" {
		return errs.NewValidationError("description", errs.ErrEmptyDescription)
	}
	if err := p.CreditedPerson.Validate(); err != nil {
		return errs.NewValidationError("creditedPerson", err)
	}
	return nil
}

// NewTransaction creates a Proposed transaction with an already allocated id
func NewTransaction(
	id uint64,
	seller Address,
	proposal Proposal,
	timeProvider coreport.TimeProvider,
) (*Transaction, error) {
	if err := seller.Validate(); err != nil {
		return nil, errs.NewValidationError("seller", err)
	}
	if err := proposal.Validate(); err != nil {
		return nil, err
	}

	return &Transaction{
		ID:             id,
		Seller:         seller,
		CreditedPerson: proposal.CreditedPerson,
		Description:    proposal.Description,
		Amount:         proposal.Amount,
		Status:         StatusProposed,
		CreatedAt:      timeProvider.Now(),
	}, nil
}

// Verify moves the transaction to Verified. The caller credits Amount afterwards.
func (t *Transaction) Verify(authority Address, timeProvider coreport.TimeProvider) error {
	return t.decide(StatusVerified, authority, timeProvider)
}

// Reject moves the transaction to Rejected
func (t *Transaction) Reject(authority Address, timeProvider coreport.TimeProvider) error {
	return t.decide(StatusRejected, authority, timeProvider)
}

// decide is the single transition out of Proposed
func (t *Transaction) decide(to TransactionStatus, authority Address, timeProvider coreport.TimeProvider) error {
	if t.Status != StatusProposed {
		return errs.NewStateTransitionError(t.ID, t.Status.String(), to.String())
	}

	now := timeProvider.Now()
	t.Status = to
	t.DecidedAt = &now
	t.DecidedBy = authority
	return nil
}

// IsCredited reports whether the transaction has granted its amount
func (t *Transaction) IsCredited() bool {
	return t.Status == StatusVerified
}

// EventTime returns the logical time of the latest write to the transaction
func (t *Transaction) EventTime() time.Time {
	if t.DecidedAt != nil {
		return *t.DecidedAt
	}
	return t.CreatedAt
}
