package entity

import (
	"time"

	errs "github.com/amirhossein-jamali/credit-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/credit-ledger/internal/domain/port/core"
)

// CreditBalance is the cumulative amount granted to an address.
// It only ever grows.
type CreditBalance struct {
	Address   Address
	balance   uint64
	UpdatedAt time.Time
}

// NewCreditBalance returns a balance loaded from storage
func NewCreditBalance(addr Address, balance uint64, updatedAt time.Time) *CreditBalance {
	return &CreditBalance{
		Address:   addr,
		balance:   balance,
		UpdatedAt: updatedAt,
	}
}

// EmptyCreditBalance returns the zero balance of an address never credited
func EmptyCreditBalance(addr Address) *CreditBalance {
	return &CreditBalance{Address: addr}
}

// Balance returns the current balance
func (c *CreditBalance) Balance() uint64 {
	return c.balance
}

// Credit adds amount. It refuses to pass MaxAmount and leaves the balance untouched on error.
func (c *CreditBalance) Credit(amount uint64, timeProvider coreport.TimeProvider) error {
	if amount == 0 {
		return errs.ErrInvalidAmount
	}
	if amount > MaxAmount-c.balance {
		return errs.ErrCreditOverflow
	}

	c.balance += amount
	c.UpdatedAt = timeProvider.Now()
	return nil
}
