package persistence

import (
	"context"

	"github.com/amirhossein-jamali/credit-ledger/internal/domain/entity"
)

// CreditRepository stores credit balances
type CreditRepository interface {
	// Get returns the balance of addr; an address never credited yields a zero balance
	Get(ctx context.Context, addr entity.Address) (*entity.CreditBalance, error)

	// Save upserts the balance
	Save(ctx context.Context, balance *entity.CreditBalance) error

	// Sum returns the total of all balances, used by integrity checks
	Sum(ctx context.Context) (uint64, error)
}
