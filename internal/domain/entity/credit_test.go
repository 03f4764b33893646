package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/amirhossein-jamali/credit-ledger/internal/domain/error"
	coremocks "github.com/amirhossein-jamali/credit-ledger/mocks/port/core"
)

func TestCreditBalance(t *testing.T) {
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	clock := coremocks.NewFixedTimeProvider(t, now)

	t.Run("Missing address reads as zero", func(t *testing.T) {
		assert.Equal(t, uint64(0), EmptyCreditBalance(bob).Balance())
	})

	t.Run("Credits accumulate", func(t *testing.T) {
		balance := EmptyCreditBalance(bob)

		require.NoError(t, balance.Credit(100, clock))
		require.NoError(t, balance.Credit(50, clock))

		assert.Equal(t, uint64(150), balance.Balance())
		assert.Equal(t, now, balance.UpdatedAt)
	})

	t.Run("Credit past the limit fails and keeps the balance", func(t *testing.T) {
		balance := NewCreditBalance(bob, MaxAmount-10, now)

		err := balance.Credit(11, clock)

		assert.ErrorIs(t, err, errs.ErrCreditOverflow)
		assert.ErrorIs(t, err, errs.ErrInvalidState)
		assert.Equal(t, MaxAmount-10, balance.Balance())
	})

	t.Run("Credit up to the limit succeeds", func(t *testing.T) {
		balance := NewCreditBalance(bob, MaxAmount-10, now)
		require.NoError(t, balance.Credit(10, clock))
		assert.Equal(t, MaxAmount, balance.Balance())
	})

	t.Run("Zero credit is invalid", func(t *testing.T) {
		assert.ErrorIs(t, EmptyCreditBalance(bob).Credit(0, clock), errs.ErrInvalidAmount)
	})
}
