package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	coremocks "github.com/amirhossein-jamali/credit-ledger/mocks/port/core"

	"github.com/amirhossein-jamali/credit-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/credit-ledger/internal/domain/error"
	"github.com/amirhossein-jamali/credit-ledger/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/credit-ledger/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/credit-ledger/internal/infrastructure/adapter/repository"
)

var (
	now   = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	alice = entity.Address("0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	bob   = entity.Address("0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb")
	gov   = entity.Address("0x9999999999999999999999999999999999999999")
)

func setup(t *testing.T) *gorm.DB {
	t.Helper()
	return database.NewTestDB(t, logger.NewNoopLogger(), coremocks.NewFixedTimeProvider(t, now))
}

func TestRecordRepository(t *testing.T) {
	ctx := context.Background()
	db := setup(t)
	repo := repository.NewRecordRepository(db, logger.NewNoopLogger())
	tp := coremocks.NewFixedTimeProvider(t, now)

	for i, owner := range []entity.Address{alice, bob, alice} {
		record, err := entity.NewUserRecord(uint64(i+1), owner, entity.RecordFields{Name: "n", Email: "e", Age: 20}, tp)
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, record))
	}

	t.Run("Lists owner records in creation order", func(t *testing.T) {
		records, err := repo.ListByOwner(ctx, alice)
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, uint64(1), records[0].ID)
		assert.Equal(t, uint64(3), records[1].ID)
	})

	t.Run("Unknown owner yields an empty list", func(t *testing.T) {
		records, err := repo.ListByOwner(ctx, gov)
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("Update overwrites mutable fields only", func(t *testing.T) {
		later := now.Add(time.Hour)
		record, err := repo.GetByID(ctx, 2)
		require.NoError(t, err)
		require.NoError(t, record.Amend(bob, entity.RecordFields{Name: "Bob", Email: "b@x.io", Age: 41},
			coremocks.NewFixedTimeProvider(t, later)))
		require.NoError(t, repo.Update(ctx, record))

		stored, err := repo.GetByID(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, "Bob", stored.Name)
		assert.Equal(t, uint32(41), stored.Age)
		assert.Equal(t, bob, stored.Owner)
		assert.True(t, stored.CreatedAt.Equal(now))
		assert.True(t, stored.UpdatedAt.Equal(later))
	})

	t.Run("Missing ids map to record not found", func(t *testing.T) {
		_, err := repo.GetByID(ctx, 99)
		assert.ErrorIs(t, err, errs.ErrRecordNotFound)

		err = repo.Update(ctx, &entity.UserRecord{ID: 99})
		assert.ErrorIs(t, err, errs.ErrNotFound)
	})

	t.Run("Counts rows", func(t *testing.T) {
		count, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, uint64(3), count)
	})
}

func TestTransactionRepository(t *testing.T) {
	ctx := context.Background()
	db := setup(t)
	repo := repository.NewTransactionRepository(db, logger.NewNoopLogger())
	tp := coremocks.NewFixedTimeProvider(t, now)

	amounts := []uint64{10, 20, 30}
	for i, amount := range amounts {
		txn, err := entity.NewTransaction(uint64(i+1), alice,
			entity.Proposal{CreditedPerson: bob, Description: "sale", Amount: amount}, tp)
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, txn))
	}

	t.Run("Persists a decision", func(t *testing.T) {
		txn, err := repo.GetByID(ctx, 2)
		require.NoError(t, err)
		require.NoError(t, txn.Verify(gov, tp))
		require.NoError(t, repo.UpdateStatus(ctx, txn))

		stored, err := repo.GetByID(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, entity.StatusVerified, stored.Status)
		assert.Equal(t, gov, stored.DecidedBy)
		require.NotNil(t, stored.DecidedAt)
		assert.True(t, stored.DecidedAt.Equal(now))
	})

	t.Run("Filters by status and pages by id", func(t *testing.T) {
		proposed := entity.StatusProposed
		txns, err := repo.List(ctx, entity.TransactionFilter{Status: &proposed}.Normalized())
		require.NoError(t, err)
		require.Len(t, txns, 2)
		assert.Equal(t, uint64(1), txns[0].ID)
		assert.Equal(t, uint64(3), txns[1].ID)

		txns, err = repo.List(ctx, entity.TransactionFilter{AfterID: 1, Limit: 1})
		require.NoError(t, err)
		require.Len(t, txns, 1)
		assert.Equal(t, uint64(2), txns[0].ID)
	})

	t.Run("Sums amounts per status", func(t *testing.T) {
		verified, err := repo.SumAmount(ctx, entity.StatusVerified)
		require.NoError(t, err)
		assert.Equal(t, uint64(20), verified)

		rejected, err := repo.SumAmount(ctx, entity.StatusRejected)
		require.NoError(t, err)
		assert.Zero(t, rejected)
	})

	t.Run("Unknown id maps to transaction not found", func(t *testing.T) {
		_, err := repo.GetByID(ctx, 42)
		assert.ErrorIs(t, err, errs.ErrTransactionNotFound)
	})
}

func TestCreditRepository(t *testing.T) {
	ctx := context.Background()
	db := setup(t)
	repo := repository.NewCreditRepository(db, logger.NewNoopLogger())
	tp := coremocks.NewFixedTimeProvider(t, now)

	t.Run("Missing balance reads as zero", func(t *testing.T) {
		balance, err := repo.Get(ctx, bob)
		require.NoError(t, err)
		assert.Zero(t, balance.Balance())
	})

	t.Run("Save upserts", func(t *testing.T) {
		balance, err := repo.Get(ctx, bob)
		require.NoError(t, err)
		require.NoError(t, balance.Credit(5, tp))
		require.NoError(t, repo.Save(ctx, balance))

		require.NoError(t, balance.Credit(7, tp))
		require.NoError(t, repo.Save(ctx, balance))

		stored, err := repo.Get(ctx, bob)
		require.NoError(t, err)
		assert.Equal(t, uint64(12), stored.Balance())

		total, err := repo.Sum(ctx)
		require.NoError(t, err)
		assert.Equal(t, uint64(12), total)
	})
}

func TestEventRepository(t *testing.T) {
	ctx := context.Background()
	db := setup(t)
	repo := repository.NewEventRepository(db, logger.NewNoopLogger())

	for i := 0; i < 3; i++ {
		event := &entity.Event{
			Kind:      entity.EventRecordStored,
			SubjectID: uint64(i + 1),
			Actor:     alice,
			Payload:   map[string]string{"name": "n"},
			Timestamp: now,
		}
		require.NoError(t, repo.Append(ctx, event))
		assert.Equal(t, uint64(i+1), event.Seq)
	}

	events, err := repo.ListAfter(ctx, 1, 10)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, uint64(2), events[0].Seq)
	assert.Equal(t, "n", events[0].Payload["name"])
	assert.True(t, events[0].Timestamp.Equal(now))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), count)
}

func TestSequenceRepository(t *testing.T) {
	ctx := context.Background()
	db := setup(t)
	repo := repository.NewSequenceRepository(db, logger.NewNoopLogger())

	current, err := repo.Current(ctx, "unused")
	require.NoError(t, err)
	assert.Zero(t, current)

	for want := uint64(1); want <= 3; want++ {
		got, err := repo.Next(ctx, entity.SequenceTransactions)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	got, err := repo.Next(ctx, "adhoc")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), got, "an unseeded counter starts at one")
}
