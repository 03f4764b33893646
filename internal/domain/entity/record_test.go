package entity

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/amirhossein-jamali/credit-ledger/internal/domain/error"
	coremocks "github.com/amirhossein-jamali/credit-ledger/mocks/port/core"
)

const (
	alice = Address("0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	bob   = Address("0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb")
)

func TestNewUserRecord(t *testing.T) {
	fixedTime := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	clock := coremocks.NewFixedTimeProvider(t, fixedTime)

	t.Run("Valid record creation", func(t *testing.T) {
		record, err := NewUserRecord(1, alice, RecordFields{Name: "Alice", Email: "a@x.io", Age: 30}, clock)

		require.NoError(t, err)
		assert.Equal(t, uint64(1), record.ID)
		assert.Equal(t, alice, record.Owner)
		assert.Equal(t, "Alice", record.Name)
		assert.Equal(t, uint32(30), record.Age)
		assert.Equal(t, fixedTime, record.CreatedAt)
		assert.Equal(t, fixedTime, record.UpdatedAt)
	})

	t.Run("Invalid fields are rejected", func(t *testing.T) {
		testCases := []struct {
			name     string
			fields   RecordFields
			expected error
		}{
			{"empty name", RecordFields{Email: "a@x.io", Age: 1}, errs.ErrEmptyName},
			{"empty email", RecordFields{Name: "A", Age: 1}, errs.ErrEmptyEmail},
			{"zero age", RecordFields{Name: "A", Email: "a@x.io"}, errs.ErrInvalidAge},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				record, err := NewUserRecord(1, alice, tc.fields, clock)

				assert.Nil(t, record)
				assert.ErrorIs(t, err, tc.expected)
				assert.ErrorIs(t, err, errs.ErrInvalidInput)
			})
		}
	})

	t.Run("Whitespace name counts as non-empty", func(t *testing.T) {
		_, err := NewUserRecord(1, alice, RecordFields{Name: " ", Email: "a@x.io", Age: 1}, clock)
		assert.NoError(t, err)
	})

	t.Run("Empty owner is rejected", func(t *testing.T) {
		_, err := NewUserRecord(1, "", RecordFields{Name: "A", Email: "a@x.io", Age: 1}, clock)
		assert.ErrorIs(t, err, errs.ErrInvalidAddress)
	})
}

func TestUserRecordAmend(t *testing.T) {
	created := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	updated := created.Add(time.Hour)

	newRecord := func(t *testing.T) *UserRecord {
		record, err := NewUserRecord(3, alice, RecordFields{Name: "Alice", Email: "a@x.io", Age: 30},
			coremocks.NewFixedTimeProvider(t, created))
		require.NoError(t, err)
		return record
	}

	t.Run("Owner overwrites mutable fields", func(t *testing.T) {
		record := newRecord(t)

		err := record.Amend(alice, RecordFields{Name: "Alicia", Email: "b@x.io", Age: 31},
			coremocks.NewFixedTimeProvider(t, updated))

		require.NoError(t, err)
		assert.Equal(t, "Alicia", record.Name)
		assert.Equal(t, "b@x.io", record.Email)
		assert.Equal(t, uint32(31), record.Age)
		assert.Equal(t, uint64(3), record.ID)
		assert.Equal(t, alice, record.Owner)
		assert.Equal(t, created, record.CreatedAt)
		assert.Equal(t, updated, record.UpdatedAt)
	})

	t.Run("Non-owner is unauthorized before validation", func(t *testing.T) {
		record := newRecord(t)

		err := record.Amend(bob, RecordFields{}, coremocks.NewFixedTimeProvider(t, updated))

		assert.ErrorIs(t, err, errs.ErrUnauthorized)
		var authErr *errs.AuthorizationError
		require.True(t, errors.As(err, &authErr))
		assert.Equal(t, bob.String(), authErr.Caller)
		assert.Equal(t, "Alice", record.Name)
		assert.Equal(t, created, record.UpdatedAt)
	})

	t.Run("Owner with invalid fields leaves the record unchanged", func(t *testing.T) {
		record := newRecord(t)
		before := *record

		err := record.Amend(alice, RecordFields{Name: "Alicia", Email: "", Age: 31},
			coremocks.NewFixedTimeProvider(t, updated))

		assert.ErrorIs(t, err, errs.ErrEmptyEmail)
		assert.Equal(t, before, *record)
	})
}
