package record_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	messagingmocks "github.com/amirhossein-jamali/credit-ledger/mocks/port/messaging"

	"github.com/amirhossein-jamali/credit-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/credit-ledger/internal/domain/error"
	"github.com/amirhossein-jamali/credit-ledger/internal/testutil"
)

var validFields = entity.RecordFields{Name: "Alice", Email: "alice@example.com", Age: 30}

func TestStoreRecord(t *testing.T) {
	ctx := context.Background()

	t.Run("Ids are issued 1..N without gaps", func(t *testing.T) {
		h := testutil.NewHarness(t)

		for want := uint64(1); want <= 5; want++ {
			id, err := h.Records.StoreRecord(ctx, testutil.Alice, validFields)
			require.NoError(t, err)
			assert.Equal(t, want, id)
		}

		total, err := h.Records.TotalRecords(ctx)
		require.NoError(t, err)
		assert.Equal(t, uint64(5), total)
	})

	t.Run("Invalid fields leave the counter unchanged", func(t *testing.T) {
		h := testutil.NewHarness(t)
		_, err := h.Records.StoreRecord(ctx, testutil.Alice, validFields)
		require.NoError(t, err)

		invalid := []entity.RecordFields{
			{Name: "", Email: "a@b.com", Age: 20},
			{Name: "U", Email: "", Age: 20},
			{Name: "U", Email: "a@b.com", Age: 0},
		}
		for _, fields := range invalid {
			id, err := h.Records.StoreRecord(ctx, testutil.Bob, fields)
			assert.ErrorIs(t, err, errs.ErrInvalidInput)
			assert.Zero(t, id)
		}

		total, err := h.Records.TotalRecords(ctx)
		require.NoError(t, err)
		assert.Equal(t, uint64(1), total)
		assert.Len(t, h.Events(t), 1)

		id, err := h.Records.StoreRecord(ctx, testutil.Bob, validFields)
		require.NoError(t, err)
		assert.Equal(t, uint64(2), id)
	})

	t.Run("Empty caller is rejected", func(t *testing.T) {
		h := testutil.NewHarness(t)

		_, err := h.Records.StoreRecord(ctx, "", validFields)

		assert.ErrorIs(t, err, errs.ErrInvalidAddress)
	})

	t.Run("Emits RecordStored after commit", func(t *testing.T) {
		h := testutil.NewHarness(t)

		id, err := h.Records.StoreRecord(ctx, testutil.Alice, validFields)
		require.NoError(t, err)

		events := h.Events(t)
		require.Len(t, events, 1)
		assert.Equal(t, entity.EventRecordStored, events[0].Kind)
		assert.Equal(t, id, events[0].SubjectID)
		assert.Equal(t, testutil.Alice, events[0].Actor)
		assert.Equal(t, "Alice", events[0].Payload["name"])
		assert.True(t, events[0].Timestamp.Equal(testutil.Now))

		published := h.Publisher.Published()
		require.Len(t, published, 1)
		assert.Equal(t, uint64(1), published[0].Seq)
	})

	t.Run("Publisher failure does not fail the write", func(t *testing.T) {
		publisher := messagingmocks.NewMockEventPublisher(t)
		publisher.On("Publish", mock.Anything, mock.Anything).Return(errors.New("broker down")).Once()
		h := testutil.NewHarnessWithPublisher(t, publisher)

		id, err := h.Records.StoreRecord(ctx, testutil.Alice, validFields)

		require.NoError(t, err)
		assert.Equal(t, uint64(1), id)
		h.Metrics.AssertCalled(t, "RecordPublishFailure", string(entity.EventRecordStored))
	})
}

func TestUpdateRecord(t *testing.T) {
	ctx := context.Background()
	updated := entity.RecordFields{Name: "Alicia", Email: "alicia@example.com", Age: 31}

	t.Run("Owner overwrites mutable fields", func(t *testing.T) {
		h := testutil.NewHarness(t)
		id, err := h.Records.StoreRecord(ctx, testutil.Alice, validFields)
		require.NoError(t, err)

		require.NoError(t, h.Records.UpdateRecord(ctx, testutil.Alice, id, updated))

		record, err := h.Records.GetRecordByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, updated, record.Fields())
		assert.Equal(t, testutil.Alice, record.Owner)
		assert.Equal(t, id, record.ID)

		events := h.Events(t)
		require.Len(t, events, 2)
		assert.Equal(t, entity.EventRecordUpdated, events[1].Kind)
		assert.Equal(t, "Alicia", events[1].Payload["name"])
	})

	t.Run("Non-owner is unauthorized and the record is unchanged", func(t *testing.T) {
		h := testutil.NewHarness(t)
		id, err := h.Records.StoreRecord(ctx, testutil.Alice, validFields)
		require.NoError(t, err)
		before, err := h.Records.GetRecordByID(ctx, id)
		require.NoError(t, err)

		err = h.Records.UpdateRecord(ctx, testutil.Bob, id, updated)

		assert.ErrorIs(t, err, errs.ErrUnauthorized)
		after, err := h.Records.GetRecordByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, before, after)
		assert.Len(t, h.Events(t), 1)
	})

	t.Run("Unknown id is not found before any other check", func(t *testing.T) {
		h := testutil.NewHarness(t)

		err := h.Records.UpdateRecord(ctx, testutil.Bob, 7, entity.RecordFields{})

		assert.ErrorIs(t, err, errs.ErrRecordNotFound)
	})

	t.Run("Non-owner with invalid fields is unauthorized", func(t *testing.T) {
		h := testutil.NewHarness(t)
		id, err := h.Records.StoreRecord(ctx, testutil.Alice, validFields)
		require.NoError(t, err)

		err = h.Records.UpdateRecord(ctx, testutil.Bob, id, entity.RecordFields{})

		assert.ErrorIs(t, err, errs.ErrUnauthorized)
	})

	t.Run("Owner with invalid fields gets invalid input", func(t *testing.T) {
		h := testutil.NewHarness(t)
		id, err := h.Records.StoreRecord(ctx, testutil.Alice, validFields)
		require.NoError(t, err)

		err = h.Records.UpdateRecord(ctx, testutil.Alice, id, entity.RecordFields{Name: "x", Email: "y"})

		assert.ErrorIs(t, err, errs.ErrInvalidAge)
	})
}

func TestRecordQueries(t *testing.T) {
	ctx := context.Background()
	h := testutil.NewHarness(t)

	for _, owner := range []entity.Address{testutil.Alice, testutil.Bob, testutil.Alice} {
		_, err := h.Records.StoreRecord(ctx, owner, validFields)
		require.NoError(t, err)
	}

	t.Run("Records by owner come back in creation order", func(t *testing.T) {
		records, err := h.Records.GetRecordsByOwner(ctx, testutil.Alice)
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, uint64(1), records[0].ID)
		assert.Equal(t, uint64(3), records[1].ID)
	})

	t.Run("My records are the caller's records", func(t *testing.T) {
		records, err := h.Records.GetMyRecords(ctx, testutil.Bob)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, uint64(2), records[0].ID)
	})

	t.Run("An owner without records is not found", func(t *testing.T) {
		_, err := h.Records.GetRecordsByOwner(ctx, testutil.Carol)
		assert.ErrorIs(t, err, errs.ErrNoRecordsForOwner)
	})

	t.Run("An empty owner is invalid input", func(t *testing.T) {
		_, err := h.Records.GetRecordsByOwner(ctx, "")
		assert.ErrorIs(t, err, errs.ErrInvalidInput)
	})

	t.Run("Unknown id is not found", func(t *testing.T) {
		_, err := h.Records.GetRecordByID(ctx, 4)
		assert.ErrorIs(t, err, errs.ErrNotFound)
	})

	t.Run("Ids beyond the stored range are not found", func(t *testing.T) {
		for _, id := range []uint64{math.MaxInt64, math.MaxInt64 + 1, math.MaxUint64} {
			_, err := h.Records.GetRecordByID(ctx, id)
			assert.ErrorIs(t, err, errs.ErrRecordNotFound, "id %d", id)
			assert.Equal(t, errs.KindNotFound, errs.Kind(err))

			err = h.Records.UpdateRecord(ctx, testutil.Alice, id, validFields)
			assert.ErrorIs(t, err, errs.ErrRecordNotFound, "id %d", id)
		}
	})
}
