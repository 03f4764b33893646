package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/credit-ledger/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/credit-ledger/internal/testutil"
)

func TestEventFeed(t *testing.T) {
	router, _ := newRouter(t, stubPinger{})

	require.Equal(t, http.StatusCreated, do(router, http.MethodPost, "/api/records", testutil.Alice,
		dto.RecordRequest{Name: "Alice", Email: "alice@example.com", Age: 30}).Code)
	require.Equal(t, http.StatusCreated, do(router, http.MethodPost, "/api/propose", testutil.Bob,
		dto.ProposeRequest{CreditedPerson: testutil.Carol.String(), Description: "Solar panel install", Amount: 25}).Code)
	require.Equal(t, http.StatusOK, do(router, http.MethodPost, "/api/verify", testutil.Authority,
		dto.DecisionRequest{ID: 1}).Code)

	t.Run("Full feed matches golden", func(t *testing.T) {
		w := do(router, http.MethodGet, "/api/events", "", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var pretty bytes.Buffer
		require.NoError(t, json.Indent(&pretty, w.Body.Bytes(), "", "  "))
		pretty.WriteByte('\n')

		g := goldie.New(t, goldie.WithFixtureDir("testdata/golden"), goldie.WithNameSuffix(".golden"))
		g.Assert(t, "event_feed", pretty.Bytes())
	})

	t.Run("Cursor skips seen events", func(t *testing.T) {
		w := do(router, http.MethodGet, "/api/events?after=2&limit=10", "", nil)
		require.Equal(t, http.StatusOK, w.Code)

		resp := decode[dto.EventListResponse](t, w)
		require.Len(t, resp.Events, 1)
		assert.Equal(t, "TransactionVerified", resp.Events[0].Kind)
		assert.Equal(t, uint64(3), resp.Next)
	})

	t.Run("Empty page keeps the cursor", func(t *testing.T) {
		resp := decode[dto.EventListResponse](t, do(router, http.MethodGet, "/api/events?after=3", "", nil))
		assert.Empty(t, resp.Events)
		assert.Equal(t, uint64(3), resp.Next)
	})

	t.Run("Limit above the maximum is invalid input", func(t *testing.T) {
		w := do(router, http.MethodGet, "/api/events?limit=5000", "", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		res := decode[dto.ErrorResponse](t, w)
		assert.Equal(t, "InvalidInput", res.Kind)
		assert.Contains(t, res.Message, "Limit failed on the 'max' tag")
	})
}
