package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/credit-ledger/internal/domain/entity"
	domainerr "github.com/amirhossein-jamali/credit-ledger/internal/domain/error"
	"github.com/amirhossein-jamali/credit-ledger/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/credit-ledger/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/credit-ledger/internal/infrastructure/adapter/api/middleware"
	"github.com/amirhossein-jamali/credit-ledger/internal/infrastructure/adapter/api/routes"
	"github.com/amirhossein-jamali/credit-ledger/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/credit-ledger/internal/infrastructure/adapter/metrics"
	"github.com/amirhossein-jamali/credit-ledger/internal/testutil"
)

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

func newRouter(t *testing.T, pinger handler.Pinger) (*gin.Engine, *testutil.Harness) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := testutil.NewHarness(t)
	log := logger.NewNoopLogger()

	router := gin.New()
	routes.SetupMiddlewares(router, log, metrics.NewNoopMetrics())
	routes.SetupRoutes(router, routes.Handlers{
		Records: handler.NewRecordHandler(h.Records, log),
		Ledger:  handler.NewLedgerHandler(h.Ledger, log),
		Events:  handler.NewEventHandler(h.Audit, log),
		Health:  handler.NewHealthHandler(pinger, log),
	})
	return router, h
}

func do(router *gin.Engine, method, path string, caller entity.Address, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if caller != "" {
		req.Header.Set(middleware.CallerHeader, caller.String())
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestRecordEndpoints(t *testing.T) {
	router, _ := newRouter(t, stubPinger{})
	alice := dto.RecordRequest{Name: "Alice", Email: "alice@example.com", Age: 30}

	t.Run("Store returns the new id", func(t *testing.T) {
		w := do(router, http.MethodPost, "/api/records", testutil.Alice, alice)
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, uint64(1), decode[dto.IDResponse](t, w).ID)
		assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
	})

	t.Run("Store without a caller is invalid input", func(t *testing.T) {
		w := do(router, http.MethodPost, "/api/records", "", alice)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		resp := decode[dto.ErrorResponse](t, w)
		assert.Equal(t, domainerr.CodeInvalidInput, resp.Code)
		assert.Equal(t, domainerr.KindInvalidInput, resp.Kind)
	})

	t.Run("Store with empty name is rejected with the field", func(t *testing.T) {
		w := do(router, http.MethodPost, "/api/records", testutil.Alice,
			dto.RecordRequest{Email: "x@example.com", Age: 1})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "validation failed for name: invalid input: name cannot be empty",
			decode[dto.ErrorResponse](t, w).Message)
	})

	t.Run("Malformed body is invalid input", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/records", bytes.NewBufferString(`{"age":-1}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(middleware.CallerHeader, testutil.Alice.String())
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, domainerr.CodeInvalidInput, decode[dto.ErrorResponse](t, w).Code)
	})

	t.Run("Get by id", func(t *testing.T) {
		w := do(router, http.MethodGet, "/api/records/1", "", nil)
		require.Equal(t, http.StatusOK, w.Code)

		resp := decode[dto.RecordResponse](t, w)
		assert.Equal(t, testutil.Alice.String(), resp.Owner)
		assert.Equal(t, "Alice", resp.Name)
		assert.Equal(t, "2024-03-01T12:00:00Z", resp.CreatedAt)
	})

	t.Run("Non-numeric id is invalid input", func(t *testing.T) {
		w := do(router, http.MethodGet, "/api/records/abc", "", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Update by another caller is forbidden", func(t *testing.T) {
		w := do(router, http.MethodPut, "/api/records/1", testutil.Bob, alice)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, domainerr.KindUnauthorized, decode[dto.ErrorResponse](t, w).Kind)
	})

	t.Run("Update of an unknown record is not found", func(t *testing.T) {
		w := do(router, http.MethodPut, "/api/records/42", testutil.Alice, alice)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Owner updates", func(t *testing.T) {
		w := do(router, http.MethodPut, "/api/records/1", testutil.Alice,
			dto.RecordRequest{Name: "Alicia", Email: "alicia@example.com", Age: 31})
		assert.Equal(t, http.StatusNoContent, w.Code)

		got := decode[dto.RecordResponse](t, do(router, http.MethodGet, "/api/records/1", "", nil))
		assert.Equal(t, "Alicia", got.Name)
		assert.Equal(t, uint32(31), got.Age)
	})

	t.Run("Mine and owner listing", func(t *testing.T) {
		w := do(router, http.MethodGet, "/api/records/mine", testutil.Alice, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decode[[]dto.RecordResponse](t, w), 1)

		w = do(router, http.MethodGet, "/api/records/owner/"+testutil.Alice.String(), "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decode[[]dto.RecordResponse](t, w), 1)
	})

	t.Run("Owner without records is not found", func(t *testing.T) {
		w := do(router, http.MethodGet, "/api/records/owner/"+testutil.Carol.String(), "", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "not found: no data found for this user", decode[dto.ErrorResponse](t, w).Message)
	})

	t.Run("Total counts issued ids", func(t *testing.T) {
		w := do(router, http.MethodGet, "/api/records/total", "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, uint64(1), decode[dto.TotalResponse](t, w).Total)
	})
}

func TestLedgerEndpoints(t *testing.T) {
	router, _ := newRouter(t, stubPinger{})
	proposal := dto.ProposeRequest{CreditedPerson: testutil.Carol.String(), Description: "Solar panel install", Amount: 25}

	t.Run("Authority is published", func(t *testing.T) {
		w := do(router, http.MethodGet, "/api/authority", "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, testutil.Authority.String(), decode[dto.AuthorityResponse](t, w).Authority)
	})

	t.Run("Propose returns the new id", func(t *testing.T) {
		w := do(router, http.MethodPost, "/api/propose", testutil.Bob, proposal)
		require.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, uint64(1), decode[dto.IDResponse](t, w).ID)
	})

	t.Run("Propose with zero amount is invalid input", func(t *testing.T) {
		bad := proposal
		bad.Amount = 0
		w := do(router, http.MethodPost, "/api/propose", testutil.Bob, bad)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Verify by a non-authority is forbidden", func(t *testing.T) {
		w := do(router, http.MethodPost, "/api/verify", testutil.Bob, dto.DecisionRequest{ID: 1})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Verify of an unknown id is not found", func(t *testing.T) {
		w := do(router, http.MethodPost, "/api/verify", testutil.Authority, dto.DecisionRequest{ID: 9})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Verify credits the beneficiary", func(t *testing.T) {
		w := do(router, http.MethodPost, "/api/verify", testutil.Authority, dto.DecisionRequest{ID: 1})
		require.Equal(t, http.StatusOK, w.Code)

		resp := decode[dto.TransactionResponse](t, w)
		assert.Equal(t, "Verified", resp.Status)
		assert.Equal(t, testutil.Authority.String(), resp.DecidedBy)
		require.NotNil(t, resp.DecidedAt)

		credits := decode[dto.CreditsResponse](t, do(router, http.MethodGet, "/api/credits/"+testutil.Carol.String(), "", nil))
		assert.Equal(t, uint64(25), credits.Credits)
	})

	t.Run("Second decision conflicts", func(t *testing.T) {
		w := do(router, http.MethodPost, "/api/reject", testutil.Authority, dto.DecisionRequest{ID: 1})
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, domainerr.KindInvalidState, decode[dto.ErrorResponse](t, w).Kind)
	})

	t.Run("Reject leaves credits untouched", func(t *testing.T) {
		w := do(router, http.MethodPost, "/api/propose", testutil.Bob, proposal)
		require.Equal(t, http.StatusCreated, w.Code)

		w = do(router, http.MethodPost, "/api/reject", testutil.Authority, dto.DecisionRequest{ID: 2})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Rejected", decode[dto.TransactionResponse](t, w).Status)

		credits := decode[dto.CreditsResponse](t, do(router, http.MethodGet, "/api/credits/"+testutil.Carol.String(), "", nil))
		assert.Equal(t, uint64(25), credits.Credits)
	})

	t.Run("Unknown address has zero credits", func(t *testing.T) {
		w := do(router, http.MethodGet, "/api/credits/"+testutil.Alice.String(), "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, uint64(0), decode[dto.CreditsResponse](t, w).Credits)
	})

	t.Run("Get transaction", func(t *testing.T) {
		w := do(router, http.MethodGet, "/api/transaction/2", "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		resp := decode[dto.TransactionResponse](t, w)
		assert.Equal(t, testutil.Bob.String(), resp.Seller)
		assert.Equal(t, "Rejected", resp.Status)

		w = do(router, http.MethodGet, "/api/transaction/3", "", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("List filters by status", func(t *testing.T) {
		w := do(router, http.MethodGet, "/api/transactions?status=Verified", "", nil)
		require.Equal(t, http.StatusOK, w.Code)

		resp := decode[dto.TransactionListResponse](t, w)
		require.Len(t, resp.Transactions, 1)
		assert.Equal(t, uint64(1), resp.Transactions[0].ID)

		w = do(router, http.MethodGet, "/api/transactions?after=1", "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		resp = decode[dto.TransactionListResponse](t, w)
		require.Len(t, resp.Transactions, 1)
		assert.Equal(t, uint64(2), resp.Transactions[0].ID)
	})

	t.Run("List rejects an unknown status", func(t *testing.T) {
		w := do(router, http.MethodGet, "/api/transactions?status=Pending", "", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHealthEndpoint(t *testing.T) {
	t.Run("Database reachable", func(t *testing.T) {
		router, _ := newRouter(t, stubPinger{})
		w := do(router, http.MethodGet, "/health", "", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"database":"up"`)
	})

	t.Run("Database down", func(t *testing.T) {
		router, _ := newRouter(t, stubPinger{err: errors.New("connection refused")})
		w := do(router, http.MethodGet, "/health", "", nil)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}
