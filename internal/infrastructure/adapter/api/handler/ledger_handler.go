package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/amirhossein-jamali/credit-ledger/internal/domain/entity"
	domainerr "github.com/amirhossein-jamali/credit-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/credit-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/credit-ledger/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/credit-ledger/internal/infrastructure/adapter/api/dto"
)

// LedgerHandler handles the transaction workflow and credit endpoints
type LedgerHandler struct {
	ledger usecase.LedgerUseCase
	logger coreport.Logger
}

// NewLedgerHandler creates a new ledger handler instance
func NewLedgerHandler(ledger usecase.LedgerUseCase, logger coreport.Logger) *LedgerHandler {
	return &LedgerHandler{ledger: ledger, logger: logger}
}

// ProposeTransaction handles POST /api/propose
func (h *LedgerHandler) ProposeTransaction(c *gin.Context) {
	caller, err := callerFrom(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	var req dto.ProposeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, bindingError("body", err))
		return
	}
	proposal, err := req.Proposal()
	if err != nil {
		respondError(c, h.logger, domainerr.NewValidationError("creditedPerson", err))
		return
	}

	id, err := h.ledger.ProposeTransaction(c.Request.Context(), caller, proposal)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.IDResponse{ID: id})
}

// VerifyTransaction handles POST /api/verify
func (h *LedgerHandler) VerifyTransaction(c *gin.Context) {
	h.decide(c, h.ledger.VerifyTransaction)
}

// RejectTransaction handles POST /api/reject
func (h *LedgerHandler) RejectTransaction(c *gin.Context) {
	h.decide(c, h.ledger.RejectTransaction)
}

func (h *LedgerHandler) decide(c *gin.Context, decision func(ctx context.Context, caller entity.Address, id uint64) error) {
	caller, err := callerFrom(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	var req dto.DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, bindingError("body", err))
		return
	}

	if err := decision(c.Request.Context(), caller, req.ID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	txn, err := h.ledger.GetTransaction(c.Request.Context(), req.ID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewTransactionResponse(txn))
}

// GetTransaction handles GET /api/transaction/:id
func (h *LedgerHandler) GetTransaction(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	txn, err := h.ledger.GetTransaction(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewTransactionResponse(txn))
}

// ListTransactions handles GET /api/transactions
func (h *LedgerHandler) ListTransactions(c *gin.Context) {
	var query dto.TransactionListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondError(c, h.logger, bindingError("query", err))
		return
	}
	filter, err := query.Filter()
	if err != nil {
		respondError(c, h.logger, domainerr.NewValidationError("query", err))
		return
	}

	txns, err := h.ledger.ListTransactions(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewTransactionListResponse(txns))
}

// GetCredits handles GET /api/credits/:person
func (h *LedgerHandler) GetCredits(c *gin.Context) {
	person, err := parseAddress(c, "person")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	credits, err := h.ledger.GetCredits(c.Request.Context(), person)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.CreditsResponse{Address: person.String(), Credits: credits})
}

// Authority handles GET /api/authority
func (h *LedgerHandler) Authority(c *gin.Context) {
	c.JSON(http.StatusOK, dto.AuthorityResponse{Authority: h.ledger.Authority().String()})
}
