package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	coreport "github.com/amirhossein-jamali/credit-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/credit-ledger/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/credit-ledger/internal/infrastructure/adapter/api/dto"
)

// RecordHandler handles the record store endpoints
type RecordHandler struct {
	records usecase.RecordUseCase
	logger  coreport.Logger
}

// NewRecordHandler creates a new record handler instance
func NewRecordHandler(records usecase.RecordUseCase, logger coreport.Logger) *RecordHandler {
	return &RecordHandler{records: records, logger: logger}
}

// StoreRecord handles POST /api/records
func (h *RecordHandler) StoreRecord(c *gin.Context) {
	caller, err := callerFrom(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	var req dto.RecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, bindingError("body", err))
		return
	}

	id, err := h.records.StoreRecord(c.Request.Context(), caller, req.Fields())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.IDResponse{ID: id})
}

// UpdateRecord handles PUT /api/records/:id
func (h *RecordHandler) UpdateRecord(c *gin.Context) {
	caller, err := callerFrom(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	id, err := parseID(c, "id")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	var req dto.RecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, bindingError("body", err))
		return
	}

	if err := h.records.UpdateRecord(c.Request.Context(), caller, id, req.Fields()); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetRecordByID handles GET /api/records/:id
func (h *RecordHandler) GetRecordByID(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	record, err := h.records.GetRecordByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewRecordResponse(record))
}

// GetRecordsByOwner handles GET /api/records/owner/:address
func (h *RecordHandler) GetRecordsByOwner(c *gin.Context) {
	owner, err := parseAddress(c, "address")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	records, err := h.records.GetRecordsByOwner(c.Request.Context(), owner)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewRecordListResponse(records))
}

// GetMyRecords handles GET /api/records/mine
func (h *RecordHandler) GetMyRecords(c *gin.Context) {
	caller, err := callerFrom(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	records, err := h.records.GetMyRecords(c.Request.Context(), caller)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewRecordListResponse(records))
}

// TotalRecords handles GET /api/records/total
func (h *RecordHandler) TotalRecords(c *gin.Context) {
	total, err := h.records.TotalRecords(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.TotalResponse{Total: total})
}
