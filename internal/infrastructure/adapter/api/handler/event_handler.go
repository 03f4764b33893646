package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	coreport "github.com/amirhossein-jamali/credit-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/credit-ledger/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/credit-ledger/internal/infrastructure/adapter/api/dto"
)

// EventHandler serves the audit feed
type EventHandler struct {
	audit  usecase.AuditUseCase
	logger coreport.Logger
}

// NewEventHandler creates a new event handler instance
func NewEventHandler(audit usecase.AuditUseCase, logger coreport.Logger) *EventHandler {
	return &EventHandler{audit: audit, logger: logger}
}

// ListEvents handles GET /api/events?after=&limit=
func (h *EventHandler) ListEvents(c *gin.Context) {
	var query dto.EventQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondError(c, h.logger, bindingError("query", err))
		return
	}

	events, err := h.audit.ListEvents(c.Request.Context(), query.After, query.Limit)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewEventListResponse(events, query.After))
}
