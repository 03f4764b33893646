package handler

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/amirhossein-jamali/credit-ledger/internal/domain/entity"
	domainerr "github.com/amirhossein-jamali/credit-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/credit-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/credit-ledger/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/credit-ledger/internal/infrastructure/adapter/api/middleware"
)

// respondError writes the error response for err and attaches err to the context for the request log
func respondError(c *gin.Context, logger coreport.Logger, err error) {
	_ = c.Error(err)

	status := domainerr.HTTPStatus(err)
	if status >= 500 {
		fields := domainerr.LogFields(err)
		fields["path"] = c.FullPath()
		fields["request_id"] = middleware.RequestID(c)
		logger.Error("Request failed with internal error", fields)
	}
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(err))
}

// bindingError turns a gin binding failure into an invalid input error.
// Struct tag failures report the first failed field instead of the whole source.
func bindingError(source string, err error) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return domainerr.NewValidationError(fe.Field(),
			fmt.Errorf("%w: %s failed on the '%s' tag", domainerr.ErrInvalidInput, fe.Field(), fe.Tag()))
	}
	return domainerr.NewValidationError(source, fmt.Errorf("%w: %s", domainerr.ErrInvalidInput, err.Error()))
}

// callerFrom returns the caller address or an invalid input error when the header is missing
func callerFrom(c *gin.Context) (entity.Address, error) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		return "", domainerr.NewValidationError("caller", domainerr.ErrInvalidAddress)
	}
	return caller, nil
}

// parseID parses a positive decimal id path parameter
func parseID(c *gin.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0, domainerr.NewValidationError(name, fmt.Errorf("%w: %s must be an unsigned integer", domainerr.ErrInvalidInput, name))
	}
	return id, nil
}

// parseAddress parses an address path parameter
func parseAddress(c *gin.Context, name string) (entity.Address, error) {
	addr, err := entity.NewAddress(c.Param(name))
	if err != nil {
		return "", domainerr.NewValidationError(name, err)
	}
	return addr, nil
}
