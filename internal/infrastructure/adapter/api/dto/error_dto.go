package dto

import (
	domainerr "github.com/amirhossein-jamali/credit-ledger/internal/domain/error"
)

// ErrorResponse represents a standardized error response for the API
type ErrorResponse struct {
	Code    int    `json:"code"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// NewErrorResponse builds the response for err. Internal errors never leak their text.
func NewErrorResponse(err error) ErrorResponse {
	code := domainerr.ErrorCode(err)
	message := err.Error()
	if code == domainerr.CodeInternalServer {
		message = "Internal server error"
	}
	return ErrorResponse{
		Code:    code,
		Kind:    domainerr.Kind(err),
		Message: message,
	}
}
