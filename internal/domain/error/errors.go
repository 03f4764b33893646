package error

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeInvalidInput = 4001
	CodeUnauthorized = 4030
	CodeNotFound     = 4040
	CodeInvalidState = 4090

	// 5xxx - Server errors
	CodeInternalServer = 5000
)

// Error kinds as exposed to callers
const (
	KindInvalidInput = "InvalidInput"
	KindNotFound     = "NotFound"
	KindUnauthorized = "Unauthorized"
	KindInvalidState = "InvalidState"
	KindInternal     = "Internal"
)

// Base error kinds. Every domain failure wraps exactly one of these.
var (
	// ErrInvalidInput is returned for malformed, empty or zero fields
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound is returned for an unknown id or an address with no records
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized is returned when the caller lacks the required identity
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidState is returned for a transition out of a terminal transaction state
	ErrInvalidState = errors.New("invalid state")
)

// Specific domain errors
var (
	ErrEmptyName        = fmt.Errorf("%w: name cannot be empty", ErrInvalidInput)
	ErrEmptyEmail       = fmt.Errorf("%w: email cannot be empty", ErrInvalidInput)
	ErrInvalidAge       = fmt.Errorf("%w: age must be positive", ErrInvalidInput)
	ErrInvalidAmount    = fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	ErrAmountTooLarge   = fmt.Errorf("%w: amount exceeds the ledger limit", ErrInvalidInput)
	ErrEmptyDescription = fmt.Errorf("%w: description cannot be empty", ErrInvalidInput)
	ErrInvalidAddress   = fmt.Errorf("%w: address cannot be empty", ErrInvalidInput)
	ErrInvalidStatus    = fmt.Errorf("%w: unknown transaction status", ErrInvalidInput)

	ErrRecordNotFound      = fmt.Errorf("%w: record", ErrNotFound)
	ErrNoRecordsForOwner   = fmt.Errorf("%w: no data found for this user", ErrNotFound)
	ErrTransactionNotFound = fmt.Errorf("%w: transaction", ErrNotFound)

	ErrNotRecordOwner = fmt.Errorf("%w: caller is not the record owner", ErrUnauthorized)
	ErrNotAuthority   = fmt.Errorf("%w: only the authority can decide transactions", ErrUnauthorized)

	ErrTransactionFinalized = fmt.Errorf("%w: transaction already decided", ErrInvalidState)
	ErrCreditOverflow       = fmt.Errorf("%w: credit balance would overflow", ErrInvalidState)
	ErrAuthorityAlreadySet  = fmt.Errorf("%w: authority already initialized", ErrInvalidState)
)

// Infrastructure errors
var (
	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")

	// ErrDatabaseConnection is returned when there's a problem talking to the database
	ErrDatabaseConnection = errors.New("database connection error")

	// ErrExecutorStopped is returned when a write is submitted after shutdown
	ErrExecutorStopped = errors.New("write executor stopped")

	// ErrAuthorityNotConfigured is returned when no authority address is available
	ErrAuthorityNotConfigured = errors.New("authority not configured")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case IsInvalidInputError(err):
		return CodeInvalidInput
	case IsUnauthorizedError(err):
		return CodeUnauthorized
	case IsNotFoundError(err):
		return CodeNotFound
	case IsInvalidStateError(err):
		return CodeInvalidState
	default:
		return CodeInternalServer
	}
}

// Kind returns the error kind name for err
func Kind(err error) string {
	switch {
	case IsInvalidInputError(err):
		return KindInvalidInput
	case IsUnauthorizedError(err):
		return KindUnauthorized
	case IsNotFoundError(err):
		return KindNotFound
	case IsInvalidStateError(err):
		return KindInvalidState
	default:
		return KindInternal
	}
}

// HTTPStatus maps an error to the HTTP status the relay returns
func HTTPStatus(err error) int {
	switch ErrorCode(err) {
	case CodeInvalidInput:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeInvalidState:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// IsDomainError reports whether err is one of the deterministic domain kinds.
// These are never retried.
func IsDomainError(err error) bool {
	return IsInvalidInputError(err) ||
		IsNotFoundError(err) ||
		IsUnauthorizedError(err) ||
		IsInvalidStateError(err)
}

// ValidationError describes a rejected input field
type ValidationError struct {
	Field  string
	Reason string
	Err    error
}

// Error implements the error interface for ValidationError
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Reason)
}

// Unwrap returns the underlying error
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *ValidationError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "validation_error",
		"field":      e.Field,
		"reason":     e.Reason,
		"error_code": CodeInvalidInput,
	}
}

// NewValidationError creates a validation error wrapping err
func NewValidationError(field string, err error) error {
	return &ValidationError{
		Field:  field,
		Reason: err.Error(),
		Err:    err,
	}
}

// AuthorizationError describes a caller rejected by an identity check
type AuthorizationError struct {
	Operation string
	Caller    string
	Required  string
	Err       error
}

// Error implements the error interface for AuthorizationError
func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("%s denied for caller %s (required %s): %v",
		e.Operation, e.Caller, e.Required, e.Err)
}

// Unwrap returns the underlying error
func (e *AuthorizationError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *AuthorizationError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "authorization_error",
		"operation":  e.Operation,
		"caller":     e.Caller,
		"required":   e.Required,
		"error":      e.Err.Error(),
		"error_code": CodeUnauthorized,
	}
}

// NewAuthorizationError creates a detailed authorization error
func NewAuthorizationError(operation, caller, required string, err error) error {
	return &AuthorizationError{
		Operation: operation,
		Caller:    caller,
		Required:  required,
		Err:       err,
	}
}

// StateTransitionError describes a rejected transaction status transition
type StateTransitionError struct {
	TransactionID uint64
	From          string
	To            string
}

// Error implements the error interface
func (e *StateTransitionError) Error() string {
	return fmt.Sprintf("transaction %d cannot move from %s to %s: %v",
		e.TransactionID, e.From, e.To, ErrTransactionFinalized)
}

// Is matches ErrTransactionFinalized and ErrInvalidState
func (e *StateTransitionError) Is(target error) bool {
	return target == ErrTransactionFinalized || target == ErrInvalidState
}

// LogFields returns a map of fields for structured logging
func (e *StateTransitionError) LogFields() map[string]any {
	return map[string]any{
		"error_type":     "state_transition_error",
		"transaction_id": e.TransactionID,
		"from":           e.From,
		"to":             e.To,
		"error_code":     CodeInvalidState,
	}
}

// NewStateTransitionError creates a new state transition error
func NewStateTransitionError(transactionID uint64, from, to string) error {
	return &StateTransitionError{
		TransactionID: transactionID,
		From:          from,
		To:            to,
	}
}

// LogFields extracts structured fields from err when it carries them
func LogFields(err error) map[string]any {
	var withFields interface{ LogFields() map[string]any }
	if errors.As(err, &withFields) {
		return withFields.LogFields()
	}
	return map[string]any{
		"error":      err.Error(),
		"error_kind": Kind(err),
		"error_code": ErrorCode(err),
	}
}

// IsNotFoundError checks if the error is any "not found" type of error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsUnauthorizedError checks if the error is an authorization failure
func IsUnauthorizedError(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsInvalidStateError checks if the error is a rejected state transition
func IsInvalidStateError(err error) bool {
	return errors.Is(err, ErrInvalidState)
}

// IsInvalidInputError checks if the error is a validation failure
func IsInvalidInputError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}
