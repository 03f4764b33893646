package repository

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	errs "github.com/amirhossein-jamali/credit-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/credit-ledger/internal/domain/port/core"
)

// ErrorType represents the type of database error that occurred
type ErrorType string

const (
	DuplicateKeyError ErrorType = "duplicate_key"
	TransientError    ErrorType = "transient"
	LockError         ErrorType = "lock"
	ConnectionError   ErrorType = "connection"
	ConstraintError   ErrorType = "constraint"
)

// ErrorClassifier provides methods to classify database errors
type ErrorClassifier struct{}

// NewErrorClassifier creates a new ErrorClassifier
func NewErrorClassifier() *ErrorClassifier {
	return &ErrorClassifier{}
}

// Classify returns the type of error
func (c *ErrorClassifier) Classify(err error) ErrorType {
	switch {
	case err == nil:
		return ""
	case c.IsDuplicateKeyError(err):
		return DuplicateKeyError
	case c.IsLockError(err):
		return LockError
	case c.IsTransientError(err):
		return TransientError
	case c.IsConnectionError(err):
		return ConnectionError
	case c.IsConstraintError(err):
		return ConstraintError
	}
	return ""
}

func contains(err error, fragments ...string) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, f := range fragments {
		if strings.Contains(msg, f) {
			return true
		}
	}
	return false
}

// IsDuplicateKeyError checks if the error is a duplicate key error
func (c *ErrorClassifier) IsDuplicateKeyError(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) ||
		contains(err, "duplicate key", "unique constraint", "duplicate entry")
}

// IsTransientError checks if an error is transient and can be retried
func (c *ErrorClassifier) IsTransientError(err error) bool {
	return contains(err, "connection reset", "connection refused", "timeout", "eof",
		"server closed", "broken pipe", "database is locked")
}

// IsLockError checks if the error is due to locking or serialization conflicts
func (c *ErrorClassifier) IsLockError(err error) bool {
	return contains(err, "deadlock", "lock wait timeout", "could not serialize access", "serialization failure")
}

// IsConnectionError checks if the error is related to database connectivity
func (c *ErrorClassifier) IsConnectionError(err error) bool {
	return contains(err, "connection", "dial", "network") || c.IsTransientError(err)
}

// IsConstraintError checks if the error is related to constraint violations
func (c *ErrorClassifier) IsConstraintError(err error) bool {
	return contains(err, "constraint", "violates", "foreign key", "not null") || c.IsDuplicateKeyError(err)
}

// mapError converts a gorm error into a domain error.
// gorm.ErrRecordNotFound becomes notFound; anything else is a storage failure.
func (c *ErrorClassifier) mapError(logger coreport.Logger, operation string, err error, notFound error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) && notFound != nil {
		return notFound
	}

	logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"error":      err.Error(),
		"error_type": c.Classify(err),
	})
	return fmt.Errorf("%w: %s: %s", errs.ErrDatabaseConnection, operation, err.Error())
}

// maxStoredKey is the largest id or sequence number a signed BIGINT column holds
const maxStoredKey = uint64(1<<63 - 1)

// storableKey reports whether key can be passed to the driver.
// Larger keys are never issued, so lookups by them match no row.
func storableKey(key uint64) bool {
	return key <= maxStoredKey
}

// toStoredAmount converts an amount to its signed column value
func toStoredAmount(amount uint64) (int64, error) {
	if amount > maxStoredKey {
		return 0, errs.ErrAmountTooLarge
	}
	return int64(amount), nil
}

// fromStoredAmount converts a signed column value back, rejecting corrupt negatives
func fromStoredAmount(column string, value int64) (uint64, error) {
	if value < 0 {
		return 0, fmt.Errorf("%w: negative %s in storage", errs.ErrInternalServer, column)
	}
	return uint64(value), nil
}

// sumAmounts adds stored amounts, failing instead of wrapping past MaxUint64
func sumAmounts(column string, values []int64) (uint64, error) {
	var total uint64
	for _, v := range values {
		amount, err := fromStoredAmount(column, v)
		if err != nil {
			return 0, err
		}
		if total+amount < total {
			return 0, fmt.Errorf("%w: %s total overflows", errs.ErrInternalServer, column)
		}
		total += amount
	}
	return total, nil
}
