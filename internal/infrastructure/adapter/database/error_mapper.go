package database

import (
	"context"
	"errors"
	"fmt"

	domainErr "github.com/amirhossein-jamali/credit-ledger/internal/domain/error"
	"github.com/amirhossein-jamali/credit-ledger/internal/infrastructure/adapter/repository"
)

// ErrorMapper maps driver errors raised outside repositories (begin, commit, connect)
// to domain errors and decides which of them are worth retrying
type ErrorMapper struct {
	classifier *repository.ErrorClassifier
}

// NewErrorMapper creates a new ErrorMapper
func NewErrorMapper() *ErrorMapper {
	return &ErrorMapper{classifier: repository.NewErrorClassifier()}
}

// MapError wraps err as a database error, keeping domain errors untouched
func (m *ErrorMapper) MapError(err error, operation string) error {
	if err == nil {
		return nil
	}
	if domainErr.IsDomainError(err) || errors.Is(err, domainErr.ErrDatabaseConnection) {
		return err
	}
	return fmt.Errorf("%w: %s: %s", domainErr.ErrDatabaseConnection, operation, err.Error())
}

// IsRetryable reports whether a whole unit of work may be retried after err.
// Domain errors are deterministic and never retried.
func (m *ErrorMapper) IsRetryable(err error) bool {
	if err == nil || domainErr.IsDomainError(err) {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	switch m.classifier.Classify(err) {
	case repository.LockError, repository.TransientError:
		return true
	}
	return false
}

func (m *ErrorMapper) connectionError() error {
	return domainErr.ErrDatabaseConnection
}
