package database

import (
	"context"
	"time"

	coreport "github.com/amirhossein-jamali/credit-ledger/internal/domain/port/core"
)

// RetryConfig holds configuration for retry operations
type RetryConfig struct {
	MaxRetries    int
	RetryInterval time.Duration
	MaxInterval   time.Duration
	JitterFactor  float64 // Factor to add randomness to retry intervals (0.0-1.0)
}

// DefaultRetryConfig returns the default retry configuration
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:    3,
		RetryInterval: 50 * time.Millisecond,
		MaxInterval:   time.Second,
		JitterFactor:  0.2,
	}
}

// RetryOnTransientError runs operation until it succeeds, fails permanently or
// MaxRetries attempts are used. Domain errors are returned on first sight.
func RetryOnTransientError(
	ctx context.Context,
	config RetryConfig,
	operation func() error,
	errorMapper *ErrorMapper,
	logger coreport.Logger,
	timeProvider coreport.TimeProvider,
) error {
	attempts := config.MaxRetries
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for attempt := 0; attempt < attempts; attempt++ {
		err = operation()
		if err == nil || !errorMapper.IsRetryable(err) {
			return err
		}
		if attempt == attempts-1 {
			break
		}

		backoff := calculateBackoffWithJitter(attempt, config, timeProvider)
		logger.Warn("Transient database error, retrying unit of work", map[string]any{
			"attempt":     attempt + 1,
			"max_retries": attempts,
			"error":       err.Error(),
			"retry_after": backoff.String(),
		})

		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	logger.Error("All retry attempts failed", map[string]any{
		"attempts": attempts,
		"error":    err.Error(),
	})
	return err
}

// NewTxRetry binds RetryOnTransientError into the write executor's retry hook
func NewTxRetry(
	config RetryConfig,
	errorMapper *ErrorMapper,
	logger coreport.Logger,
	timeProvider coreport.TimeProvider,
) func(ctx context.Context, attempt func() error) error {
	return func(ctx context.Context, attempt func() error) error {
		return RetryOnTransientError(ctx, config, attempt, errorMapper, logger, timeProvider)
	}
}

// calculateBackoffWithJitter computes the backoff duration with exponential increase and jitter
func calculateBackoffWithJitter(attempt int, config RetryConfig, timeProvider coreport.TimeProvider) time.Duration {
	backoff := config.RetryInterval * (1 << uint(attempt))
	if config.MaxInterval > 0 && backoff > config.MaxInterval {
		backoff = config.MaxInterval
	}

	if config.JitterFactor > 0 {
		spread := float64(timeProvider.Now().UnixNano()%100) / 100.0
		backoff += time.Duration(float64(backoff) * config.JitterFactor * spread)
	}
	return backoff
}
