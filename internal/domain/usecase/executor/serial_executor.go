package executor

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	errs "github.com/amirhossein-jamali/credit-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/credit-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/credit-ledger/internal/domain/port/persistence"
)

// DefaultQueueSize is the number of writes that may wait for the writer
const DefaultQueueSize = 256

// RetryFunc re-runs attempt while it fails with a transient storage error
type RetryFunc func(ctx context.Context, attempt func() error) error

// Option configures a SerialExecutor
type Option func(*SerialExecutor)

// WithQueueSize sets the queue capacity
func WithQueueSize(size int) Option {
	return func(e *SerialExecutor) {
		if size > 0 {
			e.queueSize = size
		}
	}
}

// WithRetry retries whole units of work that fail transiently
func WithRetry(retry RetryFunc) Option {
	return func(e *SerialExecutor) {
		e.retry = retry
	}
}

// SerialExecutor is the single writer. Every mutation is queued and executed by one
// worker goroutine in arrival order, each inside its own unit of work.
type SerialExecutor struct {
	uow          persistence.UnitOfWork
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	metrics      coreport.Metrics

	queueSize int
	retry     RetryFunc

	queue   chan *writeJob
	depth   atomic.Int64
	mu      sync.RWMutex
	stopped bool
	workers sync.WaitGroup
}

// writeJob is one queued mutation
type writeJob struct {
	ctx       context.Context
	operation string
	fn        persistence.WriteFunc
	result    chan error
}

// NewSerialExecutor creates the executor and starts its worker
func NewSerialExecutor(
	uow persistence.UnitOfWork,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	metrics coreport.Metrics,
	opts ...Option,
) *SerialExecutor {
	if uow == nil {
		panic("unit of work cannot be nil")
	}

	e := &SerialExecutor{
		uow:          uow,
		timeProvider: timeProvider,
		logger:       logger,
		metrics:      metrics,
		queueSize:    DefaultQueueSize,
	}
	for _, opt := range opts {
		opt(e)
	}

	e.queue = make(chan *writeJob, e.queueSize)
	e.workers.Add(1)
	go e.work()

	return e
}

// Execute queues fn and waits for its outcome.
// ctx is honoured only while waiting for a queue slot; once queued the job runs to completion.
func (e *SerialExecutor) Execute(ctx context.Context, operation string, fn persistence.WriteFunc) error {
	job := &writeJob{
		ctx:       context.WithoutCancel(ctx),
		operation: operation,
		fn:        fn,
		result:    make(chan error, 1),
	}

	if err := e.enqueue(ctx, job); err != nil {
		return err
	}

	return <-job.result
}

func (e *SerialExecutor) enqueue(ctx context.Context, job *writeJob) error {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.stopped {
		return errs.ErrExecutorStopped
	}

	select {
	case e.queue <- job:
		e.metrics.SetQueueDepth(int(e.depth.Add(1)))
		return nil
	case <-ctx.Done():
		e.logger.Warn("Context canceled while waiting for the writer", map[string]any{
			"operation": job.operation,
			"error":     ctx.Err().Error(),
		})
		return ctx.Err()
	}
}

// work drains the queue until Shutdown closes it
func (e *SerialExecutor) work() {
	defer e.workers.Done()

	for job := range e.queue {
		e.metrics.SetQueueDepth(int(e.depth.Add(-1)))
		job.result <- e.run(job)
		close(job.result)
	}

	e.logger.Info("Write executor stopped", nil)
}

// run executes one job, retrying the whole unit of work on transient failures
func (e *SerialExecutor) run(job *writeJob) error {
	start := e.timeProvider.Now()
	defer func() {
		e.metrics.ObserveUnitOfWork(job.operation, e.timeProvider.Since(start))
	}()

	attempt := func() error {
		return e.runOnce(job)
	}
	if e.retry == nil {
		return attempt()
	}
	return e.retry(job.ctx, attempt)
}

// runOnce runs fn inside a single unit of work; any error or panic rolls it back
func (e *SerialExecutor) runOnce(job *writeJob) (err error) {
	txCtx, err := e.uow.Begin(job.ctx)
	if err != nil {
		return fmt.Errorf("begin %s: %w", job.operation, err)
	}

	defer func() {
		if r := recover(); r != nil {
			e.rollback(txCtx, job.operation)
			e.logger.Error("Write panicked, unit of work rolled back", map[string]any{
				"operation": job.operation,
				"panic":     fmt.Sprint(r),
			})
			err = fmt.Errorf("%w: %s panicked: %v", errs.ErrInternalServer, job.operation, r)
		}
	}()

	if err := job.fn(txCtx); err != nil {
		e.rollback(txCtx, job.operation)
		return err
	}

	if err := e.uow.Commit(txCtx); err != nil {
		return fmt.Errorf("commit %s: %w", job.operation, err)
	}
	return nil
}

func (e *SerialExecutor) rollback(txCtx context.Context, operation string) {
	if err := e.uow.Rollback(txCtx); err != nil {
		e.logger.Error("Failed to roll back unit of work", map[string]any{
			"operation": operation,
			"error":     err.Error(),
		})
	}
}

// Shutdown rejects new writes, finishes the queued ones and stops the worker
func (e *SerialExecutor) Shutdown() {
	e.mu.Lock()
	if e.stopped {
		e.mu.Unlock()
		return
	}
	e.stopped = true
	close(e.queue)
	e.mu.Unlock()

	e.logger.Info("Shutting down write executor", map[string]any{
		"pending": e.depth.Load(),
	})
	e.workers.Wait()
}

var _ persistence.WriteExecutor = (*SerialExecutor)(nil)
