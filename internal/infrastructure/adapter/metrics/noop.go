package metrics

import (
	"time"

	coreport "github.com/amirhossein-jamali/credit-ledger/internal/domain/port/core"
)

// NoopMetrics discards everything. Used when metrics are disabled and by the CLI.
type NoopMetrics struct{}

// NewNoopMetrics creates a new NoopMetrics
func NewNoopMetrics() *NoopMetrics {
	return &NoopMetrics{}
}

func (NoopMetrics) RecordOperation(string, string)                      {}
func (NoopMetrics) ObserveUnitOfWork(string, coreport.Duration)         {}
func (NoopMetrics) SetQueueDepth(int)                                   {}
func (NoopMetrics) RecordPublishFailure(string)                         {}
func (NoopMetrics) SetDBPoolStats(int, int, int)                        {}
func (NoopMetrics) RecordHTTPRequest(string, string, int, time.Duration) {}
func (NoopMetrics) IncInFlight()                                        {}
func (NoopMetrics) DecInFlight()                                        {}

var _ coreport.Metrics = NoopMetrics{}
