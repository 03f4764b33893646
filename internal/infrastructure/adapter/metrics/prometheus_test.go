package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coreport "github.com/amirhossein-jamali/credit-ledger/internal/domain/port/core"
)

func newTestMetrics() *PrometheusMetrics {
	reg := prometheus.NewRegistry()
	return NewPrometheusMetricsWith(reg, reg)
}

func TestPrometheusMetrics(t *testing.T) {
	m := newTestMetrics()

	m.RecordOperation("verifyTransaction", coreport.OutcomeSuccess)
	m.RecordOperation("verifyTransaction", coreport.OutcomeSuccess)
	m.RecordOperation("verifyTransaction", "Unauthorized")
	m.SetQueueDepth(4)
	m.RecordPublishFailure("TransactionVerified")
	m.SetDBPoolStats(5, 2, 3)
	m.ObserveUnitOfWork("verifyTransaction", coreport.Duration(3*time.Millisecond))
	m.RecordHTTPRequest("POST", "/api/verify", 200, 10*time.Millisecond)
	m.IncInFlight()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.OperationsTotal.WithLabelValues("verifyTransaction", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.OperationsTotal.WithLabelValues("verifyTransaction", "Unauthorized")))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.QueueDepth))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PublishFailures.WithLabelValues("TransactionVerified")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.DBConnectionsInUse))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("POST", "/api/verify", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsInFlight))
	assert.Equal(t, 1, testutil.CollectAndCount(m.UnitOfWorkDuration))
}

func TestRegistriesAreIndependent(t *testing.T) {
	first := newTestMetrics()
	second := newTestMetrics()

	first.SetQueueDepth(1)

	assert.Zero(t, testutil.ToFloat64(second.QueueDepth))

	families, err := first.Gatherer().Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}
