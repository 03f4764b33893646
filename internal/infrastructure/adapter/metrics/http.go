package metrics

import "time"

// HTTPMetrics is what the HTTP middleware records
type HTTPMetrics interface {
	RecordHTTPRequest(method, path string, statusCode int, duration time.Duration)
	IncInFlight()
	DecInFlight()
}

var (
	_ HTTPMetrics = (*PrometheusMetrics)(nil)
	_ HTTPMetrics = NoopMetrics{}
)
