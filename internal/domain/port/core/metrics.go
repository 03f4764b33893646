package core

// Operation outcomes that are not an error kind
const (
	OutcomeSuccess = "success"
)

// Metrics records operational measurements of the core
type Metrics interface {
	// RecordOperation counts one finished operation; outcome is OutcomeSuccess or an error kind
	RecordOperation(operation string, outcome string)
	// ObserveUnitOfWork records how long a serialized write held the writer
	ObserveUnitOfWork(operation string, d Duration)
	// SetQueueDepth reports writes waiting for the writer
	SetQueueDepth(depth int)
	// RecordPublishFailure counts a notification the publisher could not deliver
	RecordPublishFailure(kind string)
	// SetDBPoolStats reports database connection pool usage
	SetDBPoolStats(open, inUse, idle int)
}
