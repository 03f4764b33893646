package entity

import "math"

// Sequence names for the gapless id counters
const (
	SequenceRecords      = "records"
	SequenceTransactions = "transactions"
	SequenceEvents       = "events"
)

// MaxAmount is the largest amount or balance the ledger stores.
// Storage columns are signed 64-bit.
const MaxAmount uint64 = math.MaxInt64
