package entity

import (
	"strconv"
	"time"
)

// EventKind names a notification emitted by a successful mutation
type EventKind string

// Event kinds
const (
	EventRecordStored        EventKind = "RecordStored"
	EventRecordUpdated       EventKind = "RecordUpdated"
	EventTransactionProposed EventKind = "TransactionProposed"
	EventTransactionVerified EventKind = "TransactionVerified"
	EventTransactionRejected EventKind = "TransactionRejected"
)

// IsValid reports whether k is a known event kind
func (k EventKind) IsValid() bool {
	switch k {
	case EventRecordStored, EventRecordUpdated,
		EventTransactionProposed, EventTransactionVerified, EventTransactionRejected:
		return true
	}
	return false
}

// Event is an immutable audit entry. Seq is assigned when the event is appended.
type Event struct {
	Seq       uint64
	Kind      EventKind
	SubjectID uint64            // Record or transaction id
	Actor     Address           // Caller that performed the mutation
	Payload   map[string]string // Kind-specific attributes
	Timestamp time.Time         // Write time of the mutation
}

// NewRecordEvent builds a RecordStored or RecordUpdated event from the record as written
func NewRecordEvent(kind EventKind, record *UserRecord, actor Address) *Event {
	return &Event{
		Kind:      kind,
		SubjectID: record.ID,
		Actor:     actor,
		Payload: map[string]string{
			"name": record.Name,
		},
		Timestamp: record.UpdatedAt,
	}
}

// NewTransactionEvent builds a ledger event from the transaction as written
func NewTransactionEvent(kind EventKind, txn *Transaction, actor Address) *Event {
	payload := map[string]string{
		"creditedPerson": txn.CreditedPerson.String(),
		"amount":         strconv.FormatUint(txn.Amount, 10),
		"status":         txn.Status.String(),
	}
	if kind == EventTransactionProposed {
		payload["description"] = txn.Description
	}

	return &Event{
		Kind:      kind,
		SubjectID: txn.ID,
		Actor:     actor,
		Payload:   payload,
		Timestamp: txn.EventTime(),
	}
}
