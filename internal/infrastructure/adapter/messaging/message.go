package messaging

import (
	"encoding/json"
	"time"

	"github.com/amirhossein-jamali/credit-ledger/internal/domain/entity"
)

// EventMessage is the JSON body of a published event
type EventMessage struct {
	Seq       uint64            `json:"seq"`
	Kind      string            `json:"kind"`
	SubjectID uint64            `json:"subjectId"`
	Actor     string            `json:"actor"`
	Payload   map[string]string `json:"payload"`
	Timestamp string            `json:"timestamp"`
}

// NewEventMessage converts an event to its wire form. Timestamps are RFC 3339 in UTC.
func NewEventMessage(event entity.Event) EventMessage {
	return EventMessage{
		Seq:       event.Seq,
		Kind:      string(event.Kind),
		SubjectID: event.SubjectID,
		Actor:     event.Actor.String(),
		Payload:   event.Payload,
		Timestamp: event.Timestamp.UTC().Format(time.RFC3339Nano),
	}
}

func marshalEvent(event entity.Event) ([]byte, error) {
	return json.Marshal(NewEventMessage(event))
}
