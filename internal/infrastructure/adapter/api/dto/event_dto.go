package dto

import (
	"github.com/amirhossein-jamali/credit-ledger/internal/domain/entity"
)

// EventQuery is the query string of GET /api/events
type EventQuery struct {
	After uint64 `form:"after"`
	Limit int    `form:"limit" binding:"omitempty,min=1,max=1000"`
}

// EventResponse is one audit entry
type EventResponse struct {
	Seq       uint64            `json:"seq"`
	Kind      string            `json:"kind"`
	SubjectID uint64            `json:"subjectId"`
	Actor     string            `json:"actor"`
	Payload   map[string]string `json:"payload"`
	Timestamp string            `json:"timestamp"`
}

// EventListResponse is a page of the feed. Next is the cursor for the following page.
type EventListResponse struct {
	Events []EventResponse `json:"events"`
	Next   uint64          `json:"next"`
}

// NewEventListResponse converts events; next stays at after when the page is empty
func NewEventListResponse(events []*entity.Event, after uint64) EventListResponse {
	resp := EventListResponse{Events: make([]EventResponse, 0, len(events)), Next: after}
	for _, e := range events {
		resp.Events = append(resp.Events, EventResponse{
			Seq:       e.Seq,
			Kind:      string(e.Kind),
			SubjectID: e.SubjectID,
			Actor:     e.Actor.String(),
			Payload:   e.Payload,
			Timestamp: FormatTime(e.Timestamp),
		})
		resp.Next = e.Seq
	}
	return resp
}
