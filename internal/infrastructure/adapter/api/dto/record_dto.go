package dto

import (
	"time"

	"github.com/amirhossein-jamali/credit-ledger/internal/domain/entity"
)

// RecordRequest is the body of POST /api/records and PUT /api/records/:id
type RecordRequest struct {
	Name  string `json:"name" binding:"max=256"`
	Email string `json:"email" binding:"max=320"`
	Age   uint32 `json:"age"`
}

// Fields converts the request to domain fields
func (r RecordRequest) Fields() entity.RecordFields {
	return entity.RecordFields{Name: r.Name, Email: r.Email, Age: r.Age}
}

// RecordResponse is one stored record
type RecordResponse struct {
	ID        uint64 `json:"id"`
	Owner     string `json:"owner"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Age       uint32 `json:"age"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// NewRecordResponse converts a record
func NewRecordResponse(r *entity.UserRecord) RecordResponse {
	return RecordResponse{
		ID:        r.ID,
		Owner:     r.Owner.String(),
		Name:      r.Name,
		Email:     r.Email,
		Age:       r.Age,
		CreatedAt: FormatTime(r.CreatedAt),
		UpdatedAt: FormatTime(r.UpdatedAt),
	}
}

// NewRecordListResponse converts records keeping their order
func NewRecordListResponse(records []*entity.UserRecord) []RecordResponse {
	out := make([]RecordResponse, 0, len(records))
	for _, r := range records {
		out = append(out, NewRecordResponse(r))
	}
	return out
}

// IDResponse carries a newly assigned id
type IDResponse struct {
	ID uint64 `json:"id"`
}

// TotalResponse carries totalRecords
type TotalResponse struct {
	Total uint64 `json:"total"`
}

// FormatTime renders timestamps as RFC 3339 in UTC
func FormatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
