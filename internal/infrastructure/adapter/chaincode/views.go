package chaincode

import (
	"encoding/json"
	"time"

	"github.com/amirhossein-jamali/credit-ledger/internal/domain/entity"
	"github.com/amirhossein-jamali/credit-ledger/internal/domain/port/usecase"
)

// RecordView is a record as returned to clients
type RecordView struct {
	ID        uint64 `json:"id"`
	Owner     string `json:"owner"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Age       uint32 `json:"age"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// TransactionView is a transaction as returned to clients. Decision fields are empty while Proposed.
type TransactionView struct {
	ID             uint64 `json:"id"`
	Seller         string `json:"seller"`
	CreditedPerson string `json:"creditedPerson"`
	Description    string `json:"description"`
	Amount         uint64 `json:"amount"`
	Status         string `json:"status"`
	CreatedAt      string `json:"createdAt"`
	DecidedAt      string `json:"decidedAt"`
	DecidedBy      string `json:"decidedBy"`
}

// EventView is an audit entry. Payload is the JSON encoded attribute map.
type EventView struct {
	Seq       uint64 `json:"seq"`
	Kind      string `json:"kind"`
	SubjectID uint64 `json:"subjectId"`
	Actor     string `json:"actor"`
	Payload   string `json:"payload"`
	Timestamp string `json:"timestamp"`
}

// IntegrityView summarizes an integrity check
type IntegrityView struct {
	Consistent    bool   `json:"consistent"`
	Records       uint64 `json:"records"`
	Transactions  uint64 `json:"transactions"`
	Events        uint64 `json:"events"`
	CreditTotal   uint64 `json:"creditTotal"`
	VerifiedTotal uint64 `json:"verifiedTotal"`
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func newRecordView(r *entity.UserRecord) RecordView {
	return RecordView{
		ID:        r.ID,
		Owner:     r.Owner.String(),
		Name:      r.Name,
		Email:     r.Email,
		Age:       r.Age,
		CreatedAt: formatTime(r.CreatedAt),
		UpdatedAt: formatTime(r.UpdatedAt),
	}
}

func newRecordViews(records []*entity.UserRecord) []RecordView {
	out := make([]RecordView, 0, len(records))
	for _, r := range records {
		out = append(out, newRecordView(r))
	}
	return out
}

func newTransactionView(t *entity.Transaction) TransactionView {
	view := TransactionView{
		ID:             t.ID,
		Seller:         t.Seller.String(),
		CreditedPerson: t.CreditedPerson.String(),
		Description:    t.Description,
		Amount:         t.Amount,
		Status:         t.Status.String(),
		CreatedAt:      formatTime(t.CreatedAt),
		DecidedBy:      t.DecidedBy.String(),
	}
	if t.DecidedAt != nil {
		view.DecidedAt = formatTime(*t.DecidedAt)
	}
	return view
}

func newEventView(e *entity.Event) (EventView, error) {
	payload, err := json.Marshal(e.Payload)
	if err != nil {
		return EventView{}, err
	}
	return EventView{
		Seq:       e.Seq,
		Kind:      string(e.Kind),
		SubjectID: e.SubjectID,
		Actor:     e.Actor.String(),
		Payload:   string(payload),
		Timestamp: formatTime(e.Timestamp),
	}, nil
}

func newIntegrityView(report *usecase.IntegrityReport) IntegrityView {
	view := IntegrityView{
		Consistent:    report.Consistent(),
		CreditTotal:   report.CreditTotal,
		VerifiedTotal: report.VerifiedTotal,
	}
	for _, s := range report.Sequences {
		switch s.Name {
		case entity.SequenceRecords:
			view.Records = s.Rows
		case entity.SequenceTransactions:
			view.Transactions = s.Rows
		case entity.SequenceEvents:
			view.Events = s.Rows
		}
	}
	return view
}
