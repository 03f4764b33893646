package dto

import (
	"github.com/amirhossein-jamali/credit-ledger/internal/domain/entity"
)

// ProposeRequest is the body of POST /api/propose
type ProposeRequest struct {
	CreditedPerson string `json:"creditedPerson" binding:"max=256"`
	Description    string `json:"description" binding:"max=4096"`
	Amount         uint64 `json:"amount"`
}

// Proposal converts the request to a domain proposal
func (r ProposeRequest) Proposal() (entity.Proposal, error) {
	proposal := entity.Proposal{Description: r.Description, Amount: r.Amount}
	if r.CreditedPerson != "" {
		addr, err := entity.NewAddress(r.CreditedPerson)
		if err != nil {
			return entity.Proposal{}, err
		}
		proposal.CreditedPerson = addr
	}
	return proposal, nil
}

// DecisionRequest is the body of POST /api/verify and POST /api/reject
type DecisionRequest struct {
	ID uint64 `json:"id"`
}

// TransactionResponse is one transaction
type TransactionResponse struct {
	ID             uint64  `json:"id"`
	Seller         string  `json:"seller"`
	CreditedPerson string  `json:"creditedPerson"`
	Description    string  `json:"description"`
	Amount         uint64  `json:"amount"`
	Status         string  `json:"status"`
	CreatedAt      string  `json:"createdAt"`
	DecidedAt      *string `json:"decidedAt,omitempty"`
	DecidedBy      string  `json:"decidedBy,omitempty"`
}

// NewTransactionResponse converts a transaction
func NewTransactionResponse(t *entity.Transaction) TransactionResponse {
	resp := TransactionResponse{
		ID:             t.ID,
		Seller:         t.Seller.String(),
		CreditedPerson: t.CreditedPerson.String(),
		Description:    t.Description,
		Amount:         t.Amount,
		Status:         t.Status.String(),
		CreatedAt:      FormatTime(t.CreatedAt),
		DecidedBy:      t.DecidedBy.String(),
	}
	if t.DecidedAt != nil {
		decided := FormatTime(*t.DecidedAt)
		resp.DecidedAt = &decided
	}
	return resp
}

// TransactionListQuery is the query string of GET /api/transactions
type TransactionListQuery struct {
	Status         string `form:"status" binding:"omitempty,oneof=Proposed Verified Rejected"`
	Seller         string `form:"seller"`
	CreditedPerson string `form:"creditedPerson"`
	After          uint64 `form:"after"`
	Limit          int    `form:"limit" binding:"omitempty,min=1,max=500"`
}

// Filter converts the query to a domain filter
func (q TransactionListQuery) Filter() (entity.TransactionFilter, error) {
	filter := entity.TransactionFilter{AfterID: q.After, Limit: q.Limit}
	if q.Status != "" {
		status, err := entity.ParseTransactionStatus(q.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}
	if q.Seller != "" {
		seller, err := entity.NewAddress(q.Seller)
		if err != nil {
			return filter, err
		}
		filter.Seller = seller
	}
	if q.CreditedPerson != "" {
		credited, err := entity.NewAddress(q.CreditedPerson)
		if err != nil {
			return filter, err
		}
		filter.CreditedPerson = credited
	}
	return filter, nil
}

// TransactionListResponse is a page of transactions
type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}

// NewTransactionListResponse converts transactions keeping their order
func NewTransactionListResponse(txns []*entity.Transaction) TransactionListResponse {
	out := make([]TransactionResponse, 0, len(txns))
	for _, t := range txns {
		out = append(out, NewTransactionResponse(t))
	}
	return TransactionListResponse{Transactions: out}
}

// CreditsResponse is the balance of one address
type CreditsResponse struct {
	Address string `json:"address"`
	Credits uint64 `json:"credits"`
}

// AuthorityResponse names the address allowed to decide transactions
type AuthorityResponse struct {
	Authority string `json:"authority"`
}
