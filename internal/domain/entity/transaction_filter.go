package entity

// Listing bounds
const (
	DefaultListLimit  = 50
	MaxListLimit      = 500
	DefaultEventLimit = 100
	MaxEventLimit     = 1000
)

// TransactionFilter narrows a transaction listing. Zero fields match everything.
type TransactionFilter struct {
	Status         *TransactionStatus
	Seller         Address
	CreditedPerson Address
	AfterID        uint64
	Limit          int
}

// Normalized returns a copy with the limit clamped into [1, MaxListLimit]
func (f TransactionFilter) Normalized() TransactionFilter {
	f.Limit = ClampLimit(f.Limit, DefaultListLimit, MaxListLimit)
	return f
}

// Matches reports whether t passes every set criterion except paging
func (f TransactionFilter) Matches(t *Transaction) bool {
	if f.Status != nil && t.Status != *f.Status {
		return false
	}
	if !f.Seller.IsZero() && t.Seller != f.Seller {
		return false
	}
	if !f.CreditedPerson.IsZero() && t.CreditedPerson != f.CreditedPerson {
		return false
	}
	return true
}

// ClampLimit applies the default for non-positive limits and caps at max
func ClampLimit(limit, def, max int) int {
	if limit <= 0 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}
