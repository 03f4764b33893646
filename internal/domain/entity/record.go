package entity

import (
	"time"

	errs "github.com/amirhossein-jamali/credit-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/credit-ledger/internal/domain/port/core"
)

// UserRecord is a (name, email, age) entry owned by the address that stored it
type UserRecord struct {
	ID        uint64    // Sequential id, immutable once assigned
	Owner     Address   // Creator of the record, immutable
	Name      string    // Non-empty
	Email     string    // Non-empty
	Age       uint32    // Positive
	CreatedAt time.Time // Set once at creation
	UpdatedAt time.Time // Set on every write
}

// RecordFields holds the mutable part of a record
type RecordFields struct {
	Name  string
	Email string
	Age   uint32
}

// Validate checks the record fields in declaration order
func (f RecordFields) Validate() error {
	if f.Name == "" {
		return errs.NewValidationError("name", errs.ErrEmptyName)
	}
	if f.Email == "" {
		return errs.NewValidationError("email", errs.ErrEmptyEmail)
	}
	if f.Age == 0 {
		return errs.NewValidationError("age", errs.ErrInvalidAge)
	}
	return nil
}

// NewUserRecord creates a record with an already allocated id
func NewUserRecord(
	id uint64,
	owner Address,
	fields RecordFields,
	timeProvider coreport.TimeProvider,
) (*UserRecord, error) {
	if err := owner.Validate(); err != nil {
		return nil, errs.NewValidationError("owner", err)
	}
	if err := fields.Validate(); err != nil {
		return nil, err
	}

	now := timeProvider.Now()
	return &UserRecord{
		ID:        id,
		Owner:     owner,
		Name:      fields.Name,
		Email:     fields.Email,
		Age:       fields.Age,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// IsOwnedBy reports whether addr may mutate the record
func (r *UserRecord) IsOwnedBy(addr Address) bool {
	return r.Owner == addr
}

// Amend overwrites the mutable fields on behalf of caller.
// Checks run in order: ownership, then field validation. Nothing changes on error.
func (r *UserRecord) Amend(caller Address, fields RecordFields, timeProvider coreport.TimeProvider) error {
	if !r.IsOwnedBy(caller) {
		return errs.NewAuthorizationError("updateRecord", caller.String(), r.Owner.String(), errs.ErrNotRecordOwner)
	}
	if err := fields.Validate(); err != nil {
		return err
	}

	r.Name = fields.Name
	r.Email = fields.Email
	r.Age = fields.Age
	r.UpdatedAt = timeProvider.Now()
	return nil
}

// Fields returns the mutable fields of the record
func (r *UserRecord) Fields() RecordFields {
	return RecordFields{Name: r.Name, Email: r.Email, Age: r.Age}
}
