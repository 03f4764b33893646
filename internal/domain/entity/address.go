package entity

import (
	"strings"

	errs "github.com/amirhossein-jamali/credit-ledger/internal/domain/error"
)

// Address identifies a caller. It is compared by equality only.
type Address string

// NewAddress normalizes raw into an Address.
// Whitespace is trimmed and 0x-prefixed 20-byte hex addresses are lower-cased so
// checksum-cased input compares equal to its lower-case form.
func NewAddress(raw string) (Address, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", errs.ErrInvalidAddress
	}
	if isHexAddress(trimmed) {
		trimmed = strings.ToLower(trimmed)
	}
	return Address(trimmed), nil
}

// MustAddress is NewAddress for constants and tests; it panics on invalid input
func MustAddress(raw string) Address {
	addr, err := NewAddress(raw)
	if err != nil {
		panic(err)
	}
	return addr
}

// String returns the address text
func (a Address) String() string {
	return string(a)
}

// IsZero reports whether the address is empty
func (a Address) IsZero() bool {
	return a == ""
}

// Validate rejects the empty address
func (a Address) Validate() error {
	if a.IsZero() {
		return errs.ErrInvalidAddress
	}
	return nil
}

func isHexAddress(s string) bool {
	if len(s) != 42 || (s[:2] != "0x" && s[:2] != "0X") {
		return false
	}
	for _, c := range s[2:] {
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
