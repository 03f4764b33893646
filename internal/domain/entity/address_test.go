package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/amirhossein-jamali/credit-ledger/internal/domain/error"
)

func TestNewAddress(t *testing.T) {
	testCases := []struct {
		name     string
		raw      string
		expected Address
	}{
		{"checksum hex is lower-cased", "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed", "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed"},
		{"surrounding whitespace is trimmed", "  0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb\n", bob},
		{"non-hex identity is kept verbatim", "x509::CN=Admin", "x509::CN=Admin"},
		{"short hex is kept verbatim", "0xABC", "0xABC"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			addr, err := NewAddress(tc.raw)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, addr)
		})
	}

	t.Run("Empty address is invalid input", func(t *testing.T) {
		_, err := NewAddress("   ")
		assert.ErrorIs(t, err, errs.ErrInvalidAddress)
		assert.ErrorIs(t, err, errs.ErrInvalidInput)
	})

	t.Run("Differently cased forms compare equal", func(t *testing.T) {
		assert.Equal(t,
			MustAddress("0xAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"),
			MustAddress("0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"))
	})
}

func TestEventConstructors(t *testing.T) {
	record := &UserRecord{ID: 4, Owner: alice, Name: "Alice"}
	event := NewRecordEvent(EventRecordStored, record, alice)

	assert.Equal(t, EventRecordStored, event.Kind)
	assert.Equal(t, uint64(4), event.SubjectID)
	assert.Equal(t, map[string]string{"name": "Alice"}, event.Payload)

	txn := &Transaction{ID: 2, CreditedPerson: bob, Description: "d", Amount: 12, Status: StatusVerified}
	event = NewTransactionEvent(EventTransactionVerified, txn, authority)

	assert.Equal(t, authority, event.Actor)
	assert.Equal(t, "12", event.Payload["amount"])
	assert.Equal(t, "Verified", event.Payload["status"])
	_, hasDescription := event.Payload["description"]
	assert.False(t, hasDescription)
	assert.False(t, EventKind("Deleted").IsValid())
}
