// Package chaincode hosts the record store and the ledger workflow on Hyperledger Fabric.
// World state plays the role of the database and one invocation is one unit of work.
package chaincode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/amirhossein-jamali/credit-ledger/internal/domain/entity"
)

// StateStore is the part of the chaincode stub the adapter needs
type StateStore interface {
	GetState(key string) ([]byte, error)
	PutState(key string, value []byte) error
	SetEvent(name string, payload []byte) error
}

// World state keys. Ids are zero padded so keys sort in id order.
const (
	authorityKey   = "authority"
	creditTotalKey = "credit-total"
)

func sequenceKey(name string) string      { return "seq:" + name }
func recordKey(id uint64) string          { return fmt.Sprintf("record:%020d", id) }
func ownerKey(owner entity.Address) string { return "owner:" + owner.String() }
func transactionKey(id uint64) string     { return fmt.Sprintf("txn:%020d", id) }
func creditKey(addr entity.Address) string { return "credit:" + addr.String() }
func eventKey(seq uint64) string          { return fmt.Sprintf("event:%020d", seq) }

var errReadOnly = errors.New("write outside a unit of work")

type contextKey string

const writeSetKey contextKey = "writeset"

// writeSet buffers the writes of one invocation. Fabric reads never observe
// the invocation's own writes, so reads go through the buffer first.
type writeSet struct {
	writes map[string][]byte
	order  []string
}

func (w *writeSet) put(key string, value []byte) {
	if _, ok := w.writes[key]; !ok {
		w.order = append(w.order, key)
	}
	w.writes[key] = value
}

func writeSetFrom(ctx context.Context) *writeSet {
	ws, _ := ctx.Value(writeSetKey).(*writeSet)
	return ws
}

// view reads through the pending writes of the current unit of work, if any
type view struct {
	store StateStore
	ws    *writeSet
}

func newView(ctx context.Context, store StateStore) view {
	return view{store: store, ws: writeSetFrom(ctx)}
}

func (v view) get(key string) ([]byte, error) {
	if v.ws != nil {
		if value, ok := v.ws.writes[key]; ok {
			return value, nil
		}
	}
	value, err := v.store.GetState(key)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", key, err)
	}
	return value, nil
}

func (v view) put(key string, value []byte) error {
	if v.ws == nil {
		return errReadOnly
	}
	v.ws.put(key, value)
	return nil
}

// getJSON decodes key into out and reports whether the key exists
func (v view) getJSON(key string, out any) (bool, error) {
	raw, err := v.get(key)
	if err != nil {
		return false, err
	}
	if len(raw) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, fmt.Errorf("decoding %s: %w", key, err)
	}
	return true, nil
}

func (v view) putJSON(key string, in any) error {
	raw, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	return v.put(key, raw)
}

type recordDoc struct {
	ID        uint64    `json:"id"`
	Owner     string    `json:"owner"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Age       uint32    `json:"age"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type transactionDoc struct {
	ID             uint64     `json:"id"`
	Seller         string     `json:"seller"`
	CreditedPerson string     `json:"creditedPerson"`
	Description    string     `json:"description"`
	Amount         uint64     `json:"amount"`
	Status         string     `json:"status"`
	CreatedAt      time.Time  `json:"createdAt"`
	DecidedAt      *time.Time `json:"decidedAt,omitempty"`
	DecidedBy      string     `json:"decidedBy,omitempty"`
}

type creditDoc struct {
	Address   string    `json:"address"`
	Balance   uint64    `json:"balance"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type eventDoc struct {
	Seq       uint64            `json:"seq"`
	Kind      string            `json:"kind"`
	SubjectID uint64            `json:"subjectId"`
	Actor     string            `json:"actor"`
	Payload   map[string]string `json:"payload"`
	Timestamp time.Time         `json:"timestamp"`
}
