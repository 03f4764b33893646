package chaincode

import (
	"context"
	"strconv"

	"github.com/amirhossein-jamali/credit-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/credit-ledger/internal/domain/error"
)

type sequenceRepository struct {
	view view
}

func (r *sequenceRepository) Next(_ context.Context, name string) (uint64, error) {
	current, err := r.current(name)
	if err != nil {
		return 0, err
	}
	next := current + 1
	if err := r.view.put(sequenceKey(name), []byte(strconv.FormatUint(next, 10))); err != nil {
		return 0, err
	}
	return next, nil
}

func (r *sequenceRepository) Current(_ context.Context, name string) (uint64, error) {
	return r.current(name)
}

func (r *sequenceRepository) current(name string) (uint64, error) {
	raw, err := r.view.get(sequenceKey(name))
	if err != nil || len(raw) == 0 {
		return 0, err
	}
	return strconv.ParseUint(string(raw), 10, 64)
}

// countExisting probes ids 1..counter of a sequence and counts the stored keys
func countExisting(v view, sequences *sequenceRepository, name string, key func(uint64) string) (uint64, error) {
	counter, err := sequences.current(name)
	if err != nil {
		return 0, err
	}
	var rows uint64
	for id := uint64(1); id <= counter; id++ {
		raw, err := v.get(key(id))
		if err != nil {
			return 0, err
		}
		if len(raw) > 0 {
			rows++
		}
	}
	return rows, nil
}

type recordRepository struct {
	view      view
	sequences *sequenceRepository
}

func (r *recordRepository) Create(_ context.Context, record *entity.UserRecord) error {
	if err := r.view.putJSON(recordKey(record.ID), toRecordDoc(record)); err != nil {
		return err
	}

	var ids []uint64
	if _, err := r.view.getJSON(ownerKey(record.Owner), &ids); err != nil {
		return err
	}
	return r.view.putJSON(ownerKey(record.Owner), append(ids, record.ID))
}

func (r *recordRepository) Update(_ context.Context, record *entity.UserRecord) error {
	var doc recordDoc
	found, err := r.view.getJSON(recordKey(record.ID), &doc)
	if err != nil {
		return err
	}
	if !found {
		return errs.ErrRecordNotFound
	}

	doc.Name, doc.Email, doc.Age, doc.UpdatedAt = record.Name, record.Email, record.Age, record.UpdatedAt
	return r.view.putJSON(recordKey(record.ID), doc)
}

func (r *recordRepository) GetByID(_ context.Context, id uint64) (*entity.UserRecord, error) {
	var doc recordDoc
	found, err := r.view.getJSON(recordKey(id), &doc)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errs.ErrRecordNotFound
	}
	return doc.toEntity(), nil
}

func (r *recordRepository) ListByOwner(ctx context.Context, owner entity.Address) ([]*entity.UserRecord, error) {
	var ids []uint64
	if _, err := r.view.getJSON(ownerKey(owner), &ids); err != nil {
		return nil, err
	}

	records := make([]*entity.UserRecord, 0, len(ids))
	for _, id := range ids {
		record, err := r.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

func (r *recordRepository) Count(_ context.Context) (uint64, error) {
	return countExisting(r.view, r.sequences, entity.SequenceRecords, recordKey)
}

type transactionRepository struct {
	view      view
	sequences *sequenceRepository
}

func (r *transactionRepository) Create(_ context.Context, txn *entity.Transaction) error {
	return r.view.putJSON(transactionKey(txn.ID), toTransactionDoc(txn))
}

func (r *transactionRepository) UpdateStatus(_ context.Context, txn *entity.Transaction) error {
	var doc transactionDoc
	found, err := r.view.getJSON(transactionKey(txn.ID), &doc)
	if err != nil {
		return err
	}
	if !found {
		return errs.ErrTransactionNotFound
	}

	doc.Status = txn.Status.String()
	doc.DecidedAt = txn.DecidedAt
	doc.DecidedBy = txn.DecidedBy.String()
	return r.view.putJSON(transactionKey(txn.ID), doc)
}

func (r *transactionRepository) GetByID(_ context.Context, id uint64) (*entity.Transaction, error) {
	txn, found, err := r.load(id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errs.ErrTransactionNotFound
	}
	return txn, nil
}

func (r *transactionRepository) load(id uint64) (*entity.Transaction, bool, error) {
	var doc transactionDoc
	found, err := r.view.getJSON(transactionKey(id), &doc)
	if err != nil || !found {
		return nil, found, err
	}
	txn, err := doc.toEntity()
	return txn, err == nil, err
}

// List scans ids after filter.AfterID in order until the page is full
func (r *transactionRepository) List(_ context.Context, filter entity.TransactionFilter) ([]*entity.Transaction, error) {
	filter = filter.Normalized()
	counter, err := r.sequences.current(entity.SequenceTransactions)
	if err != nil {
		return nil, err
	}

	out := make([]*entity.Transaction, 0)
	if filter.AfterID >= counter {
		return out, nil
	}
	for id := filter.AfterID + 1; id <= counter && len(out) < filter.Limit; id++ {
		txn, found, err := r.load(id)
		if err != nil {
			return nil, err
		}
		if found && filter.Matches(txn) {
			out = append(out, txn)
		}
	}
	return out, nil
}

func (r *transactionRepository) Count(_ context.Context) (uint64, error) {
	return countExisting(r.view, r.sequences, entity.SequenceTransactions, transactionKey)
}

func (r *transactionRepository) SumAmount(_ context.Context, status entity.TransactionStatus) (uint64, error) {
	counter, err := r.sequences.current(entity.SequenceTransactions)
	if err != nil {
		return 0, err
	}

	var sum uint64
	for id := uint64(1); id <= counter; id++ {
		txn, found, err := r.load(id)
		if err != nil {
			return 0, err
		}
		if found && txn.Status == status {
			sum += txn.Amount
		}
	}
	return sum, nil
}

type creditRepository struct {
	view view
}

func (r *creditRepository) Get(_ context.Context, addr entity.Address) (*entity.CreditBalance, error) {
	var doc creditDoc
	found, err := r.view.getJSON(creditKey(addr), &doc)
	if err != nil {
		return nil, err
	}
	if !found {
		return entity.EmptyCreditBalance(addr), nil
	}
	return entity.NewCreditBalance(addr, doc.Balance, doc.UpdatedAt), nil
}

// Save upserts the balance and moves the running total by the difference
func (r *creditRepository) Save(ctx context.Context, balance *entity.CreditBalance) error {
	previous, err := r.Get(ctx, balance.Address)
	if err != nil {
		return err
	}
	total, err := r.Sum(ctx)
	if err != nil {
		return err
	}

	total = total - previous.Balance() + balance.Balance()
	if err := r.view.put(creditTotalKey, []byte(strconv.FormatUint(total, 10))); err != nil {
		return err
	}
	return r.view.putJSON(creditKey(balance.Address), creditDoc{
		Address:   balance.Address.String(),
		Balance:   balance.Balance(),
		UpdatedAt: balance.UpdatedAt,
	})
}

func (r *creditRepository) Sum(_ context.Context) (uint64, error) {
	raw, err := r.view.get(creditTotalKey)
	if err != nil || len(raw) == 0 {
		return 0, err
	}
	return strconv.ParseUint(string(raw), 10, 64)
}

type eventRepository struct {
	view      view
	sequences *sequenceRepository
}

func (r *eventRepository) Append(ctx context.Context, event *entity.Event) error {
	seq, err := r.sequences.Next(ctx, entity.SequenceEvents)
	if err != nil {
		return err
	}
	event.Seq = seq

	return r.view.putJSON(eventKey(seq), eventDoc{
		Seq:       event.Seq,
		Kind:      string(event.Kind),
		SubjectID: event.SubjectID,
		Actor:     event.Actor.String(),
		Payload:   event.Payload,
		Timestamp: event.Timestamp,
	})
}

func (r *eventRepository) ListAfter(_ context.Context, afterSeq uint64, limit int) ([]*entity.Event, error) {
	counter, err := r.sequences.current(entity.SequenceEvents)
	if err != nil {
		return nil, err
	}

	out := make([]*entity.Event, 0)
	if afterSeq >= counter {
		return out, nil
	}
	for seq := afterSeq + 1; seq <= counter && len(out) < limit; seq++ {
		var doc eventDoc
		found, err := r.view.getJSON(eventKey(seq), &doc)
		if err != nil {
			return nil, err
		}
		if found {
			out = append(out, &entity.Event{
				Seq:       doc.Seq,
				Kind:      entity.EventKind(doc.Kind),
				SubjectID: doc.SubjectID,
				Actor:     entity.Address(doc.Actor),
				Payload:   doc.Payload,
				Timestamp: doc.Timestamp,
			})
		}
	}
	return out, nil
}

func (r *eventRepository) Count(_ context.Context) (uint64, error) {
	return countExisting(r.view, r.sequences, entity.SequenceEvents, eventKey)
}

func toRecordDoc(r *entity.UserRecord) recordDoc {
	return recordDoc{
		ID:        r.ID,
		Owner:     r.Owner.String(),
		Name:      r.Name,
		Email:     r.Email,
		Age:       r.Age,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func (d recordDoc) toEntity() *entity.UserRecord {
	return &entity.UserRecord{
		ID:        d.ID,
		Owner:     entity.Address(d.Owner),
		Name:      d.Name,
		Email:     d.Email,
		Age:       d.Age,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func toTransactionDoc(t *entity.Transaction) transactionDoc {
	return transactionDoc{
		ID:             t.ID,
		Seller:         t.Seller.String(),
		CreditedPerson: t.CreditedPerson.String(),
		Description:    t.Description,
		Amount:         t.Amount,
		Status:         t.Status.String(),
		CreatedAt:      t.CreatedAt,
		DecidedAt:      t.DecidedAt,
		DecidedBy:      t.DecidedBy.String(),
	}
}

func (d transactionDoc) toEntity() (*entity.Transaction, error) {
	status, err := entity.ParseTransactionStatus(d.Status)
	if err != nil {
		return nil, err
	}
	return &entity.Transaction{
		ID:             d.ID,
		Seller:         entity.Address(d.Seller),
		CreditedPerson: entity.Address(d.CreditedPerson),
		Description:    d.Description,
		Amount:         d.Amount,
		Status:         status,
		CreatedAt:      d.CreatedAt,
		DecidedAt:      d.DecidedAt,
		DecidedBy:      entity.Address(d.DecidedBy),
	}, nil
}
