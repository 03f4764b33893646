package chaincode

import (
	"context"
	"fmt"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"

	"github.com/amirhossein-jamali/credit-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/credit-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/credit-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/credit-ledger/internal/domain/port/usecase"
)

// Contract names as seen by clients
const (
	RecordsContractName = "records"
	LedgerContractName  = "ledger"
)

// open builds a session over the invocation's stub, stamped with the proposal time
func open(ctx contractapi.TransactionContextInterface, logger coreport.Logger) (*session, error) {
	stub := ctx.GetStub()
	ts, err := stub.GetTxTimestamp()
	if err != nil {
		return nil, fmt.Errorf("reading transaction timestamp: %w", err)
	}
	return newSession(stub, ts.AsTime(), logger.With(map[string]any{"tx_id": stub.GetTxID()})), nil
}

// callerOf returns the submitting client's identity as an address
func callerOf(ctx contractapi.TransactionContextInterface) (entity.Address, error) {
	id, err := ctx.GetClientIdentity().GetID()
	if err != nil {
		return "", fmt.Errorf("reading client identity: %w", err)
	}
	addr, err := entity.NewAddress(id)
	if err != nil {
		return "", errs.NewValidationError("caller", err)
	}
	return addr, nil
}

// RecordContract exposes the record store
type RecordContract struct {
	contractapi.Contract
	logger coreport.Logger
}

// NewRecordContract creates the records contract
func NewRecordContract(logger coreport.Logger) *RecordContract {
	return &RecordContract{
		Contract: contractapi.Contract{Name: RecordsContractName},
		logger:   logger.With(map[string]any{"contract": RecordsContractName}),
	}
}

// StoreRecord stores a record owned by the caller and returns its id
func (c *RecordContract) StoreRecord(ctx contractapi.TransactionContextInterface, name, email string, age uint32) (uint64, error) {
	caller, err := callerOf(ctx)
	if err != nil {
		return 0, err
	}
	s, err := open(ctx, c.logger)
	if err != nil {
		return 0, err
	}
	return s.records().StoreRecord(context.Background(), caller, entity.RecordFields{Name: name, Email: email, Age: age})
}

// UpdateRecord overwrites a record owned by the caller
func (c *RecordContract) UpdateRecord(ctx contractapi.TransactionContextInterface, id uint64, name, email string, age uint32) error {
	caller, err := callerOf(ctx)
	if err != nil {
		return err
	}
	s, err := open(ctx, c.logger)
	if err != nil {
		return err
	}
	return s.records().UpdateRecord(context.Background(), caller, id, entity.RecordFields{Name: name, Email: email, Age: age})
}

// GetRecordByID returns one record
func (c *RecordContract) GetRecordByID(ctx contractapi.TransactionContextInterface, id uint64) (*RecordView, error) {
	s, err := open(ctx, c.logger)
	if err != nil {
		return nil, err
	}
	record, err := s.records().GetRecordByID(context.Background(), id)
	if err != nil {
		return nil, err
	}
	view := newRecordView(record)
	return &view, nil
}

// GetRecordsByOwner returns the owner's records in creation order
func (c *RecordContract) GetRecordsByOwner(ctx contractapi.TransactionContextInterface, owner string) ([]RecordView, error) {
	addr, err := entity.NewAddress(owner)
	if err != nil {
		return nil, errs.NewValidationError("owner", err)
	}
	s, err := open(ctx, c.logger)
	if err != nil {
		return nil, err
	}
	records, err := s.records().GetRecordsByOwner(context.Background(), addr)
	if err != nil {
		return nil, err
	}
	return newRecordViews(records), nil
}

// GetMyRecords returns the caller's records
func (c *RecordContract) GetMyRecords(ctx contractapi.TransactionContextInterface) ([]RecordView, error) {
	caller, err := callerOf(ctx)
	if err != nil {
		return nil, err
	}
	s, err := open(ctx, c.logger)
	if err != nil {
		return nil, err
	}
	records, err := s.records().GetMyRecords(context.Background(), caller)
	if err != nil {
		return nil, err
	}
	return newRecordViews(records), nil
}

// TotalRecords returns the number of record ids issued
func (c *RecordContract) TotalRecords(ctx contractapi.TransactionContextInterface) (uint64, error) {
	s, err := open(ctx, c.logger)
	if err != nil {
		return 0, err
	}
	return s.records().TotalRecords(context.Background())
}

// LedgerContract exposes the transaction workflow, the credit ledger and the event feed
type LedgerContract struct {
	contractapi.Contract
	logger coreport.Logger
}

// NewLedgerContract creates the ledger contract
func NewLedgerContract(logger coreport.Logger) *LedgerContract {
	return &LedgerContract{
		Contract: contractapi.Contract{Name: LedgerContractName},
		logger:   logger.With(map[string]any{"contract": LedgerContractName}),
	}
}

// InitLedger fixes the authority. It succeeds once per channel.
func (c *LedgerContract) InitLedger(ctx contractapi.TransactionContextInterface, authority string) error {
	s, err := open(ctx, c.logger)
	if err != nil {
		return err
	}
	addr, err := s.initAuthority(authority)
	if err != nil {
		return err
	}
	c.logger.Info("Authority initialized", map[string]any{"authority": addr})
	return nil
}

// Authority returns the address allowed to decide transactions
func (c *LedgerContract) Authority(ctx contractapi.TransactionContextInterface) (string, error) {
	s, err := open(ctx, c.logger)
	if err != nil {
		return "", err
	}
	authority, err := s.authority()
	return authority.String(), err
}

// ProposeTransaction records a proposal from the caller and returns its id
func (c *LedgerContract) ProposeTransaction(
	ctx contractapi.TransactionContextInterface,
	creditedPerson string,
	description string,
	amount uint64,
) (uint64, error) {
	caller, err := callerOf(ctx)
	if err != nil {
		return 0, err
	}
	proposal := entity.Proposal{Description: description, Amount: amount}
	if creditedPerson != "" {
		if proposal.CreditedPerson, err = entity.NewAddress(creditedPerson); err != nil {
			return 0, errs.NewValidationError("creditedPerson", err)
		}
	}

	service, err := c.ledger(ctx)
	if err != nil {
		return 0, err
	}
	return service.ProposeTransaction(context.Background(), caller, proposal)
}

// VerifyTransaction verifies a proposal and credits its beneficiary
func (c *LedgerContract) VerifyTransaction(ctx contractapi.TransactionContextInterface, id uint64) error {
	caller, err := callerOf(ctx)
	if err != nil {
		return err
	}
	service, err := c.ledger(ctx)
	if err != nil {
		return err
	}
	return service.VerifyTransaction(context.Background(), caller, id)
}

// RejectTransaction rejects a proposal
func (c *LedgerContract) RejectTransaction(ctx contractapi.TransactionContextInterface, id uint64) error {
	caller, err := callerOf(ctx)
	if err != nil {
		return err
	}
	service, err := c.ledger(ctx)
	if err != nil {
		return err
	}
	return service.RejectTransaction(context.Background(), caller, id)
}

// GetTransaction returns one transaction
func (c *LedgerContract) GetTransaction(ctx contractapi.TransactionContextInterface, id uint64) (*TransactionView, error) {
	service, err := c.ledger(ctx)
	if err != nil {
		return nil, err
	}
	txn, err := service.GetTransaction(context.Background(), id)
	if err != nil {
		return nil, err
	}
	view := newTransactionView(txn)
	return &view, nil
}

// ListTransactions pages through transactions by id. Empty filter arguments match everything.
func (c *LedgerContract) ListTransactions(
	ctx contractapi.TransactionContextInterface,
	status string,
	seller string,
	creditedPerson string,
	after uint64,
	limit int,
) ([]TransactionView, error) {
	filter := entity.TransactionFilter{AfterID: after, Limit: limit}
	if status != "" {
		parsed, err := entity.ParseTransactionStatus(status)
		if err != nil {
			return nil, errs.NewValidationError("status", err)
		}
		filter.Status = &parsed
	}
	if seller != "" {
		addr, err := entity.NewAddress(seller)
		if err != nil {
			return nil, errs.NewValidationError("seller", err)
		}
		filter.Seller = addr
	}
	if creditedPerson != "" {
		addr, err := entity.NewAddress(creditedPerson)
		if err != nil {
			return nil, errs.NewValidationError("creditedPerson", err)
		}
		filter.CreditedPerson = addr
	}

	service, err := c.ledger(ctx)
	if err != nil {
		return nil, err
	}
	txns, err := service.ListTransactions(context.Background(), filter)
	if err != nil {
		return nil, err
	}

	out := make([]TransactionView, 0, len(txns))
	for _, t := range txns {
		out = append(out, newTransactionView(t))
	}
	return out, nil
}

// GetCredits returns the balance of person
func (c *LedgerContract) GetCredits(ctx contractapi.TransactionContextInterface, person string) (uint64, error) {
	addr, err := entity.NewAddress(person)
	if err != nil {
		return 0, errs.NewValidationError("person", err)
	}
	service, err := c.ledger(ctx)
	if err != nil {
		return 0, err
	}
	return service.GetCredits(context.Background(), addr)
}

// ListEvents returns audit events after the given sequence number
func (c *LedgerContract) ListEvents(ctx contractapi.TransactionContextInterface, after uint64, limit int) ([]EventView, error) {
	s, err := open(ctx, c.logger)
	if err != nil {
		return nil, err
	}
	events, err := s.audit().ListEvents(context.Background(), after, limit)
	if err != nil {
		return nil, err
	}

	out := make([]EventView, 0, len(events))
	for _, e := range events {
		view, err := newEventView(e)
		if err != nil {
			return nil, err
		}
		out = append(out, view)
	}
	return out, nil
}

// CheckIntegrity compares id counters with stored keys and credits with verified amounts
func (c *LedgerContract) CheckIntegrity(ctx contractapi.TransactionContextInterface) (*IntegrityView, error) {
	s, err := open(ctx, c.logger)
	if err != nil {
		return nil, err
	}
	report, err := s.audit().CheckIntegrity(context.Background())
	if err != nil {
		return nil, err
	}
	view := newIntegrityView(report)
	return &view, nil
}

func (c *LedgerContract) ledger(ctx contractapi.TransactionContextInterface) (usecase.LedgerUseCase, error) {
	s, err := open(ctx, c.logger)
	if err != nil {
		return nil, err
	}
	service, err := s.ledger()
	if err != nil {
		return nil, err
	}
	return service, nil
}
