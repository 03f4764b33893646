package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/amirhossein-jamali/credit-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/credit-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/credit-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/credit-ledger/internal/infrastructure/adapter/model"
)

// TransactionRepository implements TransactionRepository interface using GORM
type TransactionRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewTransactionRepository creates a new TransactionRepository instance
func NewTransactionRepository(db *gorm.DB, logger coreport.Logger) *TransactionRepository {
	return &TransactionRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

// entityToModel converts a transaction entity to a database model
func (r *TransactionRepository) entityToModel(txn *entity.Transaction) (model.Transaction, error) {
	amount, err := toStoredAmount(txn.Amount)
	if err != nil {
		return model.Transaction{}, err
	}

	return model.Transaction{
		ID:             txn.ID,
		Seller:         txn.Seller.String(),
		CreditedPerson: txn.CreditedPerson.String(),
		Description:    txn.Description,
		Amount:         amount,
		Status:         txn.Status.String(),
		CreatedAt:      txn.CreatedAt,
		DecidedAt:      txn.DecidedAt,
		DecidedBy:      txn.DecidedBy.String(),
	}, nil
}

// modelToEntity converts a database model to a transaction entity
func (r *TransactionRepository) modelToEntity(m *model.Transaction) (*entity.Transaction, error) {
	status, err := entity.ParseTransactionStatus(m.Status)
	if err != nil {
		return nil, r.errorClassifier.mapError(r.logger, "decoding transaction status", err, nil)
	}
	amount, err := fromStoredAmount("amount", m.Amount)
	if err != nil {
		return nil, err
	}

	txn := &entity.Transaction{
		ID:             m.ID,
		Seller:         entity.Address(m.Seller),
		CreditedPerson: entity.Address(m.CreditedPerson),
		Description:    m.Description,
		Amount:         amount,
		Status:         status,
		CreatedAt:      m.CreatedAt.UTC(),
		DecidedBy:      entity.Address(m.DecidedBy),
	}
	if m.DecidedAt != nil {
		decided := m.DecidedAt.UTC()
		txn.DecidedAt = &decided
	}
	return txn, nil
}

// Create saves a new Proposed transaction
func (r *TransactionRepository) Create(ctx context.Context, txn *entity.Transaction) error {
	m, err := r.entityToModel(txn)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return r.errorClassifier.mapError(r.logger, "creating transaction", err, nil)
	}

	r.logger.Debug("Transaction inserted", map[string]any{
		"transaction_id": txn.ID,
		"seller":         txn.Seller,
	})
	return nil
}

// UpdateStatus persists status, decidedAt and decidedBy
func (r *TransactionRepository) UpdateStatus(ctx context.Context, txn *entity.Transaction) error {
	result := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Where("id = ?", txn.ID).
		Updates(map[string]any{
			"status":     txn.Status.String(),
			"decided_at": txn.DecidedAt,
			"decided_by": txn.DecidedBy.String(),
		})
	if result.Error != nil {
		return r.errorClassifier.mapError(r.logger, "updating transaction status", result.Error, nil)
	}
	if result.RowsAffected == 0 {
		return errs.ErrTransactionNotFound
	}
	return nil
}

// GetByID retrieves a transaction by id
func (r *TransactionRepository) GetByID(ctx context.Context, id uint64) (*entity.Transaction, error) {
	if !storableKey(id) {
		return nil, errs.ErrTransactionNotFound
	}

	var m model.Transaction
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, r.errorClassifier.mapError(r.logger, "getting transaction", err, errs.ErrTransactionNotFound)
	}
	return r.modelToEntity(&m)
}

// List returns transactions matching the filter ordered by id
func (r *TransactionRepository) List(ctx context.Context, filter entity.TransactionFilter) ([]*entity.Transaction, error) {
	if !storableKey(filter.AfterID) {
		return []*entity.Transaction{}, nil
	}

	query := r.db.WithContext(ctx).Model(&model.Transaction{}).Where("id > ?", filter.AfterID)
	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}
	if !filter.Seller.IsZero() {
		query = query.Where("seller = ?", filter.Seller.String())
	}
	if !filter.CreditedPerson.IsZero() {
		query = query.Where("credited_person = ?", filter.CreditedPerson.String())
	}

	var rows []model.Transaction
	if err := query.Order("id ASC").Limit(filter.Limit).Find(&rows).Error; err != nil {
		return nil, r.errorClassifier.mapError(r.logger, "listing transactions", err, nil)
	}

	txns := make([]*entity.Transaction, 0, len(rows))
	for i := range rows {
		txn, err := r.modelToEntity(&rows[i])
		if err != nil {
			return nil, err
		}
		txns = append(txns, txn)
	}
	return txns, nil
}

// Count returns the number of stored transactions
func (r *TransactionRepository) Count(ctx context.Context) (uint64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Transaction{}).Count(&count).Error; err != nil {
		return 0, r.errorClassifier.mapError(r.logger, "counting transactions", err, nil)
	}
	return uint64(count), nil
}

// SumAmount adds up the amounts of transactions in status
func (r *TransactionRepository) SumAmount(ctx context.Context, status entity.TransactionStatus) (uint64, error) {
	var amounts []int64
	err := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Where("status = ?", status.String()).
		Pluck("amount", &amounts).Error
	if err != nil {
		return 0, r.errorClassifier.mapError(r.logger, "summing transaction amounts", err, nil)
	}
	return sumAmounts("amount", amounts)
}
