package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/amirhossein-jamali/credit-ledger/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/credit-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/credit-ledger/internal/infrastructure/adapter/model"
)

// CreditRepository implements CreditRepository interface using GORM
type CreditRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewCreditRepository creates a new CreditRepository instance
func NewCreditRepository(db *gorm.DB, logger coreport.Logger) *CreditRepository {
	return &CreditRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

// Get returns the balance of addr; a missing row is a zero balance
func (r *CreditRepository) Get(ctx context.Context, addr entity.Address) (*entity.CreditBalance, error) {
	var m model.CreditBalance
	err := r.db.WithContext(ctx).Where("address = ?", addr.String()).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entity.EmptyCreditBalance(addr), nil
	}
	if err != nil {
		return nil, r.errorClassifier.mapError(r.logger, "getting credit balance", err, nil)
	}

	balance, err := fromStoredAmount("balance", m.Balance)
	if err != nil {
		return nil, err
	}
	return entity.NewCreditBalance(addr, balance, m.UpdatedAt.UTC()), nil
}

// Save upserts the balance row
func (r *CreditRepository) Save(ctx context.Context, balance *entity.CreditBalance) error {
	stored, err := toStoredAmount(balance.Balance())
	if err != nil {
		return err
	}

	m := model.CreditBalance{
		Address:   balance.Address.String(),
		Balance:   stored,
		UpdatedAt: balance.UpdatedAt,
	}
	err = r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "address"}},
		DoUpdates: clause.AssignmentColumns([]string{"balance", "updated_at"}),
	}).Create(&m).Error
	if err != nil {
		return r.errorClassifier.mapError(r.logger, "saving credit balance", err, nil)
	}
	return nil
}

// Sum adds up all balances
func (r *CreditRepository) Sum(ctx context.Context) (uint64, error) {
	var balances []int64
	if err := r.db.WithContext(ctx).Model(&model.CreditBalance{}).Pluck("balance", &balances).Error; err != nil {
		return 0, r.errorClassifier.mapError(r.logger, "summing credit balances", err, nil)
	}
	return sumAmounts("balance", balances)
}
