package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	coreport "github.com/amirhossein-jamali/credit-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/credit-ledger/internal/infrastructure/adapter/model"
)

// SequenceRepository implements gapless counters on the sequences table.
// The increment happens in the caller's transaction, so a rollback returns the id.
type SequenceRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewSequenceRepository creates a new SequenceRepository instance
func NewSequenceRepository(db *gorm.DB, logger coreport.Logger) *SequenceRepository {
	return &SequenceRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

// Next increments the counter and returns the new value
func (r *SequenceRepository) Next(ctx context.Context, name string) (uint64, error) {
	db := r.db.WithContext(ctx)

	result := db.Model(&model.Sequence{}).
		Where("name = ?", name).
		Update("value", gorm.Expr("value + 1"))
	if result.Error != nil {
		return 0, r.errorClassifier.mapError(r.logger, "incrementing sequence "+name, result.Error, nil)
	}

	if result.RowsAffected == 0 {
		if err := db.Create(&model.Sequence{Name: name, Value: 1}).Error; err != nil {
			return 0, r.errorClassifier.mapError(r.logger, "creating sequence "+name, err, nil)
		}
		return 1, nil
	}

	return r.Current(ctx, name)
}

// Current returns the last value handed out, 0 if the counter was never used
func (r *SequenceRepository) Current(ctx context.Context, name string) (uint64, error) {
	var seq model.Sequence
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&seq).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, r.errorClassifier.mapError(r.logger, "reading sequence "+name, err, nil)
	}
	return fromStoredAmount("sequence "+name, seq.Value)
}
