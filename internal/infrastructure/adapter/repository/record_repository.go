package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/amirhossein-jamali/credit-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/credit-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/credit-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/credit-ledger/internal/infrastructure/adapter/model"
)

// RecordRepository implements RecordRepository interface using GORM
type RecordRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewRecordRepository creates a new RecordRepository instance
func NewRecordRepository(db *gorm.DB, logger coreport.Logger) *RecordRepository {
	return &RecordRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func recordToModel(record *entity.UserRecord) model.UserRecord {
	return model.UserRecord{
		ID:        record.ID,
		Owner:     record.Owner.String(),
		Name:      record.Name,
		Email:     record.Email,
		Age:       record.Age,
		CreatedAt: record.CreatedAt,
		UpdatedAt: record.UpdatedAt,
	}
}

func recordToEntity(m *model.UserRecord) *entity.UserRecord {
	return &entity.UserRecord{
		ID:        m.ID,
		Owner:     entity.Address(m.Owner),
		Name:      m.Name,
		Email:     m.Email,
		Age:       m.Age,
		CreatedAt: m.CreatedAt.UTC(),
		UpdatedAt: m.UpdatedAt.UTC(),
	}
}

// Create inserts a new record
func (r *RecordRepository) Create(ctx context.Context, record *entity.UserRecord) error {
	m := recordToModel(record)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return r.errorClassifier.mapError(r.logger, "creating record", err, nil)
	}

	r.logger.Debug("Record inserted", map[string]any{
		"record_id": record.ID,
		"owner":     record.Owner,
	})
	return nil
}

// Update overwrites the mutable columns of a record
func (r *RecordRepository) Update(ctx context.Context, record *entity.UserRecord) error {
	result := r.db.WithContext(ctx).Model(&model.UserRecord{}).
		Where("id = ?", record.ID).
		Updates(map[string]any{
			"name":       record.Name,
			"email":      record.Email,
			"age":        record.Age,
			"updated_at": record.UpdatedAt,
		})
	if result.Error != nil {
		return r.errorClassifier.mapError(r.logger, "updating record", result.Error, nil)
	}
	if result.RowsAffected == 0 {
		return errs.ErrRecordNotFound
	}
	return nil
}

// GetByID retrieves a record by id
func (r *RecordRepository) GetByID(ctx context.Context, id uint64) (*entity.UserRecord, error) {
	if !storableKey(id) {
		return nil, errs.ErrRecordNotFound
	}

	var m model.UserRecord
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, r.errorClassifier.mapError(r.logger, "getting record", err, errs.ErrRecordNotFound)
	}
	return recordToEntity(&m), nil
}

// ListByOwner returns the owner's records ordered by id, which is creation order
func (r *RecordRepository) ListByOwner(ctx context.Context, owner entity.Address) ([]*entity.UserRecord, error) {
	var rows []model.UserRecord
	err := r.db.WithContext(ctx).
		Where("owner = ?", owner.String()).
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, r.errorClassifier.mapError(r.logger, "listing records by owner", err, nil)
	}

	records := make([]*entity.UserRecord, 0, len(rows))
	for i := range rows {
		records = append(records, recordToEntity(&rows[i]))
	}
	return records, nil
}

// Count returns the number of stored records
func (r *RecordRepository) Count(ctx context.Context) (uint64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.UserRecord{}).Count(&count).Error; err != nil {
		return 0, r.errorClassifier.mapError(r.logger, "counting records", err, nil)
	}
	return uint64(count), nil
}
