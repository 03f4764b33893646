package migration

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/amirhossein-jamali/credit-ledger/internal/domain/entity"
	"github.com/amirhossein-jamali/credit-ledger/internal/infrastructure/adapter/model"
)

// SeedSequences creates the id counters at zero, leaving existing counters untouched
func SeedSequences(ctx context.Context, db *gorm.DB) error {
	for _, name := range []string{entity.SequenceRecords, entity.SequenceTransactions, entity.SequenceEvents} {
		err := db.WithContext(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&model.Sequence{Name: name}).Error
		if err != nil {
			return err
		}
	}
	return nil
}
