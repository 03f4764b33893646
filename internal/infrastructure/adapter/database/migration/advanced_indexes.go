package migration

import (
	"context"

	"gorm.io/gorm"

	coreport "github.com/amirhossein-jamali/credit-ledger/internal/domain/port/core"
)

// AdvancedIndexManager manages PostgreSQL-specific indexes
type AdvancedIndexManager struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewAdvancedIndexManager creates a new advanced index manager
func NewAdvancedIndexManager(db *gorm.DB, logger coreport.Logger) *AdvancedIndexManager {
	return &AdvancedIndexManager{
		db:     db,
		logger: logger,
	}
}

var advancedIndexes = []struct {
	name string
	sql  string
}{
	{
		// The authority's work queue
		name: "idx_ledger_transactions_proposed",
		sql: `CREATE INDEX IF NOT EXISTS idx_ledger_transactions_proposed
			ON ledger_transactions (id) WHERE status = 'Proposed'`,
	},
	{
		name: "idx_ledger_transactions_credited_status",
		sql: `CREATE INDEX IF NOT EXISTS idx_ledger_transactions_credited_status
			ON ledger_transactions (credited_person, status, id)`,
	},
	{
		name: "idx_events_timestamp_brin",
		sql: `CREATE INDEX IF NOT EXISTS idx_events_timestamp_brin
			ON events USING BRIN (timestamp) WITH (pages_per_range = 32)`,
	},
}

// CreateAdvancedIndexes creates partial and BRIN indexes that SQLite cannot express
func (m *AdvancedIndexManager) CreateAdvancedIndexes(ctx context.Context) error {
	for _, idx := range advancedIndexes {
		if err := m.db.WithContext(ctx).Exec(idx.sql).Error; err != nil {
			m.logger.Error("Failed to create index", map[string]any{
				"index": idx.name,
				"error": err.Error(),
			})
			return err
		}
	}

	// The sequences table is tiny and updated on every write
	if err := m.db.WithContext(ctx).Exec(`ALTER TABLE sequences SET (fillfactor = 50)`).Error; err != nil {
		m.logger.Warn("Failed to set fillfactor for sequences table", map[string]any{
			"error": err.Error(),
		})
	}

	m.logger.Info("Advanced PostgreSQL indexes created", map[string]any{
		"count": len(advancedIndexes),
	})
	return nil
}
