package database

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	coreport "github.com/amirhossein-jamali/credit-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/credit-ledger/internal/infrastructure/adapter/database/migration"
)

// NewTestConfig returns a SQLite in-memory configuration private to one test
func NewTestConfig() *Config {
	config := DefaultConfig()
	config.Driver = DriverSQLite
	config.SQLitePath = fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	// A single connection keeps the in-memory database alive and serializes writers
	config.MaxOpenConns = 1
	config.MaxIdleConns = 1
	config.ConnMaxLifetime = 0
	config.ConnMaxIdleTime = 0
	config.LogLevel = "silent"
	config.RetryAttempts = 1
	config.RetryDelay = 10 * time.Millisecond
	return config
}

// NewTestDB opens a migrated in-memory database and closes it when the test ends
func NewTestDB(t *testing.T, logger coreport.Logger, timeProvider coreport.TimeProvider) *gorm.DB {
	t.Helper()

	config := NewTestConfig()
	dialector, err := openDialector(config)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: NewDatabaseLogger(logger, timeProvider, config.LogLevel, 0),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get test database connection: %v", err)
	}
	sqlDB.SetMaxOpenConns(config.MaxOpenConns)
	sqlDB.SetMaxIdleConns(config.MaxIdleConns)

	if err := migration.NewMigrationManager(db, logger, timeProvider).MigrateAll(context.Background()); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		if err := sqlDB.Close(); err != nil {
			t.Logf("Warning: Failed to close test database connection: %v", err)
		}
	})

	return db
}
