package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/credit-ledger/internal/infrastructure/config"
)

func TestConfigValidate(t *testing.T) {
	t.Run("Postgres needs connection details", func(t *testing.T) {
		cfg := DefaultConfig()
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database host is required")
		assert.Contains(t, err.Error(), "database username is required")
	})

	t.Run("Sqlite needs only a path", func(t *testing.T) {
		cfg := NewTestConfig()
		assert.NoError(t, cfg.Validate())
		assert.Equal(t, cfg.SQLitePath, cfg.DSN())
	})

	t.Run("Unknown driver is rejected", func(t *testing.T) {
		cfg := NewTestConfig()
		cfg.Driver = "mysql"
		assert.ErrorContains(t, cfg.Validate(), "unsupported database driver")
	})
}

func TestSafeFieldsOmitCredentials(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Host = "db"
	cfg.Username = "ledger"
	cfg.Password = "secret"

	for _, v := range cfg.SafeFields() {
		assert.NotEqual(t, "secret", v)
	}
	assert.Contains(t, cfg.DSN(), "password=secret")
}

func TestCreateConfigFromAppConfig(t *testing.T) {
	app := &config.Config{
		Database: config.DatabaseConfig{
			Driver:        "postgres",
			Host:          "db",
			Port:          "6543",
			Username:      "ledger",
			Database:      "ledger",
			SlowThreshold: 300 * time.Millisecond,
		},
		Ledger: config.LedgerConfig{MaxRetries: 5, RetryInterval: 20 * time.Millisecond},
	}

	cfg := CreateConfigFromAppConfig(app)

	assert.Equal(t, 6543, cfg.Port)
	assert.Equal(t, 300*time.Millisecond, cfg.SlowThreshold)
	assert.Equal(t, 5, cfg.TxRetry.MaxRetries)
	assert.Equal(t, 20*time.Millisecond, cfg.TxRetry.RetryInterval)
	assert.Equal(t, DefaultRetryConfig().MaxInterval, cfg.TxRetry.MaxInterval)
	assert.NoError(t, cfg.Validate())
}

func TestParsePort(t *testing.T) {
	assert.Equal(t, 5432, ParsePort("5432"))
	assert.Equal(t, 0, ParsePort(""))
	assert.Equal(t, 0, ParsePort("70000"))
}
