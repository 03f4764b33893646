package database

import (
	"errors"
	"fmt"
	"time"
)

// Supported drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config represents database configuration
type Config struct {
	Driver          string
	Host            string
	Port            int
	Username        string
	Password        string
	Database        string
	SSLMode         string
	SQLitePath      string // File path or "file:name?mode=memory&cache=shared"
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	QueryTimeout    time.Duration
	LogLevel        string
	SlowThreshold   time.Duration
	RetryAttempts   int           // Initial connection attempts
	RetryDelay      time.Duration // Delay between connection attempts
	TxRetry         RetryConfig   // Retry of whole units of work on transient errors
}

// DefaultConfig returns a Config with default values for a local postgres
func DefaultConfig() *Config {
	return &Config{
		Driver:          DriverPostgres,
		Port:            5432,
		SSLMode:         "disable",
		MaxOpenConns:    25,
		MaxIdleConns:    25,
		ConnMaxLifetime: 5 * time.Minute,
		ConnMaxIdleTime: 5 * time.Minute,
		QueryTimeout:    10 * time.Second,
		LogLevel:        "warn",
		SlowThreshold:   200 * time.Millisecond,
		RetryAttempts:   3,
		RetryDelay:      5 * time.Second,
		TxRetry:         DefaultRetryConfig(),
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var problems []error

	switch c.Driver {
	case DriverPostgres:
		if c.Host == "" {
			problems = append(problems, errors.New("database host is required"))
		}
		if c.Port <= 0 || c.Port > 65535 {
			problems = append(problems, fmt.Errorf("invalid port number: %d", c.Port))
		}
		if c.Username == "" {
			problems = append(problems, errors.New("database username is required"))
		}
		if c.Database == "" {
			problems = append(problems, errors.New("database name is required"))
		}
		validSSLModes := map[string]bool{
			"disable": true, "require": true, "verify-ca": true, "verify-full": true, "prefer": true,
		}
		if !validSSLModes[c.SSLMode] {
			problems = append(problems, fmt.Errorf("invalid SSL mode: %s", c.SSLMode))
		}
	case DriverSQLite:
		if c.SQLitePath == "" {
			problems = append(problems, errors.New("sqlite path is required"))
		}
	default:
		problems = append(problems, fmt.Errorf("unsupported database driver: %s", c.Driver))
	}

	if c.MaxOpenConns <= 0 {
		problems = append(problems, fmt.Errorf("max open connections must be positive, got: %d", c.MaxOpenConns))
	}
	if c.MaxIdleConns < 0 {
		problems = append(problems, fmt.Errorf("max idle connections must be non-negative, got: %d", c.MaxIdleConns))
	}
	if c.QueryTimeout <= 0 {
		problems = append(problems, errors.New("query timeout must be positive"))
	}
	if c.RetryAttempts < 1 {
		problems = append(problems, fmt.Errorf("retry attempts must be at least 1, got: %d", c.RetryAttempts))
	}

	return errors.Join(problems...)
}

// DSN returns the database connection string for the configured driver
func (c *Config) DSN() string {
	if c.Driver == DriverSQLite {
		return c.SQLitePath
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.Username, c.Password, c.Database, c.SSLMode,
	)
}

// SafeFields returns loggable connection details without credentials
func (c *Config) SafeFields() map[string]any {
	if c.Driver == DriverSQLite {
		return map[string]any{"driver": c.Driver, "path": c.SQLitePath}
	}
	return map[string]any{
		"driver": c.Driver,
		"host":   c.Host,
		"port":   c.Port,
		"name":   c.Database,
	}
}
