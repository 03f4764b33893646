package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environment constants
const (
	Development = "development"
	Production  = "production"
	Test        = "test"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "TM"

// ConfigPaths defines the paths to look for config files
var ConfigPaths = []string{
	"./configs",
	"../configs",
	"../../configs",
}

// DotEnvPaths defines the paths to look for .env files
var DotEnvPaths = []string{
	".env",
	"../.env",
	"../../.env",
	"./configs/.env",
	"../configs/.env",
}

// LoadConfig loads configuration from file based on the environment
func LoadConfig() (*Config, error) {
	// A missing .env is normal outside local development
	_ = loadDotEnvFile()

	return LoadConfigFrom(getEnvironment(), ConfigPaths...)
}

// LoadConfigFrom reads <env>.yaml from the first path that has it and applies
// TM_ environment overrides on top
func LoadConfigFrom(env string, paths ...string) (*Config, error) {
	v := viper.New()
	v.SetConfigName(env)
	v.SetConfigType("yaml")
	for _, path := range paths {
		v.AddConfigPath(path)
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	processEnvOverrides(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	config.Environment = env

	processDurations(&config)

	if err := validateConfig(&config); err != nil {
		return nil, err
	}
	return &config, nil
}

// loadDotEnvFile loads the first .env file found in the search paths
func loadDotEnvFile() error {
	var lastError error
	for _, path := range DotEnvPaths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			lastError = err
			continue
		}
		return nil
	}

	if lastError != nil {
		return fmt.Errorf("could not load any .env file: %w", lastError)
	}
	return errors.New("no .env file found in search paths")
}

// setDefaults sets default values for non-critical configuration
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.readTimeout", 15)       // seconds
	v.SetDefault("server.writeTimeout", 15)      // seconds
	v.SetDefault("server.idleTimeout", 60)       // seconds
	v.SetDefault("server.readHeaderTimeout", 10) // seconds
	v.SetDefault("server.shutdownTimeout", 10)   // seconds

	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.sslMode", "disable")
	v.SetDefault("database.maxOpenConns", 25)
	v.SetDefault("database.maxIdleConns", 25)
	v.SetDefault("database.connMaxLifetime", 30) // minutes
	v.SetDefault("database.connMaxIdleTime", 15) // minutes
	v.SetDefault("database.queryTimeout", 5)     // seconds
	v.SetDefault("database.slowThreshold", 200)  // milliseconds
	v.SetDefault("database.retryAttempts", 3)
	v.SetDefault("database.retryDelay", 1) // seconds
	v.SetDefault("database.logLevel", "warn")

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")

	v.SetDefault("ledger.queueSize", 256)
	v.SetDefault("ledger.maxRetries", 3)
	v.SetDefault("ledger.retryInterval", 50)    // milliseconds
	v.SetDefault("ledger.maxRetryBackoff", 1000) // milliseconds

	v.SetDefault("messaging.enabled", false)
	v.SetDefault("messaging.exchange", "ledger.events")

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")
}

// getEnvironment determines the environment to use based on TM_ENV
func getEnvironment() string {
	env := os.Getenv(EnvPrefix + "_ENV")
	if env == "" {
		env = Development
	}
	return strings.ToLower(env)
}

// processEnvOverrides maps the short environment names onto config keys.
// AutomaticEnv already covers the long form (TM_DATABASE_HOST).
func processEnvOverrides(v *viper.Viper) {
	stringOverrides := map[string]string{
		"TM_DB_HOST":          "database.host",
		"TM_DB_PORT":          "database.port",
		"TM_DB_USERNAME":      "database.username",
		"TM_DB_PASSWORD":      "database.password",
		"TM_DB_NAME":          "database.database",
		"TM_DB_SSL_MODE":      "database.sslMode",
		"TM_DB_DRIVER":        "database.driver",
		"TM_DB_SQLITE_PATH":   "database.sqlitePath",
		"TM_SERVER_HOST":      "server.host",
		"TM_LOGGER_LEVEL":     "logger.level",
		"TM_LEDGER_AUTHORITY": "ledger.authority",
		"TM_AMQP_URL":         "messaging.url",
	}
	for env, key := range stringOverrides {
		if value := os.Getenv(env); value != "" {
			v.Set(key, value)
		}
	}

	intOverrides := map[string]string{
		"TM_SERVER_PORT":        "server.port",
		"TM_DB_MAX_OPEN_CONNS":  "database.maxOpenConns",
		"TM_DB_MAX_IDLE_CONNS":  "database.maxIdleConns",
		"TM_LEDGER_QUEUE_SIZE":  "ledger.queueSize",
		"TM_LEDGER_MAX_RETRIES": "ledger.maxRetries",
	}
	for env, key := range intOverrides {
		if value := getEnvInt(env, -1); value >= 0 {
			v.Set(key, value)
		}
	}
}

// Helper function to get environment variable as int
func getEnvInt(name string, defaultVal int) int {
	valStr := os.Getenv(name)
	if valStr == "" {
		return defaultVal
	}

	val, err := strconv.Atoi(valStr)
	if err != nil {
		return defaultVal
	}
	return val
}

// processDurations converts plain numbers from the config files into durations
func processDurations(config *Config) {
	config.Server.ReadTimeout = scale(config.Server.ReadTimeout, time.Second)
	config.Server.WriteTimeout = scale(config.Server.WriteTimeout, time.Second)
	config.Server.IdleTimeout = scale(config.Server.IdleTimeout, time.Second)
	config.Server.ReadHeaderTimeout = scale(config.Server.ReadHeaderTimeout, time.Second)
	config.Server.ShutdownTimeout = scale(config.Server.ShutdownTimeout, time.Second)

	config.Database.ConnMaxLifetime = scale(config.Database.ConnMaxLifetime, time.Minute)
	config.Database.ConnMaxIdleTime = scale(config.Database.ConnMaxIdleTime, time.Minute)
	config.Database.QueryTimeout = scale(config.Database.QueryTimeout, time.Second)
	config.Database.SlowThreshold = scale(config.Database.SlowThreshold, time.Millisecond)
	config.Database.RetryDelay = scale(config.Database.RetryDelay, time.Second)

	config.Ledger.RetryInterval = scale(config.Ledger.RetryInterval, time.Millisecond)
	config.Ledger.MaxRetryBackoff = scale(config.Ledger.MaxRetryBackoff, time.Millisecond)
}

// scale treats a bare number as a count of unit. Values written with a unit
// suffix ("5s") already decode to nanoseconds and are kept as they are.
func scale(d time.Duration, unit time.Duration) time.Duration {
	if d > 0 && d < time.Duration(1_000_000) {
		return d * unit
	}
	return d
}

// validateConfig reports every missing or invalid key at once
func validateConfig(config *Config) error {
	var missing []string

	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		missing = append(missing, "server.port")
	}

	switch config.Database.Driver {
	case "postgres":
		if config.Database.Host == "" {
			missing = append(missing, "database.host")
		}
		if config.Database.Username == "" {
			missing = append(missing, "database.username")
		}
		if config.Database.Database == "" {
			missing = append(missing, "database.database")
		}
	case "sqlite":
		if config.Database.SQLitePath == "" {
			missing = append(missing, "database.sqlitePath")
		}
	default:
		missing = append(missing, "database.driver")
	}

	if config.Ledger.Authority == "" {
		missing = append(missing, "ledger.authority")
	}
	if config.Ledger.QueueSize <= 0 {
		missing = append(missing, "ledger.queueSize")
	}
	if config.Messaging.Enabled && config.Messaging.URL == "" {
		missing = append(missing, "messaging.url")
	}
	if config.Metrics.Enabled && !strings.HasPrefix(config.Metrics.Path, "/") {
		missing = append(missing, "metrics.path")
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing or invalid configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}
