// Package container wires the standalone service from configuration.
package container

import (
	"context"
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/amirhossein-jamali/credit-ledger/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/credit-ledger/internal/domain/port/core"
	msgport "github.com/amirhossein-jamali/credit-ledger/internal/domain/port/messaging"
	"github.com/amirhossein-jamali/credit-ledger/internal/domain/usecase/audit"
	"github.com/amirhossein-jamali/credit-ledger/internal/domain/usecase/executor"
	"github.com/amirhossein-jamali/credit-ledger/internal/domain/usecase/ledger"
	"github.com/amirhossein-jamali/credit-ledger/internal/domain/usecase/notification"
	"github.com/amirhossein-jamali/credit-ledger/internal/domain/usecase/record"
	"github.com/amirhossein-jamali/credit-ledger/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/credit-ledger/internal/infrastructure/adapter/api/routes"
	"github.com/amirhossein-jamali/credit-ledger/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/credit-ledger/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/credit-ledger/internal/infrastructure/adapter/messaging"
	"github.com/amirhossein-jamali/credit-ledger/internal/infrastructure/adapter/metrics"
	timeprovider "github.com/amirhossein-jamali/credit-ledger/internal/infrastructure/adapter/time"
	"github.com/amirhossein-jamali/credit-ledger/internal/infrastructure/config"
)

// Metrics is everything the service records
type Metrics interface {
	coreport.Metrics
	metrics.HTTPMetrics
}

// Container holds the wired service
type Container struct {
	Config       *config.Config
	Logger       coreport.Logger
	TimeProvider coreport.TimeProvider
	Metrics      Metrics
	Prometheus   *metrics.PrometheusMetrics // nil when metrics are disabled
	Database     *database.Manager
	Publisher    msgport.EventPublisher
	Executor     *executor.SerialExecutor
	Records      *record.Service
	Ledger       *ledger.Service
	Audit        *audit.Service
}

// Options adjusts how the container is built
type Options struct {
	// SkipMigrations leaves the schema untouched
	SkipMigrations bool
	// Logger replaces the logger built from configuration
	Logger coreport.Logger
}

// NewLogger builds the zap logger described by the configuration
func NewLogger(cfg *config.Config) coreport.Logger {
	return logger.NewZapLogger(logger.Options{
		Production: cfg.Environment == config.Production || cfg.Logger.Format == "json",
		Level:      cfg.Logger.Level,
		Service:    "credit-ledger",
	})
}

// New connects to the database, migrates it and wires the use cases
func New(ctx context.Context, cfg *config.Config, opts Options) (*Container, error) {
	c := &Container{
		Config:       cfg,
		Logger:       opts.Logger,
		TimeProvider: timeprovider.NewRealTimeProvider(),
	}
	if c.Logger == nil {
		c.Logger = NewLogger(cfg)
	}

	if cfg.Metrics.Enabled {
		c.Prometheus = metrics.NewPrometheusMetrics()
		c.Metrics = c.Prometheus
	} else {
		c.Metrics = metrics.NewNoopMetrics()
	}

	authority, err := entity.NewAddress(cfg.Ledger.Authority)
	if err != nil {
		return nil, fmt.Errorf("ledger.authority: %w", err)
	}

	c.Database = database.NewManager(database.CreateConfigFromAppConfig(cfg), c.Logger, c.TimeProvider, c.Metrics)
	if _, err := c.Database.Connect(ctx); err != nil {
		return nil, err
	}
	if !opts.SkipMigrations {
		if err := c.Database.Migrate(ctx); err != nil {
			c.closeDatabase()
			return nil, fmt.Errorf("migrating database: %w", err)
		}
	}

	c.Publisher, err = newPublisher(cfg.Messaging, c.Logger)
	if err != nil {
		c.closeDatabase()
		return nil, err
	}

	uow := c.Database.CreateUnitOfWork()
	c.Executor = executor.NewSerialExecutor(uow, c.TimeProvider, c.Logger, c.Metrics,
		executor.WithQueueSize(cfg.Ledger.QueueSize),
		executor.WithRetry(c.Database.TxRetry()),
	)
	dispatcher := notification.NewDispatcher(c.Publisher, c.Logger, c.Metrics)

	c.Records = record.NewService(c.Executor, uow, dispatcher, c.TimeProvider, c.Logger, c.Metrics)
	c.Audit = audit.NewService(uow, c.Logger, c.Metrics)
	c.Ledger, err = ledger.NewService(authority, c.Executor, uow, dispatcher, c.TimeProvider, c.Logger, c.Metrics)
	if err != nil {
		c.Close()
		return nil, err
	}

	return c, nil
}

func newPublisher(cfg config.MessagingConfig, log coreport.Logger) (msgport.EventPublisher, error) {
	if !cfg.Enabled {
		return messaging.NewLogPublisher(log), nil
	}
	publisher, err := messaging.NewRabbitMQPublisher(messaging.Config{URL: cfg.URL, Exchange: cfg.Exchange}, log)
	if err != nil {
		return nil, fmt.Errorf("connecting event publisher: %w", err)
	}
	return publisher, nil
}

// Router builds the gin engine with every route and middleware
func (c *Container) Router() *gin.Engine {
	if c.Config.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	routes.SetupMiddlewares(router, c.Logger, c.Metrics)
	routes.SetupRoutes(router, routes.Handlers{
		Records: handler.NewRecordHandler(c.Records, c.Logger),
		Ledger:  handler.NewLedgerHandler(c.Ledger, c.Logger),
		Events:  handler.NewEventHandler(c.Audit, c.Logger),
		Health:  handler.NewHealthHandler(c.Database, c.Logger),
	})
	if c.Prometheus != nil {
		routes.SetupMetricsRoute(router, c.Config.Metrics.Path, c.Prometheus.Gatherer())
	}
	return router
}

// Close drains the writer, then releases the publisher and the database
func (c *Container) Close() error {
	if c.Executor != nil {
		c.Executor.Shutdown()
	}

	var errs []error
	if c.Publisher != nil {
		if err := c.Publisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing publisher: %w", err))
		}
	}
	if err := c.closeDatabase(); err != nil {
		errs = append(errs, err)
	}
	_ = c.Logger.Flush()
	return errors.Join(errs...)
}

func (c *Container) closeDatabase() error {
	if c.Database == nil {
		return nil
	}
	if err := c.Database.Close(); err != nil {
		return fmt.Errorf("closing database: %w", err)
	}
	return nil
}
