package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	coreport "github.com/amirhossein-jamali/credit-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/credit-ledger/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/credit-ledger/internal/infrastructure/adapter/api/middleware"
	"github.com/amirhossein-jamali/credit-ledger/internal/infrastructure/adapter/metrics"
)

// Handlers groups the API handlers
type Handlers struct {
	Records *handler.RecordHandler
	Ledger  *handler.LedgerHandler
	Events  *handler.EventHandler
	Health  *handler.HealthHandler
}

// SetupRoutes configures all the routes for the API
func SetupRoutes(router *gin.Engine, h Handlers) {
	api := router.Group("/api")
	{
		records := api.Group("/records")
		records.POST("", h.Records.StoreRecord)
		records.GET("/mine", h.Records.GetMyRecords)
		records.GET("/total", h.Records.TotalRecords)
		records.GET("/owner/:address", h.Records.GetRecordsByOwner)
		records.GET("/:id", h.Records.GetRecordByID)
		records.PUT("/:id", h.Records.UpdateRecord)

		api.POST("/propose", h.Ledger.ProposeTransaction)
		api.POST("/verify", h.Ledger.VerifyTransaction)
		api.POST("/reject", h.Ledger.RejectTransaction)
		api.GET("/transaction/:id", h.Ledger.GetTransaction)
		api.GET("/transactions", h.Ledger.ListTransactions)
		api.GET("/credits/:person", h.Ledger.GetCredits)
		api.GET("/authority", h.Ledger.Authority)

		api.GET("/events", h.Events.ListEvents)
	}

	if h.Health != nil {
		router.GET("/health", h.Health.Health)
	}
}

// SetupMetricsRoute exposes the gatherer in the Prometheus text format
func SetupMetricsRoute(router *gin.Engine, path string, gatherer prometheus.Gatherer) {
	router.GET(path, gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger, m metrics.HTTPMetrics) {
	// Order matters: recovery outermost, request id before anything that logs
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Metrics(m))
	router.Use(middleware.CallerIdentity())
}
