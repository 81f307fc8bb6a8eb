package api

import (
	v1 "github.com/factuurdesk/factuurdesk/internal/api/v1"
	"github.com/factuurdesk/factuurdesk/internal/config"
	"github.com/factuurdesk/factuurdesk/internal/logger"
	"github.com/factuurdesk/factuurdesk/internal/rest/middleware"
	"github.com/factuurdesk/factuurdesk/internal/types"
	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Health   *v1.HealthHandler
	Report   *v1.ReportHandler
	Invoice  *v1.InvoiceHandler
	Settings *v1.SettingsHandler
}

func NewRouter(handlers Handlers, cfg *config.Configuration, logger *logger.Logger) *gin.Engine {
	if cfg.Deployment.Mode != types.ModeLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.CORSMiddleware,
		middleware.RequestIDMiddleware,
		middleware.SentryMiddleware(cfg),
		middleware.ErrorHandler(logger),
	)

	router.GET("/health", handlers.Health.Health)

	v1Group := router.Group("/v1")
	registerV1Routes(v1Group, handlers, cfg)

	return router
}

func registerV1Routes(router *gin.RouterGroup, handlers Handlers, cfg *config.Configuration) {
	reports := router.Group("/reports")
	{
		reports.GET("/tax", handlers.Report.GetTaxReport)
		reports.GET("/revenue", handlers.Report.GetRevenueReport)
		reports.GET("/aging", handlers.Report.GetAgingReport)
		reports.GET("/dashboard", handlers.Report.GetDashboard)
		reports.GET("/:kind/csv", handlers.Report.ExportCSV)
	}

	// one limiter is shared by the document routes
	documentLimit := middleware.RateLimitMiddleware(cfg.RateLimit)
	invoices := router.Group("/invoices")
	{
		invoices.GET("/:id/pdf", documentLimit, handlers.Invoice.GetInvoicePDF)
		invoices.POST("/:id/archive", documentLimit, handlers.Invoice.ArchiveInvoice)
	}

	settings := router.Group("/settings")
	{
		settings.GET("/company", handlers.Settings.GetCompanySettings)
		settings.PUT("/company", handlers.Settings.UpdateCompanySettings)
	}
}
