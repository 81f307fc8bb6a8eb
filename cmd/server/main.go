package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/factuurdesk/factuurdesk/internal/api"
	v1 "github.com/factuurdesk/factuurdesk/internal/api/v1"
	"github.com/factuurdesk/factuurdesk/internal/cache"
	"github.com/factuurdesk/factuurdesk/internal/config"
	"github.com/factuurdesk/factuurdesk/internal/logger"
	"github.com/factuurdesk/factuurdesk/internal/pdf"
	"github.com/factuurdesk/factuurdesk/internal/postgres"
	"github.com/factuurdesk/factuurdesk/internal/repository"
	"github.com/factuurdesk/factuurdesk/internal/s3"
	"github.com/factuurdesk/factuurdesk/internal/sentry"
	"github.com/factuurdesk/factuurdesk/internal/service"
	"github.com/factuurdesk/factuurdesk/internal/types"
	"github.com/factuurdesk/factuurdesk/internal/validator"
	"github.com/gin-gonic/gin"
	govalidator "github.com/go-playground/validator/v10"
	"go.uber.org/fx"
)

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC
}

func main() {
	app := fx.New(appOptions()...)
	app.Run()
}

func appOptions() []fx.Option {
	var opts []fx.Option

	// Core dependencies
	opts = append(opts,
		validatorModule(),
		fx.Provide(
			// Config
			config.NewConfig,

			// Logger
			logger.NewLogger,

			// Cache
			provideCache,

			// DB
			postgres.NewDB,

			// Document archive
			s3.NewService,
		),
	)

	// Sentry
	opts = append(opts, sentry.Module())

	// Repositories
	opts = append(opts,
		fx.Provide(
			repository.NewInvoiceRepository,
			repository.NewSettingsRepository,
		),
	)

	// Services
	opts = append(opts,
		fx.Provide(
			service.NewServiceParams,
			service.NewSettingsService,
			service.NewReportService,
			provideDocumentGenerator,
			service.NewDocumentService,
		),
	)

	// API
	opts = append(opts,
		fx.Provide(
			provideHandlers,
			provideRouter,
		),
		fx.Invoke(
			migrateDatabase,
			startServer,
		),
	)

	return opts
}

// validatorModule sets up the package level validator the services validate with.
// Nothing takes *validator.Validate as a parameter, so it is requested explicitly.
func validatorModule() fx.Option {
	return fx.Options(
		fx.Provide(validator.NewValidator),
		fx.Invoke(func(*govalidator.Validate) {}),
	)
}

func provideCache(cfg *config.Configuration, log *logger.Logger) cache.Cache {
	return cache.NewInMemoryCache(cfg, log)
}

// provideDocumentGenerator builds the invoice renderer. Local logo files are
// tried first, the logo URL from the company settings only when allowed.
func provideDocumentGenerator(
	cfg *config.Configuration,
	settingsService service.SettingsService,
	log *logger.Logger,
) pdf.Generator {
	assets := pdf.ChainResolver{pdf.NewFileAssetResolver(cfg.Document.LogoPaths, log)}
	if cfg.Document.FetchRemoteLogo {
		assets = append(assets, pdf.NewHTTPAssetResolver(log))
	}
	return pdf.NewRenderer(cfg, settingsService, assets, log)
}

func provideHandlers(
	cfg *config.Configuration,
	logger *logger.Logger,
	reportService service.ReportService,
	documentService service.DocumentService,
	settingsService service.SettingsService,
) api.Handlers {
	return api.Handlers{
		Health:   v1.NewHealthHandler(logger),
		Report:   v1.NewReportHandler(reportService, cfg, logger),
		Invoice:  v1.NewInvoiceHandler(documentService, logger),
		Settings: v1.NewSettingsHandler(settingsService, logger),
	}
}

func provideRouter(handlers api.Handlers, cfg *config.Configuration, logger *logger.Logger) *gin.Engine {
	return api.NewRouter(handlers, cfg, logger)
}

func migrateDatabase(lc fx.Lifecycle, cfg *config.Configuration, db *postgres.DB, log *logger.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if !cfg.Postgres.AutoMigrate {
				return nil
			}
			log.Info("Running database migrations...")
			return db.Migrate(ctx)
		},
		OnStop: func(ctx context.Context) error {
			db.Close()
			return nil
		},
	})
}

func startServer(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	r *gin.Engine,
	log *logger.Logger,
) {
	mode := cfg.Deployment.Mode
	if mode == "" {
		mode = types.ModeLocal
	}

	switch mode {
	case types.ModeLocal, types.ModeAPI:
		startAPIServer(lc, r, cfg, log)
	default:
		log.Fatalf("Unknown deployment mode: %s", mode)
	}
}

func startAPIServer(
	lc fx.Lifecycle,
	r *gin.Engine,
	cfg *config.Configuration,
	log *logger.Logger,
) {
	srv := &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Info("Registering API server start hook")
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("Starting API server...", "address", cfg.Server.Address)
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down server...")
			return srv.Shutdown(ctx)
		},
	})
}
