package internal

import (
	"log"

	"github.com/factuurdesk/factuurdesk/internal/cache"
	"github.com/factuurdesk/factuurdesk/internal/config"
	"github.com/factuurdesk/factuurdesk/internal/logger"
	"github.com/factuurdesk/factuurdesk/internal/pdf"
	"github.com/factuurdesk/factuurdesk/internal/postgres"
	"github.com/factuurdesk/factuurdesk/internal/repository"
	"github.com/factuurdesk/factuurdesk/internal/s3"
	"github.com/factuurdesk/factuurdesk/internal/sentry"
	"github.com/factuurdesk/factuurdesk/internal/service"
)

// scriptDeps is the subset of the server wiring the scripts need
type scriptDeps struct {
	cfg    *config.Configuration
	log    *logger.Logger
	db     *postgres.DB
	params service.ServiceParams
}

func newScriptDeps() *scriptDeps {
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Error creating config: %v", err)
	}

	logger, err := logger.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Error creating logger: %v", err)
	}

	sentrySvc := sentry.NewSentryService(cfg, logger)
	db, err := postgres.NewDB(cfg, logger, sentrySvc)
	if err != nil {
		log.Fatalf("Failed to connect to postgres: %v", err)
	}

	s3Svc, err := s3.NewService(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to create s3 service: %v", err)
	}

	params := service.NewServiceParams(
		logger,
		cfg,
		cache.NewInMemoryCache(cfg, logger),
		sentrySvc,
		s3Svc,
		repository.NewInvoiceRepository(db, logger),
		repository.NewSettingsRepository(db, logger),
	)

	return &scriptDeps{cfg: cfg, log: logger, db: db, params: params}
}

func (d *scriptDeps) documentService() service.DocumentService {
	settingsService := service.NewSettingsService(d.params)
	assets := pdf.ChainResolver{pdf.NewFileAssetResolver(d.cfg.Document.LogoPaths, d.log)}
	if d.cfg.Document.FetchRemoteLogo {
		assets = append(assets, pdf.NewHTTPAssetResolver(d.log))
	}
	return service.NewDocumentService(d.params, pdf.NewRenderer(d.cfg, settingsService, assets, d.log))
}
