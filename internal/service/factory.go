package service

import (
	"github.com/factuurdesk/factuurdesk/internal/cache"
	"github.com/factuurdesk/factuurdesk/internal/config"
	"github.com/factuurdesk/factuurdesk/internal/domain/invoice"
	domainSettings "github.com/factuurdesk/factuurdesk/internal/domain/settings"
	"github.com/factuurdesk/factuurdesk/internal/logger"
	"github.com/factuurdesk/factuurdesk/internal/s3"
	"github.com/factuurdesk/factuurdesk/internal/sentry"
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration
	Cache  cache.Cache
	Sentry *sentry.Service
	// S3 is nil when archiving is disabled
	S3 s3.Service

	// Repositories
	InvoiceRepo  invoice.Repository
	SettingsRepo domainSettings.Repository
}

// NewServiceParams creates a new ServiceParams instance
func NewServiceParams(
	logger *logger.Logger,
	config *config.Configuration,
	cache cache.Cache,
	sentry *sentry.Service,
	s3 s3.Service,
	invoiceRepo invoice.Repository,
	settingsRepo domainSettings.Repository,
) ServiceParams {
	return ServiceParams{
		Logger:       logger,
		Config:       config,
		Cache:        cache,
		Sentry:       sentry,
		S3:           s3,
		InvoiceRepo:  invoiceRepo,
		SettingsRepo: settingsRepo,
	}
}
