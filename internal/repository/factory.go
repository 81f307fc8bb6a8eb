package repository

import (
	"github.com/factuurdesk/factuurdesk/internal/domain/invoice"
	domainSettings "github.com/factuurdesk/factuurdesk/internal/domain/settings"
	"github.com/factuurdesk/factuurdesk/internal/logger"
	"github.com/factuurdesk/factuurdesk/internal/postgres"
	postgresRepo "github.com/factuurdesk/factuurdesk/internal/repository/postgres"
)

func NewInvoiceRepository(db *postgres.DB, logger *logger.Logger) invoice.Repository {
	return postgresRepo.NewInvoiceRepository(db, logger)
}

func NewSettingsRepository(db *postgres.DB, logger *logger.Logger) domainSettings.Repository {
	return postgresRepo.NewSettingsRepository(db, logger)
}
