package testutil

import (
	"context"
	"time"

	"github.com/factuurdesk/factuurdesk/internal/cache"
	"github.com/factuurdesk/factuurdesk/internal/config"
	"github.com/factuurdesk/factuurdesk/internal/logger"
	"github.com/factuurdesk/factuurdesk/internal/sentry"
	"github.com/factuurdesk/factuurdesk/internal/types"
	"github.com/factuurdesk/factuurdesk/internal/validator"
	"github.com/stretchr/testify/suite"
)

// Stores holds the in-memory repositories used by service tests
type Stores struct {
	InvoiceRepo  *InMemoryInvoiceStore
	SettingsRepo *InMemorySettingsStore
}

// BaseServiceTestSuite provides common functionality for all service test suites
type BaseServiceTestSuite struct {
	suite.Suite
	ctx    context.Context
	stores Stores
	logger *logger.Logger
	config *config.Configuration
	cache  *cache.InMemoryCache
	sentry *sentry.Service
	now    time.Time
}

// SetupSuite is called once before running the tests in the suite
func (s *BaseServiceTestSuite) SetupSuite() {
	validator.NewValidator()

	cfg := config.GetDefaultConfig()
	cfg.Logging.Level = types.LogLevelInfo
	cfg.Reports.Timezone = "UTC"
	s.config = cfg
	s.logger = logger.NewNopLogger()
	s.sentry = sentry.NewSentryService(cfg, s.logger)
}

// SetupTest is called before each test
func (s *BaseServiceTestSuite) SetupTest() {
	s.ctx = SetupContext()
	s.stores = Stores{
		InvoiceRepo:  NewInMemoryInvoiceStore(),
		SettingsRepo: NewInMemorySettingsStore(),
	}
	s.cache = cache.NewInMemoryCache(s.config, s.logger)
	s.now = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
}

// TearDownTest is called after each test
func (s *BaseServiceTestSuite) TearDownTest() {
	s.stores.InvoiceRepo.Clear()
	s.stores.SettingsRepo.Clear()
	s.cache.Flush(s.ctx)
}

// GetContext returns the test context
func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

// GetConfig returns the test configuration
func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.config
}

// GetStores returns all test repositories
func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}

// GetLogger returns the test logger
func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

// GetCache returns the per test cache
func (s *BaseServiceTestSuite) GetCache() *cache.InMemoryCache {
	return s.cache
}

// GetSentry returns a disabled sentry service
func (s *BaseServiceTestSuite) GetSentry() *sentry.Service {
	return s.sentry
}

// GetNow returns the fixed test time
func (s *BaseServiceTestSuite) GetNow() time.Time {
	return s.now
}

// SeedInvoices stores the given invoices, failing the test on error
func (s *BaseServiceTestSuite) SeedInvoices(invoices ...*InvoiceBuilder) {
	for _, b := range invoices {
		s.Require().NoError(s.stores.InvoiceRepo.Create(s.ctx, b.Build()))
	}
}
