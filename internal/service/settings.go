package service

import (
	"context"

	"github.com/factuurdesk/factuurdesk/internal/cache"
	domainSettings "github.com/factuurdesk/factuurdesk/internal/domain/settings"
	ierr "github.com/factuurdesk/factuurdesk/internal/errors"
	"github.com/factuurdesk/factuurdesk/internal/pdf"
	"github.com/factuurdesk/factuurdesk/internal/validator"
)

// SettingsService manages the company settings used on documents and exports
type SettingsService interface {
	// GetCompanySettings never fails: a missing or unreadable setting falls back to the defaults
	GetCompanySettings(ctx context.Context) (*domainSettings.CompanySettings, error)
	UpdateCompanySettings(ctx context.Context, company *domainSettings.CompanySettings) (*domainSettings.CompanySettings, error)
}

type settingsService struct {
	ServiceParams
}

var _ pdf.SettingsProvider = (SettingsService)(nil)

func NewSettingsService(params ServiceParams) SettingsService {
	return &settingsService{ServiceParams: params}
}

func companyCacheKey() string {
	return cache.GenerateKey(cache.PrefixSettings, domainSettings.SettingKeyCompany)
}

func (s *settingsService) GetCompanySettings(ctx context.Context) (*domainSettings.CompanySettings, error) {
	if s.Cache != nil {
		if cached, ok := s.Cache.Get(ctx, companyCacheKey()); ok {
			if company, ok := cached.(domainSettings.CompanySettings); ok {
				return &company, nil
			}
		}
	}

	company := s.loadCompanySettings(ctx)
	if s.Cache != nil {
		s.Cache.Set(ctx, companyCacheKey(), *company, 0)
	}
	return company, nil
}

func (s *settingsService) loadCompanySettings(ctx context.Context) *domainSettings.CompanySettings {
	setting, err := s.SettingsRepo.GetByKey(ctx, domainSettings.SettingKeyCompany)
	if err != nil {
		if ierr.IsNotFound(err) {
			s.Logger.Debugw("no company settings stored, using defaults")
		} else {
			s.Logger.Warnw("failed to load company settings, using defaults", "error", err)
		}
		return domainSettings.DefaultCompanySettings()
	}

	company, err := domainSettings.CompanySettingsFromSetting(setting)
	if err != nil {
		s.Logger.Warnw("stored company settings are unreadable, using defaults", "error", err)
		return domainSettings.DefaultCompanySettings()
	}
	return company
}

func (s *settingsService) UpdateCompanySettings(ctx context.Context, company *domainSettings.CompanySettings) (*domainSettings.CompanySettings, error) {
	if company == nil {
		return nil, ierr.NewError("company settings are required").
			WithHint("Please provide the company settings").
			Mark(ierr.ErrValidation)
	}
	if err := validator.ValidateRequest(company); err != nil {
		return nil, err
	}

	setting, err := company.ToSetting()
	if err != nil {
		return nil, err
	}
	if err := s.SettingsRepo.Upsert(ctx, setting); err != nil {
		return nil, err
	}

	if s.Cache != nil {
		s.Cache.Delete(ctx, companyCacheKey())
	}

	s.Logger.Infow("company settings updated", "legal_name", company.LegalName)
	return s.GetCompanySettings(ctx)
}
