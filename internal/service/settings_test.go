package service

import (
	"errors"
	"testing"

	domainSettings "github.com/factuurdesk/factuurdesk/internal/domain/settings"
	ierr "github.com/factuurdesk/factuurdesk/internal/errors"
	"github.com/factuurdesk/factuurdesk/internal/testutil"
	"github.com/stretchr/testify/suite"
)

type SettingsServiceSuite struct {
	testutil.BaseServiceTestSuite
	service SettingsService
}

func TestSettingsService(t *testing.T) {
	suite.Run(t, new(SettingsServiceSuite))
}

func (s *SettingsServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewSettingsService(s.params())
}

func (s *SettingsServiceSuite) params() ServiceParams {
	return NewServiceParams(
		s.GetLogger(),
		s.GetConfig(),
		s.GetCache(),
		s.GetSentry(),
		nil,
		s.GetStores().InvoiceRepo,
		s.GetStores().SettingsRepo,
	)
}

func (s *SettingsServiceSuite) TestDefaultsWhenNothingStored() {
	company, err := s.service.GetCompanySettings(s.GetContext())
	s.Require().NoError(err)
	s.Equal(domainSettings.DefaultCompanySettings().LegalName, company.LegalName)
	s.Equal(30, company.PaymentTermDays)
}

func (s *SettingsServiceSuite) TestDefaultsWhenRepositoryFails() {
	s.GetStores().SettingsRepo.Err = ierr.WithError(errors.New("connection refused")).Mark(ierr.ErrDatabase)

	company, err := s.service.GetCompanySettings(s.GetContext())
	s.Require().NoError(err)
	s.Equal("FactuurDesk", company.DisplayName())
}

func (s *SettingsServiceSuite) TestCachedAfterFirstRead() {
	_, err := s.service.GetCompanySettings(s.GetContext())
	s.Require().NoError(err)
	_, err = s.service.GetCompanySettings(s.GetContext())
	s.Require().NoError(err)

	s.Equal(1, s.GetStores().SettingsRepo.Reads)
}

func (s *SettingsServiceSuite) TestReturnedValueIsACopy() {
	first, err := s.service.GetCompanySettings(s.GetContext())
	s.Require().NoError(err)
	first.LegalName = "Mutated"

	second, err := s.service.GetCompanySettings(s.GetContext())
	s.Require().NoError(err)
	s.Equal("FactuurDesk B.V.", second.LegalName)
}

func (s *SettingsServiceSuite) TestUpdateInvalidatesCache() {
	_, err := s.service.GetCompanySettings(s.GetContext())
	s.Require().NoError(err)

	update := domainSettings.DefaultCompanySettings()
	update.TradeName = "Bakkerij De Vries"
	update.BrandColor = "#AA3300"

	updated, err := s.service.UpdateCompanySettings(s.GetContext(), update)
	s.Require().NoError(err)
	s.Equal("Bakkerij De Vries", updated.TradeName)

	got, err := s.service.GetCompanySettings(s.GetContext())
	s.Require().NoError(err)
	s.Equal("Bakkerij De Vries", got.DisplayName())
	s.Equal("#AA3300", got.BrandColor)
}

func (s *SettingsServiceSuite) TestUpdateValidation() {
	testCases := []struct {
		name   string
		mutate func(c *domainSettings.CompanySettings)
	}{
		{"missing legal name", func(c *domainSettings.CompanySettings) { c.LegalName = "" }},
		{"invalid email", func(c *domainSettings.CompanySettings) { c.Email = "not-an-email" }},
		{"invalid brand colour", func(c *domainSettings.CompanySettings) { c.BrandColor = "blue" }},
		{"negative payment term", func(c *domainSettings.CompanySettings) { c.PaymentTermDays = -1 }},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			company := domainSettings.DefaultCompanySettings()
			tc.mutate(company)

			_, err := s.service.UpdateCompanySettings(s.GetContext(), company)
			s.Require().Error(err)
			s.True(ierr.IsValidation(err))
		})
	}

	_, err := s.service.UpdateCompanySettings(s.GetContext(), nil)
	s.True(ierr.IsValidation(err))
}
