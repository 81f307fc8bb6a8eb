package dto

import (
	domainSettings "github.com/factuurdesk/factuurdesk/internal/domain/settings"
	"github.com/shopspring/decimal"
)

// UpdateCompanySettingsRequest replaces the stored company settings
type UpdateCompanySettingsRequest struct {
	LegalName         string           `json:"legal_name" binding:"required"`
	TradeName         string           `json:"trade_name"`
	Street            string           `json:"street"`
	PostalCode        string           `json:"postal_code"`
	City              string           `json:"city"`
	Country           string           `json:"country"`
	Email             string           `json:"email" binding:"omitempty,email"`
	Phone             string           `json:"phone"`
	Website           string           `json:"website"`
	VATNumber         string           `json:"vat_number"`
	ChamberOfCommerce string           `json:"chamber_of_commerce"`
	IBAN              string           `json:"iban"`
	BIC               string           `json:"bic"`
	BankName          string           `json:"bank_name"`
	PaymentTermDays   *int             `json:"payment_term_days" binding:"omitempty,gte=0"`
	DefaultTaxRate    *decimal.Decimal `json:"default_tax_rate"`
	InvoicePrefix     string           `json:"invoice_prefix"`
	LogoURL           string           `json:"logo_url" binding:"omitempty,url"`
	BrandColor        string           `json:"brand_color" binding:"omitempty,hexcolor"`
	ThankYouText      string           `json:"thank_you_text"`
}

// ToCompanySettings fills unset numeric fields from the defaults
func (r *UpdateCompanySettingsRequest) ToCompanySettings() *domainSettings.CompanySettings {
	defaults := domainSettings.DefaultCompanySettings()

	company := &domainSettings.CompanySettings{
		LegalName:         r.LegalName,
		TradeName:         r.TradeName,
		Street:            r.Street,
		PostalCode:        r.PostalCode,
		City:              r.City,
		Country:           r.Country,
		Email:             r.Email,
		Phone:             r.Phone,
		Website:           r.Website,
		VATNumber:         r.VATNumber,
		ChamberOfCommerce: r.ChamberOfCommerce,
		IBAN:              r.IBAN,
		BIC:               r.BIC,
		BankName:          r.BankName,
		PaymentTermDays:   defaults.PaymentTermDays,
		DefaultTaxRate:    defaults.DefaultTaxRate,
		InvoicePrefix:     r.InvoicePrefix,
		LogoURL:           r.LogoURL,
		BrandColor:        r.BrandColor,
		ThankYouText:      r.ThankYouText,
	}
	if r.PaymentTermDays != nil {
		company.PaymentTermDays = *r.PaymentTermDays
	}
	if r.DefaultTaxRate != nil {
		company.DefaultTaxRate = *r.DefaultTaxRate
	}
	return company
}

// CompanySettingsResponse is the company settings as shown to the user
type CompanySettingsResponse struct {
	*domainSettings.CompanySettings
	DisplayName string `json:"display_name"`
}

func NewCompanySettingsResponse(c *domainSettings.CompanySettings) *CompanySettingsResponse {
	return &CompanySettingsResponse{
		CompanySettings: c,
		DisplayName:     c.DisplayName(),
	}
}
