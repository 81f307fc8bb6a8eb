package settings

import (
	"time"

	ierr "github.com/factuurdesk/factuurdesk/internal/errors"
	"github.com/factuurdesk/factuurdesk/internal/utils"
	"github.com/shopspring/decimal"
)

// SettingKey identifies a stored settings document
type SettingKey string

const (
	// SettingKeyCompany holds the invoicing entity of the installation
	SettingKeyCompany SettingKey = "company"
)

// Setting is a stored settings document, a JSON object addressed by key
type Setting struct {
	Key       SettingKey             `json:"key"`
	Value     map[string]interface{} `json:"value"`
	UpdatedAt time.Time              `json:"updated_at"`
}

// Decode unmarshals the whole value into a T
func Decode[T any](s *Setting) (T, error) {
	if s.Value == nil {
		var zero T
		return zero, ierr.NewErrorf("no value found for setting '%s'", s.Key).
			Mark(ierr.ErrNotFound)
	}

	out, err := utils.ToStruct[T](s.Value)
	if err != nil {
		return out, ierr.WithError(err).
			WithHintf("failed to decode value for setting '%s'", s.Key).
			Mark(ierr.ErrValidation)
	}
	return out, nil
}

// Validate validates the setting
func (s *Setting) Validate() error {
	if s.Key == "" {
		return ierr.NewError("setting key is required").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// CompanySettings describes the invoicing entity. Rendering reads it, never writes it.
type CompanySettings struct {
	LegalName         string          `json:"legal_name" validate:"required"`
	TradeName         string          `json:"trade_name,omitempty"`
	Street            string          `json:"street,omitempty"`
	PostalCode        string          `json:"postal_code,omitempty"`
	City              string          `json:"city,omitempty"`
	Country           string          `json:"country,omitempty"`
	Email             string          `json:"email,omitempty" validate:"omitempty,email"`
	Phone             string          `json:"phone,omitempty"`
	Website           string          `json:"website,omitempty"`
	VATNumber         string          `json:"vat_number,omitempty"`
	ChamberOfCommerce string          `json:"chamber_of_commerce,omitempty"`
	IBAN              string          `json:"iban,omitempty"`
	BIC               string          `json:"bic,omitempty"`
	BankName          string          `json:"bank_name,omitempty"`
	PaymentTermDays   int             `json:"payment_term_days" validate:"gte=0"`
	DefaultTaxRate    decimal.Decimal `json:"default_tax_rate"`
	InvoicePrefix     string          `json:"invoice_prefix,omitempty"`
	LogoURL           string          `json:"logo_url,omitempty" validate:"omitempty,url"`
	BrandColor        string          `json:"brand_color,omitempty" validate:"omitempty,hexcolor"`
	ThankYouText      string          `json:"thank_you_text,omitempty"`
}

// DisplayName is the trade name when set and the legal name otherwise
func (c *CompanySettings) DisplayName() string {
	if c.TradeName != "" {
		return c.TradeName
	}
	return c.LegalName
}

// DefaultCompanySettings is the reference company used when no settings are stored
func DefaultCompanySettings() *CompanySettings {
	return &CompanySettings{
		LegalName:         "FactuurDesk B.V.",
		TradeName:         "FactuurDesk",
		Street:            "Keizersgracht 123",
		PostalCode:        "1015 CJ",
		City:              "Amsterdam",
		Country:           "Nederland",
		Email:             "administratie@factuurdesk.nl",
		Phone:             "+31 20 123 4567",
		Website:           "www.factuurdesk.nl",
		VATNumber:         "NL859123456B01",
		ChamberOfCommerce: "81234567",
		IBAN:              "NL91 ABNA 0417 1643 00",
		BIC:               "ABNANL2A",
		BankName:          "ABN AMRO",
		PaymentTermDays:   30,
		DefaultTaxRate:    decimal.NewFromInt(21),
		InvoicePrefix:     "F",
		BrandColor:        "#1E3A8A",
		ThankYouText:      "Bedankt voor uw vertrouwen!",
	}
}

// CompanySettingsFromSetting decodes a stored company setting
func CompanySettingsFromSetting(s *Setting) (*CompanySettings, error) {
	c, err := Decode[CompanySettings](s)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ToSetting encodes the company settings as a stored setting
func (c *CompanySettings) ToSetting() (*Setting, error) {
	value, err := utils.ToMap(c)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("failed to encode company settings").
			Mark(ierr.ErrSystem)
	}
	return &Setting{Key: SettingKeyCompany, Value: value}, nil
}
