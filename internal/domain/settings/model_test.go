package settings

import (
	"testing"

	ierr "github.com/factuurdesk/factuurdesk/internal/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompanySettings_RoundTripThroughSetting(t *testing.T) {
	in := DefaultCompanySettings()
	s, err := in.ToSetting()
	require.NoError(t, err)
	assert.Equal(t, SettingKeyCompany, s.Key)
	assert.Equal(t, "FactuurDesk B.V.", s.Value["legal_name"])

	out, err := CompanySettingsFromSetting(s)
	require.NoError(t, err)
	assert.Equal(t, in.IBAN, out.IBAN)
	assert.True(t, out.DefaultTaxRate.Equal(decimal.NewFromInt(21)))
}

func TestSetting_DecodeEmpty(t *testing.T) {
	s := &Setting{Key: SettingKeyCompany}
	_, err := CompanySettingsFromSetting(s)
	assert.True(t, ierr.IsNotFound(err))
}

func TestCompanySettings_DisplayName(t *testing.T) {
	c := &CompanySettings{LegalName: "Acme B.V."}
	assert.Equal(t, "Acme B.V.", c.DisplayName())
	c.TradeName = "Acme"
	assert.Equal(t, "Acme", c.DisplayName())
}
