package invoice

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/factuurdesk/factuurdesk/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvoice_Outstanding(t *testing.T) {
	inv := &Invoice{Financial: &Financial{Total: decimal.NewFromInt(1210)}}
	assert.True(t, inv.Outstanding().Equal(decimal.NewFromInt(1210)), "falls back to total")

	inv.Financial.Balance = decimal.NewNullDecimal(decimal.NewFromInt(500))
	assert.True(t, inv.Outstanding().Equal(decimal.NewFromInt(500)), "balance wins")

	inv.Financial.Balance = decimal.NewNullDecimal(decimal.Zero)
	assert.True(t, inv.Outstanding().IsZero(), "a zero balance is still a balance")
}

func TestInvoice_MissingFinancial(t *testing.T) {
	inv := &Invoice{}
	assert.False(t, inv.HasFinancial())
	assert.True(t, inv.GrossTotal().IsZero())
	assert.True(t, inv.NetTotal().IsZero())
	assert.True(t, inv.TaxTotal().IsZero())
	assert.True(t, inv.PaidAmount().IsZero())
	assert.True(t, inv.Outstanding().IsZero())
	assert.Equal(t, "EUR", inv.CurrencyCode())
}

func TestInvoice_Recipient(t *testing.T) {
	inv := &Invoice{
		Address: &LegacyAddress{Name: "Oud BV", Street: "Kade 1", PostalCode: "1011 AA", City: "Amsterdam"},
	}
	r := inv.Recipient()
	assert.Equal(t, "Oud BV", r.Name)
	assert.Equal(t, []string{"Kade 1", "1011 AA  Amsterdam"}, r.AddressLines)

	inv.BillingDetails = &BillingDetails{
		CompanyName: "Nieuw BV",
		ContactName: "J. Jansen",
		Street:      "Singel 10",
		PostalCode:  "3011 AB",
		City:        "Rotterdam",
		Country:     "Nederland",
		VATNumber:   "NL001234567B01",
	}
	r = inv.Recipient()
	assert.Equal(t, "Nieuw BV", r.Name)
	assert.Equal(t, "J. Jansen", r.ContactName)
	assert.Equal(t, []string{"Singel 10", "3011 AB  Rotterdam", "Nederland"}, r.AddressLines)
	assert.Equal(t, "NL001234567B01", r.VATNumber)

	inv.BillingDetails = &BillingDetails{VATNumber: "NL1"}
	assert.Equal(t, "Oud BV", inv.Recipient().Name, "an empty extended block does not hide the legacy address")
}

func TestInvoice_JSONBalance(t *testing.T) {
	var inv Invoice
	require.NoError(t, json.Unmarshal([]byte(`{"id":"a","financial":{"total":"100","paid":"0"}}`), &inv))
	assert.False(t, inv.Financial.Balance.Valid)
	assert.True(t, inv.Outstanding().Equal(decimal.NewFromInt(100)))

	require.NoError(t, json.Unmarshal([]byte(`{"id":"a","financial":{"total":"100","balance":"40"}}`), &inv))
	assert.True(t, inv.Outstanding().Equal(decimal.NewFromInt(40)))
}

func TestInvoice_Validate(t *testing.T) {
	inv := &Invoice{
		ID:            "inv_1",
		InvoiceNumber: "F2025-001",
		Status:        types.InvoiceStatusSent,
		IssueDate:     time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC),
		LineItems:     []LineItem{{Description: "Uren", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(50)}},
	}
	require.NoError(t, inv.Validate())

	inv.LineItems[0].Quantity = decimal.NewFromInt(-1)
	assert.Error(t, inv.Validate())

	inv.LineItems = nil
	inv.Status = "unknown"
	assert.Error(t, inv.Validate())
}
