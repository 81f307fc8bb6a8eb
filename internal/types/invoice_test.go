package types

import (
	"testing"

	ierr "github.com/factuurdesk/factuurdesk/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvoiceStatus_Display(t *testing.T) {
	tests := []struct {
		status InvoiceStatus
		label  string
		tone   BadgeTone
	}{
		{InvoiceStatusPaid, "Betaald", BadgeToneGreen},
		{InvoiceStatusOverdue, "Verlopen", BadgeToneRed},
		{InvoiceStatusSent, "Verstuurd", BadgeToneBlue},
		{InvoiceStatusViewed, "Bekeken", BadgeTonePurple},
		{InvoiceStatusDraft, "Concept", BadgeToneGray},
		{InvoiceStatusCancelled, "Geannuleerd", BadgeToneNeutralGray},
		{InvoiceStatusPartial, "Deels betaald", BadgeToneOrange},
	}

	require.Len(t, tests, len(InvoiceStatuses), "every status needs a display entry")
	for _, tt := range tests {
		t.Run(tt.status.String(), func(t *testing.T) {
			d := tt.status.Display()
			assert.Equal(t, tt.label, d.Label)
			assert.Equal(t, tt.tone, d.Tone)
			assert.NoError(t, tt.status.Validate())
		})
	}
}

func TestInvoiceStatus_Validate(t *testing.T) {
	err := InvoiceStatus("archived").Validate()
	require.Error(t, err)
	assert.True(t, ierr.IsValidation(err))
	assert.Equal(t, "archived", InvoiceStatus("archived").Display().Label)
}

func TestInvoiceStatus_Buckets(t *testing.T) {
	for _, s := range InvoiceStatuses {
		assert.Equal(t, s != InvoiceStatusCancelled, s.IsCountedInRevenue(), s)
		assert.Equal(t, s != InvoiceStatusPaid && s != InvoiceStatusCancelled && s != InvoiceStatusDraft, s.IsAgingEligible(), s)
		assert.Equal(t, s != InvoiceStatusPaid && s != InvoiceStatusCancelled, s.IsPayable(), s)
	}
}

func TestCurrencyLookup(t *testing.T) {
	assert.Equal(t, "€", GetCurrencySymbol("eur"))
	assert.Equal(t, "US$", GetCurrencySymbol("USD"))
	assert.Equal(t, "XYZ", GetCurrencySymbol("xyz"))
	assert.Equal(t, int32(2), GetCurrencyPrecision("EUR"))
	assert.Equal(t, int32(0), GetCurrencyPrecision("jpy"))
}
