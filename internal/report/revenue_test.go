package report

import (
	"testing"
	"time"

	"github.com/factuurdesk/factuurdesk/internal/domain/invoice"
	"github.com/factuurdesk/factuurdesk/internal/testutil"
	"github.com/factuurdesk/factuurdesk/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthlyRevenue_ZeroFilled(t *testing.T) {
	r := MonthlyRevenue(nil, 2024)

	require.Len(t, r.Months, 12)
	for i, m := range r.Months {
		assert.Equal(t, time.Month(i+1), m.Month)
		assert.Equal(t, 0, m.InvoiceCount)
		assert.True(t, m.Revenue.IsZero())
		assert.True(t, m.Outstanding.IsZero())
	}
	assert.Equal(t, "januari", r.Months[0].Label)
	assert.Equal(t, "december", r.Months[11].Label)
}

func TestMonthlyRevenue_Buckets(t *testing.T) {
	invoices := []*invoice.Invoice{
		testutil.NewInvoice("1").IssuedOn(testutil.Date(2025, time.January, 31)).
			WithTotals("100", "21").WithPaid("121").WithStatus(types.InvoiceStatusPaid).Build(),
		testutil.NewInvoice("2").IssuedOn(testutil.Date(2025, time.January, 2)).
			WithTotals("200", "42").Build(),
		testutil.NewInvoice("3").IssuedOn(testutil.Date(2025, time.February, 1)).
			WithTotals("300", "63").Build(),
		testutil.NewInvoice("4").IssuedOn(testutil.Date(2025, time.February, 14)).
			WithTotals("999", "0").WithStatus(types.InvoiceStatusCancelled).Build(),
		testutil.NewInvoice("5").IssuedOn(testutil.Date(2024, time.December, 31)).
			WithTotals("50", "0").Build(),
	}

	r := MonthlyRevenue(invoices, 2025)
	require.Len(t, r.Months, 12)

	jan := r.Months[0]
	assert.Equal(t, 2, jan.InvoiceCount)
	assert.True(t, jan.Revenue.Equal(dec("363")))
	assert.True(t, jan.Paid.Equal(dec("121")))
	assert.True(t, jan.Outstanding.Equal(dec("242")))

	feb := r.Months[1]
	assert.Equal(t, 1, feb.InvoiceCount)
	assert.True(t, feb.Revenue.Equal(dec("363")))

	assert.Equal(t, 3, r.InvoiceCount)
	assert.True(t, r.TotalRevenue.Equal(dec("726")))
	assert.True(t, r.TotalPaid.Equal(dec("121")))
	assert.True(t, r.TotalOutstanding.Equal(dec("605")))
}

func TestMonthlyRevenue_LeapYearFebruary(t *testing.T) {
	inv := testutil.NewInvoice("1").IssuedOn(testutil.Date(2024, time.February, 29)).
		WithTotals("10", "0").Build()

	r := MonthlyRevenue([]*invoice.Invoice{inv}, 2024)
	assert.Equal(t, 1, r.Months[1].InvoiceCount)
	assert.Equal(t, 0, r.Months[2].InvoiceCount)
}
