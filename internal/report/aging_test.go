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

var agingNow = time.Date(2025, time.June, 15, 10, 0, 0, 0, time.UTC)

func overdueBy(days int) time.Time {
	return agingNow.AddDate(0, 0, -days)
}

func TestAging_FortyFiveDaysScenario(t *testing.T) {
	inv := testutil.NewInvoice("2025-045").
		WithTotals("500", "0").
		WithBalance("500").
		DueOn(overdueBy(45)).
		Build()

	r := Aging([]*invoice.Invoice{inv}, agingNow)

	band, ok := r.Band(AgingBand31To60)
	require.True(t, ok)
	assert.Equal(t, 1, band.Count)
	assert.True(t, band.Total.Equal(dec("500")))
	assert.True(t, r.GrandTotal.Equal(dec("500")))
}

func TestAging_BandEdges(t *testing.T) {
	tests := []struct {
		days int
		want AgingBandKey
	}{
		{-10, AgingBandCurrent},
		{0, AgingBandCurrent},
		{1, AgingBand1To30},
		{30, AgingBand1To30},
		{31, AgingBand31To60},
		{60, AgingBand31To60},
		{61, AgingBand61To90},
		{90, AgingBand61To90},
		{91, AgingBandOver90},
		{400, AgingBandOver90},
	}

	for _, tt := range tests {
		inv := testutil.NewInvoice("X").WithTotals("10", "0").DueOn(overdueBy(tt.days)).Build()
		r := Aging([]*invoice.Invoice{inv}, agingNow)
		band, _ := r.Band(tt.want)
		assert.Equal(t, 1, band.Count, "days overdue %d", tt.days)
	}
}

func TestAging_PartialDayIsFloored(t *testing.T) {
	due := agingNow.Add(-(30*24 + 23) * time.Hour)
	assert.Equal(t, 30, DaysOverdue(due, agingNow))

	notYetDue := agingNow.Add(12 * time.Hour)
	assert.Equal(t, -1, DaysOverdue(notYetDue, agingNow))
}

func TestAging_PartitionAndExclusion(t *testing.T) {
	statuses := []types.InvoiceStatus{
		types.InvoiceStatusSent,
		types.InvoiceStatusViewed,
		types.InvoiceStatusOverdue,
		types.InvoiceStatusPartial,
		types.InvoiceStatusPaid,
		types.InvoiceStatusCancelled,
		types.InvoiceStatusDraft,
	}

	var invoices []*invoice.Invoice
	eligible := 0
	for i := 0; i < 70; i++ {
		status := statuses[i%len(statuses)]
		b := testutil.NewInvoice("P").WithStatus(status).WithTotals("100", "21").DueOn(overdueBy(i*3 - 20))
		if i%11 == 0 {
			b = b.WithoutDueDate()
		}
		invoices = append(invoices, b.Build())
		if status.IsAgingEligible() {
			eligible++
		}
	}

	r := Aging(invoices, agingNow)
	require.Len(t, r.Bands, 5)

	seen := map[*invoice.Invoice]int{}
	sum := 0
	for _, band := range r.Bands {
		sum += band.Count
		assert.Len(t, band.Invoices, band.Count)
		for _, inv := range band.Invoices {
			seen[inv]++
			assert.NotEqual(t, types.InvoiceStatusCancelled, inv.Status)
			assert.NotEqual(t, types.InvoiceStatusPaid, inv.Status)
			assert.NotEqual(t, types.InvoiceStatusDraft, inv.Status)
		}
	}
	assert.Equal(t, eligible, sum)
	assert.Equal(t, eligible, r.Count)
	for _, n := range seen {
		assert.Equal(t, 1, n)
	}
}

func TestAging_MissingDueDateIsMostOverdue(t *testing.T) {
	inv := testutil.NewInvoice("N").WithTotals("80", "0").WithoutDueDate().Build()
	r := Aging([]*invoice.Invoice{inv}, agingNow)
	band, _ := r.Band(AgingBandOver90)
	assert.Equal(t, 1, band.Count)
}

func TestAging_OrderPreservedAndBalanceFallback(t *testing.T) {
	a := testutil.NewInvoice("A").WithTotals("100", "0").WithoutBalance().DueOn(overdueBy(5)).Build()
	b := testutil.NewInvoice("B").WithTotals("100", "0").WithBalance("25").DueOn(overdueBy(10)).Build()
	c := testutil.NewInvoice("C").WithoutFinancial().DueOn(overdueBy(2)).Build()

	r := Aging([]*invoice.Invoice{a, b, c}, agingNow)
	band, _ := r.Band(AgingBand1To30)

	require.Len(t, band.Invoices, 3)
	assert.Equal(t, []string{"A", "B", "C"}, []string{
		band.Invoices[0].InvoiceNumber,
		band.Invoices[1].InvoiceNumber,
		band.Invoices[2].InvoiceNumber,
	})
	assert.True(t, band.Total.Equal(dec("125")), band.Total.String())
}

func TestAggregators_Idempotent(t *testing.T) {
	invoices := []*invoice.Invoice{
		testutil.NewInvoice("1").IssuedOn(testutil.Date(2025, time.May, 3)).WithTotals("100", "21").
			DueOn(overdueBy(12)).Build(),
		testutil.NewInvoice("2").IssuedOn(testutil.Date(2025, time.May, 9)).WithTotals("10", "2.1").
			WithStatus(types.InvoiceStatusPaid).Build(),
		testutil.NewInvoice("3").IssuedOn(testutil.Date(2025, time.June, 1)).WithTotals("7", "0").
			WithStatus(types.InvoiceStatusCancelled).Build(),
	}

	tax1, err := TaxReport(invoices, 2025, 2)
	require.NoError(t, err)
	tax2, err := TaxReport(invoices, 2025, 2)
	require.NoError(t, err)
	assert.Equal(t, tax1, tax2)

	assert.Equal(t, MonthlyRevenue(invoices, 2025), MonthlyRevenue(invoices, 2025))
	assert.Equal(t, Aging(invoices, agingNow), Aging(invoices, agingNow))
}

func TestAggregators_CancelledNeverCounted(t *testing.T) {
	cancelled := testutil.NewInvoice("C").
		IssuedOn(testutil.Date(2025, time.August, 8)).
		WithTotals("1000", "210").
		DueOn(overdueBy(100)).
		WithStatus(types.InvoiceStatusCancelled).
		Build()
	invoices := []*invoice.Invoice{cancelled}

	for q := 1; q <= 4; q++ {
		r, err := TaxReport(invoices, 2025, q)
		require.NoError(t, err)
		assert.True(t, r.TotalRevenue.IsZero())
		assert.True(t, r.TotalTax.IsZero())
	}
	assert.True(t, MonthlyRevenue(invoices, 2025).TotalRevenue.IsZero())
	assert.True(t, Aging(invoices, agingNow).GrandTotal.IsZero())
}
