package report

import (
	"strings"
	"testing"
	"time"

	"github.com/factuurdesk/factuurdesk/internal/domain/invoice"
	ierr "github.com/factuurdesk/factuurdesk/internal/errors"
	"github.com/factuurdesk/factuurdesk/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func csvLines(t *testing.T, b []byte) []string {
	t.Helper()
	return strings.Split(strings.TrimRight(string(b), "\n"), "\n")
}

func TestExporter_TaxReportCSV(t *testing.T) {
	inv := testutil.NewInvoice("2025-001").
		IssuedOn(testutil.Date(2025, time.January, 5)).
		WithTotals("1020.25", "214.25").
		WithBillingDetails(invoice.BillingDetails{CompanyName: "Bakkerij de Vries"}).
		Build()
	r, err := TaxReport([]*invoice.Invoice{inv}, 2025, 1)
	require.NoError(t, err)

	out, err := NewExporter(nil, "EUR").TaxReportCSV(r)
	require.NoError(t, err)

	lines := csvLines(t, out)
	require.Len(t, lines, 2)
	assert.Equal(t, "factuurnummer,factuurdatum,klant,status,netto,btw,totaal,openstaand", lines[0])
	assert.Contains(t, lines[1], "2025-001,05-01-2025,Bakkerij de Vries,Verstuurd")
	assert.Contains(t, lines[1], `"€ 1.234,50"`)
}

func TestExporter_RevenueCSVHasTwelveRows(t *testing.T) {
	out, err := NewExporter(nil, "").RevenueCSV(MonthlyRevenue(nil, 2025))
	require.NoError(t, err)

	lines := csvLines(t, out)
	require.Len(t, lines, 13)
	assert.Equal(t, "maand,aantal_facturen,omzet,betaald,openstaand", lines[0])
	assert.Equal(t, `januari 2025,0,"€ 0,00","€ 0,00","€ 0,00"`, lines[1])
}

func TestExporter_AgingCSV(t *testing.T) {
	inv := testutil.NewInvoice("A-1").WithTotals("500", "0").DueOn(overdueBy(45)).Build()
	r := Aging([]*invoice.Invoice{inv}, agingNow)
	e := NewExporter(nil, "EUR")

	summary, err := e.AgingSummaryCSV(r)
	require.NoError(t, err)
	lines := csvLines(t, summary)
	require.Len(t, lines, 6)
	assert.Equal(t, "periode,aantal,openstaand", lines[0])
	assert.Equal(t, `31-60 dagen,1,"€ 500,00"`, lines[3])

	detail, err := e.AgingBandCSV(r, AgingBand31To60)
	require.NoError(t, err)
	lines = csvLines(t, detail)
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "A-1,")
	assert.Contains(t, lines[1], ",45,")

	empty, err := e.AgingBandCSV(r, AgingBandOver90)
	require.NoError(t, err)
	assert.Len(t, csvLines(t, empty), 1)

	_, err = e.AgingBandCSV(r, AgingBandKey("120+"))
	assert.True(t, ierr.IsValidation(err))
}
