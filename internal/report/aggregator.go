// Package report turns an invoice snapshot into the tax, revenue and receivables aging
// views. Every function is pure over its input: no caching and no shared state, so a
// snapshot can be aggregated from several goroutines at once.
package report

import (
	"time"

	"github.com/factuurdesk/factuurdesk/internal/domain/invoice"
	"github.com/factuurdesk/factuurdesk/internal/logger"
)

// Aggregator computes report views. It only carries the calendar location used to read
// invoice dates and a logger for records that fall back to defaults.
type Aggregator struct {
	loc    *time.Location
	logger *logger.Logger
}

// NewAggregator creates an aggregator. A nil location means UTC, a nil logger discards.
func NewAggregator(loc *time.Location, log *logger.Logger) *Aggregator {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &Aggregator{loc: locationOrUTC(loc), logger: log}
}

var defaultAggregator = NewAggregator(time.UTC, nil)

// TaxReport aggregates with UTC calendar dates and no logging
func TaxReport(invoices []*invoice.Invoice, year, quarter int) (*TaxPeriodReport, error) {
	return defaultAggregator.TaxReport(invoices, year, quarter)
}

// MonthlyRevenue aggregates with UTC calendar dates and no logging
func MonthlyRevenue(invoices []*invoice.Invoice, year int) *RevenueReport {
	return defaultAggregator.MonthlyRevenue(invoices, year)
}

// Aging aggregates with no logging
func Aging(invoices []*invoice.Invoice, now time.Time) *AgingReport {
	return defaultAggregator.Aging(invoices, now)
}

// noteMissingFinancial records that inv counts as zero. It never fails the aggregation.
func (a *Aggregator) noteMissingFinancial(report string, inv *invoice.Invoice) {
	if inv.HasFinancial() {
		return
	}
	a.logger.Debugw("invoice has no financial block, counted as zero",
		"report", report,
		"invoice_id", inv.ID,
		"invoice_number", inv.InvoiceNumber)
}
