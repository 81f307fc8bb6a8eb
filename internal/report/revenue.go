package report

import (
	"time"

	"github.com/factuurdesk/factuurdesk/internal/domain/invoice"
	"github.com/factuurdesk/factuurdesk/internal/format"
	"github.com/factuurdesk/factuurdesk/internal/types"
	"github.com/shopspring/decimal"
)

// MonthRevenue is one bucket of the revenue trend
type MonthRevenue struct {
	Month        time.Month      `json:"month"`
	Label        string          `json:"label"`
	Period       Period          `json:"period"`
	InvoiceCount int             `json:"invoice_count"`
	Revenue      decimal.Decimal `json:"revenue"`
	Paid         decimal.Decimal `json:"paid"`
	Outstanding  decimal.Decimal `json:"outstanding"`
}

// RevenueReport always holds twelve months in calendar order
type RevenueReport struct {
	Year             int             `json:"year"`
	Months           []MonthRevenue  `json:"months"`
	InvoiceCount     int             `json:"invoice_count"`
	TotalRevenue     decimal.Decimal `json:"total_revenue"`
	TotalPaid        decimal.Decimal `json:"total_paid"`
	TotalOutstanding decimal.Decimal `json:"total_outstanding"`
}

// MonthlyRevenue buckets non cancelled invoices by issue month. Months without invoices
// are present with zero values. Outstanding is revenue minus the paid invoices' totals.
func (a *Aggregator) MonthlyRevenue(invoices []*invoice.Invoice, year int) *RevenueReport {
	report := &RevenueReport{
		Year:             year,
		Months:           make([]MonthRevenue, 0, 12),
		TotalRevenue:     decimal.Zero,
		TotalPaid:        decimal.Zero,
		TotalOutstanding: decimal.Zero,
	}

	for m := time.January; m <= time.December; m++ {
		bucket := MonthRevenue{
			Month:   m,
			Label:   format.MonthName(m),
			Period:  MonthPeriod(year, m, a.loc),
			Revenue: decimal.Zero,
			Paid:    decimal.Zero,
		}

		for _, inv := range invoices {
			if inv == nil || !inv.Status.IsCountedInRevenue() || !bucket.Period.Contains(inv.IssueDate) {
				continue
			}
			a.noteMissingFinancial("revenue", inv)

			bucket.InvoiceCount++
			bucket.Revenue = bucket.Revenue.Add(inv.GrossTotal())
			if inv.Status == types.InvoiceStatusPaid {
				bucket.Paid = bucket.Paid.Add(inv.GrossTotal())
			}
		}
		bucket.Outstanding = bucket.Revenue.Sub(bucket.Paid)

		report.InvoiceCount += bucket.InvoiceCount
		report.TotalRevenue = report.TotalRevenue.Add(bucket.Revenue)
		report.TotalPaid = report.TotalPaid.Add(bucket.Paid)
		report.TotalOutstanding = report.TotalOutstanding.Add(bucket.Outstanding)
		report.Months = append(report.Months, bucket)
	}

	return report
}
