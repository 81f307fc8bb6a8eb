package report

import (
	"github.com/factuurdesk/factuurdesk/internal/domain/invoice"
	"github.com/factuurdesk/factuurdesk/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// TaxPeriodReport is the BTW summary of one quarter
type TaxPeriodReport struct {
	Year             int                `json:"year"`
	Quarter          int                `json:"quarter"`
	Period           Period             `json:"period"`
	TotalRevenue     decimal.Decimal    `json:"total_revenue"`
	TotalNet         decimal.Decimal    `json:"total_net"`
	TotalTax         decimal.Decimal    `json:"total_tax"`
	TotalPaid        decimal.Decimal    `json:"total_paid"`
	TotalOutstanding decimal.Decimal    `json:"total_outstanding"`
	InvoiceCount     int                `json:"invoice_count"`
	PaidCount        int                `json:"paid_count"`
	Invoices         []*invoice.Invoice `json:"invoices"`
}

// TaxReport selects the non cancelled invoices issued inside the quarter and sums them.
// An invalid quarter is the only error; an empty selection yields zero totals.
func (a *Aggregator) TaxReport(invoices []*invoice.Invoice, year, quarter int) (*TaxPeriodReport, error) {
	period, err := QuarterPeriod(year, quarter, a.loc)
	if err != nil {
		return nil, err
	}

	members := lo.Filter(invoices, func(inv *invoice.Invoice, _ int) bool {
		return inv != nil && inv.Status.IsCountedInRevenue() && period.Contains(inv.IssueDate)
	})

	report := &TaxPeriodReport{
		Year:             year,
		Quarter:          quarter,
		Period:           period,
		TotalRevenue:     decimal.Zero,
		TotalNet:         decimal.Zero,
		TotalTax:         decimal.Zero,
		TotalPaid:        decimal.Zero,
		TotalOutstanding: decimal.Zero,
		Invoices:         members,
	}

	for _, inv := range members {
		a.noteMissingFinancial("tax", inv)

		report.InvoiceCount++
		report.TotalRevenue = report.TotalRevenue.Add(inv.GrossTotal())
		report.TotalTax = report.TotalTax.Add(inv.TaxTotal())
		report.TotalNet = report.TotalNet.Add(inv.NetTotal())

		switch {
		case inv.Status == types.InvoiceStatusPaid:
			report.PaidCount++
			report.TotalPaid = report.TotalPaid.Add(inv.GrossTotal())
		case inv.Status.IsPayable():
			report.TotalOutstanding = report.TotalOutstanding.Add(inv.Outstanding())
		}
	}

	return report, nil
}
