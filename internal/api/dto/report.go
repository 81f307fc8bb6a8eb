package dto

import (
	"time"

	"github.com/factuurdesk/factuurdesk/internal/domain/invoice"
	ierr "github.com/factuurdesk/factuurdesk/internal/errors"
	"github.com/factuurdesk/factuurdesk/internal/format"
	"github.com/factuurdesk/factuurdesk/internal/report"
	"github.com/factuurdesk/factuurdesk/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// TaxReportRequest selects a BTW quarter
type TaxReportRequest struct {
	Year    int `form:"year" binding:"required,gte=1900,lte=9999"`
	Quarter int `form:"quarter" binding:"required,gte=1,lte=4"`
}

// RevenueReportRequest selects a calendar year
type RevenueReportRequest struct {
	Year int `form:"year" binding:"required,gte=1900,lte=9999"`
}

// AgingReportRequest optionally pins the reference date, today when empty
type AgingReportRequest struct {
	AsOf string `form:"as_of"`
}

// ParseAsOf reads as_of as a calendar date in loc. The reference time is the end of
// that day so invoices due on it count as current.
func (r *AgingReportRequest) ParseAsOf(loc *time.Location) (time.Time, error) {
	if r.AsOf == "" {
		return time.Time{}, nil
	}
	day, err := time.ParseInLocation("2006-01-02", r.AsOf, loc)
	if err != nil {
		return time.Time{}, ierr.WithError(err).
			WithHint("as_of must be a date formatted as YYYY-MM-DD").
			WithReportableDetails(map[string]any{"as_of": r.AsOf}).
			Mark(ierr.ErrValidation)
	}
	return day.AddDate(0, 0, 1).Add(-time.Nanosecond), nil
}

// DashboardRequest selects the quarter and year shown on the dashboard
type DashboardRequest struct {
	Year    int    `form:"year" binding:"required,gte=1900,lte=9999"`
	Quarter int    `form:"quarter" binding:"required,gte=1,lte=4"`
	AsOf    string `form:"as_of"`
}

// ExportRequest carries the union of all report parameters
type ExportRequest struct {
	Year    int    `form:"year"`
	Quarter int    `form:"quarter"`
	AsOf    string `form:"as_of"`
	Band    string `form:"band"`
}

// Validate checks the parameters the given report kind needs
func (r *ExportRequest) Validate(kind types.ReportKind) error {
	if err := kind.Validate(); err != nil {
		return err
	}
	switch kind {
	case types.ReportKindTax:
		if r.Year == 0 || r.Quarter == 0 {
			return ierr.NewError("year and quarter are required").
				WithHint("Please provide a year and a quarter").
				Mark(ierr.ErrValidation)
		}
	case types.ReportKindRevenue:
		if r.Year == 0 {
			return ierr.NewError("year is required").
				WithHint("Please provide a year").
				Mark(ierr.ErrValidation)
		}
	case types.ReportKindAgingBand:
		if !report.AgingBandKey(r.Band).IsValid() {
			return ierr.NewErrorf("invalid aging band %q", r.Band).
				WithHint("Please provide a valid aging band").
				WithReportableDetails(map[string]any{"allowed": report.AgingBandKeys}).
				Mark(ierr.ErrValidation)
		}
	}
	return nil
}

// InvoiceSummary is the list representation of an invoice inside a report
type InvoiceSummary struct {
	ID                 string              `json:"id"`
	InvoiceNumber      string              `json:"invoice_number"`
	Customer           string              `json:"customer"`
	Status             types.InvoiceStatus `json:"status"`
	StatusDisplay      types.StatusDisplay `json:"status_display"`
	IssueDate          time.Time           `json:"issue_date"`
	DueDate            *time.Time          `json:"due_date,omitempty"`
	Total              decimal.Decimal     `json:"total"`
	Outstanding        decimal.Decimal     `json:"outstanding"`
	TotalDisplay       string              `json:"total_display"`
	OutstandingDisplay string              `json:"outstanding_display"`
	IssueDateDisplay   string              `json:"issue_date_display"`
}

func newInvoiceSummaries(d *format.Display, invoices []*invoice.Invoice) []InvoiceSummary {
	return lo.Map(invoices, func(inv *invoice.Invoice, _ int) InvoiceSummary {
		return InvoiceSummary{
			ID:                 inv.ID,
			InvoiceNumber:      inv.InvoiceNumber,
			Customer:           inv.Recipient().Name,
			Status:             inv.Status,
			StatusDisplay:      inv.Status.Display(),
			IssueDate:          inv.IssueDate,
			DueDate:            inv.DueDate,
			Total:              inv.GrossTotal(),
			Outstanding:        inv.Outstanding(),
			TotalDisplay:       d.Currency(inv.GrossTotal(), inv.CurrencyCode()),
			OutstandingDisplay: d.Currency(inv.Outstanding(), inv.CurrencyCode()),
			IssueDateDisplay:   d.DateShort(inv.IssueDate),
		}
	})
}

// TaxReportResponse is the BTW quarter view
type TaxReportResponse struct {
	Year                    int              `json:"year"`
	Quarter                 int              `json:"quarter"`
	PeriodStart             time.Time        `json:"period_start"`
	PeriodEnd               time.Time        `json:"period_end"`
	InvoiceCount            int              `json:"invoice_count"`
	PaidCount               int              `json:"paid_count"`
	TotalRevenue            decimal.Decimal  `json:"total_revenue"`
	TotalNet                decimal.Decimal  `json:"total_net"`
	TotalTax                decimal.Decimal  `json:"total_tax"`
	TotalPaid               decimal.Decimal  `json:"total_paid"`
	TotalOutstanding        decimal.Decimal  `json:"total_outstanding"`
	TotalRevenueDisplay     string           `json:"total_revenue_display"`
	TotalTaxDisplay         string           `json:"total_tax_display"`
	TotalOutstandingDisplay string           `json:"total_outstanding_display"`
	Invoices                []InvoiceSummary `json:"invoices"`
}

func NewTaxReportResponse(d *format.Display, r *report.TaxPeriodReport) *TaxReportResponse {
	return &TaxReportResponse{
		Year:                    r.Year,
		Quarter:                 r.Quarter,
		PeriodStart:             r.Period.Start,
		PeriodEnd:               r.Period.End,
		InvoiceCount:            r.InvoiceCount,
		PaidCount:               r.PaidCount,
		TotalRevenue:            r.TotalRevenue,
		TotalNet:                r.TotalNet,
		TotalTax:                r.TotalTax,
		TotalPaid:               r.TotalPaid,
		TotalOutstanding:        r.TotalOutstanding,
		TotalRevenueDisplay:     d.Currency(r.TotalRevenue, types.DefaultCurrency),
		TotalTaxDisplay:         d.Currency(r.TotalTax, types.DefaultCurrency),
		TotalOutstandingDisplay: d.Currency(r.TotalOutstanding, types.DefaultCurrency),
		Invoices:                newInvoiceSummaries(d, r.Invoices),
	}
}

// RevenueMonthResponse is one month of the revenue trend
type RevenueMonthResponse struct {
	Month          int             `json:"month"`
	Label          string          `json:"label"`
	InvoiceCount   int             `json:"invoice_count"`
	Revenue        decimal.Decimal `json:"revenue"`
	Paid           decimal.Decimal `json:"paid"`
	Outstanding    decimal.Decimal `json:"outstanding"`
	RevenueDisplay string          `json:"revenue_display"`
}

// RevenueReportResponse is the twelve month revenue trend
type RevenueReportResponse struct {
	Year                int                    `json:"year"`
	InvoiceCount        int                    `json:"invoice_count"`
	TotalRevenue        decimal.Decimal        `json:"total_revenue"`
	TotalPaid           decimal.Decimal        `json:"total_paid"`
	TotalOutstanding    decimal.Decimal        `json:"total_outstanding"`
	TotalRevenueDisplay string                 `json:"total_revenue_display"`
	Months              []RevenueMonthResponse `json:"months"`
}

func NewRevenueReportResponse(d *format.Display, r *report.RevenueReport) *RevenueReportResponse {
	return &RevenueReportResponse{
		Year:                r.Year,
		InvoiceCount:        r.InvoiceCount,
		TotalRevenue:        r.TotalRevenue,
		TotalPaid:           r.TotalPaid,
		TotalOutstanding:    r.TotalOutstanding,
		TotalRevenueDisplay: d.Currency(r.TotalRevenue, types.DefaultCurrency),
		Months: lo.Map(r.Months, func(m report.MonthRevenue, _ int) RevenueMonthResponse {
			return RevenueMonthResponse{
				Month:          int(m.Month),
				Label:          m.Label,
				InvoiceCount:   m.InvoiceCount,
				Revenue:        m.Revenue,
				Paid:           m.Paid,
				Outstanding:    m.Outstanding,
				RevenueDisplay: d.Currency(m.Revenue, types.DefaultCurrency),
			}
		}),
	}
}

// AgingBandResponse is one receivables bucket
type AgingBandResponse struct {
	Key          report.AgingBandKey `json:"key"`
	Label        string              `json:"label"`
	Count        int                 `json:"count"`
	Total        decimal.Decimal     `json:"total"`
	TotalDisplay string              `json:"total_display"`
	Invoices     []InvoiceSummary    `json:"invoices"`
}

// AgingReportResponse is the receivables aging view
type AgingReportResponse struct {
	AsOf              time.Time           `json:"as_of"`
	Count             int                 `json:"count"`
	GrandTotal        decimal.Decimal     `json:"grand_total"`
	GrandTotalDisplay string              `json:"grand_total_display"`
	Bands             []AgingBandResponse `json:"bands"`
}

func NewAgingReportResponse(d *format.Display, r *report.AgingReport) *AgingReportResponse {
	return &AgingReportResponse{
		AsOf:              r.AsOf,
		Count:             r.Count,
		GrandTotal:        r.GrandTotal,
		GrandTotalDisplay: d.Currency(r.GrandTotal, types.DefaultCurrency),
		Bands: lo.Map(r.Bands, func(b report.AgingBand, _ int) AgingBandResponse {
			return AgingBandResponse{
				Key:          b.Key,
				Label:        b.Label,
				Count:        b.Count,
				Total:        b.Total,
				TotalDisplay: d.Currency(b.Total, types.DefaultCurrency),
				Invoices:     newInvoiceSummaries(d, b.Invoices),
			}
		}),
	}
}

// DashboardResponse bundles the three views computed from one snapshot
type DashboardResponse struct {
	Tax     *TaxReportResponse     `json:"tax"`
	Revenue *RevenueReportResponse `json:"revenue"`
	Aging   *AgingReportResponse   `json:"aging"`
}
