package report

import (
	"bytes"
	"strconv"

	"github.com/factuurdesk/factuurdesk/internal/domain/invoice"
	ierr "github.com/factuurdesk/factuurdesk/internal/errors"
	"github.com/factuurdesk/factuurdesk/internal/format"
	"github.com/factuurdesk/factuurdesk/internal/logger"
	"github.com/factuurdesk/factuurdesk/internal/types"
	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
)

// TaxInvoiceCSV is one invoice row of the BTW export
type TaxInvoiceCSV struct {
	InvoiceNumber string `csv:"factuurnummer"`
	IssueDate     string `csv:"factuurdatum"`
	Customer      string `csv:"klant"`
	Status        string `csv:"status"`
	Net           string `csv:"netto"`
	Tax           string `csv:"btw"`
	Total         string `csv:"totaal"`
	Outstanding   string `csv:"openstaand"`
}

// RevenueMonthCSV is one month row of the revenue export
type RevenueMonthCSV struct {
	Month        string `csv:"maand"`
	InvoiceCount int    `csv:"aantal_facturen"`
	Revenue      string `csv:"omzet"`
	Paid         string `csv:"betaald"`
	Outstanding  string `csv:"openstaand"`
}

// AgingSummaryRowCSV is one band row of the aging summary export
type AgingSummaryRowCSV struct {
	Band  string `csv:"periode"`
	Count int    `csv:"aantal"`
	Total string `csv:"openstaand"`
}

// AgingInvoiceCSV is one invoice row of a single aging band export
type AgingInvoiceCSV struct {
	InvoiceNumber string `csv:"factuurnummer"`
	Customer      string `csv:"klant"`
	DueDate       string `csv:"vervaldatum"`
	DaysOverdue   string `csv:"dagen_verlopen"`
	Status        string `csv:"status"`
	Outstanding   string `csv:"openstaand"`
}

// Exporter renders report views as CSV with the same formatting as the screens.
// Currency is the code used for report level totals.
type Exporter struct {
	display  *format.Display
	currency string
}

func NewExporter(log *logger.Logger, currency string) *Exporter {
	if currency == "" {
		currency = types.DefaultCurrency
	}
	return &Exporter{display: format.NewDisplay(log), currency: currency}
}

// TaxReportCSV writes a header and one row per member invoice
func (e *Exporter) TaxReportCSV(r *TaxPeriodReport) ([]byte, error) {
	rows := make([]*TaxInvoiceCSV, 0, len(r.Invoices))
	for _, inv := range r.Invoices {
		rows = append(rows, &TaxInvoiceCSV{
			InvoiceNumber: inv.InvoiceNumber,
			IssueDate:     e.display.DateShort(inv.IssueDate),
			Customer:      inv.Recipient().Name,
			Status:        inv.Status.Display().Label,
			Net:           e.money(inv, inv.NetTotal()),
			Tax:           e.money(inv, inv.TaxTotal()),
			Total:         e.money(inv, inv.GrossTotal()),
			Outstanding:   e.money(inv, e.openAmount(inv)),
		})
	}
	return marshal(rows)
}

// RevenueCSV writes a header and twelve month rows
func (e *Exporter) RevenueCSV(r *RevenueReport) ([]byte, error) {
	rows := make([]*RevenueMonthCSV, 0, len(r.Months))
	for _, m := range r.Months {
		rows = append(rows, &RevenueMonthCSV{
			Month:        m.Label + " " + strconv.Itoa(r.Year),
			InvoiceCount: m.InvoiceCount,
			Revenue:      e.display.Currency(m.Revenue, e.currency),
			Paid:         e.display.Currency(m.Paid, e.currency),
			Outstanding:  e.display.Currency(m.Outstanding, e.currency),
		})
	}
	return marshal(rows)
}

// AgingSummaryCSV writes a header and five band rows
func (e *Exporter) AgingSummaryCSV(r *AgingReport) ([]byte, error) {
	rows := make([]*AgingSummaryRowCSV, 0, len(r.Bands))
	for _, b := range r.Bands {
		rows = append(rows, &AgingSummaryRowCSV{
			Band:  b.Label,
			Count: b.Count,
			Total: e.display.Currency(b.Total, e.currency),
		})
	}
	return marshal(rows)
}

// AgingBandCSV writes a header and one row per invoice of the band
func (e *Exporter) AgingBandCSV(r *AgingReport, key AgingBandKey) ([]byte, error) {
	band, ok := r.Band(key)
	if !ok {
		return nil, ierr.NewErrorf("unknown aging band %q", key).
			WithHint("Please provide a valid aging band").
			WithReportableDetails(map[string]any{"allowed": AgingBandKeys}).
			Mark(ierr.ErrValidation)
	}

	rows := make([]*AgingInvoiceCSV, 0, len(band.Invoices))
	for _, inv := range band.Invoices {
		row := &AgingInvoiceCSV{
			InvoiceNumber: inv.InvoiceNumber,
			Customer:      inv.Recipient().Name,
			DueDate:       e.display.DateShortPtr(inv.DueDate),
			Status:        inv.Status.Display().Label,
			Outstanding:   e.money(inv, inv.Outstanding()),
		}
		if inv.DueDate != nil {
			row.DaysOverdue = strconv.Itoa(DaysOverdue(*inv.DueDate, r.AsOf))
		}
		rows = append(rows, row)
	}
	return marshal(rows)
}

func (e *Exporter) money(inv *invoice.Invoice, amount decimal.Decimal) string {
	return e.display.Currency(amount, inv.CurrencyCode())
}

func (e *Exporter) openAmount(inv *invoice.Invoice) decimal.Decimal {
	if !inv.Status.IsPayable() {
		return decimal.Zero
	}
	return inv.Outstanding()
}

func marshal[T any](rows []*T) ([]byte, error) {
	var buf bytes.Buffer
	if err := gocsv.Marshal(rows, &buf); err != nil {
		return nil, wrapCSV(err)
	}
	return buf.Bytes(), nil
}

func wrapCSV(err error) error {
	return ierr.WithError(err).
		WithHint("Failed to marshal report to CSV").
		Mark(ierr.ErrSystem)
}
