package report

import (
	"math"
	"time"

	"github.com/factuurdesk/factuurdesk/internal/domain/invoice"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// AgingBandKey identifies one of the fixed receivables bands
type AgingBandKey string

const (
	AgingBandCurrent  AgingBandKey = "current"
	AgingBand1To30    AgingBandKey = "1-30"
	AgingBand31To60   AgingBandKey = "31-60"
	AgingBand61To90   AgingBandKey = "61-90"
	AgingBandOver90   AgingBandKey = "90-plus"
	noDueDateSentinel              = math.MaxInt
)

// AgingBandKeys lists the bands in evaluation order
var AgingBandKeys = []AgingBandKey{
	AgingBandCurrent,
	AgingBand1To30,
	AgingBand31To60,
	AgingBand61To90,
	AgingBandOver90,
}

type agingBandDef struct {
	key     AgingBandKey
	label   string
	maxDays int
}

var agingBands = []agingBandDef{
	{key: AgingBandCurrent, label: "Niet vervallen", maxDays: 0},
	{key: AgingBand1To30, label: "1-30 dagen", maxDays: 30},
	{key: AgingBand31To60, label: "31-60 dagen", maxDays: 60},
	{key: AgingBand61To90, label: "61-90 dagen", maxDays: 90},
	{key: AgingBandOver90, label: "90+ dagen", maxDays: math.MaxInt},
}

// IsValid reports whether k names one of the five bands
func (k AgingBandKey) IsValid() bool {
	return lo.Contains(AgingBandKeys, k)
}

// AgingBand is one receivables bucket
type AgingBand struct {
	Key      AgingBandKey       `json:"key"`
	Label    string             `json:"label"`
	Count    int                `json:"count"`
	Total    decimal.Decimal    `json:"total"`
	Invoices []*invoice.Invoice `json:"invoices"`
}

// AgingReport partitions the open receivables into the five bands
type AgingReport struct {
	AsOf       time.Time       `json:"as_of"`
	Bands      []AgingBand     `json:"bands"`
	Count      int             `json:"count"`
	GrandTotal decimal.Decimal `json:"grand_total"`
}

// Band returns the band with the given key
func (r *AgingReport) Band(key AgingBandKey) (*AgingBand, bool) {
	for i := range r.Bands {
		if r.Bands[i].Key == key {
			return &r.Bands[i], true
		}
	}
	return nil, false
}

// DaysOverdue is floor((now - due) / 24h); negative while the invoice is not yet due
func DaysOverdue(due, now time.Time) int {
	return int(math.Floor(now.Sub(due).Hours() / 24))
}

// Aging places every open invoice (not paid, cancelled or draft) in exactly one band.
// Bands are tried in order and the first whose upper bound covers the days overdue wins.
// An invoice without a due date is treated as the most overdue.
func (a *Aggregator) Aging(invoices []*invoice.Invoice, now time.Time) *AgingReport {
	report := &AgingReport{
		AsOf:       now,
		Bands:      make([]AgingBand, len(agingBands)),
		GrandTotal: decimal.Zero,
	}
	for i, def := range agingBands {
		report.Bands[i] = AgingBand{
			Key:      def.key,
			Label:    def.label,
			Total:    decimal.Zero,
			Invoices: []*invoice.Invoice{},
		}
	}

	for _, inv := range invoices {
		if inv == nil || !inv.Status.IsAgingEligible() {
			continue
		}
		a.noteMissingFinancial("aging", inv)

		days := noDueDateSentinel
		if inv.DueDate != nil && !inv.DueDate.IsZero() {
			days = DaysOverdue(*inv.DueDate, now)
		} else {
			a.logger.Debugw("open invoice has no due date, placed in the oldest band",
				"invoice_id", inv.ID,
				"invoice_number", inv.InvoiceNumber)
		}

		idx := bandIndex(days)
		band := &report.Bands[idx]
		band.Count++
		band.Total = band.Total.Add(inv.Outstanding())
		band.Invoices = append(band.Invoices, inv)

		report.Count++
		report.GrandTotal = report.GrandTotal.Add(inv.Outstanding())
	}

	return report
}

func bandIndex(days int) int {
	for i, def := range agingBands {
		if days <= def.maxDays {
			return i
		}
	}
	return len(agingBands) - 1
}
