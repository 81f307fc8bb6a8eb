package internal

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/factuurdesk/factuurdesk/internal/domain/invoice"
	"github.com/factuurdesk/factuurdesk/internal/types"
	"github.com/shopspring/decimal"
)

const (
	DEFAULT_NUM_INVOICES = 50
	SEED_TAX_RATE        = 21
)

var seedCustomers = []invoice.BillingDetails{
	{CompanyName: "Bakkerij de Molen", ContactName: "J. de Vries", Street: "Dorpsstraat 12", PostalCode: "1234 AB", City: "Utrecht", Country: "Nederland"},
	{CompanyName: "Fietsenmakerij Spaak", Street: "Kerkweg 3", PostalCode: "5611 AA", City: "Eindhoven", Country: "Nederland", VATNumber: "NL001234567B01"},
	{CompanyName: "Studio Noord", ContactName: "A. Bakker", Street: "Havenkade 88", PostalCode: "1013 BR", City: "Amsterdam", Country: "Nederland"},
}

var seedItems = []struct {
	description string
	unitPrice   string
}{
	{"Consultancy per uur", "95.00"},
	{"Ontwerp huisstijl", "750.00"},
	{"Hosting per maand", "24.95"},
	{"Onderhoud website", "120.00"},
}

var seedStatuses = []types.InvoiceStatus{
	types.InvoiceStatusDraft,
	types.InvoiceStatusSent,
	types.InvoiceStatusViewed,
	types.InvoiceStatusPaid,
	types.InvoiceStatusPaid,
	types.InvoiceStatusOverdue,
	types.InvoiceStatusPartial,
	types.InvoiceStatusCancelled,
}

// invoiceGenerator builds plausible invoices spread over the past year
type invoiceGenerator struct {
	rnd *rand.Rand
	now time.Time
}

func (g *invoiceGenerator) generate(index int) *invoice.Invoice {
	issued := g.now.AddDate(0, 0, -g.rnd.Intn(365)).Truncate(24 * time.Hour)
	due := issued.AddDate(0, 0, 30)
	status := seedStatuses[g.rnd.Intn(len(seedStatuses))]

	inv := &invoice.Invoice{
		ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE),
		InvoiceNumber: fmt.Sprintf("%d-%04d", issued.Year(), index+1),
		Status:        status,
		Currency:      types.DefaultCurrency,
		IssueDate:     issued,
		DueDate:       &due,
	}
	details := seedCustomers[g.rnd.Intn(len(seedCustomers))]
	inv.BillingDetails = &details

	rate := decimal.NewFromInt(SEED_TAX_RATE).Div(decimal.NewFromInt(100))
	subtotal, tax := decimal.Zero, decimal.Zero
	for i := 0; i <= g.rnd.Intn(3); i++ {
		item := seedItems[g.rnd.Intn(len(seedItems))]
		qty := decimal.NewFromInt(int64(1 + g.rnd.Intn(8)))
		price := decimal.RequireFromString(item.unitPrice)
		net := qty.Mul(price)
		lineTax := net.Mul(rate).Round(2)
		inv.LineItems = append(inv.LineItems, invoice.LineItem{
			Description: item.description,
			Quantity:    qty,
			UnitPrice:   price,
			TaxAmount:   lineTax,
			Total:       net.Add(lineTax),
		})
		subtotal = subtotal.Add(net)
		tax = tax.Add(lineTax)
	}

	total := subtotal.Add(tax)
	paid := decimal.Zero
	switch status {
	case types.InvoiceStatusPaid:
		paid = total
		paidDate := due.AddDate(0, 0, -g.rnd.Intn(20))
		inv.PaidDate = &paidDate
	case types.InvoiceStatusPartial:
		paid = total.Div(decimal.NewFromInt(2)).Round(2)
	}

	inv.Financial = &invoice.Financial{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    total,
		Paid:     paid,
		Balance:  decimal.NewNullDecimal(total.Sub(paid)),
		Currency: types.DefaultCurrency,
	}
	return inv
}

// SeedInvoices stores NUM_INVOICES (env) generated invoices
func SeedInvoices() error {
	deps := newScriptDeps()
	defer deps.db.Close()

	count := DEFAULT_NUM_INVOICES
	if raw := os.Getenv("NUM_INVOICES"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return fmt.Errorf("invalid NUM_INVOICES %q", raw)
		}
		count = n
	}

	ctx := context.Background()
	if err := deps.db.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}

	generator := &invoiceGenerator{rnd: rand.New(rand.NewSource(time.Now().UnixNano())), now: time.Now().UTC()}

	deps.log.Infof("Seeding %d invoices", count)
	err := deps.db.WithTx(ctx, func(ctx context.Context) error {
		for i := 0; i < count; i++ {
			if err := deps.params.InvoiceRepo.Create(ctx, generator.generate(i)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to seed invoices: %w", err)
	}

	deps.log.Info("Invoice seeding completed")
	return nil
}
