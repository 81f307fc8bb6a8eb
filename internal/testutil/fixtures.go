package testutil

import (
	"time"

	"github.com/factuurdesk/factuurdesk/internal/domain/invoice"
	"github.com/factuurdesk/factuurdesk/internal/types"
	"github.com/shopspring/decimal"
)

// Date returns midnight UTC of the given calendar day
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// InvoiceBuilder assembles invoice fixtures. Defaults: status sent, EUR, issued
// 2025-01-15, due 30 days later, an empty financial block.
type InvoiceBuilder struct {
	inv *invoice.Invoice
}

func NewInvoice(number string) *InvoiceBuilder {
	issued := Date(2025, time.January, 15)
	due := issued.AddDate(0, 0, 30)
	return &InvoiceBuilder{inv: &invoice.Invoice{
		ID:            "inv_" + number,
		InvoiceNumber: number,
		Status:        types.InvoiceStatusSent,
		Currency:      types.DefaultCurrency,
		IssueDate:     issued,
		DueDate:       &due,
		Financial: &invoice.Financial{
			Subtotal: decimal.Zero,
			Discount: decimal.Zero,
			Tax:      decimal.Zero,
			Total:    decimal.Zero,
			Paid:     decimal.Zero,
			Currency: types.DefaultCurrency,
		},
		CreatedAt: issued,
		UpdatedAt: issued,
	}}
}

func (b *InvoiceBuilder) WithID(id string) *InvoiceBuilder {
	b.inv.ID = id
	return b
}

func (b *InvoiceBuilder) WithStatus(status types.InvoiceStatus) *InvoiceBuilder {
	b.inv.Status = status
	return b
}

func (b *InvoiceBuilder) IssuedOn(t time.Time) *InvoiceBuilder {
	b.inv.IssueDate = t
	return b
}

func (b *InvoiceBuilder) DueOn(t time.Time) *InvoiceBuilder {
	b.inv.DueDate = &t
	return b
}

func (b *InvoiceBuilder) WithoutDueDate() *InvoiceBuilder {
	b.inv.DueDate = nil
	return b
}

// WithTotals sets subtotal and tax, deriving total and an unpaid balance
func (b *InvoiceBuilder) WithTotals(subtotal, tax string) *InvoiceBuilder {
	f := b.financial()
	f.Subtotal = decimal.RequireFromString(subtotal)
	f.Tax = decimal.RequireFromString(tax)
	f.Total = f.Subtotal.Sub(f.Discount).Add(f.Tax)
	f.Balance = decimal.NewNullDecimal(f.Total.Sub(f.Paid))
	return b
}

func (b *InvoiceBuilder) WithDiscount(discount string) *InvoiceBuilder {
	f := b.financial()
	f.Discount = decimal.RequireFromString(discount)
	f.Total = f.Subtotal.Sub(f.Discount).Add(f.Tax)
	f.Balance = decimal.NewNullDecimal(f.Total.Sub(f.Paid))
	return b
}

// WithPaid records a payment and recomputes the balance
func (b *InvoiceBuilder) WithPaid(paid string) *InvoiceBuilder {
	f := b.financial()
	f.Paid = decimal.RequireFromString(paid)
	f.Balance = decimal.NewNullDecimal(f.Total.Sub(f.Paid))
	return b
}

// WithBalance overrides the stored balance, which may disagree with total - paid
func (b *InvoiceBuilder) WithBalance(balance string) *InvoiceBuilder {
	b.financial().Balance = decimal.NewNullDecimal(decimal.RequireFromString(balance))
	return b
}

func (b *InvoiceBuilder) WithoutBalance() *InvoiceBuilder {
	b.financial().Balance = decimal.NullDecimal{}
	return b
}

func (b *InvoiceBuilder) WithoutFinancial() *InvoiceBuilder {
	b.inv.Financial = nil
	return b
}

func (b *InvoiceBuilder) WithCurrency(code string) *InvoiceBuilder {
	b.inv.Currency = code
	b.financial().Currency = code
	return b
}

func (b *InvoiceBuilder) WithLineItem(description, quantity, unitPrice, tax string) *InvoiceBuilder {
	qty := decimal.RequireFromString(quantity)
	price := decimal.RequireFromString(unitPrice)
	taxAmount := decimal.RequireFromString(tax)
	b.inv.LineItems = append(b.inv.LineItems, invoice.LineItem{
		Description: description,
		Quantity:    qty,
		UnitPrice:   price,
		TaxAmount:   taxAmount,
		Total:       qty.Mul(price).Add(taxAmount),
	})
	return b
}

func (b *InvoiceBuilder) WithBillingDetails(details invoice.BillingDetails) *InvoiceBuilder {
	b.inv.BillingDetails = &details
	return b
}

func (b *InvoiceBuilder) WithLegacyAddress(address invoice.LegacyAddress) *InvoiceBuilder {
	b.inv.Address = &address
	return b
}

func (b *InvoiceBuilder) Build() *invoice.Invoice {
	out := *b.inv
	if b.inv.Financial != nil {
		f := *b.inv.Financial
		out.Financial = &f
	}
	out.LineItems = append([]invoice.LineItem(nil), b.inv.LineItems...)
	return &out
}

func (b *InvoiceBuilder) financial() *invoice.Financial {
	if b.inv.Financial == nil {
		b.inv.Financial = &invoice.Financial{Currency: b.inv.Currency}
	}
	return b.inv.Financial
}
