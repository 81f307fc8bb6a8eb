package invoice

import (
	"strings"
	"time"

	ierr "github.com/factuurdesk/factuurdesk/internal/errors"
	"github.com/factuurdesk/factuurdesk/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// Invoice is a financial record as stored by the invoicing module.
// Once issued it is treated as immutable by reporting and rendering.
type Invoice struct {
	ID            string              `json:"id"`
	InvoiceNumber string              `json:"invoice_number"`
	Status        types.InvoiceStatus `json:"status"`
	Currency      string              `json:"currency"`

	IssueDate time.Time  `json:"issue_date"`
	DueDate   *time.Time `json:"due_date,omitempty"`
	PaidDate  *time.Time `json:"paid_date,omitempty"`

	// BillingDetails is the extended recipient shape, Address the legacy flat one
	BillingDetails *BillingDetails `json:"billing_details,omitempty"`
	Address        *LegacyAddress  `json:"address,omitempty"`
	Email          string          `json:"email,omitempty"`

	LineItems []LineItem `json:"line_items"`
	Financial *Financial `json:"financial,omitempty"`
	Notes     string     `json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BillingDetails identifies the recipient of an invoice
type BillingDetails struct {
	CompanyName       string `json:"company_name,omitempty"`
	ContactName       string `json:"contact_name,omitempty"`
	Street            string `json:"street,omitempty"`
	PostalCode        string `json:"postal_code,omitempty"`
	City              string `json:"city,omitempty"`
	Country           string `json:"country,omitempty"`
	VATNumber         string `json:"vat_number,omitempty"`
	ChamberOfCommerce string `json:"chamber_of_commerce,omitempty"`
}

// LegacyAddress is the flat address older invoices were stored with
type LegacyAddress struct {
	Name       string `json:"name,omitempty"`
	Street     string `json:"street,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	City       string `json:"city,omitempty"`
	Country    string `json:"country,omitempty"`
}

// Financial is the stored money summary of an invoice.
// Subtotal - Discount + Tax = Total and Total - Paid = Balance are expected but not enforced.
type Financial struct {
	Subtotal decimal.Decimal     `json:"subtotal"`
	Discount decimal.Decimal     `json:"discount"`
	Tax      decimal.Decimal     `json:"tax"`
	Total    decimal.Decimal     `json:"total"`
	Paid     decimal.Decimal     `json:"paid"`
	Balance  decimal.NullDecimal `json:"balance"`
	Currency string              `json:"currency,omitempty"`
}

// HasFinancial reports whether the invoice carries a financial block
func (i *Invoice) HasFinancial() bool {
	return i != nil && i.Financial != nil
}

// GrossTotal is the invoice total including tax, zero when the financial block is missing
func (i *Invoice) GrossTotal() decimal.Decimal {
	if !i.HasFinancial() {
		return decimal.Zero
	}
	return i.Financial.Total
}

// NetTotal is the subtotal before tax
func (i *Invoice) NetTotal() decimal.Decimal {
	if !i.HasFinancial() {
		return decimal.Zero
	}
	return i.Financial.Subtotal
}

// TaxTotal is the tax amount of the invoice
func (i *Invoice) TaxTotal() decimal.Decimal {
	if !i.HasFinancial() {
		return decimal.Zero
	}
	return i.Financial.Tax
}

// DiscountTotal is the discount granted on the invoice
func (i *Invoice) DiscountTotal() decimal.Decimal {
	if !i.HasFinancial() {
		return decimal.Zero
	}
	return i.Financial.Discount
}

// PaidAmount is the amount received so far
func (i *Invoice) PaidAmount() decimal.Decimal {
	if !i.HasFinancial() {
		return decimal.Zero
	}
	return i.Financial.Paid
}

// Outstanding returns the stored balance when present and the total otherwise.
// The balance is authoritative even when it disagrees with total - paid.
func (i *Invoice) Outstanding() decimal.Decimal {
	if !i.HasFinancial() {
		return decimal.Zero
	}
	if i.Financial.Balance.Valid {
		return i.Financial.Balance.Decimal
	}
	return i.Financial.Total
}

// CurrencyCode returns the invoice currency, preferring the financial block
func (i *Invoice) CurrencyCode() string {
	if i.HasFinancial() && i.Financial.Currency != "" {
		return strings.ToUpper(i.Financial.Currency)
	}
	if i.Currency != "" {
		return strings.ToUpper(i.Currency)
	}
	return types.DefaultCurrency
}

// PaymentReference is the reference the recipient must mention when paying
func (i *Invoice) PaymentReference() string {
	return i.InvoiceNumber
}

// Recipient is the resolved, display ready recipient block
type Recipient struct {
	Name              string
	ContactName       string
	AddressLines      []string
	VATNumber         string
	ChamberOfCommerce string
}

// Recipient resolves the billing block, preferring the extended billing details over
// the legacy address. Empty parts are left out.
func (i *Invoice) Recipient() Recipient {
	if bd := i.BillingDetails; bd != nil && !bd.isEmpty() {
		return Recipient{
			Name:              bd.CompanyName,
			ContactName:       bd.ContactName,
			AddressLines:      addressLines(bd.Street, bd.PostalCode, bd.City, bd.Country),
			VATNumber:         bd.VATNumber,
			ChamberOfCommerce: bd.ChamberOfCommerce,
		}
	}
	if a := i.Address; a != nil {
		return Recipient{
			Name:         a.Name,
			AddressLines: addressLines(a.Street, a.PostalCode, a.City, a.Country),
		}
	}
	return Recipient{}
}

func (b *BillingDetails) isEmpty() bool {
	return b.CompanyName == "" && b.ContactName == "" && b.Street == "" &&
		b.PostalCode == "" && b.City == ""
}

func addressLines(street, postalCode, city, country string) []string {
	cityLine := strings.TrimSpace(postalCode + "  " + city)
	return lo.Compact([]string{strings.TrimSpace(street), cityLine, strings.TrimSpace(country)})
}

// Validate checks the fields the engine relies on
func (i *Invoice) Validate() error {
	if i.ID == "" {
		return ierr.NewError("invoice id is required").
			WithHint("Invoice id is required").
			Mark(ierr.ErrValidation)
	}
	if i.InvoiceNumber == "" {
		return ierr.NewError("invoice number is required").
			WithHint("Invoice number is required").
			Mark(ierr.ErrValidation)
	}
	if err := i.Status.Validate(); err != nil {
		return err
	}
	if i.IssueDate.IsZero() {
		return ierr.NewError("issue date is required").
			WithHint("Invoice issue date is required").
			Mark(ierr.ErrValidation)
	}
	for idx, item := range i.LineItems {
		if err := item.Validate(); err != nil {
			return ierr.WithError(err).
				WithReportableDetails(map[string]any{"line_item": idx}).
				Mark(ierr.ErrValidation)
		}
	}
	return nil
}
