package invoice

import (
	ierr "github.com/factuurdesk/factuurdesk/internal/errors"
	"github.com/shopspring/decimal"
)

// LineItem is a single billed row. Total is stored and authoritative,
// it is expected to equal Quantity * UnitPrice + TaxAmount.
type LineItem struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TaxAmount   decimal.Decimal `json:"tax_amount"`
	Total       decimal.Decimal `json:"total"`
}

func (l LineItem) Validate() error {
	if l.Quantity.IsNegative() {
		return ierr.NewError("line item quantity must not be negative").
			WithHint("Quantity must not be negative").
			Mark(ierr.ErrValidation)
	}
	if l.UnitPrice.IsNegative() {
		return ierr.NewError("line item unit price must not be negative").
			WithHint("Unit price must not be negative").
			Mark(ierr.ErrValidation)
	}
	return nil
}
