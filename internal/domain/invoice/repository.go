package invoice

import (
	"context"
	"time"

	"github.com/factuurdesk/factuurdesk/internal/types"
)

// Repository defines the interface for invoice persistence operations
type Repository interface {
	// Create stores a new invoice
	Create(ctx context.Context, invoice *Invoice) error

	// Get retrieves an invoice by ID
	Get(ctx context.Context, id string) (*Invoice, error)

	// Update replaces an existing invoice
	Update(ctx context.Context, invoice *Invoice) error

	// List retrieves invoices matching the filter, oldest issue date first
	List(ctx context.Context, filter *Filter) ([]*Invoice, error)
}

// Filter narrows a List call. A nil filter or zero values select everything.
type Filter struct {
	IssuedFrom *time.Time            `json:"issued_from,omitempty" form:"issued_from"`
	IssuedTo   *time.Time            `json:"issued_to,omitempty" form:"issued_to"`
	Statuses   []types.InvoiceStatus `json:"statuses,omitempty" form:"statuses"`
	Limit      int                   `json:"limit,omitempty" form:"limit"`
	Offset     int                   `json:"offset,omitempty" form:"offset"`
}
