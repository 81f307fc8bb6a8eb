package testutil

import (
	"context"
	"encoding/json"

	"github.com/factuurdesk/factuurdesk/internal/domain/invoice"
	"github.com/samber/lo"
)

// InMemoryInvoiceStore implements invoice.Repository
type InMemoryInvoiceStore struct {
	*InMemoryStore[*invoice.Invoice]
	// Err, when set, is returned by every call
	Err error
}

// NewInMemoryInvoiceStore creates a new in-memory invoice store
func NewInMemoryInvoiceStore() *InMemoryInvoiceStore {
	return &InMemoryInvoiceStore{
		InMemoryStore: NewInMemoryStore[*invoice.Invoice](),
	}
}

// Helper to copy invoice, stored values must not alias the caller's
func copyInvoice(inv *invoice.Invoice) *invoice.Invoice {
	if inv == nil {
		return nil
	}
	raw, err := json.Marshal(inv)
	if err != nil {
		panic(err)
	}
	var out invoice.Invoice
	if err := json.Unmarshal(raw, &out); err != nil {
		panic(err)
	}
	return &out
}

func (s *InMemoryInvoiceStore) Create(ctx context.Context, inv *invoice.Invoice) error {
	if s.Err != nil {
		return s.Err
	}
	return s.InMemoryStore.Create(ctx, inv.ID, copyInvoice(inv))
}

func (s *InMemoryInvoiceStore) Get(ctx context.Context, id string) (*invoice.Invoice, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	inv, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return copyInvoice(inv), nil
}

func (s *InMemoryInvoiceStore) Update(ctx context.Context, inv *invoice.Invoice) error {
	if s.Err != nil {
		return s.Err
	}
	return s.InMemoryStore.Update(ctx, inv.ID, copyInvoice(inv))
}

func (s *InMemoryInvoiceStore) List(ctx context.Context, filter *invoice.Filter) ([]*invoice.Invoice, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if filter == nil {
		filter = &invoice.Filter{}
	}

	items := s.InMemoryStore.List(ctx, invoiceFilterFn(filter), sortByIssueDate, filter.Offset, filter.Limit)
	return lo.Map(items, func(inv *invoice.Invoice, _ int) *invoice.Invoice {
		return copyInvoice(inv)
	}), nil
}

func invoiceFilterFn(filter *invoice.Filter) FilterFunc[*invoice.Invoice] {
	return func(_ context.Context, inv *invoice.Invoice) bool {
		if filter.IssuedFrom != nil && inv.IssueDate.Before(*filter.IssuedFrom) {
			return false
		}
		if filter.IssuedTo != nil && inv.IssueDate.After(*filter.IssuedTo) {
			return false
		}
		if len(filter.Statuses) > 0 && !lo.Contains(filter.Statuses, inv.Status) {
			return false
		}
		return true
	}
}

func sortByIssueDate(a, b *invoice.Invoice) bool {
	if a.IssueDate.Equal(b.IssueDate) {
		return a.InvoiceNumber < b.InvoiceNumber
	}
	return a.IssueDate.Before(b.IssueDate)
}
