package postgres

import (
	"testing"
	"time"

	"github.com/factuurdesk/factuurdesk/internal/domain/invoice"
	"github.com/factuurdesk/factuurdesk/internal/types"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildListQuery(t *testing.T) {
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		filter    *invoice.Filter
		wantQuery string
		wantArgs  int
	}{
		{
			name:      "nil filter selects everything",
			filter:    nil,
			wantQuery: "SELECT * FROM invoices ORDER BY issue_date ASC, invoice_number ASC",
		},
		{
			name:      "date range",
			filter:    &invoice.Filter{IssuedFrom: &from, IssuedTo: &to},
			wantQuery: "SELECT * FROM invoices WHERE issue_date >= $1 AND issue_date <= $2 ORDER BY issue_date ASC, invoice_number ASC",
			wantArgs:  2,
		},
		{
			name: "statuses and paging",
			filter: &invoice.Filter{
				Statuses: []types.InvoiceStatus{types.InvoiceStatusSent, types.InvoiceStatusOverdue},
				Limit:    10,
				Offset:   20,
			},
			wantQuery: "SELECT * FROM invoices WHERE status = ANY($1) ORDER BY issue_date ASC, invoice_number ASC LIMIT $2 OFFSET $3",
			wantArgs:  3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args := buildListQuery(tt.filter)
			assert.Equal(t, tt.wantQuery, query)
			assert.Len(t, args, tt.wantArgs)
		})
	}
}

func TestBuildListQueryStatusArray(t *testing.T) {
	_, args := buildListQuery(&invoice.Filter{Statuses: []types.InvoiceStatus{types.InvoiceStatusPaid}})
	require.Len(t, args, 1)
	assert.Equal(t, pq.Array([]string{"paid"}), args[0])
}

func TestInvoiceRowRoundTrip(t *testing.T) {
	inv := &invoice.Invoice{
		ID:            "inv_1",
		InvoiceNumber: "F2025-001",
		Status:        types.InvoiceStatusSent,
		IssueDate:     time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC),
	}

	row, err := toInvoiceRow(inv)
	require.NoError(t, err)
	assert.Equal(t, "sent", row.Status)

	got, err := row.toInvoice()
	require.NoError(t, err)
	assert.Equal(t, inv.InvoiceNumber, got.InvoiceNumber)
	assert.True(t, inv.IssueDate.Equal(got.IssueDate))
}
