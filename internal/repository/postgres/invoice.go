package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/factuurdesk/factuurdesk/internal/domain/invoice"
	ierr "github.com/factuurdesk/factuurdesk/internal/errors"
	"github.com/factuurdesk/factuurdesk/internal/logger"
	"github.com/factuurdesk/factuurdesk/internal/postgres"
	"github.com/factuurdesk/factuurdesk/internal/types"
	"github.com/lib/pq"
	"github.com/samber/lo"
)

type invoiceRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

// invoiceRow is the stored shape, the full invoice lives in document
type invoiceRow struct {
	ID            string    `db:"id"`
	InvoiceNumber string    `db:"invoice_number"`
	Status        string    `db:"status"`
	IssueDate     time.Time `db:"issue_date"`
	Document      []byte    `db:"document"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

func NewInvoiceRepository(db *postgres.DB, logger *logger.Logger) invoice.Repository {
	return &invoiceRepository{db: db, logger: logger}
}

func toInvoiceRow(inv *invoice.Invoice) (*invoiceRow, error) {
	doc, err := json.Marshal(inv)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Invoice could not be serialized").
			Mark(ierr.ErrSystem)
	}
	return &invoiceRow{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		Status:        string(inv.Status),
		IssueDate:     inv.IssueDate,
		Document:      doc,
		CreatedAt:     inv.CreatedAt,
		UpdatedAt:     inv.UpdatedAt,
	}, nil
}

func (row *invoiceRow) toInvoice() (*invoice.Invoice, error) {
	var inv invoice.Invoice
	if err := json.Unmarshal(row.Document, &inv); err != nil {
		return nil, ierr.WithError(err).
			WithHintf("Stored invoice %s is not readable", row.ID).
			Mark(ierr.ErrDatabase)
	}
	return &inv, nil
}

func (r *invoiceRepository) Create(ctx context.Context, inv *invoice.Invoice) error {
	if err := inv.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()
	if inv.CreatedAt.IsZero() {
		inv.CreatedAt = now
	}
	inv.UpdatedAt = now

	row, err := toInvoiceRow(inv)
	if err != nil {
		return err
	}

	r.logger.Debugw("creating invoice", "invoice_id", inv.ID, "invoice_number", inv.InvoiceNumber)

	query := `
		INSERT INTO invoices (
			id, invoice_number, status, issue_date, document, created_at, updated_at
		) VALUES (
			:id, :invoice_number, :status, :issue_date, :document, :created_at, :updated_at
		)`
	if _, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, row); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "unique_violation" {
			return ierr.WithError(err).
				WithHintf("Invoice %s already exists", inv.ID).
				Mark(ierr.ErrInvalidOperation)
		}
		return ierr.WithError(err).
			WithHint("Failed to create invoice").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *invoiceRepository) Get(ctx context.Context, id string) (*invoice.Invoice, error) {
	var row invoiceRow
	err := r.db.GetQuerier(ctx).GetContext(ctx, &row, `SELECT * FROM invoices WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, ierr.NewErrorf("invoice %s not found", id).
			WithHintf("Invoice %s was not found", id).
			WithReportableDetails(map[string]any{"invoice_id": id}).
			Mark(ierr.ErrNotFound)
	}
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to get invoice").
			Mark(ierr.ErrDatabase)
	}
	return row.toInvoice()
}

func (r *invoiceRepository) Update(ctx context.Context, inv *invoice.Invoice) error {
	if err := inv.Validate(); err != nil {
		return err
	}
	inv.UpdatedAt = time.Now().UTC()

	row, err := toInvoiceRow(inv)
	if err != nil {
		return err
	}

	r.logger.Debugw("updating invoice", "invoice_id", inv.ID)

	query := `
		UPDATE invoices SET
			invoice_number = :invoice_number,
			status = :status,
			issue_date = :issue_date,
			document = :document,
			updated_at = :updated_at
		WHERE id = :id`
	result, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, row)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update invoice").
			Mark(ierr.ErrDatabase)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return ierr.NewErrorf("invoice %s not found", inv.ID).
			WithHintf("Invoice %s was not found", inv.ID).
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (r *invoiceRepository) List(ctx context.Context, filter *invoice.Filter) ([]*invoice.Invoice, error) {
	query, args := buildListQuery(filter)

	var rows []invoiceRow
	if err := r.db.GetQuerier(ctx).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list invoices").
			Mark(ierr.ErrDatabase)
	}

	invoices := make([]*invoice.Invoice, 0, len(rows))
	for i := range rows {
		inv, err := rows[i].toInvoice()
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}
	return invoices, nil
}

// buildListQuery renders the filter into a positional query, both date bounds inclusive
func buildListQuery(filter *invoice.Filter) (string, []interface{}) {
	var (
		conditions []string
		args       []interface{}
	)
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter == nil {
		filter = &invoice.Filter{}
	}
	if filter.IssuedFrom != nil {
		conditions = append(conditions, "issue_date >= "+arg(*filter.IssuedFrom))
	}
	if filter.IssuedTo != nil {
		conditions = append(conditions, "issue_date <= "+arg(*filter.IssuedTo))
	}
	if len(filter.Statuses) > 0 {
		statuses := lo.Map(filter.Statuses, func(s types.InvoiceStatus, _ int) string { return string(s) })
		conditions = append(conditions, "status = ANY("+arg(pq.Array(statuses))+")")
	}

	var b strings.Builder
	b.WriteString("SELECT * FROM invoices")
	if len(conditions) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(conditions, " AND "))
	}
	b.WriteString(" ORDER BY issue_date ASC, invoice_number ASC")
	if filter.Limit > 0 {
		b.WriteString(" LIMIT " + arg(filter.Limit))
	}
	if filter.Offset > 0 {
		b.WriteString(" OFFSET " + arg(filter.Offset))
	}
	return b.String(), args
}
