package postgres

import (
	"context"
	"fmt"
	"io"

	ierr "github.com/factuurdesk/factuurdesk/internal/errors"
)

// schema holds the idempotent DDL of the document store. Invoices and settings are
// stored as jsonb documents, the indexed columns back the report queries.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS invoices (
		id             TEXT PRIMARY KEY,
		invoice_number TEXT NOT NULL,
		status         TEXT NOT NULL,
		issue_date     TIMESTAMPTZ NOT NULL,
		document       JSONB NOT NULL,
		created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at     TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_invoices_issue_date ON invoices (issue_date)`,
	`CREATE INDEX IF NOT EXISTS idx_invoices_status ON invoices (status)`,
	`CREATE TABLE IF NOT EXISTS settings (
		key        TEXT PRIMARY KEY,
		value      JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
}

// WriteSchema prints the DDL Migrate would apply
func WriteSchema(w io.Writer) error {
	for _, stmt := range schema {
		if _, err := fmt.Fprintf(w, "%s;\n\n", stmt); err != nil {
			return err
		}
	}
	return nil
}

// Migrate applies the schema inside a single transaction
func (db *DB) Migrate(ctx context.Context) error {
	return db.WithTx(ctx, func(ctx context.Context) error {
		q := db.GetQuerier(ctx)
		for _, stmt := range schema {
			if _, err := q.ExecContext(ctx, stmt); err != nil {
				return ierr.WithError(err).
					WithHint("Could not apply the database schema").
					Mark(ierr.ErrDatabase)
			}
		}
		db.logger.Infow("database schema applied", "statements", len(schema))
		return nil
	})
}
