package internal

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/factuurdesk/factuurdesk/internal/domain/invoice"
	"github.com/factuurdesk/factuurdesk/internal/types"
	"github.com/sourcegraph/conc/pool"
	"golang.org/x/time/rate"
)

const (
	DEFAULT_RENDERS_PER_SEC = 5
	ARCHIVE_WORKERS         = 4
)

// ArchiveInvoices renders every issued invoice and uploads it to the archive bucket
func ArchiveInvoices() error {
	deps := newScriptDeps()
	defer deps.db.Close()

	if deps.params.S3 == nil {
		return fmt.Errorf("archiving is disabled, enable s3 in the configuration")
	}

	perSec := DEFAULT_RENDERS_PER_SEC
	if raw := os.Getenv("RENDERS_PER_SEC"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return fmt.Errorf("invalid RENDERS_PER_SEC %q", raw)
		}
		perSec = n
	}

	ctx := context.Background()
	invoices, err := deps.params.InvoiceRepo.List(ctx, &invoice.Filter{
		Statuses: []types.InvoiceStatus{
			types.InvoiceStatusSent,
			types.InvoiceStatusViewed,
			types.InvoiceStatusPaid,
			types.InvoiceStatusOverdue,
			types.InvoiceStatusPartial,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to list invoices: %w", err)
	}

	documents := deps.documentService()
	limiter := rate.NewLimiter(rate.Limit(perSec), 1)

	deps.log.Infof("Archiving %d invoices at %d renders/s", len(invoices), perSec)

	start := time.Now()
	var archived, failed int64
	p := pool.New().WithMaxGoroutines(ARCHIVE_WORKERS).WithContext(ctx)
	for _, inv := range invoices {
		p.Go(func(ctx context.Context) error {
			if err := limiter.Wait(ctx); err != nil {
				return err
			}
			doc, err := documents.ArchiveInvoice(ctx, inv.ID)
			if err != nil {
				atomic.AddInt64(&failed, 1)
				deps.log.Errorw("failed to archive invoice", "invoice_id", inv.ID, "error", err)
				return nil
			}
			atomic.AddInt64(&archived, 1)
			deps.log.Debugw("archived invoice", "invoice_id", inv.ID, "key", doc.Key)
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return err
	}

	deps.log.Infof("Archived %d invoices, %d failed, in %v", archived, failed, time.Since(start).Round(time.Millisecond))
	if failed > 0 {
		return fmt.Errorf("%d invoices could not be archived", failed)
	}
	return nil
}
