package service

import (
	"context"

	"github.com/factuurdesk/factuurdesk/internal/domain/invoice"
	ierr "github.com/factuurdesk/factuurdesk/internal/errors"
	"github.com/factuurdesk/factuurdesk/internal/pdf"
	"github.com/factuurdesk/factuurdesk/internal/s3"
	"github.com/factuurdesk/factuurdesk/internal/sentry"
)

// DocumentService renders invoice documents and archives them
type DocumentService interface {
	// RenderInvoice renders the stored invoice; paymentURL overrides the default pay link
	RenderInvoice(ctx context.Context, id string, paymentURL string) (*pdf.Document, error)
	// ArchiveInvoice renders once and uploads the bytes to the archive bucket
	ArchiveInvoice(ctx context.Context, id string) (*s3.ArchivedDocument, error)
	// GetInvoicePDFUrl returns a presigned link, archiving the invoice first when needed
	GetInvoicePDFUrl(ctx context.Context, id string) (string, error)
}

type documentService struct {
	ServiceParams
	generator pdf.Generator
}

func NewDocumentService(params ServiceParams, generator pdf.Generator) DocumentService {
	return &documentService{ServiceParams: params, generator: generator}
}

func (s *documentService) getInvoice(ctx context.Context, id string) (*invoice.Invoice, error) {
	if id == "" {
		return nil, ierr.NewError("invoice id is required").
			WithHint("Invoice id is required").
			Mark(ierr.ErrValidation)
	}
	return s.InvoiceRepo.Get(ctx, id)
}

func (s *documentService) RenderInvoice(ctx context.Context, id string, paymentURL string) (*pdf.Document, error) {
	inv, err := s.getInvoice(ctx, id)
	if err != nil {
		return nil, err
	}

	span, ctx := s.Sentry.StartRenderSpan(ctx, id)
	defer sentry.FinishSpan(span)

	doc, err := s.generator.Render(ctx, pdf.RenderInput{Invoice: inv, PaymentURL: paymentURL})
	if err != nil {
		s.Logger.Errorw("failed to render invoice document",
			"invoice_id", id,
			"invoice_number", inv.InvoiceNumber,
			"error", err)
		s.Sentry.CaptureWithContext(ctx, err, map[string]string{
			"operation":      "render",
			"invoice_id":     id,
			"invoice_number": inv.InvoiceNumber,
		})
		return nil, err
	}

	s.Logger.Debugw("rendered invoice document",
		"invoice_id", id,
		"file_name", doc.FileName,
		"bytes", len(doc.Bytes))
	return doc, nil
}

func (s *documentService) ArchiveInvoice(ctx context.Context, id string) (*s3.ArchivedDocument, error) {
	if s.S3 == nil {
		return nil, errArchiveDisabled()
	}

	doc, err := s.RenderInvoice(ctx, id, "")
	if err != nil {
		return nil, err
	}

	span, ctx := s.Sentry.StartStorageSpan(ctx, "document.upload", map[string]interface{}{"invoice_id": id})
	defer sentry.FinishSpan(span)

	archived, err := s.S3.UploadDocument(ctx, s3.NewPdfDocument(doc.InvoiceID, doc.FileName, doc.Bytes))
	if err != nil {
		s.Sentry.CaptureWithContext(ctx, err, map[string]string{
			"operation":  "archive",
			"invoice_id": id,
		})
		return nil, err
	}

	url, err := s.S3.GetPresignedUrl(ctx, id)
	if err != nil {
		// the document is stored; the link can be requested again later
		s.Logger.Warnw("failed to presign archived document", "invoice_id", id, "error", err)
	}
	archived.URL = url
	return archived, nil
}

func (s *documentService) GetInvoicePDFUrl(ctx context.Context, id string) (string, error) {
	if s.S3 == nil {
		return "", errArchiveDisabled()
	}
	if _, err := s.getInvoice(ctx, id); err != nil {
		return "", err
	}

	exists, err := s.S3.Exists(ctx, id)
	if err != nil {
		return "", err
	}
	if !exists {
		archived, err := s.ArchiveInvoice(ctx, id)
		if err != nil {
			return "", err
		}
		if archived.URL != "" {
			return archived.URL, nil
		}
	}
	return s.S3.GetPresignedUrl(ctx, id)
}

func errArchiveDisabled() error {
	return ierr.NewError("document archive is disabled").
		WithHint("Document archiving is not configured").
		Mark(ierr.ErrInvalidOperation)
}
