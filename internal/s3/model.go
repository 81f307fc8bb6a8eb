package s3

import (
	"github.com/factuurdesk/factuurdesk/internal/types"
)

// Document is a rendered invoice PDF on its way to the archive bucket
type Document struct {
	// ArchiveID identifies this upload, the object key only identifies the invoice
	ArchiveID   string            `json:"archive_id"`
	InvoiceID   string            `json:"invoice_id"`
	FileName    string            `json:"file_name"`
	Data        []byte            `json:"-"`
	ContentType string            `json:"content_type"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

func NewPdfDocument(invoiceID, fileName string, data []byte) *Document {
	return &Document{
		ArchiveID:   types.GenerateUUIDWithPrefix(types.UUID_PREFIX_DOCUMENT),
		InvoiceID:   invoiceID,
		FileName:    fileName,
		Data:        data,
		ContentType: "application/pdf",
	}
}

// ArchivedDocument describes a stored document
type ArchivedDocument struct {
	ArchiveID string `json:"archive_id"`
	Bucket    string `json:"bucket"`
	Key       string `json:"key"`
	URL       string `json:"url,omitempty"`
}
