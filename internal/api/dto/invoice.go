package dto

import (
	"github.com/factuurdesk/factuurdesk/internal/pdf"
	"github.com/factuurdesk/factuurdesk/internal/s3"
)

// InvoicePDFRequest holds the query options of the document endpoint
type InvoicePDFRequest struct {
	// Format is empty for raw bytes or "base64" for an encoded JSON response
	Format string `form:"format" binding:"omitempty,oneof=base64"`
	// URL asks for a presigned link to the archived document
	URL bool `form:"url"`
	// PaymentURL overrides the default pay online link
	PaymentURL string `form:"payment_url" binding:"omitempty,url"`
}

// InvoicePDFResponse carries the document in its encoded forms
type InvoicePDFResponse struct {
	InvoiceID   string `json:"invoice_id"`
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	Size        int    `json:"size"`
	Base64      string `json:"base64"`
	DataURI     string `json:"data_uri"`
}

func NewInvoicePDFResponse(doc *pdf.Document) *InvoicePDFResponse {
	return &InvoicePDFResponse{
		InvoiceID:   doc.InvoiceID,
		FileName:    doc.FileName,
		ContentType: pdf.ContentType,
		Size:        len(doc.Bytes),
		Base64:      doc.Base64(),
		DataURI:     doc.DataURI(),
	}
}

// InvoicePDFUrlResponse is the presigned link to an archived document
type InvoicePDFUrlResponse struct {
	PresignedURL string `json:"presigned_url"`
}

// ArchiveInvoiceResponse describes where a document was archived
type ArchiveInvoiceResponse struct {
	*s3.ArchivedDocument
}
