package v1

import (
	"fmt"
	"net/http"

	"github.com/factuurdesk/factuurdesk/internal/api/dto"
	ierr "github.com/factuurdesk/factuurdesk/internal/errors"
	"github.com/factuurdesk/factuurdesk/internal/logger"
	"github.com/factuurdesk/factuurdesk/internal/pdf"
	"github.com/factuurdesk/factuurdesk/internal/service"
	"github.com/gin-gonic/gin"
)

type InvoiceHandler struct {
	documentService service.DocumentService
	logger          *logger.Logger
}

func NewInvoiceHandler(documentService service.DocumentService, logger *logger.Logger) *InvoiceHandler {
	return &InvoiceHandler{documentService: documentService, logger: logger}
}

// GetInvoicePDF godoc
// @Summary Get invoice document
// @Description Render the invoice as PDF. format=base64 returns JSON with the encoded document, url=true a presigned link to the archived copy.
// @Tags Invoices
// @Produce application/pdf
// @Produce json
// @Param id path string true "Invoice ID"
// @Param format query string false "base64"
// @Param url query bool false "Return a presigned URL"
// @Param payment_url query string false "Override the pay online link"
// @Success 200 {file} application/pdf
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /invoices/{id}/pdf [get]
func (h *InvoiceHandler) GetInvoicePDF(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("invalid invoice id").WithHint("invalid invoice id").Mark(ierr.ErrValidation))
		return
	}

	var req dto.InvoicePDFRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid query parameters").
			Mark(ierr.ErrValidation))
		return
	}

	if req.URL {
		url, err := h.documentService.GetInvoicePDFUrl(c.Request.Context(), id)
		if err != nil {
			h.logger.Errorw("failed to get invoice pdf url", "error", err, "invoice_id", id)
			c.Error(err)
			return
		}
		c.JSON(http.StatusOK, dto.InvoicePDFUrlResponse{PresignedURL: url})
		return
	}

	doc, err := h.documentService.RenderInvoice(c.Request.Context(), id, req.PaymentURL)
	if err != nil {
		h.logger.Errorw("failed to generate invoice pdf", "error", err, "invoice_id", id)
		c.Error(err)
		return
	}

	if req.Format == "base64" {
		c.JSON(http.StatusOK, dto.NewInvoicePDFResponse(doc))
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", doc.FileName))
	c.Data(http.StatusOK, pdf.ContentType, doc.Bytes)
}

// ArchiveInvoice godoc
// @Summary Archive invoice document
// @Description Render the invoice and store the PDF in the document archive
// @Tags Invoices
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} dto.ArchiveInvoiceResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /invoices/{id}/archive [post]
func (h *InvoiceHandler) ArchiveInvoice(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("invalid invoice id").WithHint("invalid invoice id").Mark(ierr.ErrValidation))
		return
	}

	archived, err := h.documentService.ArchiveInvoice(c.Request.Context(), id)
	if err != nil {
		h.logger.Errorw("failed to archive invoice", "error", err, "invoice_id", id)
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.ArchiveInvoiceResponse{ArchivedDocument: archived})
}
