// Package pdf lays out invoice documents. Sections draw on a Surface in a fixed order;
// the production surface is fpdf and every call is recorded so the same pass yields
// both the PDF bytes and a structured instruction stream.
package pdf

import (
	"bytes"
	"context"
	"encoding/base64"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/factuurdesk/factuurdesk/internal/config"
	"github.com/factuurdesk/factuurdesk/internal/domain/invoice"
	"github.com/factuurdesk/factuurdesk/internal/domain/settings"
	ierr "github.com/factuurdesk/factuurdesk/internal/errors"
	"github.com/factuurdesk/factuurdesk/internal/format"
	"github.com/factuurdesk/factuurdesk/internal/logger"
)

const ContentType = "application/pdf"

// Generator defines the interface for invoice document generation
type Generator interface {
	Render(ctx context.Context, in RenderInput) (*Document, error)
}

// SettingsProvider supplies the company settings when the caller does not
type SettingsProvider interface {
	GetCompanySettings(ctx context.Context) (*settings.CompanySettings, error)
}

// RenderInput is everything one document is computed from.
// Settings and PaymentURL are optional.
type RenderInput struct {
	Invoice    *invoice.Invoice
	Settings   *settings.CompanySettings
	PaymentURL string
}

// Document is the result of one render pass. The encoded forms are derived from Bytes.
type Document struct {
	InvoiceID    string
	FileName     string
	Bytes        []byte
	Instructions []Instruction
}

// Base64 is the standard base64 encoding of the PDF bytes
func (d *Document) Base64() string {
	return base64.StdEncoding.EncodeToString(d.Bytes)
}

// DataURI embeds the PDF in a data URI
func (d *Document) DataURI() string {
	return "data:" + ContentType + ";base64," + d.Base64()
}

// sections run in this order on every document
var sections = []section{
	drawHeader,
	drawIdentity,
	drawBilling,
	drawLineItems,
	drawTotals,
	drawPaymentTerms,
	drawFooter,
}

// Renderer assembles invoice documents. It holds no per document state; each call
// draws on its own surface, so one Renderer may serve concurrent requests.
type Renderer struct {
	settings       SettingsProvider
	assets         AssetResolver
	paymentBaseURL string
	logger         *logger.Logger
}

var _ Generator = (*Renderer)(nil)

// NewRenderer creates a renderer. provider and assets may be nil.
func NewRenderer(cfg *config.Configuration, provider SettingsProvider, assets AssetResolver, log *logger.Logger) *Renderer {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &Renderer{
		settings:       provider,
		assets:         assets,
		paymentBaseURL: cfg.Document.PaymentBaseURL,
		logger:         log,
	}
}

// Render lays out the invoice once and returns the PDF together with the
// recorded draw instructions.
func (r *Renderer) Render(ctx context.Context, in RenderInput) (*Document, error) {
	if in.Invoice == nil {
		return nil, ierr.NewError("invoice is required").
			WithHint("An invoice is required to render a document").
			Mark(ierr.ErrValidation)
	}

	surface := newFpdfSurface(documentStamp(in.Invoice), "Factuur "+in.Invoice.InvoiceNumber)
	recorder := NewRecorder(surface)
	r.draw(ctx, recorder, in)

	var buf bytes.Buffer
	if err := surface.Output(&buf); err != nil {
		return nil, ierr.WithError(err).
			WithReportableDetails(map[string]any{
				"invoice_id":     in.Invoice.ID,
				"invoice_number": in.Invoice.InvoiceNumber,
			}).
			Mark(ierr.ErrSystem)
	}

	return &Document{
		InvoiceID:    in.Invoice.ID,
		FileName:     FileName(in.Invoice),
		Bytes:        buf.Bytes(),
		Instructions: recorder.Instructions(),
	}, nil
}

// RenderInstructions lays out the invoice and returns only the instruction stream
func (r *Renderer) RenderInstructions(ctx context.Context, in RenderInput) ([]Instruction, error) {
	if in.Invoice == nil {
		return nil, ierr.NewError("invoice is required").
			WithHint("An invoice is required to render a document").
			Mark(ierr.ErrValidation)
	}

	recorder := NewRecorder(newFpdfSurface(documentStamp(in.Invoice), in.Invoice.InvoiceNumber))
	r.draw(ctx, recorder, in)
	return recorder.Instructions(), nil
}

func (r *Renderer) draw(ctx context.Context, s Surface, in RenderInput) {
	company := r.companySettings(ctx, in.Settings)

	var logo *Asset
	if r.assets != nil {
		if asset, ok := r.assets.Resolve(ctx, company); ok {
			logo = asset
		} else {
			r.logger.Debugw("no logo resolved, using wordmark", "invoice_id", in.Invoice.ID)
		}
	}

	paymentURL := in.PaymentURL
	if paymentURL == "" {
		paymentURL = PaymentURL(r.paymentBaseURL, in.Invoice.ID)
	}

	p := &page{
		s:          s,
		theme:      DefaultTheme().WithBrand(company.BrandColor),
		display:    format.NewDisplay(r.logger),
		inv:        in.Invoice,
		company:    company,
		logo:       logo,
		paymentURL: paymentURL,
		y:          marginX,
	}
	for _, draw := range sections {
		draw(p)
	}
}

// companySettings prefers the caller's value, then the provider, then the built in default
func (r *Renderer) companySettings(ctx context.Context, given *settings.CompanySettings) *settings.CompanySettings {
	if given != nil {
		return given
	}
	if r.settings != nil {
		s, err := r.settings.GetCompanySettings(ctx)
		if err == nil && s != nil {
			return s
		}
		if err != nil {
			r.logger.Warnw("company settings unavailable, using defaults", "error", err)
		}
	}
	return settings.DefaultCompanySettings()
}

// PaymentURL is the default pay online link: <base>/betalen/<invoice id>
func PaymentURL(base, invoiceID string) string {
	if base == "" || invoiceID == "" {
		return ""
	}
	return strings.TrimRight(base, "/") + "/betalen/" + url.PathEscape(invoiceID)
}

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// FileName is the download name of an invoice document
func FileName(inv *invoice.Invoice) string {
	name := inv.InvoiceNumber
	if name == "" {
		name = inv.ID
	}
	return "factuur-" + strings.Trim(unsafeFileChars.ReplaceAllString(name, "-"), "-") + ".pdf"
}

// documentStamp fixes the PDF metadata dates so output only depends on the invoice
func documentStamp(inv *invoice.Invoice) time.Time {
	if inv.IssueDate.IsZero() {
		return time.Unix(0, 0).UTC()
	}
	return inv.IssueDate.UTC()
}
