package pdf

import (
	"strings"
	"unicode/utf8"

	"github.com/factuurdesk/factuurdesk/internal/domain/invoice"
	"github.com/factuurdesk/factuurdesk/internal/domain/settings"
	"github.com/factuurdesk/factuurdesk/internal/format"
	"github.com/shopspring/decimal"
)

const (
	marginX      = 15.0
	contentRight = PageWidth - marginX
	contentWidth = contentRight - marginX
	footerTop    = PageHeight - 22.0

	// descriptionBudget is the number of characters shown before a description is cut
	descriptionBudget = 45
	ellipsis          = "..."
)

// page is the state shared by the sections of one document. y is the top of the
// free area and only moves down.
type page struct {
	s          Surface
	theme      Theme
	display    *format.Display
	inv        *invoice.Invoice
	company    *settings.CompanySettings
	logo       *Asset
	paymentURL string
	y          float64
}

// section draws one band of the document and advances p.y past it
type section func(p *page)

func (p *page) font(size float64, weight Weight, c Color) Font {
	return Font{Size: size, Weight: weight, Color: c}
}

func (p *page) textRight(xRight, y float64, s string, f Font) {
	p.s.Text(xRight-p.s.TextWidth(s, f), y, s, f)
}

func (p *page) textCenter(xCenter, y float64, s string, f Font) {
	p.s.Text(xCenter-p.s.TextWidth(s, f)/2, y, s, f)
}

func (p *page) divider(y float64) {
	p.s.Line(marginX, y, contentRight, y, Stroke{Color: p.theme.Border, Width: 0.3})
}

func (p *page) currency(amount decimal.Decimal) string {
	return p.display.Currency(amount, p.inv.CurrencyCode())
}

// truncate shortens s to budget characters followed by "...". Runes are counted,
// not bytes, so accented text is cut on a character boundary.
func truncate(s string, budget int) string {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) <= budget {
		return s
	}
	runes := []rune(s)
	return strings.TrimRight(string(runes[:budget]), " ") + ellipsis
}

// joinNonEmpty joins the non empty parts with sep
func joinNonEmpty(sep string, parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			kept = append(kept, part)
		}
	}
	return strings.Join(kept, sep)
}
