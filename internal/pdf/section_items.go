package pdf

import (
	"strconv"

	"github.com/factuurdesk/factuurdesk/internal/format"
)

const (
	itemRowHeight    = 7.0
	itemHeaderHeight = 8.0
	// itemsBottom keeps room for the totals and payment terms below the table
	itemsBottom = footerTop - 95

	colDescription = marginX + 2
	colQuantity    = 118.0
	colUnitPrice   = 146.0
	colTax         = 169.0
	colTotal       = contentRight - 2
)

// drawLineItems writes the item table. Long descriptions are cut, never wrapped.
// Rows that do not fit above the totals are summarised in a single line.
func drawLineItems(p *page) {
	top := p.y

	p.s.FillRect(Rect{X: marginX, Y: top, W: contentWidth, H: itemHeaderHeight}, p.theme.Brand)
	head := p.font(8.5, WeightBold, p.theme.White)
	baseline := top + 5.4
	p.s.Text(colDescription, baseline, "Omschrijving", head)
	p.textRight(colQuantity, baseline, "Aantal", head)
	p.textRight(colUnitPrice, baseline, "Prijs", head)
	p.textRight(colTax, baseline, "BTW", head)
	p.textRight(colTotal, baseline, "Totaal", head)

	cell := p.font(8.5, WeightRegular, p.theme.Text)
	muted := p.font(8.5, WeightRegular, p.theme.Muted)
	y := top + itemHeaderHeight

	items := p.inv.LineItems
	if len(items) == 0 {
		p.s.Text(colDescription, y+4.8, "Geen factuurregels", muted)
		y += itemRowHeight
	}

	for i, item := range items {
		if y+itemRowHeight > itemsBottom {
			p.s.Text(colDescription, y+4.8, "... en nog "+strconv.Itoa(len(items)-i)+" regel(s)", muted)
			y += itemRowHeight
			break
		}
		if i%2 == 1 {
			p.s.FillRect(Rect{X: marginX, Y: y, W: contentWidth, H: itemRowHeight}, p.theme.RowAlt)
		}
		baseline := y + 4.8
		p.s.Text(colDescription, baseline, truncate(item.Description, descriptionBudget), cell)
		p.textRight(colQuantity, baseline, format.Quantity(item.Quantity), cell)
		p.textRight(colUnitPrice, baseline, p.currency(item.UnitPrice), cell)
		p.textRight(colTax, baseline, p.currency(item.TaxAmount), cell)
		p.textRight(colTotal, baseline, p.currency(item.Total), cell)
		y += itemRowHeight
	}

	p.s.Line(marginX, y, contentRight, y, Stroke{Color: p.theme.Border, Width: 0.3})
	p.y = y + 6
}
