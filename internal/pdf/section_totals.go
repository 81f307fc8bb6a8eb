package pdf

const (
	totalsLeft       = 115.0
	totalsLineHeight = 5.5
)

type totalsLine struct {
	label string
	value string
	font  Font
}

// drawTotals writes the money summary box. Discount appears only when positive and the
// paid and outstanding lines only once something has been paid.
func drawTotals(p *page) {
	inv := p.inv
	top := p.y

	regular := p.font(9, WeightRegular, p.theme.Text)
	before := []totalsLine{{"Subtotaal", p.currency(inv.NetTotal()), regular}}
	if discount := inv.DiscountTotal(); discount.IsPositive() {
		before = append(before, totalsLine{"Korting", p.currency(discount.Neg()), p.font(9, WeightRegular, p.theme.Danger)})
	}
	before = append(before, totalsLine{"BTW", p.currency(inv.TaxTotal()), regular})

	var after []totalsLine
	if inv.PaidAmount().IsPositive() {
		after = append(after,
			totalsLine{"Betaald", p.currency(inv.PaidAmount()), regular},
			totalsLine{"Openstaand", p.currency(inv.Outstanding()), p.font(9, WeightBold, p.theme.Text)},
		)
	}

	height := 4 + float64(len(before))*totalsLineHeight + 3 + 8 + float64(len(after))*totalsLineHeight + 2
	p.s.FillRect(Rect{X: totalsLeft, Y: top, W: contentRight - totalsLeft, H: height}, p.theme.Panel)

	y := top + 4 + 3.5
	for _, l := range before {
		p.totalsRow(y, l)
		y += totalsLineHeight
	}

	y -= 2
	p.s.Line(totalsLeft+4, y, contentRight-4, y, Stroke{Color: p.theme.Border, Width: 0.3})
	y += 6.5

	total := p.font(11, WeightBold, p.theme.Brand)
	p.totalsRow(y, totalsLine{"Totaal", p.currency(inv.GrossTotal()), total})
	y += 8

	for _, l := range after {
		p.totalsRow(y, l)
		y += totalsLineHeight
	}

	p.y = top + height + 8
}

func (p *page) totalsRow(y float64, l totalsLine) {
	p.s.Text(totalsLeft+4, y, l.label, l.font)
	p.textRight(contentRight-4, y, l.value, l.font)
}
