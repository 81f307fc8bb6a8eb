package pdf

const billingLineHeight = 4.6

type textLine struct {
	text string
	font Font
}

// drawBilling writes the recipient panel. Absent parts of the recipient leave no gap.
func drawBilling(p *page) {
	top := p.y
	r := p.inv.Recipient()

	var lines []textLine
	if r.Name != "" {
		lines = append(lines, textLine{r.Name, p.font(10, WeightBold, p.theme.Text)})
	}
	if r.ContactName != "" {
		lines = append(lines, textLine{r.ContactName, p.font(9, WeightRegular, p.theme.Text)})
	}
	for _, line := range r.AddressLines {
		lines = append(lines, textLine{line, p.font(9, WeightRegular, p.theme.Text)})
	}
	registration := joinNonEmpty("   ", prefixed("BTW: ", r.VATNumber), prefixed("KvK: ", r.ChamberOfCommerce))
	if registration != "" {
		lines = append(lines, textLine{registration, p.font(7.5, WeightRegular, p.theme.Muted)})
	}

	height := 11 + float64(len(lines))*billingLineHeight + 1
	p.s.FillRect(Rect{X: marginX, Y: top, W: 95, H: height}, p.theme.Panel)
	p.s.Text(marginX+4, top+6, "Factuur aan", p.font(8, WeightBold, p.theme.Muted))

	y := top + 11.5
	for _, line := range lines {
		p.s.Text(marginX+4, y, line.text, line.font)
		y += billingLineHeight
	}

	p.y = top + height + 8
}

func prefixed(prefix, value string) string {
	if value == "" {
		return ""
	}
	return prefix + value
}
