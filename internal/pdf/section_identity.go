package pdf

// drawIdentity writes the invoice number with its status badge and the date panel
func drawIdentity(p *page) {
	top := p.y

	title := "Factuur " + p.inv.InvoiceNumber
	titleFont := p.font(22, WeightBold, p.theme.Text)
	p.s.Text(marginX, top+9, title, titleFont)

	status := p.inv.Status.Display()
	colors := BadgeColorsFor(status.Tone)
	badgeFont := p.font(8.5, WeightBold, colors.Foreground)
	badge := Rect{
		X: marginX + p.s.TextWidth(title, titleFont) + 4,
		Y: top + 2.8,
		W: p.s.TextWidth(status.Label, badgeFont) + 8,
		H: 7,
	}
	p.s.FillRoundedRect(badge, badge.H/2, colors.Background)
	p.textCenter(badge.X+badge.W/2, badge.Y+4.8, status.Label, badgeFont)

	panel := Rect{X: 130, Y: top, W: contentRight - 130, H: 17}
	p.s.FillRect(panel, p.theme.Panel)

	label := p.font(8, WeightRegular, p.theme.Muted)
	value := p.font(9, WeightBold, p.theme.Text)
	p.s.Text(panel.X+4, top+6.5, "Factuurdatum", label)
	p.textRight(contentRight-4, top+6.5, p.display.DateLong(p.inv.IssueDate), value)
	p.s.Text(panel.X+4, top+12.5, "Vervaldatum", label)
	p.textRight(contentRight-4, top+12.5, p.display.DateLongPtr(p.inv.DueDate), value)

	p.y = top + panel.H + 8
}
