package pdf

const defaultThankYou = "Bedankt voor uw vertrouwen!"

// drawFooter is pinned to the bottom of the page
func drawFooter(p *page) {
	c := p.company
	y := footerTop

	accentEnd := marginX + 30
	p.s.Line(marginX, y, accentEnd, y, Stroke{Color: p.theme.Brand, Width: 1.2})
	p.s.Line(accentEnd, y, contentRight, y, Stroke{Color: p.theme.Border, Width: 0.3})

	thanks := c.ThankYouText
	if thanks == "" {
		thanks = defaultThankYou
	}
	p.textCenter(PageWidth/2, y+7, thanks, p.font(9, WeightBold, p.theme.Text))

	if channels := joinNonEmpty(" · ", c.Email, c.Phone, c.Website); channels != "" {
		p.textCenter(PageWidth/2, y+12, channels, p.font(8, WeightRegular, p.theme.Muted))
	}

	p.y = PageHeight
}
