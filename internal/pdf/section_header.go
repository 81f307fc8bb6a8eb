package pdf

import (
	"strings"

	"github.com/factuurdesk/factuurdesk/internal/domain/settings"
	"github.com/samber/lo"
)

var logoBox = Rect{X: marginX, Y: 0, W: 55, H: 20}

// drawHeader places the logo or wordmark with the company address below it on the
// left, and the contact channels with the registration numbers on the right.
func drawHeader(p *page) {
	c := p.company
	top := p.y

	var leftY float64
	if p.logo != nil {
		box := logoBox
		box.Y = top
		r := p.logo.FitInto(box)
		p.s.Image(p.logo, r)
		leftY = top + r.H
	} else {
		leftY = drawWordmark(p, top)
	}

	y := leftY + 5
	if c.LegalName != "" {
		p.s.Text(marginX, y, c.LegalName, p.font(9, WeightBold, p.theme.Text))
		y += 4.2
	}
	addr := p.font(8.5, WeightRegular, p.theme.Muted)
	for _, line := range companyAddressLines(c) {
		p.s.Text(marginX, y, line, addr)
		y += 4.2
	}

	ry := top + 4
	for _, line := range []string{c.Email, c.Phone, c.Website} {
		if line == "" {
			continue
		}
		p.textRight(contentRight, ry, line, addr)
		ry += 4.2
	}
	ry += 1.5
	if c.VATNumber != "" {
		p.textRight(contentRight, ry, "BTW: "+c.VATNumber, addr)
		ry += 4.2
	}
	if c.ChamberOfCommerce != "" {
		p.textRight(contentRight, ry, "KvK: "+c.ChamberOfCommerce, addr)
		ry += 4.2
	}

	bottom := max(y, ry)
	p.divider(bottom)
	p.y = bottom + 8
}

// drawWordmark writes the company name in the brand colour with a short accent bar.
// It returns the bottom of the mark.
func drawWordmark(p *page, top float64) float64 {
	name := p.company.DisplayName()
	if name == "" {
		name = "Factuur"
	}
	p.s.Text(marginX, top+9, name, p.font(20, WeightBold, p.theme.Brand))
	p.s.FillRect(Rect{X: marginX, Y: top + 11.5, W: 14, H: 1.2}, p.theme.Brand)
	return top + 13
}

func companyAddressLines(c *settings.CompanySettings) []string {
	return lo.Compact([]string{
		strings.TrimSpace(c.Street),
		strings.TrimSpace(c.PostalCode + "  " + c.City),
		strings.TrimSpace(c.Country),
	})
}
