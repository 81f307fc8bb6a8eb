package pdf

const paymentRight = totalsLeft

// drawPaymentTerms writes the bank details on the left and the due date on the right.
// Invoices that can still be paid get a "Betaal online" button and the link spelled out.
func drawPaymentTerms(p *page) {
	c := p.company
	inv := p.inv
	top := p.y

	heading := p.font(10, WeightBold, p.theme.Text)
	label := p.font(8.5, WeightRegular, p.theme.Muted)
	value := p.font(8.5, WeightRegular, p.theme.Text)

	p.s.Text(marginX, top+5, "Betaalgegevens", heading)
	y := top + 11
	for _, row := range [][2]string{
		{"IBAN", c.IBAN},
		{"BIC", c.BIC},
		{"Bank", c.BankName},
		{"Betalingskenmerk", inv.PaymentReference()},
	} {
		if row[1] == "" {
			continue
		}
		p.s.Text(marginX, y, row[0], label)
		p.s.Text(marginX+32, y, row[1], value)
		y += 5
	}

	p.s.Text(paymentRight, top+5, "Vervaldatum", heading)
	p.s.Text(paymentRight, top+11, p.display.DateLongPtr(inv.DueDate), value)
	ry := top + 15

	if inv.Status.IsPayable() && p.paymentURL != "" {
		button := Rect{X: paymentRight, Y: ry, W: 50, H: 10}
		p.s.FillRoundedRect(button, 2, p.theme.Brand)
		p.textCenter(button.X+button.W/2, button.Y+6.4, "Betaal online", p.font(10, WeightBold, p.theme.White))
		p.s.Link(button, p.paymentURL)

		ry = button.Y + button.H + 5
		urlFont := p.font(7.5, WeightRegular, p.theme.Brand)
		p.s.Text(paymentRight, ry, p.paymentURL, urlFont)
		p.s.Link(Rect{X: paymentRight, Y: ry - 3, W: p.s.TextWidth(p.paymentURL, urlFont), H: 4}, p.paymentURL)
		ry += 2
	}

	p.y = max(y, ry) + 6
}
