package format

import (
	"time"

	"github.com/factuurdesk/factuurdesk/internal/logger"
	"github.com/shopspring/decimal"
)

// Display wraps the primitives for presentation code that must not abort on a bad
// value. Errors are logged and a plain fallback string is returned instead.
type Display struct {
	logger *logger.Logger
}

func NewDisplay(log *logger.Logger) *Display {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &Display{logger: log}
}

func (d *Display) Currency(amount decimal.Decimal, currency string) string {
	s, err := Currency(amount, currency)
	if err != nil {
		d.logger.Warnw("could not format amount", "amount", amount.String(), "currency", currency, "error", err)
		return Number(amount, 2)
	}
	return s
}

func (d *Display) DateLong(t time.Time) string {
	s, err := DateLong(t)
	if err != nil {
		d.logger.Warnw("could not format date", "error", err)
		return "-"
	}
	return s
}

// DateLongPtr formats an optional date, "-" when absent
func (d *Display) DateLongPtr(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return d.DateLong(*t)
}

func (d *Display) DateShort(t time.Time) string {
	s, err := DateShort(t)
	if err != nil {
		d.logger.Warnw("could not format date", "error", err)
		return ""
	}
	return s
}

func (d *Display) DateShortPtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return d.DateShort(*t)
}
