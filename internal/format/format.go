// Package format holds the locale primitives used by reports and invoice documents.
// Output is nl-NL and never depends on the host locale.
package format

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	ierr "github.com/factuurdesk/factuurdesk/internal/errors"
	"github.com/factuurdesk/factuurdesk/internal/types"
	"github.com/shopspring/decimal"
)

// FormatError is returned when a primitive receives a value it cannot format
type FormatError struct {
	Op     string
	Value  string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("format %s(%s): %s", e.Op, e.Value, e.Reason)
}

// Is lets errors.Is(err, ierr.ErrFormat) match every FormatError
func (e *FormatError) Is(target error) bool {
	return target == ierr.ErrFormat
}

var currencyCodePattern = regexp.MustCompile(`^[A-Za-z]{3}$`)

var monthNames = [12]string{
	"januari", "februari", "maart", "april", "mei", "juni",
	"juli", "augustus", "september", "oktober", "november", "december",
}

// MonthName returns the lower case Dutch name of m
func MonthName(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	return monthNames[m-1]
}

// Currency renders amount as "€ 1.234,50": symbol, space, dot grouped integer part,
// decimal comma and the currency's minor unit precision (half away from zero).
func Currency(amount decimal.Decimal, currency string) (string, error) {
	if !currencyCodePattern.MatchString(currency) {
		return "", &FormatError{Op: "currency", Value: currency, Reason: "currency must be a three letter ISO code"}
	}

	precision := types.GetCurrencyPrecision(currency)
	rounded := amount.Round(precision)

	sign := ""
	if rounded.IsNegative() {
		sign = "-"
	}

	return types.GetCurrencySymbol(currency) + " " + sign + Number(rounded.Abs(), precision), nil
}

// CurrencyFloat formats a float amount, rejecting NaN and infinities
func CurrencyFloat(amount float64, currency string) (string, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return "", &FormatError{Op: "currency", Value: fmt.Sprint(amount), Reason: "amount is not a finite number"}
	}
	return Currency(decimal.NewFromFloat(amount), currency)
}

// Number renders d with a fixed number of decimals, "." thousands and "," decimals.
func Number(d decimal.Decimal, places int32) string {
	fixed := d.StringFixed(places)

	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign = "-"
		fixed = fixed[1:]
	}

	intPart, fracPart, hasFrac := strings.Cut(fixed, ".")
	out := sign + groupThousands(intPart)
	if hasFrac {
		out += "," + fracPart
	}
	return out
}

// Quantity renders a quantity without trailing zeros: 2 -> "2", 1.5 -> "1,5"
func Quantity(d decimal.Decimal) string {
	exp := d.Exponent()
	places := int32(0)
	if exp < 0 {
		places = -exp
	}
	s := Number(d, places)
	if strings.Contains(s, ",") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ",")
	}
	return s
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// DateLong renders t as "5 januari 2025" using the calendar date of t's own location
func DateLong(t time.Time) (string, error) {
	if t.IsZero() {
		return "", &FormatError{Op: "date", Value: "0001-01-01", Reason: "date is not set"}
	}
	y, m, d := t.Date()
	return fmt.Sprintf("%d %s %d", d, MonthName(m), y), nil
}

// DateShort renders t as "05-01-2025"
func DateShort(t time.Time) (string, error) {
	if t.IsZero() {
		return "", &FormatError{Op: "date", Value: "0001-01-01", Reason: "date is not set"}
	}
	return t.Format("02-01-2006"), nil
}
