package aggregate

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Money renders amounts as "<ISO code> <grouped whole number>". Amounts are
// rounded only here; every fold keeps full precision.
type Money struct {
	unit    currency.Unit
	printer *message.Printer
}

func NewMoney(code, locale string) (*Money, error) {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return nil, fmt.Errorf("parsing currency %q: %w", code, err)
	}

	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("parsing locale %q: %w", locale, err)
	}

	return &Money{unit: unit, printer: message.NewPrinter(tag)}, nil
}

// DefaultMoney formats Indian rupees with en-IN grouping.
func DefaultMoney() *Money {
	return &Money{unit: currency.INR, printer: message.NewPrinter(language.MustParse("en-IN"))}
}

func (m *Money) Format(amount decimal.Decimal) string {
	return m.unit.String() + " " + m.printer.Sprintf("%d", amount.Round(0).IntPart())
}

// Percent renders a rate with one decimal place.
func Percent(rate decimal.Decimal) string {
	return rate.StringFixed(1) + "%"
}
