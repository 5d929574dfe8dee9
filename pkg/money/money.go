// Package money renders prices for display.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// A Formatter renders an amount in a single currency for a single locale,
// e.g. "$1,234.50".
type Formatter struct {
	printer *message.Printer
	symbol  string
	scale   int
}

func NewFormatter(locale, iso string) (Formatter, error) {
	const op = "money.NewFormatter"

	tag, err := language.Parse(locale)
	if err != nil {
		return Formatter{}, fmt.Errorf("%s: locale: %w", op, err)
	}

	unit, err := currency.ParseISO(iso)
	if err != nil {
		return Formatter{}, fmt.Errorf("%s: currency: %w", op, err)
	}

	p := message.NewPrinter(tag)
	scale, _ := currency.Standard.Rounding(unit)

	return Formatter{
		printer: p,
		symbol:  p.Sprint(currency.NarrowSymbol(unit)),
		scale:   scale,
	}, nil
}

func (f Formatter) Format(d decimal.Decimal) string {
	amount := d.Round(int32(f.scale)).InexactFloat64()
	return f.symbol + f.printer.Sprint(number.Decimal(amount, number.Scale(f.scale)))
}
