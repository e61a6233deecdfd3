package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formatter renders prices for a display locale.
type Formatter struct {
	tag     language.Tag
	printer *message.Printer
}

// NewFormatter returns a Formatter for a BCP-47 locale such as "de-DE".
func NewFormatter(locale string) (*Formatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrInvalidLocale, locale, err)
	}
	return &Formatter{tag: tag, printer: message.NewPrinter(tag)}, nil
}

// Locale returns the formatter's language tag.
func (f *Formatter) Locale() language.Tag {
	return f.tag
}

// Format renders amount rounded to two decimals with the currency symbol.
// Unknown currency codes are rendered as "<amount> <code>".
func (f *Formatter) Format(amount decimal.Decimal, code string) string {
	rounded := amount.Round(2)
	unit, err := currency.ParseISO(code)
	if err != nil {
		return rounded.StringFixed(2) + " " + code
	}
	return f.printer.Sprint(currency.Symbol(unit.Amount(rounded.InexactFloat64())))
}

// Number renders a plain number in the formatter's locale, e.g. a percentage.
func (f *Formatter) Number(n int) string {
	return f.printer.Sprintf("%d", n)
}
