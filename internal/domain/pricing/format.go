package pricing

import (
	"go.uber.org/zap"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Formatter renders amounts as locale-aware currency strings. The storefront
// default is Mexican pesos with no fraction digits: "$1,950".
type Formatter struct {
	printer *message.Printer
	unit    currency.Unit
	symbol  string
}

// NewFormatter returns the storefront's default es-MX / MXN formatter.
func NewFormatter() *Formatter {
	return NewFormatterFor(language.MustParse("es-MX"), currency.MXN, "$")
}

// NewFormatterFor builds a Formatter for an arbitrary locale, currency unit,
// and symbol.
func NewFormatterFor(tag language.Tag, unit currency.Unit, symbol string) *Formatter {
	return &Formatter{
		printer: message.NewPrinter(tag),
		unit:    unit,
		symbol:  symbol,
	}
}

// Format renders amount as a whole-unit currency string with locale-aware
// grouping. A negative amount is invalid and renders as the zero amount with
// a warning, never an error.
func (f *Formatter) Format(amount decimal.Decimal) string {
	if amount.IsNegative() {
		log.Warn("invalid amount", zap.String("amount", amount.String()))
		amount = decimal.Zero
	}
	whole := amount.Round(0).IntPart()
	return f.printer.Sprintf("%s%v", f.symbol, number.Decimal(whole))
}

// Code returns the ISO 4217 code of the formatter's currency, e.g. "MXN".
func (f *Formatter) Code() string {
	return f.unit.String()
}
