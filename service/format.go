package service

import (
	"fmt"
	"math"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"retirement-calc/domain"
)

// CurrencyFormatter renders amounts as locale-aware currency with the
// currency's standard fraction digits (2 for EUR and USD).
type CurrencyFormatter struct {
	printer *message.Printer
	unit    currency.Unit
}

// NewCurrencyFormatter builds a formatter from a BCP 47 locale ("en-US")
// and an ISO 4217 code ("EUR").
func NewCurrencyFormatter(locale, code string) (*CurrencyFormatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", locale, err)
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		return nil, fmt.Errorf("invalid currency %q: %w", code, err)
	}
	return &CurrencyFormatter{
		printer: message.NewPrinter(tag),
		unit:    unit,
	}, nil
}

const (
	DefaultLocale   = "en-US"
	DefaultCurrency = "EUR"
)

// DefaultCurrencyFormatter formats euros with US English grouping.
func DefaultCurrencyFormatter() *CurrencyFormatter {
	return &CurrencyFormatter{
		printer: message.NewPrinter(language.AmericanEnglish),
		unit:    currency.EUR,
	}
}

// Format renders amount with the symbol in front and the sign ahead of
// the symbol: "€975,609.76", "-€243,902.44".
func (f *CurrencyFormatter) Format(amount float64) string {
	scale, _ := currency.Standard.Rounding(f.unit)
	symbol := f.printer.Sprint(currency.Symbol(f.unit))
	digits := f.printer.Sprint(number.Decimal(math.Abs(amount), number.Scale(scale)))

	if amount < 0 {
		return "-" + symbol + digits
	}
	return symbol + digits
}

// Display converts a projection into its user-facing form.
func (f *CurrencyFormatter) Display(p domain.Projection) domain.Display {
	return domain.Display{
		RetirementAge:          p.RetirementAge,
		TargetRetirementAmount: f.Format(p.TargetRetirementAmount),
		ReachesTarget:          p.ReachesTarget,
	}
}
