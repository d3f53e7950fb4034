// Package amount parses and formats the decimal quantities and prices the
// ledger stores.
package amount

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// ErrEmpty is returned by Parse for blank input.
var ErrEmpty = errors.New("empty amount")

// Parse reads a plain decimal number such as "12", "-3.5" or "1e3".
// Surrounding whitespace is ignored.
func Parse(s string) (decimal.Decimal, error) {
	clean := strings.TrimSpace(s)
	if clean == "" {
		return decimal.Zero, ErrEmpty
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse %q: %w", s, err)
	}

	return d, nil
}

// ParseOptional is like Parse but treats blank input as zero.
func ParseOptional(s string) (decimal.Decimal, error) {
	if strings.TrimSpace(s) == "" {
		return decimal.Zero, nil
	}

	return Parse(s)
}

// Format renders d in the given ISO 4217 currency, e.g. "$1,234.50".
// Without a currency the value is printed with two decimals.
func Format(d decimal.Decimal, currency string) string {
	if currency == "" {
		return d.StringFixed(2)
	}

	// money.New never returns a nil currency, unknown codes fall back to a
	// generic two-digit formatter.
	cur := money.New(0, strings.ToUpper(currency)).Currency()
	minor := d.Shift(int32(cur.Fraction)).Round(0)

	return cur.Formatter().Format(minor.IntPart())
}
