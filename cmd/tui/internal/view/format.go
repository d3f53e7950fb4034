package view

import (
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/amount"
)

// formatter prints amounts in the configured currency.
type formatter struct {
	currency string
}

func (f formatter) money(d decimal.Decimal) string {
	return amount.Format(d, f.currency)
}

func formatQty(d decimal.Decimal) string {
	return d.String()
}
