package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/amount"
)

func (b *Book) totalSales() decimal.Decimal {
	sum := decimal.Zero
	for _, rec := range b.sales {
		sum = sum.Add(rec.TotalSale)
	}

	return sum
}

func (b *Book) totalRefunds() decimal.Decimal {
	sum := decimal.Zero
	for _, rec := range b.saleReturns {
		sum = sum.Add(rec.RefundAmount)
	}

	return sum
}

func (b *Book) totalPurchases() decimal.Decimal {
	sum := decimal.Zero
	for _, rec := range b.purchases {
		sum = sum.Add(rec.TotalPurchase)
	}

	return sum
}

func (b *Book) totalPurchaseReturns() decimal.Decimal {
	sum := decimal.Zero
	for _, rec := range b.purchaseReturns {
		sum = sum.Add(rec.TotalReturn)
	}

	return sum
}

// Profit derives net sales, net purchases and profit from every record.
func (b *Book) Profit(operatingExpenses decimal.Decimal) ProfitResult {
	r := ProfitResult{
		TotalSales:           b.totalSales(),
		TotalSaleReturns:     b.totalRefunds(),
		TotalPurchases:       b.totalPurchases(),
		TotalPurchaseReturns: b.totalPurchaseReturns(),
		OperatingExpenses:    operatingExpenses,
	}

	r.NetSales = r.TotalSales.Sub(r.TotalSaleReturns)
	r.NetPurchases = r.TotalPurchases.Sub(r.TotalPurchaseReturns)
	r.GrossProfit = r.NetSales.Sub(r.NetPurchases)
	r.NetProfit = r.GrossProfit.Sub(operatingExpenses)

	return r
}

// CashFlow derives the closing balance from an opening balance, the recorded
// movements and any outflow not captured by purchases.
func (b *Book) CashFlow(openingBalance, additionalOutflow decimal.Decimal) CashFlowResult {
	inflow := b.totalSales().Sub(b.totalRefunds())
	outflow := b.totalPurchases().Sub(b.totalPurchaseReturns()).Add(additionalOutflow)

	return CashFlowResult{
		OpeningBalance:    openingBalance,
		CashInflow:        inflow,
		CashOutflow:       outflow,
		AdditionalOutflow: additionalOutflow,
		ClosingBalance:    openingBalance.Add(inflow).Sub(outflow),
	}
}

// ParseProfitInput parses the operating expenses of a profit query. Blank
// input means zero. Invalid input yields zero together with ErrInvalidInput
// so the caller can still compute and report the profit.
func ParseProfitInput(operatingExpenses string) (decimal.Decimal, error) {
	d, err := amount.ParseOptional(operatingExpenses)
	if err != nil {
		return decimal.Zero, fmt.Errorf("operating expenses %q: %w", operatingExpenses, ErrInvalidInput)
	}

	return d, nil
}

// ParseCashFlowInput parses the inputs of a cash-flow query in order. When
// the opening balance is invalid both values are zero; when only the
// additional outflow is invalid the opening balance is kept.
func ParseCashFlowInput(openingBalance, additionalOutflow string) (opening, outflow decimal.Decimal, err error) {
	opening, err = amount.ParseOptional(openingBalance)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("opening balance %q: %w", openingBalance, ErrInvalidInput)
	}

	outflow, err = amount.ParseOptional(additionalOutflow)
	if err != nil {
		return opening, decimal.Zero, fmt.Errorf("additional outflow %q: %w", additionalOutflow, ErrInvalidInput)
	}

	return opening, outflow, nil
}
