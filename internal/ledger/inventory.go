package ledger

import "github.com/shopspring/decimal"

// Inventory sums the quantity movements of every named product. Product
// names are matched exactly, "Widget" and "widget" are two products.
func (b *Book) Inventory() map[string]InventoryRow {
	rows := make(map[string]*InventoryRow)

	row := func(product string) *InventoryRow {
		r, ok := rows[product]
		if !ok {
			r = &InventoryRow{
				Purchased:       decimal.Zero,
				PurchaseReturns: decimal.Zero,
				Sold:            decimal.Zero,
				SalesReturns:    decimal.Zero,
			}
			rows[product] = r
		}

		return r
	}

	for _, rec := range b.purchases {
		if rec.ProductName != "" {
			r := row(rec.ProductName)
			r.Purchased = r.Purchased.Add(rec.Quantity)
		}
	}

	for _, rec := range b.purchaseReturns {
		if rec.ProductName != "" {
			r := row(rec.ProductName)
			r.PurchaseReturns = r.PurchaseReturns.Add(rec.Quantity)
		}
	}

	for _, rec := range b.sales {
		if rec.ProductName != "" {
			r := row(rec.ProductName)
			r.Sold = r.Sold.Add(rec.Quantity)
		}
	}

	for _, rec := range b.saleReturns {
		if rec.ProductName != "" {
			r := row(rec.ProductName)
			r.SalesReturns = r.SalesReturns.Add(rec.Quantity)
		}
	}

	out := make(map[string]InventoryRow, len(rows))
	for product, r := range rows {
		r.CurrentInventory = r.Purchased.Sub(r.PurchaseReturns).Sub(r.Sold).Add(r.SalesReturns)
		out[product] = *r
	}

	return out
}
